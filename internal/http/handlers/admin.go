package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/preston-bernstein/season-weeks-service/internal/http/requestutil"
	"github.com/preston-bernstein/season-weeks-service/internal/logging"
)

// Refresher refetches one season from the upstream provider.
type Refresher interface {
	RefreshSeason(ctx context.Context, seasonID int64) (int, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher Refresher
	seasons   func() []int64
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. seasons lists the season IDs
// refreshed when no ?season= is given.
func NewAdminHandler(refresher Refresher, seasons func() []int64, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		seasons:   seasons,
		token:     token,
		logger:    logger,
	}
}

type refreshResult struct {
	SeasonID int64  `json:"seasonId"`
	Games    int    `json:"games"`
	Error    string `json:"error,omitempty"`
}

// RefreshSnapshots refetches seasons, updates the store and rewrites their
// snapshots. Guarded by ADMIN_TOKEN; returns 401 if missing or invalid.
func (h *AdminHandler) RefreshSnapshots(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	ids, ok := h.targetSeasons(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid season id", logger)
		return
	}

	results := make([]refreshResult, 0, len(ids))
	failed := 0
	for _, id := range ids {
		n, err := h.refresher.RefreshSeason(r.Context(), id)
		res := refreshResult{SeasonID: id, Games: n}
		if err != nil {
			failed++
			res.Error = err.Error()
			logging.Error(logger, "admin refresh failed", err, logging.FieldSeasonID, id)
		} else {
			logging.Info(logger, "admin refresh complete",
				logging.FieldSeasonID, id,
				logging.FieldCount, n,
			)
		}
		results = append(results, res)
	}

	status := http.StatusOK
	state := "ok"
	if failed > 0 {
		status = http.StatusBadGateway
		state = "partial"
		if failed == len(ids) {
			state = "failed"
		}
	}
	writeJSON(w, status, map[string]any{
		"status":  state,
		"seasons": results,
	}, logger)
}

func (h *AdminHandler) targetSeasons(r *http.Request) ([]int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("season"))
	if raw == "" {
		if h.seasons == nil {
			return nil, true
		}
		return h.seasons(), true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return []int64{id}, true
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := requestutil.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
