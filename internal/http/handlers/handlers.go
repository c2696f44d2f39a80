package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/season-weeks-service/internal/app/schedule"
	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
	"github.com/preston-bernstein/season-weeks-service/internal/poller"
	"github.com/preston-bernstein/season-weeks-service/internal/snapshots"
)

type nowFunc func() time.Time

// Handler wires HTTP routes to the schedule service.
type Handler struct {
	svc      *schedule.Service
	snaps    snapshots.Store
	logger   *slog.Logger
	now      nowFunc
	statusFn func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *schedule.Service, snaps snapshots.Store, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		snaps:    snaps,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// GameByID returns a specific game if present.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathInt(r, "id")
	if !ok || id <= 0 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}
	game, found, err := h.svc.GameByID(r.Context(), id)
	if err != nil {
		loggerFromContext(r, h.logger).Error("game lookup failed", "error", err)
		writeError(w, r, nethttp.StatusInternalServerError, "game lookup failed", h.logger)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, game, h.logger)
}

// SeasonGames returns every game of a season. An empty store falls back to the
// season's snapshot.
func (h *Handler) SeasonGames(w nethttp.ResponseWriter, r *nethttp.Request) {
	seasonID, ok := h.seasonParam(w, r)
	if !ok {
		return
	}
	league, err := h.svc.League(seasonID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	games, err := h.svc.Games(r.Context(), seasonID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	logger := loggerFromContext(r, h.logger)
	source := "cache"
	if len(games) == 0 && h.snaps != nil {
		if snap, err := h.snaps.LoadSeason(seasonID); err == nil {
			games = snap.Games
			source = "snapshot"
		}
	}
	if logger != nil {
		logger.Info("served season games", "season_id", seasonID, "provider", source, "count", len(games))
	}
	writeJSON(w, nethttp.StatusOK, domaingames.NewSeasonResponse(seasonID, league.Name, games), h.logger)
}

// WeekGames returns the games scheduled in one week.
func (h *Handler) WeekGames(w nethttp.ResponseWriter, r *nethttp.Request) {
	seasonID, ok := h.seasonParam(w, r)
	if !ok {
		return
	}
	week, ok := pathInt(r, "week")
	if !ok || week < 1 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid week", h.logger)
		return
	}
	league, err := h.svc.League(seasonID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if int(week) > league.MaxWeek {
		writeError(w, r, nethttp.StatusBadRequest, "week out of range", h.logger)
		return
	}
	games, err := h.svc.GamesForWeek(r.Context(), seasonID, int(week))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, domaingames.NewSeasonResponse(seasonID, league.Name, games), h.logger)
}

// NotFound answers unmatched routes with the JSON error shape.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes called with the wrong verb.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

func (h *Handler) seasonParam(w nethttp.ResponseWriter, r *nethttp.Request) (int64, bool) {
	id, ok := pathInt(r, "seasonId")
	if !ok || id <= 0 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid season id", h.logger)
		return 0, false
	}
	return id, true
}

func (h *Handler) writeServiceError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	switch {
	case errors.Is(err, schedule.ErrUnknownSeason):
		writeError(w, r, nethttp.StatusNotFound, "season not found", h.logger)
	case errors.Is(err, schedule.ErrUnknownLeague):
		writeError(w, r, nethttp.StatusInternalServerError, "season league not configured", h.logger)
	default:
		loggerFromContext(r, h.logger).Error("schedule lookup failed", "error", err)
		writeError(w, r, nethttp.StatusInternalServerError, "schedule lookup failed", h.logger)
	}
}

func pathInt(r *nethttp.Request, name string) (int64, bool) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
