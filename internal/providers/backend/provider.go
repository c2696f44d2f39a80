package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/season-weeks-service/internal/apiclient"
	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
	"github.com/preston-bernstein/season-weeks-service/internal/logging"
	"github.com/preston-bernstein/season-weeks-service/internal/providers"
)

// Name identifies this provider in logs and metrics.
const Name = "backend"

// SeasonFetcher is the slice of the API client the provider needs.
type SeasonFetcher interface {
	SeasonGames(ctx context.Context, seasonID int64) ([]domaingames.Game, error)
}

// Provider loads season schedules from the scenario backend. Concurrent
// fetches for the same season share one upstream request.
type Provider struct {
	client SeasonFetcher
	logger *slog.Logger
	group  singleflight.Group
}

// New returns a backend provider over client.
func New(client SeasonFetcher, logger *slog.Logger) *Provider {
	return &Provider{client: client, logger: logger}
}

func (p *Provider) FetchGames(ctx context.Context, seasonID int64) ([]domaingames.Game, error) {
	if p == nil || p.client == nil {
		return nil, providers.ErrProviderUnavailable
	}
	key := strconv.FormatInt(seasonID, 10)
	v, err, shared := p.group.Do(key, func() (any, error) {
		return p.client.SeasonGames(ctx, seasonID)
	})
	if err != nil {
		return nil, classify(err)
	}
	games := v.([]domaingames.Game)
	if shared {
		logging.FromContext(ctx, p.logger).Debug("backend fetch shared",
			logging.FieldProvider, Name,
			logging.FieldSeasonID, seasonID,
			logging.FieldCount, len(games),
		)
	}
	// Shared results are handed to several callers; each gets its own slice.
	out := make([]domaingames.Game, len(games))
	copy(out, games)
	return out, nil
}

// classify maps API errors onto the retry vocabulary: 429 becomes a
// RateLimitError and other non-temporary statuses are permanent.
func classify(err error) error {
	apiErr, ok := apiclient.AsAPIError(err)
	if !ok {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return providers.Permanent(err)
		}
		return err
	}
	if apiErr.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   Name,
			StatusCode: apiErr.StatusCode,
			RetryAfter: apiErr.RetryAfter,
			Message:    apiErr.Message,
		}
	}
	if apiErr.Temporary() {
		return err
	}
	return providers.Permanent(fmt.Errorf("%s: %w", Name, err))
}
