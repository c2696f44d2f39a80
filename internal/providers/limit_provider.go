package providers

import (
	"context"
	"log/slog"
	"time"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
	"github.com/preston-bernstein/season-weeks-service/internal/logging"
)

const rateLimitedName = "rate-limited"

// RateLimitedProvider enforces a minimum interval between upstream calls.
type RateLimitedProvider struct {
	next     GameProvider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a provider that blocks each call until the
// next tick. Close releases the ticker.
func NewRateLimitedProvider(next GameProvider, interval time.Duration, logger *slog.Logger) *RateLimitedProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *RateLimitedProvider) FetchGames(ctx context.Context, seasonID int64) ([]domaingames.Game, error) {
	if p == nil || p.next == nil {
		var logger *slog.Logger
		if p != nil {
			logger = p.logger
		}
		logWithProvider(ctx, logger, slog.LevelWarn, rateLimitedName, "provider unavailable")
		return nil, ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "rate-limited fetch canceled")
		return nil, ctx.Err()
	case <-p.ticker.C:
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, "rate-limited provider fetch",
		logging.FieldSeasonID, seasonID)
	return p.next.FetchGames(ctx, seasonID)
}

// Close stops the interval ticker.
func (p *RateLimitedProvider) Close() {
	if p != nil && p.ticker != nil {
		p.ticker.Stop()
	}
}
