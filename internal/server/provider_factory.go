package server

import (
	"log/slog"

	"github.com/preston-bernstein/season-weeks-service/internal/config"
	"github.com/preston-bernstein/season-weeks-service/internal/metrics"
	"github.com/preston-bernstein/season-weeks-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns the wrapped provider and a func releasing its resources.
func (f providerFactory) build(cfg config.Config, seasons map[int64]string) (providers.GameProvider, func()) {
	base := selectProvider(cfg, seasons, f.logger)
	name := normalizeProviderName(cfg.Provider, base)
	release := func() {}

	inner := base
	if name == providerBackend {
		// Upstream calls are spaced so a poll cycle never bursts the backend.
		limited := providers.NewRateLimitedProvider(base, cfg.Backend.MinInterval, f.logger)
		inner = limited
		release = limited.Close
	}
	return providers.NewRetryingProvider(inner, f.logger, f.metrics, name, cfg.Backend.RetryAttempts, cfg.Backend.RetryBase), release
}
