package server

import (
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/preston-bernstein/season-weeks-service/internal/apiclient"
	"github.com/preston-bernstein/season-weeks-service/internal/config"
	"github.com/preston-bernstein/season-weeks-service/internal/providers"
	"github.com/preston-bernstein/season-weeks-service/internal/providers/backend"
	"github.com/preston-bernstein/season-weeks-service/internal/providers/fixture"
)

const (
	providerFixture = "fixture"
	providerBackend = backend.Name
)

func selectProvider(cfg config.Config, seasons map[int64]string, logger *slog.Logger) providers.GameProvider {
	switch cfg.Provider {
	case providerFixture, "":
		return fixture.New(seasons)
	case providerBackend:
		var source oauth2.TokenSource
		if cfg.Backend.Token != "" {
			source = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Backend.Token, TokenType: "Bearer"})
		}
		client := apiclient.New(apiclient.Config{
			BaseURL:     cfg.Backend.BaseURL,
			HTTPClient:  &http.Client{Timeout: cfg.Backend.Timeout},
			TokenSource: source,
			Logger:      logger,
		})
		return backend.New(client, logger)
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New(seasons)
	}
}
