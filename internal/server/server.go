package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/season-weeks-service/internal/app/schedule"
	"github.com/preston-bernstein/season-weeks-service/internal/config"
	"github.com/preston-bernstein/season-weeks-service/internal/domain/leagues"
	httpserver "github.com/preston-bernstein/season-weeks-service/internal/http"
	"github.com/preston-bernstein/season-weeks-service/internal/http/handlers"
	"github.com/preston-bernstein/season-weeks-service/internal/http/middleware"
	"github.com/preston-bernstein/season-weeks-service/internal/logging"
	"github.com/preston-bernstein/season-weeks-service/internal/metrics"
	"github.com/preston-bernstein/season-weeks-service/internal/poller"
	"github.com/preston-bernstein/season-weeks-service/internal/providers"
	"github.com/preston-bernstein/season-weeks-service/internal/snapshots"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	schedule      *schedule.Service
	leagues       *leagues.Registry
	snapshots     snapshotComponents
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	// closers run last during shutdown, in order.
	closers []func() error
}

// New constructs a server with default provider, store and poller wiring.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithProvider(ctx, cfg, logger, nil, nil)
}

// newServerWithProvider wires every component; a nil provider is built from
// cfg and a nil recorder comes from metrics setup.
func newServerWithProvider(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.GameProvider, recorder *metrics.Recorder) (*Server, error) {
	seasons, err := cfg.SeasonMap()
	if err != nil {
		return nil, fmt.Errorf("seasons: %w", err)
	}
	registry, err := config.LoadLeagues(cfg.LeaguesFile)
	if err != nil {
		return nil, err
	}
	for id, name := range seasons {
		if _, ok := registry.Lookup(name); !ok {
			return nil, fmt.Errorf("season %d: %w: %s", id, schedule.ErrUnknownLeague, name)
		}
	}

	st, closeStore, err := buildStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	var closers []func() error
	if provider == nil {
		var release func()
		provider, release = newProviderFactory(logger, recorder).build(cfg, seasons)
		closers = append(closers, func() error { release(); return nil })
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), 0, 0)
	}
	closers = append(closers, closeStore)

	svc := schedule.NewService(st, registry, seasons,
		schedule.WithRecorder(recorder),
		schedule.WithLogger(logger),
	)
	snaps := buildSnapshots(cfg)
	snapshots.Warm(ctx, snaps.store, svc, svc.Seasons(), logger)

	plr := poller.New(provider, svc, snaps.writer, logger, recorder, cfg.PollInterval)
	httpSrv := buildHTTPServer(cfg, svc, snaps.store, logger, recorder, plr)

	srv := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		schedule:      svc,
		leagues:       registry,
		snapshots:     snaps,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
		closers:       closers,
	}
	return srv, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *schedule.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		schedule:   svc,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, svc *schedule.Service, snaps snapshots.Store, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	var refresher handlers.Refresher
	if plr != nil {
		statusFn = plr.Status
		refresher = plr
	}

	handler := handlers.NewHandler(svc, snaps, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(refresher, svc.Seasons, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.Stack(middleware.StackConfig{
		Logger:         logger,
		Recorder:       recorder,
		AllowedOrigins: cfg.CORSOrigins,
	}, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.watchLeagues(ctx)
	s.poller.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) watchLeagues(ctx context.Context) {
	if s.cfg.LeaguesFile == "" || s.leagues == nil {
		return
	}
	w, err := config.WatchLeagues(ctx, s.cfg.LeaguesFile, s.leagues, s.logger)
	if err != nil {
		logging.Warn(s.logger, "leagues file not watched", "path", s.cfg.LeaguesFile, "error", err)
		return
	}
	s.closers = append(s.closers, w.Close)
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if err := s.runClosers(); err != nil && s.logger != nil {
		s.logger.Warn("resource cleanup failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func (s *Server) runClosers() error {
	var errs []error
	for _, c := range s.closers {
		if c == nil {
			continue
		}
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := cfg.Metrics.Telemetry()
	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "error", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Schedule exposes the schedule service (useful for tests).
func (s *Server) Schedule() *schedule.Service {
	return s.schedule
}
