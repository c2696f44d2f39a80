package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/preston-bernstein/season-weeks-service/internal/metrics"
)

// StackConfig controls the outer middleware chain.
type StackConfig struct {
	Logger         *slog.Logger
	Recorder       *metrics.Recorder
	AllowedOrigins []string
}

// Stack wraps next with request logging, CORS, compression, and panic
// recovery, outermost first.
func Stack(cfg StackConfig, next http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	h := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{logger: cfg.Logger}),
		handlers.PrintRecoveryStack(false),
	)(next)
	h = handlers.CompressHandler(h)
	h = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "Accept-Language", "X-Request-ID"}),
		handlers.ExposedHeaders([]string{"X-Request-ID"}),
	)(h)
	return LoggingMiddleware(cfg.Logger, cfg.Recorder, h)
}

// recoveryLogger adapts slog to the gorilla recovery logger.
type recoveryLogger struct {
	logger *slog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	logger := l.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("panic recovered", "error", fmt.Sprint(v...))
}
