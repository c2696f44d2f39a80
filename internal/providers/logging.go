package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/season-weeks-service/internal/logging"
)

// logWithProvider emits a log entry through the request-scoped logger when
// present, falling back to logger, and always tags the provider name.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	logger = logging.FromContext(ctx, logger)
	args = append(args, slog.String(logging.FieldProvider, provider))
	logger.Log(ctx, level, msg, args...)
}
