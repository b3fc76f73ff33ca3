package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/scorigami-service/internal/logging"
)

// logWithProvider prefers the request logger from ctx and tags the entry with the provider name.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	logger = logging.FromContext(ctx, logger)
	if logger == nil || !logger.Enabled(ctx, level) {
		return
	}
	args = append(args, slog.String(logging.FieldProvider, provider))
	logger.Log(ctx, level, msg, args...)
}
