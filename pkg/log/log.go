// Package log provides the context-carried structured logger used across
// the engine. It is a thin wrapper around log/slog so calculators can pull
// a logger out of the context they were handed without importing slog
// directly everywhere.
package log

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey struct{}

var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// WithContext attaches logger to ctx, returning a new context.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger attached to ctx, or the package default
// logger if none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return defaultLogger
}

// SetDefault overrides the package default logger, e.g. to raise the level
// from pkg/config.
func SetDefault(logger *slog.Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}
