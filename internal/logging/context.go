package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

// FromContext returns the logger attached to ctx, or Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger attaches logger to ctx. A nil ctx starts from Background.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// With attaches a child of ctx's logger carrying keyvals, so everything
// logged below shares them (a document URI, a file path).
func With(ctx context.Context, keyvals ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(keyvals...))
}
