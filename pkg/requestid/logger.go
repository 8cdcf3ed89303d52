package requestid

import (
	"context"
	"log/slog"

	"github.com/tripnest/inputguard/pkg/logger"
)

// LoggerExtractor returns a logger.ContextExtractor that adds the request id
// to every record logged with a request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}

// Logger returns l with the request id of ctx bound as an attribute.
// Use it for components that log without a context, such as the sanitizer.
func Logger(ctx context.Context, l *slog.Logger) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	if id := FromContext(ctx); id != "" {
		return l.With(logger.RequestID(id))
	}
	return l
}
