package middleware

import (
	"context"

	"petdb/internal/platform/logger"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// WithLogger guarda el logger del request en el contexto.
func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// LoggerFrom devuelve el logger del request. Si no hay, usa uno desde env
// para que los handlers nunca reciban nil.
func LoggerFrom(ctx context.Context) logger.Logger {
	v := ctx.Value(loggerKey)
	if v == nil {
		return logger.NewFromEnv()
	}
	l, ok := v.(logger.Logger)
	if !ok || l == nil {
		return logger.NewFromEnv()
	}
	return l
}
