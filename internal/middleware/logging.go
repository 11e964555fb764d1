package middleware

import (
	"net/http"
	"time"

	"petdb/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger:
// - deja en el contexto un logger con request_id (de chimw.RequestID, si corre antes)
// - al terminar loguea method, path, status, bytes y duración
func RequestLogger(base logger.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = logger.NewFromEnv()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			l := base
			if reqID := chimw.GetReqID(r.Context()); reqID != "" {
				l = l.With(map[string]any{"request_id": reqID})
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(WithLogger(r.Context(), l)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if status >= http.StatusInternalServerError {
				l.Warn("request failed", fields)
				return
			}
			l.Info("request", fields)
		})
	}
}
