package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/localplate/localplate/internal/domain"
)

// LoggerContextKey is the context key carrying the request-scoped logger.
const LoggerContextKey contextKey = "logger"

// WithRequestLogger injects a request-scoped logger carrying the method,
// path, request ID, and authenticated user, then emits one access line
// when the request completes. Place after RequestID and WithUser so both
// attributes resolve. Health and metrics probes log at debug so scrapes
// do not drown the access log.
func WithRequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			if requestID := GetRequestID(r.Context()); requestID != "" {
				logger = logger.With(slog.String("request_id", requestID))
			}
			if user := domain.UserFromContext(r.Context()); user != nil {
				logger = logger.With(slog.String("user_id", user.ID.String()))
			}

			ctx := context.WithValue(r.Context(), LoggerContextKey, logger)
			lw := &loggingResponseWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(lw, r.WithContext(ctx))

			level := slog.LevelInfo
			if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
				level = slog.LevelDebug
			}
			logger.Log(ctx, level, "request completed",
				slog.Int("status", lw.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *loggingResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// GetLogger returns the request-scoped logger, the fallback when one is
// given, or slog.Default.
func GetLogger(ctx context.Context, fallback ...*slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*slog.Logger); ok {
		return logger
	}
	if len(fallback) > 0 && fallback[0] != nil {
		return fallback[0]
	}
	return slog.Default()
}
