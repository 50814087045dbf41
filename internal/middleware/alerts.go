package middleware

import (
	"fmt"
	"net/http"

	"github.com/localplate/localplate/internal/alerts"
	"github.com/localplate/localplate/internal/domain"
)

// WithServerErrorAlerts returns middleware that reports 5xx responses to
// the alert notifier. The notification carries the request path, request
// ID, and user so an operator can trace the failure without log diving.
func WithServerErrorAlerts(notifier alerts.Notifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &alertResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			if wrapped.statusCode < http.StatusInternalServerError {
				return
			}

			event := alerts.ErrorEvent{
				Message:   fmt.Sprintf("request failed with status %d", wrapped.statusCode),
				RequestID: domain.RequestIDFromContext(r.Context()),
				Path:      r.Method + " " + r.URL.Path,
			}
			if user := domain.UserFromContext(r.Context()); user != nil {
				event.UserID = user.ID.String()
			}
			alerts.NotifyError(notifier, event)
		})
	}
}

type alertResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *alertResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
