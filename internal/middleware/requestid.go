package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/localplate/localplate/internal/domain"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an ID, echoes it on the response,
// and stores it in the context for the loggers downstream.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Honor an ID set upstream by a load balancer or proxy
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := domain.NewContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID reads the ID RequestID stored, "" outside a request.
func GetRequestID(ctx context.Context) string {
	return domain.RequestIDFromContext(ctx)
}
