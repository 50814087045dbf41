package middleware

import (
	"context"
	"net/http"
)

// ClientIPContextKey carries the resolved client IP.
const ClientIPContextKey contextKey = "client_ip"

// WithClientIP resolves the client IP once, early in the chain, so the
// rate limiter and the credential services read the same value instead
// of re-parsing proxy headers. The headers are only trustworthy when a
// reverse proxy controls them.
func WithClientIP() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ClientIPContextKey, GetClientIP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClientIPFromContext returns the IP stored by WithClientIP, or ""
// when the middleware did not run.
func GetClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ClientIPContextKey).(string)
	return ip
}
