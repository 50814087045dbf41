package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/localplate/localplate/internal/domain"
)

type contextKey string

// TokenVerifier validates an access token and resolves it to a user.
// Implemented by service.TokenService.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*domain.User, error)
}

// WithUser extracts the bearer token from the Authorization header and,
// when valid, adds the authenticated user to the request context. The
// middleware is optional: requests without a token (or with an invalid
// one) continue anonymously and RequireAuth decides what to do.
func WithUser(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := verifier.VerifyAccessToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := domain.NewContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth ensures the request is authenticated, returning 401 if not
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if domain.UserFromContext(r.Context()) == nil {
			respondUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireChef ensures the user holds the chef role. Admins pass too so
// support staff can act on chef resources.
func RequireChef(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := domain.UserFromContext(r.Context())
		if user == nil {
			respondUnauthorized(w, r)
			return
		}
		if !user.IsChef() && !user.IsAdmin() {
			respondForbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin ensures the user is an admin, returning 403 if not
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := domain.UserFromContext(r.Context())
		if user == nil {
			respondUnauthorized(w, r)
			return
		}
		if !user.IsAdmin() {
			respondForbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext retrieves the authenticated user from the request
// context. Returns nil for anonymous requests.
func GetUserFromContext(ctx context.Context) *domain.User {
	return domain.UserFromContext(ctx)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
