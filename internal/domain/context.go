// Package domain provides core business types, error codes, and context
// helpers shared across the application.
//
// Context helpers centralize request-scoped data access so handlers and
// services read the authenticated user and request ID the same way
// everywhere.
package domain

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey int

const (
	userContextKey contextKey = iota + 1
	requestIDContextKey
)

// =============================================================================
// User Context
// =============================================================================

// User represents an authenticated user in the request context.
// Populated by the auth middleware from a verified access token.
type User struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// User roles.
const (
	RoleCustomer = "customer"
	RoleChef     = "chef"
	RoleAdmin    = "admin"
)

// IsChef returns true if the user has the chef role.
func (u *User) IsChef() bool {
	return u != nil && u.Role == RoleChef
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// NewContextWithUser returns a new context with the authenticated user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user from the context.
// Returns nil if no user is set (unauthenticated request).
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey).(*User)
	return user
}

// UserIDFromContext returns the authenticated user's ID from the context.
// Returns uuid.Nil if no user is set.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	user := UserFromContext(ctx)
	if user == nil {
		return uuid.Nil
	}
	return user.ID
}

// RequireUserID returns the authenticated user's ID or panics.
// Use only in handlers behind RequireAuth middleware where a missing
// user indicates a programming error, not a client error.
func RequireUserID(ctx context.Context) uuid.UUID {
	user := UserFromContext(ctx)
	if user == nil {
		panic("domain: RequireUserID called without authenticated user in context")
	}
	return user.ID
}

// IsAuthenticated returns true if the context has an authenticated user.
func IsAuthenticated(ctx context.Context) bool {
	return UserFromContext(ctx) != nil
}

// =============================================================================
// Request ID Context
// =============================================================================

// NewContextWithRequestID returns a new context with the request ID.
func NewContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequestIDFromContext returns the request ID from the context.
// Returns empty string if no request ID is set.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}
