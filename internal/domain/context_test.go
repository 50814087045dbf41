package domain

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestUserContext(t *testing.T) {
	t.Run("UserFromContext returns nil when no user", func(t *testing.T) {
		ctx := context.Background()
		user := UserFromContext(ctx)
		if user != nil {
			t.Errorf("expected nil user, got %+v", user)
		}
	})

	t.Run("UserFromContext returns user when set", func(t *testing.T) {
		ctx := context.Background()
		expected := &User{
			ID:    uuid.New(),
			Email: "test@example.com",
			Role:  RoleCustomer,
		}
		ctx = NewContextWithUser(ctx, expected)

		user := UserFromContext(ctx)
		if user == nil {
			t.Fatal("expected user, got nil")
		}
		if user.ID != expected.ID {
			t.Errorf("expected ID %v, got %v", expected.ID, user.ID)
		}
		if user.Email != expected.Email {
			t.Errorf("expected Email %q, got %q", expected.Email, user.Email)
		}
	})

	t.Run("UserIDFromContext returns uuid.Nil when no user", func(t *testing.T) {
		ctx := context.Background()
		id := UserIDFromContext(ctx)
		if id != uuid.Nil {
			t.Errorf("expected uuid.Nil, got %v", id)
		}
	})

	t.Run("UserIDFromContext returns ID when user set", func(t *testing.T) {
		ctx := context.Background()
		expected := &User{ID: uuid.New()}
		ctx = NewContextWithUser(ctx, expected)

		id := UserIDFromContext(ctx)
		if id != expected.ID {
			t.Errorf("expected %v, got %v", expected.ID, id)
		}
	})

	t.Run("RequireUserID panics when no user", func(t *testing.T) {
		ctx := context.Background()
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic, got none")
			}
		}()
		RequireUserID(ctx)
	})

	t.Run("RequireUserID returns ID when user set", func(t *testing.T) {
		ctx := context.Background()
		expected := &User{ID: uuid.New()}
		ctx = NewContextWithUser(ctx, expected)

		id := RequireUserID(ctx)
		if id != expected.ID {
			t.Errorf("expected %v, got %v", expected.ID, id)
		}
	})

	t.Run("IsAuthenticated returns false when no user", func(t *testing.T) {
		ctx := context.Background()
		if IsAuthenticated(ctx) {
			t.Error("expected IsAuthenticated to return false")
		}
	})

	t.Run("IsAuthenticated returns true when user set", func(t *testing.T) {
		ctx := context.Background()
		ctx = NewContextWithUser(ctx, &User{ID: uuid.New()})
		if !IsAuthenticated(ctx) {
			t.Error("expected IsAuthenticated to return true")
		}
	})
}

func TestUserRoleHelpers(t *testing.T) {
	t.Run("IsChef returns true for chef role", func(t *testing.T) {
		u := &User{ID: uuid.New(), Role: RoleChef}
		if !u.IsChef() {
			t.Error("expected IsChef to return true")
		}
	})

	t.Run("IsChef returns false for customer role", func(t *testing.T) {
		u := &User{ID: uuid.New(), Role: RoleCustomer}
		if u.IsChef() {
			t.Error("expected IsChef to return false for customer")
		}
	})

	t.Run("IsAdmin returns true for admin role", func(t *testing.T) {
		u := &User{ID: uuid.New(), Role: RoleAdmin}
		if !u.IsAdmin() {
			t.Error("expected IsAdmin to return true")
		}
	})

	t.Run("role helpers are nil-safe", func(t *testing.T) {
		var u *User
		if u.IsChef() || u.IsAdmin() {
			t.Error("expected nil user role helpers to return false")
		}
	})
}

func TestRequestIDContext(t *testing.T) {
	t.Run("RequestIDFromContext returns empty string when no request ID", func(t *testing.T) {
		ctx := context.Background()
		requestID := RequestIDFromContext(ctx)
		if requestID != "" {
			t.Errorf("expected empty string, got %q", requestID)
		}
	})

	t.Run("RequestIDFromContext returns request ID when set", func(t *testing.T) {
		ctx := context.Background()
		expected := "req-12345"
		ctx = NewContextWithRequestID(ctx, expected)

		requestID := RequestIDFromContext(ctx)
		if requestID != expected {
			t.Errorf("expected %q, got %q", expected, requestID)
		}
	})
}

func TestMultipleContextValues(t *testing.T) {
	t.Run("multiple values can coexist in context", func(t *testing.T) {
		ctx := context.Background()

		user := &User{ID: uuid.New(), Email: "user@test.com", Role: RoleChef}
		requestID := "req-abc123"

		ctx = NewContextWithUser(ctx, user)
		ctx = NewContextWithRequestID(ctx, requestID)

		// All values should be retrievable
		if got := UserFromContext(ctx); got == nil || got.ID != user.ID {
			t.Error("user not found or wrong ID")
		}
		if got := RequestIDFromContext(ctx); got != requestID {
			t.Errorf("expected request ID %q, got %q", requestID, got)
		}
	})
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to paid", OrderStatusPending, OrderStatusPaid, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending to delivered", OrderStatusPending, OrderStatusDelivered, false},
		{"paid to preparing", OrderStatusPaid, OrderStatusPreparing, true},
		{"paid to refunded", OrderStatusPaid, OrderStatusRefunded, true},
		{"preparing to ready", OrderStatusPreparing, OrderStatusReady, true},
		{"preparing skips to delivered", OrderStatusPreparing, OrderStatusDelivered, false},
		{"ready to delivered", OrderStatusReady, OrderStatusDelivered, true},
		{"ready cannot be cancelled", OrderStatusReady, OrderStatusCancelled, false},
		{"delivered to refunded", OrderStatusDelivered, OrderStatusRefunded, true},
		{"delivered to paid", OrderStatusDelivered, OrderStatusPaid, false},
		{"refunded is terminal", OrderStatusRefunded, OrderStatusPaid, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransitionOrderStatus(tt.from, tt.to); got != tt.allowed {
				t.Errorf("CanTransitionOrderStatus(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestChefStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    ChefStatus
		to      ChefStatus
		allowed bool
	}{
		{"pending to verified", ChefStatusPending, ChefStatusVerified, true},
		{"pending to rejected", ChefStatusPending, ChefStatusRejected, true},
		{"pending to suspended", ChefStatusPending, ChefStatusSuspended, false},
		{"verified to suspended", ChefStatusVerified, ChefStatusSuspended, true},
		{"suspended to verified", ChefStatusSuspended, ChefStatusVerified, true},
		{"rejected to pending", ChefStatusRejected, ChefStatusPending, true},
		{"verified to rejected", ChefStatusVerified, ChefStatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransitionChefStatus(tt.from, tt.to); got != tt.allowed {
				t.Errorf("CanTransitionChefStatus(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}
