package domain

import (
	"errors"
	"fmt"
	"testing"
)

// genericMessage is what ErrorMessage shows whenever details must stay hidden.
const genericMessage = "An internal error occurred. Please try again later."

func TestErrorString(t *testing.T) {
	cause := errors.New("pq: duplicate key value violates unique constraint")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  &Error{Code: ECONFLICT, Message: "Offering is not published"},
			want: "Offering is not published",
		},
		{
			name: "op prefixes the message",
			err:  &Error{Code: EINVALID, Op: "order.checkout", Message: "Order has no items"},
			want: "order.checkout: Order has no items",
		},
		{
			name: "cause is appended",
			err:  &Error{Code: EINTERNAL, Message: "failed to save order", Err: cause},
			want: "failed to save order: pq: duplicate key value violates unique constraint",
		},
		{
			name: "op and cause together",
			err:  &Error{Code: EINTERNAL, Op: "order.create", Message: "failed to save order", Err: cause},
			want: "order.create: failed to save order: pq: duplicate key value violates unique constraint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("context deadline exceeded")
	err := &Error{Code: EINTERNAL, Op: "payment.capture", Message: "stripe call failed", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}

	bare := &Error{Code: EINVALID, Message: "quantity must be at least 1"}
	if bare.Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause is set")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{"bad input", Invalid("order.create", "quantity must be at least 1"), EINVALID},
		{"rate limited login", Errorf(ERATELIMIT, "auth.login", "too many attempts from %s", "203.0.113.9"), ERATELIMIT},
		{"declined card", Errorf(EPAYMENT, "order.checkout", "card was declined"), EPAYMENT},
		{"offering taken down", Errorf(EGONE, "offering.get", "offering was removed by the chef"), EGONE},
		{"oversized photo", Errorf(ETOOLARGE, "offering.photo", "photo exceeds the upload limit"), ETOOLARGE},
		{"unknown assistant tool", Errorf(ENOTIMPL, "assistant.call", "tool %q is not available", "reserve_table"), ENOTIMPL},
		{
			name: "buried under fmt wrapping",
			err:  fmt.Errorf("handling request: %w", Forbidden("chef.orders", "order belongs to another chef")),
			want: EFORBIDDEN,
		},
		{"plain stdlib error", errors.New("dial tcp 10.0.0.4:5432: connection refused"), EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.want {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.want)
			}
			if tt.err != nil && !IsCode(tt.err, tt.want) {
				t.Errorf("IsCode(err, %q) = false, want true", tt.want)
			}
		})
	}

	if IsCode(Conflict("waitlist.join", "already on the waitlist for this area"), ENOTFOUND) {
		t.Error("IsCode should not match a different code")
	}
}

func TestErrorMessage(t *testing.T) {
	dbErr := errors.New("pgx: connection closed")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{
			name: "domain message passes through",
			err:  Conflict("order.cancel", "Order has already been delivered"),
			want: "Order has already been delivered",
		},
		{
			name: "internal details stay hidden",
			err:  Internal(dbErr, "order.create", "failed to save order"),
			want: genericMessage,
		},
		{
			name: "wrapped internal stays hidden",
			err:  fmt.Errorf("checkout: %w", Internal(dbErr, "payment.capture", "stripe session create failed")),
			want: genericMessage,
		},
		{"unknown error types stay hidden", dbErr, genericMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.want {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorOp(t *testing.T) {
	if got := ErrorOp(Unauthorized("auth.refresh", "refresh token is not valid")); got != "auth.refresh" {
		t.Errorf("ErrorOp() = %q, want %q", got, "auth.refresh")
	}
	if got := ErrorOp(errors.New("no structure here")); got != "" {
		t.Errorf("ErrorOp() = %q, want empty for non-domain errors", got)
	}
	if got := ErrorOp(nil); got != "" {
		t.Errorf("ErrorOp(nil) = %q, want empty", got)
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(EINVALID, "location.validate", "unsupported country: %s", "DE")

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("Errorf should produce a *Error")
	}
	if e.Code != EINVALID {
		t.Errorf("Code = %q, want %q", e.Code, EINVALID)
	}
	if e.Op != "location.validate" {
		t.Errorf("Op = %q, want %q", e.Op, "location.validate")
	}
	if e.Message != "unsupported country: DE" {
		t.Errorf("Message = %q, want the formatted message", e.Message)
	}
}

func TestWrapError(t *testing.T) {
	t.Run("keeps the cause reachable", func(t *testing.T) {
		cause := errors.New("no rows in result set")
		err := WrapError(cause, ENOTFOUND, "chef.get", "chef profile missing")

		if !errors.Is(err, cause) {
			t.Error("errors.Is should reach the wrapped cause")
		}
		if got := ErrorCode(err); got != ENOTFOUND {
			t.Errorf("ErrorCode() = %q, want %q", got, ENOTFOUND)
		}
		if got := ErrorMessage(err); got != "chef profile missing" {
			t.Errorf("ErrorMessage() = %q, want the wrap message", got)
		}
	})

	t.Run("nil in, nil out", func(t *testing.T) {
		if err := WrapError(nil, EINTERNAL, "order.create", "should vanish"); err != nil {
			t.Errorf("WrapError(nil, ...) = %v, want nil", err)
		}
	})
}

func TestValidationErrors(t *testing.T) {
	t.Run("single field names the field", func(t *testing.T) {
		err := NewValidationError("offering.create", "price_cents", "must be greater than zero")

		want := "offering.create: price_cents: must be greater than zero"
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
		if !IsValidationError(err) {
			t.Error("IsValidationError should be true")
		}
	})

	t.Run("multiple fields report a count", func(t *testing.T) {
		err := AddFieldError(nil, "title", "is required")
		err = AddFieldError(err, "pickup_address", "is required")
		err = AddFieldError(err, "price_cents", "must be greater than zero")

		fields := GetValidationFields(err)
		if len(fields) != 3 {
			t.Fatalf("expected 3 field errors, got %d: %v", len(fields), fields)
		}
		if fields["pickup_address"] != "is required" {
			t.Errorf("pickup_address = %q, want %q", fields["pickup_address"], "is required")
		}
		if got := err.Error(); got != "validation failed for 3 fields" {
			t.Errorf("Error() = %q, want the field count", got)
		}
	})

	t.Run("repeated field keeps the latest message", func(t *testing.T) {
		err := AddFieldError(nil, "quantity", "is required")
		err = AddFieldError(err, "quantity", "must be at least 1")

		fields := GetValidationFields(err)
		if len(fields) != 1 {
			t.Fatalf("expected 1 field error, got %d", len(fields))
		}
		if fields["quantity"] != "must be at least 1" {
			t.Errorf("quantity = %q, want the second message", fields["quantity"])
		}
	})

	t.Run("replaces non-validation errors", func(t *testing.T) {
		err := AddFieldError(errors.New("not a validation error"), "email", "is not a valid address")

		fields := GetValidationFields(err)
		if len(fields) != 1 || fields["email"] != "is not a valid address" {
			t.Errorf("expected a fresh validation error with the email field, got %v", fields)
		}
	})

	t.Run("detected through wrapping", func(t *testing.T) {
		err := fmt.Errorf("decoding signup payload: %w",
			NewValidationError("auth.register", "email", "is required"))

		if !IsValidationError(err) {
			t.Error("IsValidationError should see through fmt wrapping")
		}
		if IsValidationError(errors.New("plain")) {
			t.Error("IsValidationError should reject plain errors")
		}
		if GetValidationFields(errors.New("plain")) != nil {
			t.Error("GetValidationFields should return nil for plain errors")
		}
	})
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantOp      string
		wantMessage string
	}{
		{
			name:        "NotFound names the resource and identifier",
			err:         NotFound("offering.get", "offering", "7c9e6679-7425-40de-944b-e07fc1f90ae7"),
			wantCode:    ENOTFOUND,
			wantOp:      "offering.get",
			wantMessage: "offering not found: 7c9e6679-7425-40de-944b-e07fc1f90ae7",
		},
		{
			name:        "Unauthorized",
			err:         Unauthorized("auth.login", "invalid email or password"),
			wantCode:    EUNAUTHORIZED,
			wantOp:      "auth.login",
			wantMessage: "invalid email or password",
		},
		{
			name:        "Forbidden",
			err:         Forbidden("offering.update", "offering belongs to another chef"),
			wantCode:    EFORBIDDEN,
			wantOp:      "offering.update",
			wantMessage: "offering belongs to another chef",
		},
		{
			name:        "Invalid",
			err:         Invalid("waitlist.join", "postal code is required"),
			wantCode:    EINVALID,
			wantOp:      "waitlist.join",
			wantMessage: "postal code is required",
		},
		{
			name:        "Conflict",
			err:         Conflict("chef.register", "user already has a chef profile"),
			wantCode:    ECONFLICT,
			wantOp:      "chef.register",
			wantMessage: "user already has a chef profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e *Error
			if !errors.As(tt.err, &e) {
				t.Fatal("constructor should produce a *Error")
			}
			if e.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", e.Code, tt.wantCode)
			}
			if e.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", e.Op, tt.wantOp)
			}
			if e.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", e.Message, tt.wantMessage)
			}
		})
	}

	t.Run("Internal wraps the cause and hides it", func(t *testing.T) {
		cause := errors.New("write tcp: broken pipe")
		err := Internal(cause, "alert.notify", "n8n webhook call failed")

		if got := ErrorCode(err); got != EINTERNAL {
			t.Errorf("ErrorCode() = %q, want %q", got, EINTERNAL)
		}
		if !errors.Is(err, cause) {
			t.Error("errors.Is should reach the wrapped cause")
		}
		if got := ErrorMessage(err); got != genericMessage {
			t.Errorf("ErrorMessage() = %q, want the generic message", got)
		}
	})
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"unverified chef cannot publish", ErrChefNotVerified, EFORBIDDEN},
		{"duplicate waitlist signup", ErrAlreadyOnWaitlist, ECONFLICT},
		{"malformed postal code", ErrInvalidPostalCode, EINVALID},
		{"sold out offering", ErrOfferingSoldOut, ECONFLICT},
		{"address outside the service area", ErrOutsideDeliveryArea, EINVALID},
		{"checkout before payment succeeded", ErrPaymentNotSucceeded, EPAYMENT},
		{"suspended account", ErrAccountSuspended, EFORBIDDEN},
		{"stale refresh token", ErrTokenExpired, EUNAUTHORIZED},
		{"missing meal plan", ErrMealPlanNotFound, ENOTFOUND},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !IsCode(tt.err, tt.code) {
				t.Errorf("ErrorCode() = %q, want %q", ErrorCode(tt.err), tt.code)
			}
		})
	}

	// Generation failures are internal; the client never sees the model error.
	if got := ErrorMessage(ErrMealPlanGeneration); got != genericMessage {
		t.Errorf("ErrorMessage(ErrMealPlanGeneration) = %q, want the generic message", got)
	}
}
