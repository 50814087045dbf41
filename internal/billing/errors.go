package billing

import (
	"errors"
	"fmt"
)

// MinChargeCents is Stripe's minimum charge amount for USD ($0.50).
const MinChargeCents = 50

var (
	// ErrAmountTooSmall is returned when an amount is below the provider minimum.
	ErrAmountTooSmall = errors.New("billing: amount too small (minimum $0.50 USD)")

	// ErrNoLineItems is returned when a checkout session has nothing to charge for.
	ErrNoLineItems = errors.New("billing: checkout session requires at least one line item")

	// ErrSessionNotFound is returned when a checkout session does not exist.
	ErrSessionNotFound = errors.New("billing: checkout session not found")

	// ErrPaymentLinkNotFound is returned when a payment link does not exist.
	ErrPaymentLinkNotFound = errors.New("billing: payment link not found")

	// ErrInvalidWebhookSignature is returned when webhook signature verification fails.
	ErrInvalidWebhookSignature = errors.New("billing: invalid webhook signature")
)

// StripeError carries the decline and retry signals from a failed Stripe
// call. The service layer reads them to decide what the caller sees.
type StripeError struct {
	Message       string // human-readable description from Stripe
	Code          string // Stripe error code, e.g. "card_declined"
	DeclineCode   string // issuer's reason, set when a card was declined
	HTTPStatus    int    // status of the underlying API response
	RequestID     string // Stripe request ID, for support tickets
	OriginalError error  // the SDK error this was built from
}

func (e *StripeError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("stripe: %s (code: %s)", e.Message, e.Code)
	}
	return fmt.Sprintf("stripe: %s", e.Message)
}

func (e *StripeError) Unwrap() error {
	return e.OriginalError
}

// IsDeclined reports whether the card was declined.
func (e *StripeError) IsDeclined() bool {
	return e.Code == "card_declined" || e.DeclineCode != ""
}

// IsTemporary reports whether retrying the same call may succeed.
func (e *StripeError) IsTemporary() bool {
	return e.Code == "rate_limit" || e.Code == "api_connection_error"
}

// AsStripeError unwraps err to a *StripeError if one is in the chain.
func AsStripeError(err error) (*StripeError, bool) {
	var sErr *StripeError
	if errors.As(err, &sErr) {
		return sErr, true
	}
	return nil, false
}
