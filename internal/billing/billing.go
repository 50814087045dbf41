package billing

import (
	"context"
	"time"
)

// Provider defines the interface for payment processing.
// Implementations can use Stripe, Square, etc.
type Provider interface {
	// CreateCheckoutSession creates a hosted checkout session for an order.
	// Returns the session with a URL to redirect the customer to.
	CreateCheckoutSession(ctx context.Context, params CreateCheckoutSessionParams) (*CheckoutSession, error)

	// GetCheckoutSession retrieves an existing checkout session.
	// Used to verify payment state before trusting a success redirect.
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// ExpireCheckoutSession expires an open checkout session.
	// Called when a customer cancels an order that still has an open session.
	ExpireCheckoutSession(ctx context.Context, sessionID string) error

	// CreatePaymentLink creates a reusable payment link for a custom amount.
	// Used by chefs to invoice off-platform arrangements (catering, custom orders).
	CreatePaymentLink(ctx context.Context, params CreatePaymentLinkParams) (*PaymentLink, error)

	// DeactivatePaymentLink turns off a payment link so it can no longer be paid.
	DeactivatePaymentLink(ctx context.Context, paymentLinkID string) error

	// RefundPayment refunds a completed payment, fully or partially.
	RefundPayment(ctx context.Context, params RefundParams) (*Refund, error)

	// VerifyWebhookSignature verifies that a webhook request is authentic.
	// Required to process async payment confirmations safely.
	VerifyWebhookSignature(payload []byte, signature string, secret string) error
}

// CheckoutLineItem is one purchasable line in a checkout session.
type CheckoutLineItem struct {
	// Name shown to the customer on the hosted checkout page
	Name string

	// Description is optional detail under the name
	Description string

	// UnitAmountCents is the per-unit price in smallest currency unit
	UnitAmountCents int64

	// Quantity of this line item (defaults to 1)
	Quantity int64
}

// CreateCheckoutSessionParams contains parameters for creating a checkout session.
type CreateCheckoutSessionParams struct {
	// OrderID links the session back to our order.
	// Stored in session and payment intent metadata so webhooks can reconcile.
	OrderID string

	// CustomerEmail prefills the email field on the hosted page
	CustomerEmail string

	// Currency code (ISO 4217 lowercase) - e.g., "usd". Defaults to "usd".
	Currency string

	// LineItems to charge for. At least one is required.
	LineItems []CheckoutLineItem

	// SuccessURL is where the customer lands after paying
	SuccessURL string

	// CancelURL is where the customer lands after abandoning checkout
	CancelURL string

	// ExpiresAfter bounds how long the session stays payable.
	// Zero uses the provider default. Stripe's minimum is 30 minutes.
	ExpiresAfter time.Duration

	// Metadata for filtering and reporting (order_id is added automatically)
	Metadata map[string]string

	// IdempotencyKey prevents duplicate sessions for the same checkout attempt
	IdempotencyKey string
}

// CheckoutSession represents a hosted checkout session.
type CheckoutSession struct {
	// ID is the provider session ID (cs_...)
	ID string

	// URL is the hosted checkout page to redirect the customer to
	URL string

	// PaymentIntentID is set once the session has an associated payment (pi_...)
	PaymentIntentID string

	// AmountTotalCents is the total the customer pays, in smallest currency unit
	AmountTotalCents int64

	// Currency code
	Currency string

	// Status: open, complete, expired
	Status string

	// PaymentStatus: paid, unpaid, no_payment_required
	PaymentStatus string

	// CustomerEmail as entered or prefilled
	CustomerEmail string

	// Metadata passed during creation
	Metadata map[string]string

	// ExpiresAt is when the session stops being payable
	ExpiresAt time.Time

	// CreatedAt is when the session was created
	CreatedAt time.Time
}

// CreatePaymentLinkParams contains parameters for creating a payment link.
type CreatePaymentLinkParams struct {
	// Description shown to the payer (e.g., "Private dinner - March 14")
	Description string

	// AmountCents is the amount in smallest currency unit
	AmountCents int64

	// Currency code (ISO 4217 lowercase). Defaults to "usd".
	Currency string

	// Metadata for filtering and reporting (include chef_id)
	Metadata map[string]string

	// IdempotencyKey prevents duplicate links for the same request
	IdempotencyKey string
}

// PaymentLink represents a reusable hosted payment page.
type PaymentLink struct {
	// ID is the provider payment link ID (plink_...)
	ID string

	// URL is the shareable payment page
	URL string

	// PriceID is the provider price backing the link (price_...)
	PriceID string

	// Active is false once the link has been deactivated
	Active bool

	// CreatedAt is when the link was created
	CreatedAt time.Time
}

// RefundParams contains parameters for creating a refund.
type RefundParams struct {
	// PaymentIntentID is the payment to refund (pi_...)
	PaymentIntentID string

	// AmountCents refunds a partial amount. If 0, refunds the full amount.
	AmountCents int64

	// Reason: "duplicate", "fraudulent", "requested_by_customer"
	Reason string

	// Metadata for filtering and reporting (include order_id)
	Metadata map[string]string

	// IdempotencyKey prevents duplicate refunds for the same request
	IdempotencyKey string
}

// Refund represents a payment refund.
type Refund struct {
	// ID is the provider refund ID (re_...)
	ID string

	// PaymentIntentID is the refunded payment
	PaymentIntentID string

	// AmountCents refunded, in smallest currency unit
	AmountCents int64

	// Status: succeeded, pending, failed, canceled
	Status string

	// CreatedAt is when the refund was created
	CreatedAt time.Time
}
