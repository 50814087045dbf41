package billing

import (
	"errors"
	"strings"
)

// Client defaults applied when the corresponding StripeConfig field is zero.
const (
	defaultMaxNetworkRetries = 3
	defaultTimeoutSeconds    = 30
)

// StripeConfig carries the credentials and client settings for the Stripe
// provider. The marketplace runs single-currency Checkout in payment mode,
// so this stays small: keys, webhook verification, and tax handling.
type StripeConfig struct {
	// APIKey is the secret key (sk_test_... in development, sk_live_...
	// in production).
	APIKey string

	// WebhookSecret verifies event signatures on the webhook endpoint
	// (whsec_...).
	WebhookSecret string

	// EnableStripeTax hands tax calculation to Stripe Tax at checkout.
	// When false the application's own tax rate is baked into line items.
	EnableStripeTax bool

	// MaxRetries caps automatic retries on transient Stripe API failures.
	MaxRetries int

	// TimeoutSeconds bounds each Stripe API call.
	TimeoutSeconds int
}

// Validate reports missing credentials before any Stripe call is attempted.
func (c *StripeConfig) Validate() error {
	if c.APIKey == "" {
		return errors.New("stripe: missing API key")
	}
	if c.WebhookSecret == "" {
		return errors.New("stripe: missing webhook signing secret")
	}
	return nil
}

// IsTestMode reports whether the configured key is a test mode key.
// Integration tests refuse to run against anything else.
func (c *StripeConfig) IsTestMode() bool {
	return strings.HasPrefix(c.APIKey, "sk_test_")
}

// withDefaults fills in client settings left at their zero value.
func (c StripeConfig) withDefaults() StripeConfig {
	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxNetworkRetries
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	return c
}
