//go:build integration
// +build integration

package billing

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadTestConfig loads Stripe test credentials from .env.test
func loadTestConfig(t *testing.T) StripeConfig {
	t.Helper()

	err := godotenv.Load("../../.env.test")
	if err != nil {
		t.Skipf("Skipping integration test: .env.test not found (%v)", err)
	}

	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	webhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")

	if apiKey == "" || apiKey == "sk_test_your_key_here" {
		t.Skip("Skipping integration test: STRIPE_SECRET_KEY not set in .env.test")
	}
	if webhookSecret == "" {
		webhookSecret = "whsec_placeholder"
	}

	config := StripeConfig{
		APIKey:         apiKey,
		WebhookSecret:  webhookSecret,
		MaxRetries:     3,
		TimeoutSeconds: 30,
	}

	if !config.IsTestMode() {
		t.Fatal("DANGER: Live Stripe key detected! Integration tests must use test mode keys (sk_test_...)")
	}

	return config
}

func TestStripeIntegration_CheckoutSessionLifecycle(t *testing.T) {
	config := loadTestConfig(t)
	provider, err := NewStripeProvider(config)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session, err := provider.CreateCheckoutSession(ctx, CreateCheckoutSessionParams{
		OrderID:       "ord_itest",
		CustomerEmail: "integration@example.com",
		Currency:      "usd",
		LineItems: []CheckoutLineItem{
			{Name: "Integration test meal", Description: "Not a real meal", UnitAmountCents: 1500, Quantity: 1},
		},
		SuccessURL:   "https://example.com/success",
		CancelURL:    "https://example.com/cancel",
		ExpiresAfter: time.Hour,
		Metadata:     map[string]string{"test": "true"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.NotEmpty(t, session.URL)
	assert.Equal(t, "open", session.Status)
	assert.Equal(t, int64(1500), session.AmountTotalCents)
	assert.Equal(t, "ord_itest", session.Metadata["order_id"])

	got, err := provider.GetCheckoutSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, "unpaid", got.PaymentStatus)

	require.NoError(t, provider.ExpireCheckoutSession(ctx, session.ID))

	expired, err := provider.GetCheckoutSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "expired", expired.Status)
}

func TestStripeIntegration_PaymentLink(t *testing.T) {
	config := loadTestConfig(t)
	provider, err := NewStripeProvider(config)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	link, err := provider.CreatePaymentLink(ctx, CreatePaymentLinkParams{
		Description: "Integration test invoice",
		AmountCents: 5000,
		Currency:    "usd",
		Metadata:    map[string]string{"test": "true"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, link.ID)
	assert.NotEmpty(t, link.URL)
	assert.True(t, link.Active)

	require.NoError(t, provider.DeactivatePaymentLink(ctx, link.ID))
}

func TestStripeIntegration_InvalidWebhookSignature(t *testing.T) {
	config := loadTestConfig(t)
	provider, err := NewStripeProvider(config)
	require.NoError(t, err)

	err = provider.VerifyWebhookSignature(
		[]byte(`{"type":"checkout.session.completed"}`),
		"t=12345,v1=tampered",
		"",
	)
	assert.ErrorIs(t, err, ErrInvalidWebhookSignature)
}

func TestStripeIntegration_ErrorHandling(t *testing.T) {
	config := loadTestConfig(t)
	provider, err := NewStripeProvider(config)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Refunding a payment intent that doesn't exist should surface a StripeError
	_, err = provider.RefundPayment(ctx, RefundParams{
		PaymentIntentID: "pi_does_not_exist",
	})
	require.Error(t, err)

	var stripeErr *StripeError
	assert.ErrorAs(t, err, &stripeErr)
}
