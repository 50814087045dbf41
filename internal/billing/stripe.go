package billing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/paymentlink"
	"github.com/stripe/stripe-go/v82/price"
	"github.com/stripe/stripe-go/v82/refund"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeProvider implements Provider using the Stripe API.
type StripeProvider struct {
	config StripeConfig
}

var _ Provider = (*StripeProvider)(nil)

// NewStripeProvider creates a new Stripe billing provider.
// Configures the global Stripe client with retries and timeouts.
func NewStripeProvider(config StripeConfig) (*StripeProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	config = config.withDefaults()

	stripe.Key = config.APIKey
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		MaxNetworkRetries: stripe.Int64(int64(config.MaxRetries)),
	})
	stripe.SetBackend(stripe.APIBackend, backend)

	return &StripeProvider{config: config}, nil
}

// CreateCheckoutSession creates a Stripe Checkout session in payment mode.
// Prices are created inline from the order's line items, and the order ID
// is recorded on both the session and the payment intent so webhook events
// can be reconciled back to the order.
func (s *StripeProvider) CreateCheckoutSession(ctx context.Context, params CreateCheckoutSessionParams) (*CheckoutSession, error) {
	if len(params.LineItems) == 0 {
		return nil, ErrNoLineItems
	}

	currency := params.Currency
	if currency == "" {
		currency = "usd"
	}

	var totalCents int64
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(params.LineItems))
	for _, item := range params.LineItems {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		totalCents += item.UnitAmountCents * quantity

		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Description != "" {
			productData.Description = stripe.String(item.Description)
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(currency),
				UnitAmount:  stripe.Int64(item.UnitAmountCents),
				ProductData: productData,
			},
			Quantity: stripe.Int64(quantity),
		})
	}

	if totalCents < MinChargeCents {
		return nil, ErrAmountTooSmall
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	sessionParams.Context = ctx

	if params.CustomerEmail != "" {
		sessionParams.CustomerEmail = stripe.String(params.CustomerEmail)
	}
	if params.IdempotencyKey != "" {
		sessionParams.IdempotencyKey = stripe.String(params.IdempotencyKey)
	}
	if params.ExpiresAfter > 0 {
		sessionParams.ExpiresAt = stripe.Int64(time.Now().Add(params.ExpiresAfter).Unix())
	}
	if s.config.EnableStripeTax {
		sessionParams.AutomaticTax = &stripe.CheckoutSessionAutomaticTaxParams{
			Enabled: stripe.Bool(true),
		}
	}

	for key, value := range params.Metadata {
		sessionParams.AddMetadata(key, value)
	}
	if params.OrderID != "" {
		sessionParams.ClientReferenceID = stripe.String(params.OrderID)
		sessionParams.AddMetadata("order_id", params.OrderID)
		// Copied onto the payment intent so payment_intent.* webhook events
		// carry the order ID too, not just checkout.session.* events.
		sessionParams.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{"order_id": params.OrderID},
		}
	}

	sess, err := checkoutsession.New(sessionParams)
	if err != nil {
		return nil, wrapStripeError(err)
	}

	return checkoutSessionFromStripe(sess), nil
}

// GetCheckoutSession retrieves a Stripe Checkout session with its payment intent.
func (s *StripeProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	getParams := &stripe.CheckoutSessionParams{}
	getParams.Context = ctx
	getParams.AddExpand("payment_intent")

	sess, err := checkoutsession.Get(sessionID, getParams)
	if err != nil {
		return nil, wrapStripeError(err)
	}

	return checkoutSessionFromStripe(sess), nil
}

// ExpireCheckoutSession expires an open Stripe Checkout session.
func (s *StripeProvider) ExpireCheckoutSession(ctx context.Context, sessionID string) error {
	expireParams := &stripe.CheckoutSessionExpireParams{}
	expireParams.Context = ctx

	if _, err := checkoutsession.Expire(sessionID, expireParams); err != nil {
		return wrapStripeError(err)
	}
	return nil
}

// CreatePaymentLink creates a Stripe Payment Link for a one-off amount.
// A price (with an inline product) is created first because payment links
// can only reference existing prices.
func (s *StripeProvider) CreatePaymentLink(ctx context.Context, params CreatePaymentLinkParams) (*PaymentLink, error) {
	if params.AmountCents < MinChargeCents {
		return nil, ErrAmountTooSmall
	}

	currency := params.Currency
	if currency == "" {
		currency = "usd"
	}

	priceParams := &stripe.PriceParams{
		Currency:   stripe.String(currency),
		UnitAmount: stripe.Int64(params.AmountCents),
		ProductData: &stripe.PriceProductDataParams{
			Name: stripe.String(params.Description),
		},
	}
	priceParams.Context = ctx

	p, err := price.New(priceParams)
	if err != nil {
		return nil, wrapStripeError(err)
	}

	linkParams := &stripe.PaymentLinkParams{
		LineItems: []*stripe.PaymentLinkLineItemParams{
			{
				Price:    stripe.String(p.ID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	linkParams.Context = ctx
	if params.IdempotencyKey != "" {
		linkParams.IdempotencyKey = stripe.String(params.IdempotencyKey)
	}
	for key, value := range params.Metadata {
		linkParams.AddMetadata(key, value)
	}

	link, err := paymentlink.New(linkParams)
	if err != nil {
		return nil, wrapStripeError(err)
	}

	return &PaymentLink{
		ID:        link.ID,
		URL:       link.URL,
		PriceID:   p.ID,
		Active:    link.Active,
		CreatedAt: time.Now(),
	}, nil
}

// DeactivatePaymentLink turns off a Stripe Payment Link.
func (s *StripeProvider) DeactivatePaymentLink(ctx context.Context, paymentLinkID string) error {
	updateParams := &stripe.PaymentLinkParams{
		Active: stripe.Bool(false),
	}
	updateParams.Context = ctx

	if _, err := paymentlink.Update(paymentLinkID, updateParams); err != nil {
		return wrapStripeError(err)
	}
	return nil
}

// RefundPayment creates a Stripe refund against a payment intent.
func (s *StripeProvider) RefundPayment(ctx context.Context, params RefundParams) (*Refund, error) {
	refundParams := &stripe.RefundParams{
		PaymentIntent: stripe.String(params.PaymentIntentID),
	}
	refundParams.Context = ctx

	if params.AmountCents > 0 {
		refundParams.Amount = stripe.Int64(params.AmountCents)
	}
	if params.Reason != "" {
		refundParams.Reason = stripe.String(params.Reason)
	}
	if params.IdempotencyKey != "" {
		refundParams.IdempotencyKey = stripe.String(params.IdempotencyKey)
	}
	for key, value := range params.Metadata {
		refundParams.AddMetadata(key, value)
	}

	re, err := refund.New(refundParams)
	if err != nil {
		return nil, wrapStripeError(err)
	}

	result := &Refund{
		ID:          re.ID,
		AmountCents: re.Amount,
		Status:      string(re.Status),
		CreatedAt:   time.Unix(re.Created, 0),
	}
	if re.PaymentIntent != nil {
		result.PaymentIntentID = re.PaymentIntent.ID
	}
	return result, nil
}

// VerifyWebhookSignature verifies a Stripe webhook signature.
// Passing an empty secret falls back to the configured webhook secret.
func (s *StripeProvider) VerifyWebhookSignature(payload []byte, signature string, secret string) error {
	if secret == "" {
		secret = s.config.WebhookSecret
	}

	_, err := webhook.ConstructEventWithOptions(payload, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhookSignature, err)
	}
	return nil
}

// checkoutSessionFromStripe converts the Stripe session object to our type.
func checkoutSessionFromStripe(sess *stripe.CheckoutSession) *CheckoutSession {
	cs := &CheckoutSession{
		ID:               sess.ID,
		URL:              sess.URL,
		AmountTotalCents: sess.AmountTotal,
		Currency:         string(sess.Currency),
		Status:           string(sess.Status),
		PaymentStatus:    string(sess.PaymentStatus),
		CustomerEmail:    sess.CustomerEmail,
		Metadata:         sess.Metadata,
		CreatedAt:        time.Unix(sess.Created, 0),
	}
	if sess.ExpiresAt > 0 {
		cs.ExpiresAt = time.Unix(sess.ExpiresAt, 0)
	}
	if sess.PaymentIntent != nil {
		cs.PaymentIntentID = sess.PaymentIntent.ID
	}
	return cs
}

// wrapStripeError converts Stripe SDK errors into StripeError for callers
// that need decline and retry signals. Non-Stripe errors pass through.
func wrapStripeError(err error) error {
	if err == nil {
		return nil
	}

	var sErr *stripe.Error
	if errors.As(err, &sErr) {
		return &StripeError{
			Message:       sErr.Msg,
			Code:          string(sErr.Code),
			DeclineCode:   string(sErr.DeclineCode),
			HTTPStatus:    sErr.HTTPStatusCode,
			RequestID:     sErr.RequestID,
			OriginalError: err,
		}
	}
	return err
}
