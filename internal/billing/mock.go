package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MockProvider is a mock billing provider for testing.
// Simulates successful payment flows without calling the Stripe API.
type MockProvider struct {
	// CreateCheckoutSessionFunc allows customizing session creation behavior
	CreateCheckoutSessionFunc func(ctx context.Context, params CreateCheckoutSessionParams) (*CheckoutSession, error)

	// GetCheckoutSessionFunc allows customizing session retrieval behavior
	GetCheckoutSessionFunc func(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// ExpireCheckoutSessionFunc allows customizing session expiry behavior
	ExpireCheckoutSessionFunc func(ctx context.Context, sessionID string) error

	// CreatePaymentLinkFunc allows customizing payment link creation behavior
	CreatePaymentLinkFunc func(ctx context.Context, params CreatePaymentLinkParams) (*PaymentLink, error)

	// DeactivatePaymentLinkFunc allows customizing link deactivation behavior
	DeactivatePaymentLinkFunc func(ctx context.Context, paymentLinkID string) error

	// RefundPaymentFunc allows customizing refund behavior
	RefundPaymentFunc func(ctx context.Context, params RefundParams) (*Refund, error)

	// VerifyWebhookSignatureFunc allows customizing webhook verification behavior
	VerifyWebhookSignatureFunc func(payload []byte, signature string, secret string) error

	// Sessions stores created checkout sessions for retrieval
	Sessions map[string]*CheckoutSession

	// PaymentLinks stores created payment links for retrieval
	PaymentLinks map[string]*PaymentLink

	// Refunds stores created refunds for assertions
	Refunds map[string]*Refund

	// CallLog tracks method calls for test assertions
	CallLog []string
}

var _ Provider = (*MockProvider)(nil)

// NewMockProvider creates a new mock billing provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Sessions:     make(map[string]*CheckoutSession),
		PaymentLinks: make(map[string]*PaymentLink),
		Refunds:      make(map[string]*Refund),
		CallLog:      []string{},
	}
}

// CreateCheckoutSession creates a mock checkout session.
func (m *MockProvider) CreateCheckoutSession(ctx context.Context, params CreateCheckoutSessionParams) (*CheckoutSession, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("CreateCheckoutSession(%s)", params.OrderID))

	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, params)
	}

	if len(params.LineItems) == 0 {
		return nil, ErrNoLineItems
	}

	currency := params.Currency
	if currency == "" {
		currency = "usd"
	}

	var totalCents int64
	for _, item := range params.LineItems {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		totalCents += item.UnitAmountCents * quantity
	}
	if totalCents < MinChargeCents {
		return nil, ErrAmountTooSmall
	}

	metadata := make(map[string]string, len(params.Metadata)+1)
	for k, v := range params.Metadata {
		metadata[k] = v
	}
	if params.OrderID != "" {
		metadata["order_id"] = params.OrderID
	}

	id := "cs_test_" + uuid.New().String()
	session := &CheckoutSession{
		ID:               id,
		URL:              "https://checkout.stripe.com/c/pay/" + id,
		AmountTotalCents: totalCents,
		Currency:         currency,
		Status:           "open",
		PaymentStatus:    "unpaid",
		CustomerEmail:    params.CustomerEmail,
		Metadata:         metadata,
		ExpiresAt:        time.Now().Add(24 * time.Hour),
		CreatedAt:        time.Now(),
	}

	m.Sessions[session.ID] = session
	return session, nil
}

// GetCheckoutSession retrieves a mock checkout session.
func (m *MockProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("GetCheckoutSession(%s)", sessionID))

	if m.GetCheckoutSessionFunc != nil {
		return m.GetCheckoutSessionFunc(ctx, sessionID)
	}

	session, exists := m.Sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// ExpireCheckoutSession expires a mock checkout session.
func (m *MockProvider) ExpireCheckoutSession(ctx context.Context, sessionID string) error {
	m.CallLog = append(m.CallLog, fmt.Sprintf("ExpireCheckoutSession(%s)", sessionID))

	if m.ExpireCheckoutSessionFunc != nil {
		return m.ExpireCheckoutSessionFunc(ctx, sessionID)
	}

	session, exists := m.Sessions[sessionID]
	if !exists {
		return ErrSessionNotFound
	}

	session.Status = "expired"
	return nil
}

// CreatePaymentLink creates a mock payment link.
func (m *MockProvider) CreatePaymentLink(ctx context.Context, params CreatePaymentLinkParams) (*PaymentLink, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("CreatePaymentLink(%d)", params.AmountCents))

	if m.CreatePaymentLinkFunc != nil {
		return m.CreatePaymentLinkFunc(ctx, params)
	}

	if params.AmountCents < MinChargeCents {
		return nil, ErrAmountTooSmall
	}

	link := &PaymentLink{
		ID:        "plink_" + uuid.New().String()[:8],
		URL:       "https://buy.stripe.com/test_" + uuid.New().String()[:8],
		PriceID:   "price_" + uuid.New().String()[:8],
		Active:    true,
		CreatedAt: time.Now(),
	}

	m.PaymentLinks[link.ID] = link
	return link, nil
}

// DeactivatePaymentLink deactivates a mock payment link.
func (m *MockProvider) DeactivatePaymentLink(ctx context.Context, paymentLinkID string) error {
	m.CallLog = append(m.CallLog, fmt.Sprintf("DeactivatePaymentLink(%s)", paymentLinkID))

	if m.DeactivatePaymentLinkFunc != nil {
		return m.DeactivatePaymentLinkFunc(ctx, paymentLinkID)
	}

	link, exists := m.PaymentLinks[paymentLinkID]
	if !exists {
		return ErrPaymentLinkNotFound
	}

	link.Active = false
	return nil
}

// RefundPayment creates a mock refund.
func (m *MockProvider) RefundPayment(ctx context.Context, params RefundParams) (*Refund, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("RefundPayment(%s, %d)", params.PaymentIntentID, params.AmountCents))

	if m.RefundPaymentFunc != nil {
		return m.RefundPaymentFunc(ctx, params)
	}

	re := &Refund{
		ID:              "re_" + uuid.New().String()[:8],
		PaymentIntentID: params.PaymentIntentID,
		AmountCents:     params.AmountCents,
		Status:          "succeeded",
		CreatedAt:       time.Now(),
	}

	m.Refunds[re.ID] = re
	return re, nil
}

// VerifyWebhookSignature verifies a mock webhook signature.
func (m *MockProvider) VerifyWebhookSignature(payload []byte, signature string, secret string) error {
	m.CallLog = append(m.CallLog, "VerifyWebhookSignature")

	if m.VerifyWebhookSignatureFunc != nil {
		return m.VerifyWebhookSignatureFunc(payload, signature, secret)
	}

	// Default mock behavior: always verify successfully
	return nil
}

// SimulateCompletedCheckout marks a session complete and paid.
// Used in tests to simulate the customer finishing the hosted checkout.
func (m *MockProvider) SimulateCompletedCheckout(sessionID, paymentIntentID string) error {
	session, exists := m.Sessions[sessionID]
	if !exists {
		return ErrSessionNotFound
	}

	session.Status = "complete"
	session.PaymentStatus = "paid"
	session.PaymentIntentID = paymentIntentID
	return nil
}

// SimulateExpiredCheckout marks a session expired without payment.
// Used in tests to simulate an abandoned checkout.
func (m *MockProvider) SimulateExpiredCheckout(sessionID string) error {
	session, exists := m.Sessions[sessionID]
	if !exists {
		return ErrSessionNotFound
	}

	session.Status = "expired"
	return nil
}
