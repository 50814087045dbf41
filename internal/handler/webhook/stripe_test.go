package webhook_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localplate/localplate/internal/alerts"
	"github.com/localplate/localplate/internal/billing"
	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/handler/webhook"
	"github.com/localplate/localplate/internal/repository"
	"github.com/localplate/localplate/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockOrderService implements the webhook-facing slice of
// service.OrderService. Anything else panics through the embedded nil.
type mockOrderService struct {
	service.OrderService

	processCheckoutFunc      func(ctx context.Context, orderID uuid.UUID, paymentIntentID string, amountCents int64) (*repository.Order, error)
	recordPaymentFailureFunc func(ctx context.Context, orderID uuid.UUID, paymentIntentID string) error
	handleChargeRefundedFunc func(ctx context.Context, paymentIntentID string, refundedCents int64, refundID string) error
}

func (m *mockOrderService) ProcessCheckoutCompleted(ctx context.Context, orderID uuid.UUID, paymentIntentID string, amountCents int64) (*repository.Order, error) {
	if m.processCheckoutFunc == nil {
		panic("unexpected ProcessCheckoutCompleted call")
	}
	return m.processCheckoutFunc(ctx, orderID, paymentIntentID, amountCents)
}

func (m *mockOrderService) RecordPaymentFailure(ctx context.Context, orderID uuid.UUID, paymentIntentID string) error {
	if m.recordPaymentFailureFunc == nil {
		panic("unexpected RecordPaymentFailure call")
	}
	return m.recordPaymentFailureFunc(ctx, orderID, paymentIntentID)
}

func (m *mockOrderService) HandleChargeRefunded(ctx context.Context, paymentIntentID string, refundedCents int64, refundID string) error {
	if m.handleChargeRefundedFunc == nil {
		panic("unexpected HandleChargeRefunded call")
	}
	return m.handleChargeRefundedFunc(ctx, paymentIntentID, refundedCents, refundID)
}

type webhookFixture struct {
	q        *repository.MockQuerier
	provider *billing.MockProvider
	orders   *mockOrderService
	notifier *alerts.MockNotifier
	handler  *webhook.StripeHandler
}

func newWebhookFixture() *webhookFixture {
	f := &webhookFixture{
		q:        repository.NewMockQuerier(),
		provider: billing.NewMockProvider(),
		orders:   &mockOrderService{},
		notifier: alerts.NewMockNotifier(),
	}
	f.q.InsertWebhookEventFunc = func(ctx context.Context, arg repository.InsertWebhookEventParams) (repository.WebhookEvent, error) {
		return repository.WebhookEvent{}, nil
	}
	f.handler = webhook.NewStripeHandler(f.provider, f.orders, f.q, f.notifier, discardLogger())
	return f
}

func (f *webhookFixture) post(t *testing.T, payload []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewReader(payload))
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	rec := httptest.NewRecorder()
	f.handler.HandleWebhook(rec, req)
	return rec
}

// stripeEvent builds the webhook envelope Stripe delivers: the event
// wrapper with the affected object nested under data.object.
func stripeEvent(t *testing.T, id, eventType string, object any) []byte {
	t.Helper()
	raw, err := json.Marshal(object)
	require.NoError(t, err)
	payload, err := json.Marshal(map[string]any{
		"id":   id,
		"type": eventType,
		"data": map[string]any{"object": json.RawMessage(raw)},
	})
	require.NoError(t, err)
	return payload
}

func TestStripeHandler_RejectsBadRequests(t *testing.T) {
	orderID := uuid.New()
	payload := stripeEvent(t, "evt_1", "checkout.session.completed", map[string]any{
		"id":       "cs_test_1",
		"metadata": map[string]string{"order_id": orderID.String()},
	})

	t.Run("missing signature header", func(t *testing.T) {
		f := newWebhookFixture()

		rec := f.post(t, payload, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotContains(t, f.provider.CallLog, "VerifyWebhookSignature")
	})

	t.Run("invalid signature", func(t *testing.T) {
		f := newWebhookFixture()
		f.provider.VerifyWebhookSignatureFunc = func(payload []byte, signature, secret string) error {
			return billing.ErrInvalidWebhookSignature
		}

		rec := f.post(t, payload, "t=1,v1=bogus")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("body that is not an event", func(t *testing.T) {
		f := newWebhookFixture()

		rec := f.post(t, []byte("not json"), "t=1,v1=sig")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStripeHandler_CheckoutSessionCompleted(t *testing.T) {
	orderID := uuid.New()
	payload := stripeEvent(t, "evt_checkout_1", "checkout.session.completed", map[string]any{
		"id":             "cs_test_1",
		"amount_total":   4500,
		"payment_intent": "pi_123",
		"metadata":       map[string]string{"order_id": orderID.String()},
	})

	t.Run("marks the order paid", func(t *testing.T) {
		f := newWebhookFixture()

		var inserted repository.InsertWebhookEventParams
		f.q.InsertWebhookEventFunc = func(ctx context.Context, arg repository.InsertWebhookEventParams) (repository.WebhookEvent, error) {
			inserted = arg
			return repository.WebhookEvent{}, nil
		}
		f.orders.processCheckoutFunc = func(ctx context.Context, gotOrderID uuid.UUID, paymentIntentID string, amountCents int64) (*repository.Order, error) {
			assert.Equal(t, orderID, gotOrderID)
			assert.Equal(t, "pi_123", paymentIntentID)
			assert.Equal(t, int64(4500), amountCents)
			return &repository.Order{OrderNumber: "LP-20260801-0001", TotalCents: 4500}, nil
		}

		rec := f.post(t, payload, "t=1,v1=sig")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"received": true}`, rec.Body.String())
		assert.Equal(t, "stripe", inserted.Provider)
		assert.Equal(t, "evt_checkout_1", inserted.EventID)
		assert.Equal(t, "checkout.session.completed", inserted.EventType)
	})

	t.Run("replayed delivery is acknowledged without processing", func(t *testing.T) {
		f := newWebhookFixture()
		f.q.InsertWebhookEventFunc = func(ctx context.Context, arg repository.InsertWebhookEventParams) (repository.WebhookEvent, error) {
			return repository.WebhookEvent{}, pgx.ErrNoRows
		}
		f.orders.processCheckoutFunc = func(ctx context.Context, orderID uuid.UUID, paymentIntentID string, amountCents int64) (*repository.Order, error) {
			t.Error("order service should not be called for a replayed event")
			return nil, nil
		}

		rec := f.post(t, payload, "t=1,v1=sig")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"received": true}`, rec.Body.String())
	})

	t.Run("session without order metadata is skipped", func(t *testing.T) {
		f := newWebhookFixture()
		other := stripeEvent(t, "evt_checkout_2", "checkout.session.completed", map[string]any{
			"id":       "cs_test_2",
			"metadata": map[string]string{},
		})

		rec := f.post(t, other, "t=1,v1=sig")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("already processed payment is acknowledged", func(t *testing.T) {
		f := newWebhookFixture()
		f.orders.processCheckoutFunc = func(ctx context.Context, orderID uuid.UUID, paymentIntentID string, amountCents int64) (*repository.Order, error) {
			return nil, domain.ErrPaymentAlreadyProcessed
		}

		rec := f.post(t, payload, "t=1,v1=sig")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("processing failure clears the event marker and asks for a retry", func(t *testing.T) {
		f := newWebhookFixture()
		f.orders.processCheckoutFunc = func(ctx context.Context, orderID uuid.UUID, paymentIntentID string, amountCents int64) (*repository.Order, error) {
			return nil, errors.New("database unavailable")
		}
		var deleted repository.DeleteWebhookEventParams
		f.q.DeleteWebhookEventFunc = func(ctx context.Context, arg repository.DeleteWebhookEventParams) error {
			deleted = arg
			return nil
		}

		rec := f.post(t, payload, "t=1,v1=sig")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "stripe", deleted.Provider)
		assert.Equal(t, "evt_checkout_1", deleted.EventID)

		require.Eventually(t, func() bool {
			return len(f.notifier.Errors()) == 1
		}, 2*time.Second, 10*time.Millisecond)
		assert.Contains(t, f.notifier.Errors()[0].Message, "stripe webhook processing failed")
	})
}

func TestStripeHandler_PaymentIntentSucceeded(t *testing.T) {
	orderID := uuid.New()
	payload := stripeEvent(t, "evt_pi_1", "payment_intent.succeeded", map[string]any{
		"id":       "pi_456",
		"amount":   3200,
		"metadata": map[string]string{"order_id": orderID.String()},
	})

	f := newWebhookFixture()
	f.orders.processCheckoutFunc = func(ctx context.Context, gotOrderID uuid.UUID, paymentIntentID string, amountCents int64) (*repository.Order, error) {
		assert.Equal(t, orderID, gotOrderID)
		assert.Equal(t, "pi_456", paymentIntentID)
		assert.Equal(t, int64(3200), amountCents)
		return &repository.Order{OrderNumber: "LP-20260801-0002", TotalCents: 3200}, nil
	}

	rec := f.post(t, payload, "t=1,v1=sig")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStripeHandler_PaymentIntentFailed(t *testing.T) {
	orderID := uuid.New()
	payload := stripeEvent(t, "evt_pi_2", "payment_intent.payment_failed", map[string]any{
		"id":                 "pi_789",
		"metadata":           map[string]string{"order_id": orderID.String()},
		"last_payment_error": map[string]any{"code": "card_declined"},
	})

	f := newWebhookFixture()
	called := false
	f.orders.recordPaymentFailureFunc = func(ctx context.Context, gotOrderID uuid.UUID, paymentIntentID string) error {
		called = true
		assert.Equal(t, orderID, gotOrderID)
		assert.Equal(t, "pi_789", paymentIntentID)
		return nil
	}

	rec := f.post(t, payload, "t=1,v1=sig")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestStripeHandler_ChargeRefunded(t *testing.T) {
	t.Run("reconciles the refund", func(t *testing.T) {
		payload := stripeEvent(t, "evt_ch_1", "charge.refunded", map[string]any{
			"id":              "ch_123",
			"amount_refunded": 4500,
			"payment_intent":  "pi_123",
			"refunds":         map[string]any{"data": []map[string]any{{"id": "re_123"}}},
		})

		f := newWebhookFixture()
		called := false
		f.orders.handleChargeRefundedFunc = func(ctx context.Context, paymentIntentID string, refundedCents int64, refundID string) error {
			called = true
			assert.Equal(t, "pi_123", paymentIntentID)
			assert.Equal(t, int64(4500), refundedCents)
			assert.Equal(t, "re_123", refundID)
			return nil
		}

		rec := f.post(t, payload, "t=1,v1=sig")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
	})

	t.Run("charge without a payment intent is skipped", func(t *testing.T) {
		payload := stripeEvent(t, "evt_ch_2", "charge.refunded", map[string]any{
			"id":              "ch_456",
			"amount_refunded": 100,
		})

		f := newWebhookFixture()

		rec := f.post(t, payload, "t=1,v1=sig")

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestStripeHandler_UnknownEventType(t *testing.T) {
	payload := stripeEvent(t, "evt_misc_1", "customer.created", map[string]any{
		"id": "cus_123",
	})

	f := newWebhookFixture()
	var inserted repository.InsertWebhookEventParams
	f.q.InsertWebhookEventFunc = func(ctx context.Context, arg repository.InsertWebhookEventParams) (repository.WebhookEvent, error) {
		inserted = arg
		return repository.WebhookEvent{}, nil
	}

	rec := f.post(t, payload, "t=1,v1=sig")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received": true}`, rec.Body.String())
	assert.Equal(t, "customer.created", inserted.EventType)
}
