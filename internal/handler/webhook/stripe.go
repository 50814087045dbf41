// Package webhook receives asynchronous payment events from Stripe.
// Routes here are registered without authentication middleware; the
// signature check is the authentication.
package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stripe/stripe-go/v82"

	"github.com/localplate/localplate/internal/alerts"
	"github.com/localplate/localplate/internal/billing"
	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/handler"
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/repository"
	"github.com/localplate/localplate/internal/service"
	"github.com/localplate/localplate/internal/telemetry"
)

// maxPayloadBytes caps the webhook body. Stripe events are a few KB;
// anything near this size is not a real event.
const maxPayloadBytes = 1 << 20

const providerStripe = "stripe"

// StripeHandler handles Stripe webhook events.
type StripeHandler struct {
	provider billing.Provider
	orders   service.OrderService
	repo     repository.Querier
	notifier alerts.Notifier
	logger   *slog.Logger
}

// NewStripeHandler creates a new Stripe webhook handler.
func NewStripeHandler(
	provider billing.Provider,
	orders service.OrderService,
	repo repository.Querier,
	notifier alerts.Notifier,
	logger *slog.Logger,
) *StripeHandler {
	if notifier == nil {
		notifier = alerts.NoopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StripeHandler{
		provider: provider,
		orders:   orders,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// HandleWebhook handles POST /webhooks/stripe. The flow is: verify the
// signature, record the event ID so replays are skipped, dispatch on the
// event type, and acknowledge. A processing failure removes the recorded
// event ID and returns 500 so Stripe redelivers.
func (h *StripeHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, maxPayloadBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("failed to read webhook payload", "error", err)
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "webhook.stripe", "Error reading request body"))
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		logger.Warn("webhook rejected: missing signature header")
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "webhook.stripe", "Missing signature"))
		return
	}

	if err := h.provider.VerifyWebhookSignature(payload, signature, ""); err != nil {
		logger.Warn("webhook rejected: signature verification failed", "error", err)
		handler.ErrorResponse(w, r, domain.Errorf(domain.EUNAUTHORIZED, "webhook.stripe", "Invalid signature"))
		return
	}

	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		logger.Error("failed to parse webhook event", "error", err)
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "webhook.stripe", "Invalid JSON"))
		return
	}

	eventType := string(event.Type)
	logger.Info("stripe event received", "event_id", event.ID, "event_type", eventType)
	if telemetry.Business != nil {
		telemetry.Business.WebhookReceived.WithLabelValues(providerStripe, eventType).Inc()
		defer func() {
			telemetry.Business.WebhookLatency.WithLabelValues(providerStripe, eventType).Observe(time.Since(start).Seconds())
		}()
	}

	// Record the event before touching anything. A conflict means this
	// delivery already ran to completion.
	_, err = h.repo.InsertWebhookEvent(ctx, repository.InsertWebhookEventParams{
		Provider:  providerStripe,
		EventID:   event.ID,
		EventType: eventType,
		Payload:   payload,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info("stripe event already processed, skipping", "event_id", event.ID)
			acknowledge(w)
			return
		}
		logger.Error("failed to record webhook event", "event_id", event.ID, "error", err)
		handler.InternalErrorResponse(w, r, err)
		return
	}

	if err := h.processEvent(r, &event); err != nil {
		logger.Error("stripe event processing failed", "event_id", event.ID, "event_type", eventType, "error", err)
		if telemetry.Business != nil {
			telemetry.Business.WebhookFailed.WithLabelValues(providerStripe, eventType).Inc()
		}
		alerts.NotifyError(h.notifier, alerts.ErrorEvent{
			Message:   "stripe webhook processing failed: " + err.Error(),
			RequestID: domain.RequestIDFromContext(ctx),
			Path:      r.URL.Path,
		})

		// Clear the processed marker so the redelivery is not skipped.
		if delErr := h.repo.DeleteWebhookEvent(ctx, repository.DeleteWebhookEventParams{
			Provider: providerStripe,
			EventID:  event.ID,
		}); delErr != nil {
			logger.Error("failed to clear webhook event marker", "event_id", event.ID, "error", delErr)
		}
		handler.InternalErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.WebhookProcessed.WithLabelValues(providerStripe, eventType).Inc()
	}
	acknowledge(w)
}

// processEvent dispatches one verified, not-yet-seen event. Event types
// outside the handled set acknowledge without action so new Stripe
// features do not cause retry storms.
func (h *StripeHandler) processEvent(r *http.Request, event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		return h.handleCheckoutSessionCompleted(r, event)
	case "payment_intent.succeeded":
		return h.handlePaymentIntentSucceeded(r, event)
	case "payment_intent.payment_failed":
		return h.handlePaymentIntentFailed(r, event)
	case "charge.refunded":
		return h.handleChargeRefunded(r, event)
	default:
		middleware.GetLogger(r.Context(), h.logger).Debug("unhandled stripe event type", "event_type", event.Type)
		return nil
	}
}

// handleCheckoutSessionCompleted marks the order paid when the hosted
// checkout finishes.
func (h *StripeHandler) handleCheckoutSessionCompleted(r *http.Request, event *stripe.Event) error {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return domain.WrapError(err, domain.EINVALID, "webhook.checkout_completed", "cannot parse checkout session")
	}

	orderID, err := orderIDFromMetadata(session.Metadata)
	if err != nil {
		// Not our session. Payment links and CLI triggers land here.
		logger.Info("checkout session without order metadata, skipping", "session_id", session.ID)
		return nil
	}

	paymentIntentID := ""
	if session.PaymentIntent != nil {
		paymentIntentID = session.PaymentIntent.ID
	}

	order, err := h.orders.ProcessCheckoutCompleted(ctx, orderID, paymentIntentID, session.AmountTotal)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentAlreadyProcessed) {
			logger.Info("payment already processed", "order_id", orderID)
			return nil
		}
		return err
	}

	if telemetry.Business != nil {
		telemetry.Business.PaymentSucceeded.Inc()
		telemetry.Business.RevenueCollected.Add(float64(order.TotalCents))
	}
	logger.Info("order paid", "order_id", orderID, "order_number", order.OrderNumber, "amount_cents", session.AmountTotal)
	return nil
}

// handlePaymentIntentSucceeded confirms payment for orders whose
// checkout.session.completed was missed or delivered out of order.
func (h *StripeHandler) handlePaymentIntentSucceeded(r *http.Request, event *stripe.Event) error {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return domain.WrapError(err, domain.EINVALID, "webhook.payment_succeeded", "cannot parse payment intent")
	}

	orderID, err := orderIDFromMetadata(intent.Metadata)
	if err != nil {
		logger.Info("payment intent without order metadata, skipping", "payment_intent_id", intent.ID)
		return nil
	}

	order, err := h.orders.ProcessCheckoutCompleted(ctx, orderID, intent.ID, intent.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentAlreadyProcessed) {
			logger.Info("payment already processed", "order_id", orderID)
			return nil
		}
		return err
	}

	if telemetry.Business != nil {
		telemetry.Business.PaymentSucceeded.Inc()
		telemetry.Business.RevenueCollected.Add(float64(order.TotalCents))
	}
	logger.Info("order paid", "order_id", orderID, "order_number", order.OrderNumber, "payment_intent_id", intent.ID)
	return nil
}

// handlePaymentIntentFailed records the failed attempt. The order stays
// pending so the customer can try again.
func (h *StripeHandler) handlePaymentIntentFailed(r *http.Request, event *stripe.Event) error {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return domain.WrapError(err, domain.EINVALID, "webhook.payment_failed", "cannot parse payment intent")
	}

	orderID, err := orderIDFromMetadata(intent.Metadata)
	if err != nil {
		logger.Info("payment intent without order metadata, skipping", "payment_intent_id", intent.ID)
		return nil
	}

	failureReason := "unknown"
	if intent.LastPaymentError != nil {
		failureReason = string(intent.LastPaymentError.Code)
	}

	if err := h.orders.RecordPaymentFailure(ctx, orderID, intent.ID); err != nil {
		return err
	}

	if telemetry.Business != nil {
		telemetry.Business.PaymentFailed.WithLabelValues(failureReason).Inc()
	}
	logger.Info("payment failed", "order_id", orderID, "payment_intent_id", intent.ID, "reason", failureReason)
	return nil
}

// handleChargeRefunded reconciles refund totals. Covers refunds issued
// from the Stripe dashboard as well as ones issued through the API.
func (h *StripeHandler) handleChargeRefunded(r *http.Request, event *stripe.Event) error {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	var charge stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		return domain.WrapError(err, domain.EINVALID, "webhook.charge_refunded", "cannot parse charge")
	}

	if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
		logger.Info("refunded charge without payment intent, skipping", "charge_id", charge.ID)
		return nil
	}

	refundID := ""
	if charge.Refunds != nil && len(charge.Refunds.Data) > 0 {
		refundID = charge.Refunds.Data[0].ID
	}

	if err := h.orders.HandleChargeRefunded(ctx, charge.PaymentIntent.ID, charge.AmountRefunded, refundID); err != nil {
		return err
	}

	if telemetry.Business != nil {
		telemetry.Business.RefundsIssued.Inc()
	}
	logger.Info("refund reconciled", "charge_id", charge.ID, "payment_intent_id", charge.PaymentIntent.ID, "refunded_cents", charge.AmountRefunded)
	return nil
}

// orderIDFromMetadata pulls the order UUID our checkout flow stamps onto
// sessions and payment intents.
func orderIDFromMetadata(metadata map[string]string) (uuid.UUID, error) {
	raw, ok := metadata["order_id"]
	if !ok || raw == "" {
		return uuid.Nil, errors.New("no order_id in metadata")
	}
	return uuid.Parse(raw)
}

func acknowledge(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"received": true}`))
}
