package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/localplate/localplate/internal/billing"
	"github.com/localplate/localplate/internal/delivery"
	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/geo"
	"github.com/localplate/localplate/internal/jobs"
	"github.com/localplate/localplate/internal/repository"
	"github.com/localplate/localplate/internal/tax"
)

// orderNumberAttempts caps retries when a generated order number collides.
const orderNumberAttempts = 3

// checkoutExpiry is how long a Stripe checkout session stays payable.
const checkoutExpiry = 30 * time.Minute

// ErrPaymentLinkNotFound is returned when a payment link does not exist
// or belongs to another chef.
var ErrPaymentLinkNotFound = domain.Errorf(domain.ENOTFOUND, "", "Payment link not found")

// OrderItemInput is one offering line in an order request.
type OrderItemInput struct {
	OfferingID uuid.UUID
	Quantity   int32
}

// CreateOrderParams contains the customer's order request.
type CreateOrderParams struct {
	ChefID      uuid.UUID
	Items       []OrderItemInput
	Fulfillment string
	Notes       string
}

// PaymentLinkParams describes a shareable payment link a chef wants created.
type PaymentLinkParams struct {
	Description string
	AmountCents int64

	// OfferingID optionally ties the link to one of the chef's offerings.
	OfferingID *uuid.UUID
}

// OrderService provides business logic for order operations
type OrderService interface {
	// Create prices and records a pending order for a customer.
	// Delivery orders are rejected when the customer's postal code is
	// outside the chef's service area and travel radius.
	Create(ctx context.Context, customerID uuid.UUID, params CreateOrderParams) (*domain.OrderDetail, error)

	// Checkout creates (or reuses) a Stripe checkout session for a
	// pending order and returns it for client redirect.
	Checkout(ctx context.Context, customerID uuid.UUID, orderID uuid.UUID) (*billing.CheckoutSession, error)

	// ProcessCheckoutCompleted marks an order paid after Stripe reports a
	// completed checkout. Safe to call more than once per order.
	ProcessCheckoutCompleted(ctx context.Context, orderID uuid.UUID, paymentIntentID string, amountCents int64) (*repository.Order, error)

	// RecordPaymentFailure records a failed payment attempt. The order
	// stays pending so the customer can try again.
	RecordPaymentFailure(ctx context.Context, orderID uuid.UUID, paymentIntentID string) error

	// HandleChargeRefunded reconciles refund totals reported by Stripe
	// with the local payment record.
	HandleChargeRefunded(ctx context.Context, paymentIntentID string, refundedCents int64, refundID string) error

	// Refund issues a full or partial refund through Stripe.
	// amountCents of zero refunds whatever remains.
	Refund(ctx context.Context, orderID uuid.UUID, amountCents int64, reason string) (*repository.Payment, error)

	// UpdateStatus moves an order through the chef-driven statuses
	// (preparing, ready, delivered).
	UpdateStatus(ctx context.Context, chefID uuid.UUID, orderID uuid.UUID, to domain.OrderStatus) (*repository.Order, error)

	// Cancel cancels a pending order and releases reserved capacity.
	Cancel(ctx context.Context, customerID uuid.UUID, orderID uuid.UUID) (*repository.Order, error)

	// GetDetail loads an order with its items and payment.
	// Callers are responsible for checking who may view it.
	GetDetail(ctx context.Context, orderID uuid.UUID) (*domain.OrderDetail, error)

	// ListForCustomer returns a customer's orders, newest first.
	ListForCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int32) ([]repository.Order, error)

	// ListForChef returns a chef's orders, newest first.
	ListForChef(ctx context.Context, chefID uuid.UUID, limit, offset int32) ([]repository.Order, error)

	// CreatePaymentLink creates a shareable Stripe payment link for
	// off-platform sales (market stalls, private events).
	CreatePaymentLink(ctx context.Context, chefID uuid.UUID, params PaymentLinkParams) (*repository.PaymentLink, error)

	// ListPaymentLinks returns a chef's payment links, newest first.
	ListPaymentLinks(ctx context.Context, chefID uuid.UUID) ([]repository.PaymentLink, error)

	// DeactivatePaymentLink turns off one of the chef's payment links.
	DeactivatePaymentLink(ctx context.Context, chefID uuid.UUID, linkID uuid.UUID) error
}

type orderService struct {
	repo    repository.Querier
	tx      repository.TxRunner
	billing billing.Provider
	quoter  delivery.Quoter
	taxCalc tax.Calculator
	logger  *slog.Logger
	baseURL string
}

// NewOrderService creates a new OrderService instance
func NewOrderService(repo repository.Querier, tx repository.TxRunner, provider billing.Provider, quoter delivery.Quoter, taxCalc tax.Calculator, logger *slog.Logger, baseURL string) OrderService {
	return &orderService{
		repo:    repo,
		tx:      tx,
		billing: provider,
		quoter:  quoter,
		taxCalc: taxCalc,
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// orderLine carries a validated item through pricing and insertion.
type orderLine struct {
	offering repository.Offering
	quantity int32
}

func (s *orderService) Create(ctx context.Context, customerID uuid.UUID, params CreateOrderParams) (*domain.OrderDetail, error) {
	if len(params.Items) == 0 {
		return nil, domain.ErrOrderEmpty
	}
	for _, item := range params.Items {
		if item.Quantity <= 0 {
			return nil, domain.NewValidationError("order.create", "quantity", "quantity must be positive")
		}
	}
	switch domain.FulfillmentType(params.Fulfillment) {
	case domain.FulfillmentPickup, domain.FulfillmentDelivery:
	default:
		return nil, domain.NewValidationError("order.create", "fulfillment", "fulfillment must be pickup or delivery")
	}

	chef, err := s.repo.GetChefByID(ctx, repository.UUID(params.ChefID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChefNotFound
		}
		return nil, fmt.Errorf("failed to get chef: %w", err)
	}
	if !chef.IsVerified {
		return nil, domain.ErrChefNotVerified
	}

	chefBase, err := s.repo.GetPostalCodeByID(ctx, chef.BasePostalCodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chef postal code: %w", err)
	}

	// Pickup orders are taxed at the chef's kitchen; delivery orders at
	// the customer's address.
	taxPostal := chefBase.Code
	taxCountry := chefBase.Country
	var distanceMiles float64

	if params.Fulfillment == string(domain.FulfillmentDelivery) {
		custCode, dist, err := s.checkDeliveryArea(ctx, customerID, chef, chefBase)
		if err != nil {
			return nil, err
		}
		taxPostal = custCode.Code
		taxCountry = custCode.Country
		distanceMiles = dist
	}

	var (
		lines         []orderLine
		taxItems      []tax.LineItem
		subtotalCents int32
	)
	for _, item := range params.Items {
		offering, err := s.repo.GetOfferingByID(ctx, repository.UUID(item.OfferingID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrOfferingNotFound
			}
			return nil, fmt.Errorf("failed to get offering: %w", err)
		}
		if domain.OfferingStatus(offering.Status) != domain.OfferingStatusPublished {
			return nil, domain.ErrOfferingNotPublished
		}
		if repository.ToUUID(offering.ChefID) != params.ChefID {
			return nil, domain.NewValidationError("order.create", "items", "all items must come from the same chef")
		}
		if params.Fulfillment == string(domain.FulfillmentDelivery) && offering.Fulfillment == string(domain.FulfillmentPickup) {
			return nil, domain.NewValidationError("order.create", "fulfillment", fmt.Sprintf("%q is pickup only", offering.Title))
		}

		lineTotal := offering.PriceCents * item.Quantity
		subtotalCents += lineTotal
		lines = append(lines, orderLine{offering: offering, quantity: item.Quantity})
		taxItems = append(taxItems, tax.LineItem{
			OfferingID:     offering.ID,
			Title:          offering.Title,
			Quantity:       item.Quantity,
			UnitPriceCents: offering.PriceCents,
			TotalCents:     lineTotal,
		})
	}

	quote, err := s.quoter.Quote(ctx, delivery.QuoteParams{
		Fulfillment:   params.Fulfillment,
		SubtotalCents: subtotalCents,
		DistanceMiles: distanceMiles,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to quote delivery fee: %w", err)
	}

	taxResult, err := s.taxCalc.CalculateTax(ctx, tax.TaxParams{
		PostalCode:       taxPostal,
		Country:          taxCountry,
		LineItems:        taxItems,
		DeliveryFeeCents: quote.FeeCents,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to calculate tax: %w", err)
	}

	totalCents := subtotalCents + quote.FeeCents + taxResult.TotalTaxCents

	var (
		order      repository.Order
		orderItems []repository.OrderItem
	)
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := generateOrderNumber(time.Now())
		if err != nil {
			return nil, err
		}

		orderItems = orderItems[:0]
		err = s.tx.ExecTx(ctx, func(q repository.Querier) error {
			created, err := q.CreateOrder(ctx, repository.CreateOrderParams{
				OrderNumber:      number,
				CustomerID:       repository.UUID(customerID),
				ChefID:           chef.ID,
				SubtotalCents:    subtotalCents,
				DeliveryFeeCents: quote.FeeCents,
				TaxCents:         taxResult.TotalTaxCents,
				TotalCents:       totalCents,
				Currency:         "usd",
				Fulfillment:      params.Fulfillment,
				Notes:            repository.Text(params.Notes),
			})
			if err != nil {
				return fmt.Errorf("failed to create order: %w", err)
			}

			for _, line := range lines {
				// Unlimited offerings carry NULL capacity and skip the
				// reservation.
				if line.offering.Capacity.Valid {
					if _, err := q.ReserveOfferingCapacity(ctx, repository.ReserveOfferingCapacityParams{
						ID:       line.offering.ID,
						Quantity: line.quantity,
					}); err != nil {
						if errors.Is(err, pgx.ErrNoRows) {
							return domain.ErrOfferingSoldOut
						}
						return fmt.Errorf("failed to reserve capacity: %w", err)
					}
				}

				item, err := q.CreateOrderItem(ctx, repository.CreateOrderItemParams{
					OrderID:        created.ID,
					OfferingID:     line.offering.ID,
					Title:          line.offering.Title,
					UnitPriceCents: line.offering.PriceCents,
					Quantity:       line.quantity,
				})
				if err != nil {
					return fmt.Errorf("failed to create order item: %w", err)
				}
				orderItems = append(orderItems, item)
			}

			order = created
			return nil
		})
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return nil, err
		}

		return &domain.OrderDetail{Order: order, Items: orderItems}, nil
	}

	return nil, fmt.Errorf("failed to create order: order number collisions after %d attempts", orderNumberAttempts)
}

// checkDeliveryArea verifies the customer's postal code is deliverable and
// returns it along with the straight-line distance from the chef's kitchen.
// A code inside the chef's service area is always deliverable; otherwise it
// must fall within the chef's travel radius.
func (s *orderService) checkDeliveryArea(ctx context.Context, customerID uuid.UUID, chef repository.Chef, chefBase repository.PostalCode) (*repository.PostalCode, float64, error) {
	user, err := s.repo.GetUserByID(ctx, repository.UUID(customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, domain.ErrUserNotFound
		}
		return nil, 0, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.PostalCodeID.Valid {
		return nil, 0, domain.ErrNoLocationOnProfile
	}

	custCode, err := s.repo.GetPostalCodeByID(ctx, user.PostalCodeID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get customer postal code: %w", err)
	}

	var distance float64
	if custCode.Latitude.Valid && custCode.Longitude.Valid && chefBase.Latitude.Valid && chefBase.Longitude.Valid {
		from := geo.Point{Lat: chefBase.Latitude.Float64, Lng: chefBase.Longitude.Float64}
		to := geo.Point{Lat: custCode.Latitude.Float64, Lng: custCode.Longitude.Float64}
		distance = from.HaversineMiles(to)
	}

	covered, err := s.repo.ListChefPostalCodes(ctx, chef.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list chef postal codes: %w", err)
	}
	for _, code := range covered {
		if code.ID == custCode.ID {
			return &custCode, distance, nil
		}
	}

	// Outside the declared service area the travel radius is the
	// fallback. Without coordinates on both ends there is no distance
	// to compare, so the order is refused.
	if chef.MaxTravelMiles.Valid && distance > 0 && distance <= chef.MaxTravelMiles.Float64 {
		return &custCode, distance, nil
	}
	return nil, 0, domain.ErrOutsideDeliveryArea
}

func (s *orderService) Checkout(ctx context.Context, customerID uuid.UUID, orderID uuid.UUID) (*billing.CheckoutSession, error) {
	order, err := s.repo.GetOrderByID(ctx, repository.UUID(orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	// Orders of other customers read as not found.
	if repository.ToUUID(order.CustomerID) != customerID {
		return nil, domain.ErrOrderNotFound
	}
	if domain.OrderStatus(order.Status) != domain.OrderStatusPending {
		return nil, domain.ErrOrderStatusChange
	}

	// Reuse an existing session while it is still payable. A completed
	// session means the webhook just has not landed yet.
	if order.StripeSessionID.Valid {
		session, err := s.billing.GetCheckoutSession(ctx, order.StripeSessionID.String)
		if err != nil {
			s.logger.Warn("failed to load existing checkout session",
				"order_id", orderID,
				"session_id", order.StripeSessionID.String,
				"error", err)
		} else {
			switch session.Status {
			case "open":
				return session, nil
			case "complete":
				return nil, domain.ErrPaymentAlreadyProcessed
			}
		}
	}

	customer, err := s.repo.GetUserByID(ctx, order.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	items, err := s.repo.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}

	lineItems := make([]billing.CheckoutLineItem, 0, len(items)+2)
	for _, item := range items {
		lineItems = append(lineItems, billing.CheckoutLineItem{
			Name:            item.Title,
			UnitAmountCents: int64(item.UnitPriceCents),
			Quantity:        int64(item.Quantity),
		})
	}
	if order.DeliveryFeeCents > 0 {
		lineItems = append(lineItems, billing.CheckoutLineItem{
			Name:            "Delivery fee",
			UnitAmountCents: int64(order.DeliveryFeeCents),
			Quantity:        1,
		})
	}
	if order.TaxCents > 0 {
		lineItems = append(lineItems, billing.CheckoutLineItem{
			Name:            "Sales tax",
			UnitAmountCents: int64(order.TaxCents),
			Quantity:        1,
		})
	}

	// Key on the order so provider-side retries are safe. Re-creating
	// after an expired session folds the old session ID in, otherwise
	// Stripe would hand the expired session straight back.
	idempotencyKey := "checkout-" + orderID.String()
	if order.StripeSessionID.Valid {
		idempotencyKey += "-" + order.StripeSessionID.String
	}

	orderURL := fmt.Sprintf("%s/orders/%s", s.baseURL, orderID)
	session, err := s.billing.CreateCheckoutSession(ctx, billing.CreateCheckoutSessionParams{
		OrderID:        orderID.String(),
		CustomerEmail:  customer.Email,
		Currency:       order.Currency,
		LineItems:      lineItems,
		SuccessURL:     orderURL + "?checkout=success",
		CancelURL:      orderURL + "?checkout=cancelled",
		ExpiresAfter:   checkoutExpiry,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return nil, stripeFailure("order.checkout", err)
	}

	if _, err := s.repo.SetOrderStripeSession(ctx, repository.SetOrderStripeSessionParams{
		ID:              order.ID,
		StripeSessionID: repository.Text(session.ID),
	}); err != nil {
		return nil, fmt.Errorf("failed to save checkout session: %w", err)
	}

	return session, nil
}

func (s *orderService) ProcessCheckoutCompleted(ctx context.Context, orderID uuid.UUID, paymentIntentID string, amountCents int64) (*repository.Order, error) {
	var (
		order        repository.Order
		transitioned bool
	)
	err := s.tx.ExecTx(ctx, func(q repository.Querier) error {
		current, err := q.GetOrderByIDForUpdate(ctx, repository.UUID(orderID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrOrderNotFound
			}
			return fmt.Errorf("failed to get order: %w", err)
		}

		switch domain.OrderStatus(current.Status) {
		case domain.OrderStatusPending:
		case domain.OrderStatusCancelled:
			// Payment landed for an order the customer already
			// cancelled. Surface it so the webhook handler can alert;
			// the money is refunded out of band.
			return domain.ErrOrderStatusChange
		default:
			// Replayed webhook for an order already paid.
			order = current
			return nil
		}

		paid, err := q.MarkOrderPaid(ctx, current.ID)
		if err != nil {
			return fmt.Errorf("failed to mark order paid: %w", err)
		}

		amount := int32(amountCents)
		if amount == 0 {
			amount = current.TotalCents
		}
		if _, err := q.CreatePayment(ctx, repository.CreatePaymentParams{
			OrderID:               current.ID,
			StripePaymentIntentID: repository.Text(paymentIntentID),
			AmountCents:           amount,
			Currency:              current.Currency,
			Status:                domain.PaymentStatusSucceeded,
		}); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		order = paid
		transitioned = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Confirmation emails ride the job queue. Enqueue failures must not
	// fail the webhook, the order is already paid.
	if transitioned {
		if err := s.enqueueOrderEmails(ctx, order); err != nil {
			s.logger.Warn("failed to enqueue order emails",
				"order_id", orderID,
				"error", err)
		}
	}

	return &order, nil
}

// enqueueOrderEmails queues the customer confirmation and the chef's
// new-order notification after an order is paid.
func (s *orderService) enqueueOrderEmails(ctx context.Context, order repository.Order) error {
	items, err := s.repo.ListOrderItems(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("failed to list order items: %w", err)
	}
	customer, err := s.repo.GetUserByID(ctx, order.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to get customer: %w", err)
	}
	chef, err := s.repo.GetChefByID(ctx, order.ChefID)
	if err != nil {
		return fmt.Errorf("failed to get chef: %w", err)
	}
	chefUser, err := s.repo.GetUserByID(ctx, chef.UserID)
	if err != nil {
		return fmt.Errorf("failed to get chef user: %w", err)
	}

	itemData := make([]jobs.OrderItemData, len(items))
	for i, item := range items {
		itemData[i] = jobs.OrderItemData{
			Title:          item.Title,
			Quantity:       int(item.Quantity),
			UnitPriceCents: int64(item.UnitPriceCents),
			TotalCents:     int64(item.UnitPriceCents * item.Quantity),
		}
	}

	orderUUID := repository.ToUUID(order.ID)
	if err := jobs.EnqueueOrderConfirmationEmail(ctx, s.repo, jobs.OrderConfirmationPayload{
		OrderID:          orderUUID,
		Email:            customer.Email,
		CustomerName:     customer.FirstName.String,
		OrderNumber:      order.OrderNumber,
		ChefName:         chef.DisplayName,
		OrderDate:        order.PlacedAt.Time,
		Items:            itemData,
		SubtotalCents:    int64(order.SubtotalCents),
		DeliveryFeeCents: int64(order.DeliveryFeeCents),
		TaxCents:         int64(order.TaxCents),
		TotalCents:       int64(order.TotalCents),
		Fulfillment:      order.Fulfillment,
		OrderURL:         fmt.Sprintf("%s/orders/%s", s.baseURL, orderUUID),
	}); err != nil {
		return err
	}

	return jobs.EnqueueChefNewOrderEmail(ctx, s.repo, jobs.ChefNewOrderPayload{
		OrderID:      orderUUID,
		Email:        chefUser.Email,
		ChefName:     chef.DisplayName,
		OrderNumber:  order.OrderNumber,
		CustomerName: customer.FirstName.String,
		Items:        itemData,
		TotalCents:   int64(order.TotalCents),
		Fulfillment:  order.Fulfillment,
		DashboardURL: s.baseURL + "/chef/dashboard",
	})
}

func (s *orderService) RecordPaymentFailure(ctx context.Context, orderID uuid.UUID, paymentIntentID string) error {
	order, err := s.repo.GetOrderByID(ctx, repository.UUID(orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrOrderNotFound
		}
		return fmt.Errorf("failed to get order: %w", err)
	}

	existing, err := s.repo.GetPaymentByIntentID(ctx, repository.Text(paymentIntentID))
	if err == nil {
		if _, err := s.repo.UpdatePaymentStatus(ctx, repository.UpdatePaymentStatusParams{
			ID:     existing.ID,
			Status: domain.PaymentStatusFailed,
		}); err != nil {
			return fmt.Errorf("failed to update payment status: %w", err)
		}
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to get payment: %w", err)
	}

	if _, err := s.repo.CreatePayment(ctx, repository.CreatePaymentParams{
		OrderID:               order.ID,
		StripePaymentIntentID: repository.Text(paymentIntentID),
		AmountCents:           order.TotalCents,
		Currency:              order.Currency,
		Status:                domain.PaymentStatusFailed,
	}); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (s *orderService) HandleChargeRefunded(ctx context.Context, paymentIntentID string, refundedCents int64, refundID string) error {
	payment, err := s.repo.GetPaymentByIntentID(ctx, repository.Text(paymentIntentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Payment link charges have no order-tracked payment row.
			return nil
		}
		return fmt.Errorf("failed to get payment: %w", err)
	}

	// Stripe reports the cumulative refunded amount on the charge.
	// Refunds issued through our own API are already recorded, so only
	// the delta (if any) needs reconciling.
	delta := int32(refundedCents) - payment.RefundedCents
	if delta <= 0 {
		return nil
	}

	status := domain.PaymentStatusPartiallyRefunded
	full := int32(refundedCents) >= payment.AmountCents
	if full {
		status = domain.PaymentStatusRefunded
	}

	if _, err := s.repo.RecordPaymentRefund(ctx, repository.RecordPaymentRefundParams{
		ID:             payment.ID,
		RefundedCents:  delta,
		StripeRefundID: repository.Text(refundID),
		Status:         status,
	}); err != nil {
		return fmt.Errorf("failed to record refund: %w", err)
	}

	if full {
		if err := s.markOrderRefunded(ctx, payment.OrderID); err != nil {
			return err
		}
	}
	return nil
}

func (s *orderService) Refund(ctx context.Context, orderID uuid.UUID, amountCents int64, reason string) (*repository.Payment, error) {
	payment, err := s.repo.GetPaymentByOrderID(ctx, repository.UUID(orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotSucceeded
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	switch payment.Status {
	case domain.PaymentStatusSucceeded, domain.PaymentStatusPartiallyRefunded:
	default:
		return nil, domain.ErrPaymentNotSucceeded
	}
	if !payment.StripePaymentIntentID.Valid {
		return nil, domain.ErrPaymentNotSucceeded
	}

	remaining := int64(payment.AmountCents - payment.RefundedCents)
	if remaining <= 0 {
		return nil, domain.ErrRefundNotAllowed
	}
	if amountCents == 0 {
		amountCents = remaining
	}
	if amountCents < 0 || amountCents > remaining {
		return nil, domain.NewValidationError("order.refund", "amount_cents", "refund exceeds the amount remaining")
	}

	refund, err := s.billing.RefundPayment(ctx, billing.RefundParams{
		PaymentIntentID: payment.StripePaymentIntentID.String,
		AmountCents:     amountCents,
		Reason:          reason,
		Metadata:        map[string]string{"order_id": orderID.String()},
		// The refunded-so-far total distinguishes successive partial
		// refunds while keeping retries of the same one idempotent.
		IdempotencyKey: fmt.Sprintf("refund-%s-%d", repository.ToUUID(payment.ID), payment.RefundedCents),
	})
	if err != nil {
		return nil, stripeFailure("order.refund", err)
	}

	status := domain.PaymentStatusPartiallyRefunded
	full := int64(payment.RefundedCents)+amountCents >= int64(payment.AmountCents)
	if full {
		status = domain.PaymentStatusRefunded
	}

	updated, err := s.repo.RecordPaymentRefund(ctx, repository.RecordPaymentRefundParams{
		ID:             payment.ID,
		RefundedCents:  int32(amountCents),
		StripeRefundID: repository.Text(refund.ID),
		Status:         status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record refund: %w", err)
	}

	if full {
		if err := s.markOrderRefunded(ctx, payment.OrderID); err != nil {
			return nil, err
		}
	}

	return &updated, nil
}

// markOrderRefunded moves a fully refunded order to refunded when its
// current status allows it.
func (s *orderService) markOrderRefunded(ctx context.Context, orderID pgtype.UUID) error {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}
	if !domain.CanTransitionOrderStatus(domain.OrderStatus(order.Status), domain.OrderStatusRefunded) {
		return nil
	}
	if _, err := s.repo.UpdateOrderStatus(ctx, repository.UpdateOrderStatusParams{
		ID:     order.ID,
		Status: string(domain.OrderStatusRefunded),
	}); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

func (s *orderService) UpdateStatus(ctx context.Context, chefID uuid.UUID, orderID uuid.UUID, to domain.OrderStatus) (*repository.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, repository.UUID(orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	// Orders of other chefs read as not found.
	if repository.ToUUID(order.ChefID) != chefID {
		return nil, domain.ErrOrderNotFound
	}

	// Payments and refunds move orders through the other statuses.
	switch to {
	case domain.OrderStatusPreparing, domain.OrderStatusReady, domain.OrderStatusDelivered:
	default:
		return nil, domain.ErrOrderStatusChange
	}
	if !domain.CanTransitionOrderStatus(domain.OrderStatus(order.Status), to) {
		return nil, domain.ErrOrderStatusChange
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, repository.UpdateOrderStatusParams{
		ID:     order.ID,
		Status: string(to),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return &updated, nil
}

func (s *orderService) Cancel(ctx context.Context, customerID uuid.UUID, orderID uuid.UUID) (*repository.Order, error) {
	var order repository.Order
	err := s.tx.ExecTx(ctx, func(q repository.Querier) error {
		current, err := q.GetOrderByIDForUpdate(ctx, repository.UUID(orderID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrOrderNotFound
			}
			return fmt.Errorf("failed to get order: %w", err)
		}
		if repository.ToUUID(current.CustomerID) != customerID {
			return domain.ErrOrderNotFound
		}
		if domain.OrderStatus(current.Status) != domain.OrderStatusPending {
			return domain.ErrOrderStatusChange
		}

		items, err := q.ListOrderItems(ctx, current.ID)
		if err != nil {
			return fmt.Errorf("failed to list order items: %w", err)
		}
		for _, item := range items {
			if err := q.ReleaseOfferingCapacity(ctx, repository.ReleaseOfferingCapacityParams{
				ID:       item.OfferingID,
				Quantity: item.Quantity,
			}); err != nil {
				return fmt.Errorf("failed to release capacity: %w", err)
			}
		}

		cancelled, err := q.UpdateOrderStatus(ctx, repository.UpdateOrderStatusParams{
			ID:     current.ID,
			Status: string(domain.OrderStatusCancelled),
		})
		if err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		order = cancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best effort. An expired session just stops accepting payment a
	// little later.
	if order.StripeSessionID.Valid {
		if err := s.billing.ExpireCheckoutSession(ctx, order.StripeSessionID.String); err != nil {
			s.logger.Warn("failed to expire checkout session",
				"order_id", orderID,
				"session_id", order.StripeSessionID.String,
				"error", err)
		}
	}

	return &order, nil
}

func (s *orderService) GetDetail(ctx context.Context, orderID uuid.UUID) (*domain.OrderDetail, error) {
	order, err := s.repo.GetOrderByID(ctx, repository.UUID(orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := s.repo.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}

	detail := &domain.OrderDetail{Order: order, Items: items}
	payment, err := s.repo.GetPaymentByOrderID(ctx, order.ID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to get payment: %w", err)
		}
	} else {
		detail.Payment = &payment
	}
	return detail, nil
}

func (s *orderService) ListForCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int32) ([]repository.Order, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	orders, err := s.repo.ListOrdersByCustomer(ctx, repository.ListOrdersByCustomerParams{
		CustomerID: repository.UUID(customerID),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) ListForChef(ctx context.Context, chefID uuid.UUID, limit, offset int32) ([]repository.Order, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	orders, err := s.repo.ListOrdersByChef(ctx, repository.ListOrdersByChefParams{
		ChefID: repository.UUID(chefID),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) CreatePaymentLink(ctx context.Context, chefID uuid.UUID, params PaymentLinkParams) (*repository.PaymentLink, error) {
	chef, err := s.repo.GetChefByID(ctx, repository.UUID(chefID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChefNotFound
		}
		return nil, fmt.Errorf("failed to get chef: %w", err)
	}
	if !chef.IsVerified {
		return nil, domain.ErrChefNotVerified
	}

	description := strings.TrimSpace(params.Description)
	if description == "" {
		return nil, domain.NewValidationError("order.create_payment_link", "description", "description is required")
	}
	if params.AmountCents < billing.MinChargeCents {
		return nil, domain.NewValidationError("order.create_payment_link", "amount_cents", fmt.Sprintf("amount must be at least %d cents", billing.MinChargeCents))
	}

	var offeringID pgtype.UUID
	if params.OfferingID != nil {
		offering, err := s.repo.GetOfferingByID(ctx, repository.UUID(*params.OfferingID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrOfferingNotFound
			}
			return nil, fmt.Errorf("failed to get offering: %w", err)
		}
		if repository.ToUUID(offering.ChefID) != chefID {
			return nil, domain.ErrOfferingNotFound
		}
		offeringID = offering.ID
	}

	link, err := s.billing.CreatePaymentLink(ctx, billing.CreatePaymentLinkParams{
		Description: description,
		AmountCents: params.AmountCents,
		Currency:    "usd",
		Metadata:    map[string]string{"chef_id": chefID.String()},
	})
	if err != nil {
		return nil, stripeFailure("payment_link.create", err)
	}

	row, err := s.repo.CreatePaymentLink(ctx, repository.CreatePaymentLinkParams{
		ChefID:              chef.ID,
		OfferingID:          offeringID,
		StripePaymentLinkID: link.ID,
		StripePriceID:       link.PriceID,
		Url:                 link.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save payment link: %w", err)
	}
	return &row, nil
}

func (s *orderService) ListPaymentLinks(ctx context.Context, chefID uuid.UUID) ([]repository.PaymentLink, error) {
	links, err := s.repo.ListPaymentLinksByChef(ctx, repository.UUID(chefID))
	if err != nil {
		return nil, fmt.Errorf("failed to list payment links: %w", err)
	}
	return links, nil
}

func (s *orderService) DeactivatePaymentLink(ctx context.Context, chefID uuid.UUID, linkID uuid.UUID) error {
	links, err := s.repo.ListPaymentLinksByChef(ctx, repository.UUID(chefID))
	if err != nil {
		return fmt.Errorf("failed to list payment links: %w", err)
	}

	var link *repository.PaymentLink
	for i := range links {
		if repository.ToUUID(links[i].ID) == linkID {
			link = &links[i]
			break
		}
	}
	if link == nil {
		return ErrPaymentLinkNotFound
	}
	if !link.Active {
		return nil
	}

	if err := s.billing.DeactivatePaymentLink(ctx, link.StripePaymentLinkID); err != nil {
		return fmt.Errorf("failed to deactivate payment link: %w", err)
	}
	if err := s.repo.DeactivatePaymentLink(ctx, link.ID); err != nil {
		return fmt.Errorf("failed to save payment link: %w", err)
	}
	return nil
}

// generateOrderNumber builds a human-readable order number like
// LP-20250612-A4C1. The random suffix keeps same-day numbers distinct;
// collisions are retried against the unique constraint.
func generateOrderNumber(now time.Time) (string, error) {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return fmt.Sprintf("LP-%s-%s", now.UTC().Format("20060102"), strings.ToUpper(hex.EncodeToString(b))), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// stripeFailure maps provider failures the caller can act on. Declines
// and amount problems become domain errors; anything else stays internal.
func stripeFailure(op string, err error) error {
	if errors.Is(err, billing.ErrAmountTooSmall) {
		return domain.Errorf(domain.EINVALID, op, "Amount is below the $0.50 card minimum.")
	}
	if sErr, ok := billing.AsStripeError(err); ok {
		switch {
		case sErr.IsDeclined():
			return domain.Errorf(domain.EPAYMENT, op, "The card was declined.")
		case sErr.IsTemporary():
			return domain.WrapError(err, domain.EINTERNAL, op, "payment provider temporarily unavailable")
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
