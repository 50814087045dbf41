package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/handler"
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/repository"
	"github.com/localplate/localplate/internal/service"
	"github.com/localplate/localplate/internal/telemetry"
)

// OrderHandler serves customer orders, the chef's incoming order queue,
// and payment links.
type OrderHandler struct {
	orders service.OrderService
	chefs  service.ChefService
	logger *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, chefs service.ChefService, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{orders: orders, chefs: chefs, logger: logger}
}

type createOrderRequest struct {
	ChefID      uuid.UUID          `json:"chef_id"`
	Items       []orderItemRequest `json:"items"`
	Fulfillment string             `json:"fulfillment"`
	Notes       string             `json:"notes"`
}

type orderItemRequest struct {
	OfferingID uuid.UUID `json:"offering_id"`
	Quantity   int32     `json:"quantity"`
}

// Create handles POST /api/orders - prices and records a pending order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	var req createOrderRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{OfferingID: item.OfferingID, Quantity: item.Quantity})
	}

	detail, err := h.orders.Create(ctx, user.ID, service.CreateOrderParams{
		ChefID:      req.ChefID,
		Items:       items,
		Fulfillment: req.Fulfillment,
		Notes:       req.Notes,
	})
	if err != nil {
		if domain.IsValidationError(err) {
			handler.ValidationErrorResponse(w, r, err)
			return
		}
		logger.Warn("order creation failed", "user_id", user.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.OrdersCreated.WithLabelValues(detail.Order.Fulfillment).Inc()
		telemetry.Business.OrderValue.Observe(float64(detail.Order.TotalCents))
		telemetry.Business.OrderItemCount.Observe(float64(len(detail.Items)))
	}
	logger.Info("order created", "order_id", detail.Order.ID, "order_number", detail.Order.OrderNumber)
	handler.JSON(w, http.StatusCreated, detail)
}

// List handles GET /api/orders - the caller's orders, newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	limit, offset := pagination(r)
	orders, err := h.orders.ListForCustomer(ctx, user.ID, limit, offset)
	if err != nil {
		logger.Error("failed to list orders", "user_id", user.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// Get handles GET /api/orders/{id} - one order with items and payment.
// Only the customer, the chef on the order, and admins may see it.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	orderID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	detail, err := h.orders.GetDetail(ctx, orderID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if !h.mayViewOrder(ctx, user, detail) {
		handler.ErrorResponse(w, r, domain.ErrOrderNotFound)
		return
	}

	handler.JSON(w, http.StatusOK, detail)
}

// Checkout handles POST /api/orders/{id}/checkout - creates a hosted
// payment session and returns its URL.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	orderID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	session, err := h.orders.Checkout(ctx, user.ID, orderID)
	if err != nil {
		logger.Warn("checkout failed", "order_id", orderID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.CheckoutStarted.Inc()
	}
	logger.Info("checkout session created", "order_id", orderID)
	handler.JSON(w, http.StatusOK, map[string]string{
		"checkout_url": session.URL,
		"session_id":   session.ID,
	})
}

// Cancel handles POST /api/orders/{id}/cancel - cancels an unpaid or
// not-yet-prepared order.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	orderID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	order, err := h.orders.Cancel(ctx, user.ID, orderID)
	if err != nil {
		logger.Warn("order cancellation failed", "order_id", orderID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	logger.Info("order cancelled", "order_id", orderID)
	handler.JSON(w, http.StatusOK, order)
}

// ListForChef handles GET /api/chef/orders - incoming orders for the
// calling chef.
func (h *OrderHandler) ListForChef(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chefID, ok := h.requireChefID(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	orders, err := h.orders.ListForChef(ctx, chefID, limit, offset)
	if err != nil {
		logger.Error("failed to list chef orders", "chef_id", chefID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]any{"orders": orders})
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles POST /api/chef/orders/{id}/status - moves an
// order through preparing, ready, and delivered.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chefID, ok := h.requireChefID(w, r)
	if !ok {
		return
	}

	orderID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req updateOrderStatusRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	order, err := h.orders.UpdateStatus(ctx, chefID, orderID, domain.OrderStatus(req.Status))
	if err != nil {
		logger.Warn("order status change failed", "order_id", orderID, "status", req.Status, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	logger.Info("order status changed", "order_id", orderID, "status", order.Status)
	handler.JSON(w, http.StatusOK, order)
}

type refundRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Reason      string `json:"reason"`
}

// Refund handles POST /api/chef/orders/{id}/refund - refunds a paid
// order, fully when amount_cents is zero or partially otherwise.
func (h *OrderHandler) Refund(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chefID, ok := h.requireChefID(w, r)
	if !ok {
		return
	}

	orderID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	// The refund call itself has no owner check, so make sure the order
	// belongs to this chef first.
	detail, err := h.orders.GetDetail(ctx, orderID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if repository.ToUUID(detail.Order.ChefID) != chefID {
		handler.ErrorResponse(w, r, domain.ErrOrderNotFound)
		return
	}

	var req refundRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	payment, err := h.orders.Refund(ctx, orderID, req.AmountCents, req.Reason)
	if err != nil {
		logger.Warn("refund failed", "order_id", orderID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	logger.Info("refund issued", "order_id", orderID, "amount_cents", req.AmountCents)
	handler.JSON(w, http.StatusOK, payment)
}

type createPaymentLinkRequest struct {
	Description string     `json:"description"`
	AmountCents int64      `json:"amount_cents"`
	OfferingID  *uuid.UUID `json:"offering_id"`
}

// CreatePaymentLink handles POST /api/chef/payment-links - creates a
// reusable payment link for off-platform arrangements.
func (h *OrderHandler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chefID, ok := h.requireChefID(w, r)
	if !ok {
		return
	}

	var req createPaymentLinkRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	link, err := h.orders.CreatePaymentLink(ctx, chefID, service.PaymentLinkParams{
		Description: req.Description,
		AmountCents: req.AmountCents,
		OfferingID:  req.OfferingID,
	})
	if err != nil {
		if domain.IsValidationError(err) {
			handler.ValidationErrorResponse(w, r, err)
			return
		}
		logger.Warn("payment link creation failed", "chef_id", chefID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	logger.Info("payment link created", "chef_id", chefID, "link_id", link.ID)
	handler.JSON(w, http.StatusCreated, link)
}

// ListPaymentLinks handles GET /api/chef/payment-links - the calling
// chef's payment links, newest first.
func (h *OrderHandler) ListPaymentLinks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chefID, ok := h.requireChefID(w, r)
	if !ok {
		return
	}

	links, err := h.orders.ListPaymentLinks(ctx, chefID)
	if err != nil {
		logger.Error("failed to list payment links", "chef_id", chefID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]any{"payment_links": links})
}

// DeactivatePaymentLink handles DELETE /api/chef/payment-links/{id} -
// turns off a payment link so it can no longer be paid.
func (h *OrderHandler) DeactivatePaymentLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chefID, ok := h.requireChefID(w, r)
	if !ok {
		return
	}

	linkID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.orders.DeactivatePaymentLink(ctx, chefID, linkID); err != nil {
		logger.Warn("payment link deactivation failed", "link_id", linkID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.NoContent(w)
}

// mayViewOrder reports whether the user is a party to the order.
func (h *OrderHandler) mayViewOrder(ctx context.Context, user *domain.User, detail *domain.OrderDetail) bool {
	if user.IsAdmin() {
		return true
	}
	if repository.ToUUID(detail.Order.CustomerID) == user.ID {
		return true
	}
	if !user.IsChef() {
		return false
	}
	chef, err := h.chefs.GetByUserID(ctx, user.ID)
	if err != nil {
		return false
	}
	return detail.Order.ChefID == chef.ID
}

// requireChefID resolves the chef ID owned by the calling user.
func (h *OrderHandler) requireChefID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return uuid.Nil, false
	}

	chef, err := h.chefs.GetByUserID(r.Context(), user.ID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return uuid.Nil, false
	}

	return repository.ToUUID(chef.ID), true
}
