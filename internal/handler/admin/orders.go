package admin

import (
	"log/slog"
	"net/http"

	"github.com/localplate/localplate/internal/handler"
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/service"
)

// OrderAdminHandler serves order interventions that bypass chef
// ownership, for support cases.
type OrderAdminHandler struct {
	orders service.OrderService
	logger *slog.Logger
}

// NewOrderAdminHandler creates a new order admin handler.
func NewOrderAdminHandler(orders service.OrderService, logger *slog.Logger) *OrderAdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderAdminHandler{orders: orders, logger: logger}
}

type refundRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Reason      string `json:"reason"`
}

// Refund handles POST /api/admin/orders/{id}/refund - refunds any paid
// order regardless of which chef it belongs to.
func (h *OrderAdminHandler) Refund(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	orderID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req refundRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	payment, err := h.orders.Refund(ctx, orderID, req.AmountCents, req.Reason)
	if err != nil {
		logger.Warn("admin refund failed", "order_id", orderID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	logger.Info("admin refund issued", "order_id", orderID, "amount_cents", req.AmountCents)
	handler.JSON(w, http.StatusOK, payment)
}
