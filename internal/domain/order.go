package domain

import (
	"github.com/localplate/localplate/internal/repository"
)

// =============================================================================
// ORDER DOMAIN TYPES
// =============================================================================

// OrderStatus represents the lifecycle status of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// Payment statuses recorded on payment rows as Stripe events arrive.
const (
	PaymentStatusPending           = "pending"
	PaymentStatusSucceeded         = "succeeded"
	PaymentStatusFailed            = "failed"
	PaymentStatusRefunded          = "refunded"
	PaymentStatusPartiallyRefunded = "partially_refunded"
)

// CanTransitionOrderStatus reports whether an order may move from one
// status to another. Payment webhooks drive pending to paid; the chef
// drives paid onward; refunds may interrupt any post-payment status.
func CanTransitionOrderStatus(from, to OrderStatus) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusPaid || to == OrderStatusCancelled
	case OrderStatusPaid:
		return to == OrderStatusPreparing || to == OrderStatusCancelled || to == OrderStatusRefunded
	case OrderStatusPreparing:
		return to == OrderStatusReady || to == OrderStatusCancelled || to == OrderStatusRefunded
	case OrderStatusReady:
		return to == OrderStatusDelivered || to == OrderStatusRefunded
	case OrderStatusDelivered:
		return to == OrderStatusRefunded
	}
	return false
}

// OrderDetail aggregates an order with its items and payment record.
type OrderDetail struct {
	Order   repository.Order
	Items   []repository.OrderItem
	Payment *repository.Payment
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

// Order-specific errors.
var (
	ErrOrderNotFound           = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrOrderEmpty              = &Error{Code: EINVALID, Message: "Order has no items"}
	ErrOrderStatusChange       = &Error{Code: ECONFLICT, Message: "Order status transition not allowed"}
	ErrOutsideDeliveryArea     = &Error{Code: EINVALID, Message: "Delivery address is outside the chef's service area"}
	ErrPaymentNotSucceeded     = &Error{Code: EPAYMENT, Message: "Payment has not succeeded"}
	ErrPaymentAlreadyProcessed = &Error{Code: ECONFLICT, Message: "Payment already processed for this order"}
	ErrRefundNotAllowed        = &Error{Code: ECONFLICT, Message: "Order is not in a refundable state"}
)
