package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createOrder = `-- name: CreateOrder :one
INSERT INTO orders (order_number, customer_id, chef_id, subtotal_cents, delivery_fee_cents, tax_cents, total_cents, currency, fulfillment, notes, stripe_session_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, order_number, customer_id, chef_id, status, subtotal_cents, delivery_fee_cents, tax_cents, total_cents, currency, fulfillment, notes, stripe_session_id, placed_at, created_at, updated_at
`

type CreateOrderParams struct {
	OrderNumber      string
	CustomerID       pgtype.UUID
	ChefID           pgtype.UUID
	SubtotalCents    int32
	DeliveryFeeCents int32
	TaxCents         int32
	TotalCents       int32
	Currency         string
	Fulfillment      string
	Notes            pgtype.Text
	StripeSessionID  pgtype.Text
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.OrderNumber,
		arg.CustomerID,
		arg.ChefID,
		arg.SubtotalCents,
		arg.DeliveryFeeCents,
		arg.TaxCents,
		arg.TotalCents,
		arg.Currency,
		arg.Fulfillment,
		arg.Notes,
		arg.StripeSessionID,
	)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.OrderNumber,
		&i.CustomerID,
		&i.ChefID,
		&i.Status,
		&i.SubtotalCents,
		&i.DeliveryFeeCents,
		&i.TaxCents,
		&i.TotalCents,
		&i.Currency,
		&i.Fulfillment,
		&i.Notes,
		&i.StripeSessionID,
		&i.PlacedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getOrderByID = `-- name: GetOrderByID :one
SELECT id, order_number, customer_id, chef_id, status, subtotal_cents, delivery_fee_cents, tax_cents, total_cents, currency, fulfillment, notes, stripe_session_id, placed_at, created_at, updated_at
FROM orders
WHERE id = $1
`

func (q *Queries) GetOrderByID(ctx context.Context, id pgtype.UUID) (Order, error) {
	row := q.db.QueryRow(ctx, getOrderByID, id)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.OrderNumber,
		&i.CustomerID,
		&i.ChefID,
		&i.Status,
		&i.SubtotalCents,
		&i.DeliveryFeeCents,
		&i.TaxCents,
		&i.TotalCents,
		&i.Currency,
		&i.Fulfillment,
		&i.Notes,
		&i.StripeSessionID,
		&i.PlacedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getOrderByIDForUpdate = `-- name: GetOrderByIDForUpdate :one
SELECT id, order_number, customer_id, chef_id, status, subtotal_cents, delivery_fee_cents, tax_cents, total_cents, currency, fulfillment, notes, stripe_session_id, placed_at, created_at, updated_at
FROM orders
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetOrderByIDForUpdate(ctx context.Context, id pgtype.UUID) (Order, error) {
	row := q.db.QueryRow(ctx, getOrderByIDForUpdate, id)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.OrderNumber,
		&i.CustomerID,
		&i.ChefID,
		&i.Status,
		&i.SubtotalCents,
		&i.DeliveryFeeCents,
		&i.TaxCents,
		&i.TotalCents,
		&i.Currency,
		&i.Fulfillment,
		&i.Notes,
		&i.StripeSessionID,
		&i.PlacedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getOrderByStripeSessionID = `-- name: GetOrderByStripeSessionID :one
SELECT id, order_number, customer_id, chef_id, status, subtotal_cents, delivery_fee_cents, tax_cents, total_cents, currency, fulfillment, notes, stripe_session_id, placed_at, created_at, updated_at
FROM orders
WHERE stripe_session_id = $1
`

func (q *Queries) GetOrderByStripeSessionID(ctx context.Context, stripeSessionID pgtype.Text) (Order, error) {
	row := q.db.QueryRow(ctx, getOrderByStripeSessionID, stripeSessionID)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.OrderNumber,
		&i.CustomerID,
		&i.ChefID,
		&i.Status,
		&i.SubtotalCents,
		&i.DeliveryFeeCents,
		&i.TaxCents,
		&i.TotalCents,
		&i.Currency,
		&i.Fulfillment,
		&i.Notes,
		&i.StripeSessionID,
		&i.PlacedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const setOrderStripeSession = `-- name: SetOrderStripeSession :one
UPDATE orders
SET stripe_session_id = $2,
    updated_at = now()
WHERE id = $1
RETURNING id, order_number, customer_id, chef_id, status, subtotal_cents, delivery_fee_cents, tax_cents, total_cents, currency, fulfillment, notes, stripe_session_id, placed_at, created_at, updated_at
`

type SetOrderStripeSessionParams struct {
	ID              pgtype.UUID
	StripeSessionID pgtype.Text
}

func (q *Queries) SetOrderStripeSession(ctx context.Context, arg SetOrderStripeSessionParams) (Order, error) {
	row := q.db.QueryRow(ctx, setOrderStripeSession, arg.ID, arg.StripeSessionID)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.OrderNumber,
		&i.CustomerID,
		&i.ChefID,
		&i.Status,
		&i.SubtotalCents,
		&i.DeliveryFeeCents,
		&i.TaxCents,
		&i.TotalCents,
		&i.Currency,
		&i.Fulfillment,
		&i.Notes,
		&i.StripeSessionID,
		&i.PlacedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateOrderStatus = `-- name: UpdateOrderStatus :one
UPDATE orders
SET status = $2,
    updated_at = now()
WHERE id = $1
RETURNING id, order_number, customer_id, chef_id, status, subtotal_cents, delivery_fee_cents, tax_cents, total_cents, currency, fulfillment, notes, stripe_session_id, placed_at, created_at, updated_at
`

type UpdateOrderStatusParams struct {
	ID     pgtype.UUID
	Status string
}

func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	row := q.db.QueryRow(ctx, updateOrderStatus, arg.ID, arg.Status)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.OrderNumber,
		&i.CustomerID,
		&i.ChefID,
		&i.Status,
		&i.SubtotalCents,
		&i.DeliveryFeeCents,
		&i.TaxCents,
		&i.TotalCents,
		&i.Currency,
		&i.Fulfillment,
		&i.Notes,
		&i.StripeSessionID,
		&i.PlacedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const markOrderPaid = `-- name: MarkOrderPaid :one
UPDATE orders
SET status = 'paid',
    placed_at = now(),
    updated_at = now()
WHERE id = $1
RETURNING id, order_number, customer_id, chef_id, status, subtotal_cents, delivery_fee_cents, tax_cents, total_cents, currency, fulfillment, notes, stripe_session_id, placed_at, created_at, updated_at
`

func (q *Queries) MarkOrderPaid(ctx context.Context, id pgtype.UUID) (Order, error) {
	row := q.db.QueryRow(ctx, markOrderPaid, id)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.OrderNumber,
		&i.CustomerID,
		&i.ChefID,
		&i.Status,
		&i.SubtotalCents,
		&i.DeliveryFeeCents,
		&i.TaxCents,
		&i.TotalCents,
		&i.Currency,
		&i.Fulfillment,
		&i.Notes,
		&i.StripeSessionID,
		&i.PlacedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listOrdersByCustomer = `-- name: ListOrdersByCustomer :many
SELECT id, order_number, customer_id, chef_id, status, subtotal_cents, delivery_fee_cents, tax_cents, total_cents, currency, fulfillment, notes, stripe_session_id, placed_at, created_at, updated_at
FROM orders
WHERE customer_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

type ListOrdersByCustomerParams struct {
	CustomerID pgtype.UUID
	Limit      int32
	Offset     int32
}

func (q *Queries) ListOrdersByCustomer(ctx context.Context, arg ListOrdersByCustomerParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrdersByCustomer, arg.CustomerID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Order
	for rows.Next() {
		var i Order
		if err := rows.Scan(
			&i.ID,
			&i.OrderNumber,
			&i.CustomerID,
			&i.ChefID,
			&i.Status,
			&i.SubtotalCents,
			&i.DeliveryFeeCents,
			&i.TaxCents,
			&i.TotalCents,
			&i.Currency,
			&i.Fulfillment,
			&i.Notes,
			&i.StripeSessionID,
			&i.PlacedAt,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listOrdersByChef = `-- name: ListOrdersByChef :many
SELECT id, order_number, customer_id, chef_id, status, subtotal_cents, delivery_fee_cents, tax_cents, total_cents, currency, fulfillment, notes, stripe_session_id, placed_at, created_at, updated_at
FROM orders
WHERE chef_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

type ListOrdersByChefParams struct {
	ChefID pgtype.UUID
	Limit  int32
	Offset int32
}

func (q *Queries) ListOrdersByChef(ctx context.Context, arg ListOrdersByChefParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrdersByChef, arg.ChefID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Order
	for rows.Next() {
		var i Order
		if err := rows.Scan(
			&i.ID,
			&i.OrderNumber,
			&i.CustomerID,
			&i.ChefID,
			&i.Status,
			&i.SubtotalCents,
			&i.DeliveryFeeCents,
			&i.TaxCents,
			&i.TotalCents,
			&i.Currency,
			&i.Fulfillment,
			&i.Notes,
			&i.StripeSessionID,
			&i.PlacedAt,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createOrderItem = `-- name: CreateOrderItem :one
INSERT INTO order_items (order_id, offering_id, title, unit_price_cents, quantity)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, order_id, offering_id, title, unit_price_cents, quantity, created_at
`

type CreateOrderItemParams struct {
	OrderID        pgtype.UUID
	OfferingID     pgtype.UUID
	Title          string
	UnitPriceCents int32
	Quantity       int32
}

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, createOrderItem,
		arg.OrderID,
		arg.OfferingID,
		arg.Title,
		arg.UnitPriceCents,
		arg.Quantity,
	)
	var i OrderItem
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.OfferingID,
		&i.Title,
		&i.UnitPriceCents,
		&i.Quantity,
		&i.CreatedAt,
	)
	return i, err
}

const listOrderItems = `-- name: ListOrderItems :many
SELECT id, order_id, offering_id, title, unit_price_cents, quantity, created_at
FROM order_items
WHERE order_id = $1
ORDER BY created_at
`

func (q *Queries) ListOrderItems(ctx context.Context, orderID pgtype.UUID) ([]OrderItem, error) {
	rows, err := q.db.Query(ctx, listOrderItems, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OrderItem
	for rows.Next() {
		var i OrderItem
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.OfferingID,
			&i.Title,
			&i.UnitPriceCents,
			&i.Quantity,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createPayment = `-- name: CreatePayment :one
INSERT INTO payments (order_id, stripe_payment_intent_id, amount_cents, currency, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, order_id, stripe_payment_intent_id, amount_cents, currency, status, refunded_cents, stripe_refund_id, created_at, updated_at
`

type CreatePaymentParams struct {
	OrderID               pgtype.UUID
	StripePaymentIntentID pgtype.Text
	AmountCents           int32
	Currency              string
	Status                string
}

func (q *Queries) CreatePayment(ctx context.Context, arg CreatePaymentParams) (Payment, error) {
	row := q.db.QueryRow(ctx, createPayment,
		arg.OrderID,
		arg.StripePaymentIntentID,
		arg.AmountCents,
		arg.Currency,
		arg.Status,
	)
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.StripePaymentIntentID,
		&i.AmountCents,
		&i.Currency,
		&i.Status,
		&i.RefundedCents,
		&i.StripeRefundID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getPaymentByOrderID = `-- name: GetPaymentByOrderID :one
SELECT id, order_id, stripe_payment_intent_id, amount_cents, currency, status, refunded_cents, stripe_refund_id, created_at, updated_at
FROM payments
WHERE order_id = $1
ORDER BY created_at DESC
LIMIT 1
`

func (q *Queries) GetPaymentByOrderID(ctx context.Context, orderID pgtype.UUID) (Payment, error) {
	row := q.db.QueryRow(ctx, getPaymentByOrderID, orderID)
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.StripePaymentIntentID,
		&i.AmountCents,
		&i.Currency,
		&i.Status,
		&i.RefundedCents,
		&i.StripeRefundID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getPaymentByIntentID = `-- name: GetPaymentByIntentID :one
SELECT id, order_id, stripe_payment_intent_id, amount_cents, currency, status, refunded_cents, stripe_refund_id, created_at, updated_at
FROM payments
WHERE stripe_payment_intent_id = $1
`

func (q *Queries) GetPaymentByIntentID(ctx context.Context, stripePaymentIntentID pgtype.Text) (Payment, error) {
	row := q.db.QueryRow(ctx, getPaymentByIntentID, stripePaymentIntentID)
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.StripePaymentIntentID,
		&i.AmountCents,
		&i.Currency,
		&i.Status,
		&i.RefundedCents,
		&i.StripeRefundID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updatePaymentStatus = `-- name: UpdatePaymentStatus :one
UPDATE payments
SET status = $2,
    stripe_payment_intent_id = COALESCE($3, stripe_payment_intent_id),
    updated_at = now()
WHERE id = $1
RETURNING id, order_id, stripe_payment_intent_id, amount_cents, currency, status, refunded_cents, stripe_refund_id, created_at, updated_at
`

type UpdatePaymentStatusParams struct {
	ID                    pgtype.UUID
	Status                string
	StripePaymentIntentID pgtype.Text
}

func (q *Queries) UpdatePaymentStatus(ctx context.Context, arg UpdatePaymentStatusParams) (Payment, error) {
	row := q.db.QueryRow(ctx, updatePaymentStatus, arg.ID, arg.Status, arg.StripePaymentIntentID)
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.StripePaymentIntentID,
		&i.AmountCents,
		&i.Currency,
		&i.Status,
		&i.RefundedCents,
		&i.StripeRefundID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const recordPaymentRefund = `-- name: RecordPaymentRefund :one
UPDATE payments
SET refunded_cents = refunded_cents + $2,
    stripe_refund_id = $3,
    status = $4,
    updated_at = now()
WHERE id = $1
RETURNING id, order_id, stripe_payment_intent_id, amount_cents, currency, status, refunded_cents, stripe_refund_id, created_at, updated_at
`

type RecordPaymentRefundParams struct {
	ID             pgtype.UUID
	RefundedCents  int32
	StripeRefundID pgtype.Text
	Status         string
}

func (q *Queries) RecordPaymentRefund(ctx context.Context, arg RecordPaymentRefundParams) (Payment, error) {
	row := q.db.QueryRow(ctx, recordPaymentRefund,
		arg.ID,
		arg.RefundedCents,
		arg.StripeRefundID,
		arg.Status,
	)
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.StripePaymentIntentID,
		&i.AmountCents,
		&i.Currency,
		&i.Status,
		&i.RefundedCents,
		&i.StripeRefundID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createPaymentLink = `-- name: CreatePaymentLink :one
INSERT INTO payment_links (chef_id, offering_id, stripe_payment_link_id, stripe_price_id, url)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, chef_id, offering_id, stripe_payment_link_id, stripe_price_id, url, active, created_at
`

type CreatePaymentLinkParams struct {
	ChefID              pgtype.UUID
	OfferingID          pgtype.UUID
	StripePaymentLinkID string
	StripePriceID       string
	Url                 string
}

func (q *Queries) CreatePaymentLink(ctx context.Context, arg CreatePaymentLinkParams) (PaymentLink, error) {
	row := q.db.QueryRow(ctx, createPaymentLink,
		arg.ChefID,
		arg.OfferingID,
		arg.StripePaymentLinkID,
		arg.StripePriceID,
		arg.Url,
	)
	var i PaymentLink
	err := row.Scan(
		&i.ID,
		&i.ChefID,
		&i.OfferingID,
		&i.StripePaymentLinkID,
		&i.StripePriceID,
		&i.Url,
		&i.Active,
		&i.CreatedAt,
	)
	return i, err
}

const listPaymentLinksByChef = `-- name: ListPaymentLinksByChef :many
SELECT id, chef_id, offering_id, stripe_payment_link_id, stripe_price_id, url, active, created_at
FROM payment_links
WHERE chef_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListPaymentLinksByChef(ctx context.Context, chefID pgtype.UUID) ([]PaymentLink, error) {
	rows, err := q.db.Query(ctx, listPaymentLinksByChef, chefID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PaymentLink
	for rows.Next() {
		var i PaymentLink
		if err := rows.Scan(
			&i.ID,
			&i.ChefID,
			&i.OfferingID,
			&i.StripePaymentLinkID,
			&i.StripePriceID,
			&i.Url,
			&i.Active,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deactivatePaymentLink = `-- name: DeactivatePaymentLink :exec
UPDATE payment_links
SET active = false
WHERE id = $1
`

func (q *Queries) DeactivatePaymentLink(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, deactivatePaymentLink, id)
	return err
}
