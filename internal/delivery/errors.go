package delivery

import "errors"

var (
	// ErrUnknownFulfillment is returned when the fulfillment value is
	// neither pickup nor delivery.
	ErrUnknownFulfillment = errors.New("delivery: unknown fulfillment")

	// ErrNegativeAmount is returned when the subtotal or configured fee
	// is negative.
	ErrNegativeAmount = errors.New("delivery: amounts must not be negative")
)
