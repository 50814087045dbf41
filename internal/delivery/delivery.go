package delivery

import "context"

// Fulfillment values accepted by Quote. These match the fulfillment
// column on orders.
const (
	FulfillmentPickup   = "pickup"
	FulfillmentDelivery = "delivery"
)

// Quoter prices the delivery leg of an order.
// Implementations: FlatFeeQuoter
type Quoter interface {
	// Quote returns the delivery fee for an order. Pickup orders are
	// always free.
	Quote(ctx context.Context, params QuoteParams) (*Quote, error)
}

// QuoteParams contains the order details used to price delivery.
type QuoteParams struct {
	Fulfillment   string
	SubtotalCents int32

	// DistanceMiles is the straight-line distance from the chef's base
	// postal code to the drop-off. Informational for flat-fee quoting;
	// distance-based quoters may use it.
	DistanceMiles float64
}

// Quote is a priced delivery option.
type Quote struct {
	FeeCents    int32
	Description string
}
