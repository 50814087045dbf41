package delivery

import "context"

// FlatFeeQuoter charges a single flat fee for delivery orders.
// Used for MVP where chefs deliver within their own travel radius and
// no courier integration is needed.
type FlatFeeQuoter struct {
	feeCents      int32
	freeOverCents int32
}

var _ Quoter = (*FlatFeeQuoter)(nil)

// NewFlatFeeQuoter creates a quoter that charges feeCents per delivery
// order. Orders with a subtotal of at least freeOverCents deliver free;
// a freeOverCents of 0 disables the threshold.
func NewFlatFeeQuoter(feeCents, freeOverCents int32) *FlatFeeQuoter {
	return &FlatFeeQuoter{feeCents: feeCents, freeOverCents: freeOverCents}
}

// Quote returns the flat fee for delivery orders and zero for pickup.
func (q *FlatFeeQuoter) Quote(ctx context.Context, params QuoteParams) (*Quote, error) {
	if q.feeCents < 0 || params.SubtotalCents < 0 {
		return nil, ErrNegativeAmount
	}

	switch params.Fulfillment {
	case FulfillmentPickup:
		return &Quote{FeeCents: 0, Description: "Pickup"}, nil
	case FulfillmentDelivery:
		if q.freeOverCents > 0 && params.SubtotalCents >= q.freeOverCents {
			return &Quote{FeeCents: 0, Description: "Free delivery"}, nil
		}
		return &Quote{FeeCents: q.feeCents, Description: "Delivery fee"}, nil
	default:
		return nil, ErrUnknownFulfillment
	}
}
