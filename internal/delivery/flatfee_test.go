package delivery_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/localplate/localplate/internal/delivery"
)

func TestFlatFeeQuoter_PickupIsFree(t *testing.T) {
	quoter := delivery.NewFlatFeeQuoter(599, 0)

	quote, err := quoter.Quote(context.Background(), delivery.QuoteParams{
		Fulfillment:   delivery.FulfillmentPickup,
		SubtotalCents: 2500,
	})

	assert.NoError(t, err)
	assert.Equal(t, int32(0), quote.FeeCents, "Pickup orders never carry a delivery fee")
	assert.Equal(t, "Pickup", quote.Description)
}

func TestFlatFeeQuoter_DeliveryChargesFlatFee(t *testing.T) {
	quoter := delivery.NewFlatFeeQuoter(599, 0)

	quote, err := quoter.Quote(context.Background(), delivery.QuoteParams{
		Fulfillment:   delivery.FulfillmentDelivery,
		SubtotalCents: 2500,
		DistanceMiles: 4.2,
	})

	assert.NoError(t, err)
	assert.Equal(t, int32(599), quote.FeeCents, "Fee is flat regardless of distance or subtotal")
	assert.Equal(t, "Delivery fee", quote.Description)
}

func TestFlatFeeQuoter_FreeDeliveryThreshold(t *testing.T) {
	tests := []struct {
		name          string
		feeCents      int32
		freeOverCents int32
		subtotal      int32
		expectedFee   int32
	}{
		{
			name:          "below threshold charges fee",
			feeCents:      599,
			freeOverCents: 5000,
			subtotal:      4999,
			expectedFee:   599,
		},
		{
			name:          "at threshold is free",
			feeCents:      599,
			freeOverCents: 5000,
			subtotal:      5000,
			expectedFee:   0,
		},
		{
			name:          "above threshold is free",
			feeCents:      599,
			freeOverCents: 5000,
			subtotal:      12000,
			expectedFee:   0,
		},
		{
			name:          "zero threshold disables free delivery",
			feeCents:      599,
			freeOverCents: 0,
			subtotal:      100000,
			expectedFee:   599,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quoter := delivery.NewFlatFeeQuoter(tt.feeCents, tt.freeOverCents)

			quote, err := quoter.Quote(context.Background(), delivery.QuoteParams{
				Fulfillment:   delivery.FulfillmentDelivery,
				SubtotalCents: tt.subtotal,
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedFee, quote.FeeCents)
		})
	}
}

func TestFlatFeeQuoter_RejectsUnknownFulfillment(t *testing.T) {
	quoter := delivery.NewFlatFeeQuoter(599, 0)

	quote, err := quoter.Quote(context.Background(), delivery.QuoteParams{
		Fulfillment:   "shipping",
		SubtotalCents: 2500,
	})

	assert.ErrorIs(t, err, delivery.ErrUnknownFulfillment)
	assert.Nil(t, quote)
}

func TestFlatFeeQuoter_RejectsNegativeAmounts(t *testing.T) {
	t.Run("negative subtotal", func(t *testing.T) {
		quoter := delivery.NewFlatFeeQuoter(599, 0)

		quote, err := quoter.Quote(context.Background(), delivery.QuoteParams{
			Fulfillment:   delivery.FulfillmentDelivery,
			SubtotalCents: -100,
		})

		assert.ErrorIs(t, err, delivery.ErrNegativeAmount)
		assert.Nil(t, quote)
	})

	t.Run("negative configured fee", func(t *testing.T) {
		quoter := delivery.NewFlatFeeQuoter(-100, 0)

		quote, err := quoter.Quote(context.Background(), delivery.QuoteParams{
			Fulfillment:   delivery.FulfillmentDelivery,
			SubtotalCents: 2500,
		})

		assert.ErrorIs(t, err, delivery.ErrNegativeAmount)
		assert.Nil(t, quote)
	})
}

func TestFlatFeeQuoter_ZeroFee(t *testing.T) {
	quoter := delivery.NewFlatFeeQuoter(0, 0)

	quote, err := quoter.Quote(context.Background(), delivery.QuoteParams{
		Fulfillment:   delivery.FulfillmentDelivery,
		SubtotalCents: 2500,
	})

	assert.NoError(t, err)
	assert.Equal(t, int32(0), quote.FeeCents, "A zero configured fee quotes free delivery")
}

func TestMockQuoter_RecordsCallsAndDelegates(t *testing.T) {
	mock := delivery.NewMockQuoter()
	mock.QuoteFunc = func(ctx context.Context, params delivery.QuoteParams) (*delivery.Quote, error) {
		return &delivery.Quote{FeeCents: 1234, Description: "Delivery fee"}, nil
	}

	quote, err := mock.Quote(context.Background(), delivery.QuoteParams{
		Fulfillment:   delivery.FulfillmentDelivery,
		SubtotalCents: 9900,
	})

	assert.NoError(t, err)
	assert.Equal(t, int32(1234), quote.FeeCents)
	assert.Len(t, mock.Calls, 1)
	assert.Equal(t, int32(9900), mock.Calls[0].SubtotalCents)
}
