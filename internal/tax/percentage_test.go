package tax_test

import (
	"context"
	"math"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"

	"github.com/localplate/localplate/internal/tax"
)

// Test_PercentageCalculator_SubtotalPlusDeliveryFee validates the basic case:
// Subtotal $25 (2500 cents) + Delivery $5 (500 cents) * 8% (0.08) = $2.40 (240 cents)
func Test_PercentageCalculator_SubtotalPlusDeliveryFee(t *testing.T) {
	calc := tax.NewPercentageCalculator(0.08, "")

	params := tax.TaxParams{
		LineItems: []tax.LineItem{
			{
				OfferingID:     pgtype.UUID{Valid: true},
				Title:          "Chicken Tikka Masala",
				Quantity:       1,
				UnitPriceCents: 2500,
				TotalCents:     2500,
			},
		},
		DeliveryFeeCents: 500,
	}

	result, err := calc.CalculateTax(context.Background(), params)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, int32(240), result.TotalTaxCents, "(2500 + 500) * 0.08 = 240 cents")
	assert.Len(t, result.Breakdown, 1, "Should have exactly one breakdown entry")
	assert.Equal(t, "state", result.Breakdown[0].Jurisdiction)
	assert.Equal(t, "Sales Tax", result.Breakdown[0].Name, "Empty name should default to Sales Tax")
	assert.Equal(t, 0.08, result.Breakdown[0].Rate)
	assert.Equal(t, int32(240), result.Breakdown[0].AmountCents)
	assert.False(t, result.IsEstimate, "Percentage calculator provides exact amounts")
}

// Test_PercentageCalculator_DifferentTaxRates validates calculation accuracy across various rates
func Test_PercentageCalculator_DifferentTaxRates(t *testing.T) {
	tests := []struct {
		name        string
		rate        float64
		subtotal    int32
		deliveryFee int32
		expectedTax int32
		explanation string
	}{
		{
			name:        "zero percent rate",
			rate:        0.0,
			subtotal:    10000,
			deliveryFee: 500,
			expectedTax: 0,
			explanation: "(10000 + 500) * 0.00 = 0",
		},
		{
			name:        "five percent rate",
			rate:        0.05,
			subtotal:    10000,
			deliveryFee: 0,
			expectedTax: 500,
			explanation: "10000 * 0.05 = 500",
		},
		{
			name:        "eight percent rate",
			rate:        0.08,
			subtotal:    5000,
			deliveryFee: 1000,
			expectedTax: 480,
			explanation: "(5000 + 1000) * 0.08 = 480",
		},
		{
			name:        "eight point five percent rate",
			rate:        0.085,
			subtotal:    10000,
			deliveryFee: 0,
			expectedTax: 850,
			explanation: "10000 * 0.085 = 850",
		},
		{
			name:        "ten percent rate",
			rate:        0.10,
			subtotal:    7500,
			deliveryFee: 500,
			expectedTax: 800,
			explanation: "(7500 + 500) * 0.10 = 800",
		},
		{
			name:        "very small rate",
			rate:        0.001,
			subtotal:    100000,
			deliveryFee: 0,
			expectedTax: 100,
			explanation: "100000 * 0.001 = 100",
		},
		{
			name:        "one hundred percent rate edge case",
			rate:        1.0,
			subtotal:    5000,
			deliveryFee: 0,
			expectedTax: 5000,
			explanation: "5000 * 1.0 = 5000 (edge case: tax equals subtotal)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := tax.NewPercentageCalculator(tt.rate, "Sales Tax")

			params := tax.TaxParams{
				LineItems: []tax.LineItem{
					{TotalCents: tt.subtotal},
				},
				DeliveryFeeCents: tt.deliveryFee,
			}

			result, err := calc.CalculateTax(context.Background(), params)

			assert.NoError(t, err)
			assert.NotNil(t, result)
			assert.Equal(t, tt.expectedTax, result.TotalTaxCents, tt.explanation)
			assert.Equal(t, tt.rate, result.Breakdown[0].Rate)
		})
	}
}

// Test_PercentageCalculator_RoundingBehavior validates math.Round behavior for edge cases
func Test_PercentageCalculator_RoundingBehavior(t *testing.T) {
	tests := []struct {
		name        string
		rate        float64
		subtotal    int32
		deliveryFee int32
		expectedTax int32
		explanation string
	}{
		{
			name:        "exact amount no rounding",
			rate:        0.08,
			subtotal:    1050,
			deliveryFee: 0,
			expectedTax: 84,
			explanation: "1050 * 0.08 = 84.0 exactly",
		},
		{
			name:        "rounds up above midpoint",
			rate:        0.08,
			subtotal:    1062,
			deliveryFee: 0,
			expectedTax: 85,
			explanation: "1062 * 0.08 = 84.96, rounds to 85",
		},
		{
			name:        "rounds down below midpoint",
			rate:        0.08,
			subtotal:    1040,
			deliveryFee: 0,
			expectedTax: 83,
			explanation: "1040 * 0.08 = 83.2, rounds to 83",
		},
		{
			name:        "rounds down just under midpoint",
			rate:        0.08,
			subtotal:    1056,
			deliveryFee: 0,
			expectedTax: 84,
			explanation: "1056 * 0.08 = 84.48, rounds to 84",
		},
		{
			name:        "complex rounding with delivery fee",
			rate:        0.085,
			subtotal:    4723,
			deliveryFee: 387,
			expectedTax: 434,
			explanation: "(4723 + 387) * 0.085 = 434.35, rounds to 434",
		},
		{
			name:        "fractional cents round to nearest",
			rate:        0.065,
			subtotal:    1537,
			deliveryFee: 0,
			expectedTax: 100,
			explanation: "1537 * 0.065 = 99.905, rounds to 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := tax.NewPercentageCalculator(tt.rate, "Sales Tax")

			params := tax.TaxParams{
				LineItems: []tax.LineItem{
					{TotalCents: tt.subtotal},
				},
				DeliveryFeeCents: tt.deliveryFee,
			}

			result, err := calc.CalculateTax(context.Background(), params)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedTax, result.TotalTaxCents, tt.explanation)

			// Verify rounding matches math.Round
			taxableAmount := float64(tt.subtotal + tt.deliveryFee)
			expectedFloat := math.Round(taxableAmount * tt.rate)
			assert.Equal(t, int32(expectedFloat), result.TotalTaxCents, "Should match math.Round behavior")
		})
	}
}

// Test_PercentageCalculator_MultipleLineItems validates tax calculation across a full order
func Test_PercentageCalculator_MultipleLineItems(t *testing.T) {
	calc := tax.NewPercentageCalculator(0.08, "WA State Sales Tax")

	params := tax.TaxParams{
		PostalCode: "98101",
		Country:    "US",
		LineItems: []tax.LineItem{
			{
				OfferingID:     pgtype.UUID{Valid: true},
				Title:          "Pork Tamales (dozen)",
				Quantity:       2,
				UnitPriceCents: 1800,
				TotalCents:     3600,
			},
			{
				OfferingID:     pgtype.UUID{Valid: true},
				Title:          "Green Chile Pozole",
				Quantity:       1,
				UnitPriceCents: 2200,
				TotalCents:     2200,
			},
			{
				OfferingID:     pgtype.UUID{Valid: true},
				Title:          "Tres Leches Cake Slice",
				Quantity:       1,
				UnitPriceCents: 1500,
				TotalCents:     1500,
			},
		},
		DeliveryFeeCents: 750,
	}

	result, err := calc.CalculateTax(context.Background(), params)

	assert.NoError(t, err)
	assert.NotNil(t, result)

	// Subtotal: 3600 + 2200 + 1500 = 7300
	// Taxable: 7300 + 750 = 8050
	// Tax: 8050 * 0.08 = 644
	expectedTax := int32(644)
	assert.Equal(t, expectedTax, result.TotalTaxCents, "(3600 + 2200 + 1500 + 750) * 0.08 = 644")
	assert.Len(t, result.Breakdown, 1)
	assert.Equal(t, "WA State Sales Tax", result.Breakdown[0].Name)
	assert.Equal(t, expectedTax, result.Breakdown[0].AmountCents)
}

// Test_PercentageCalculator_EmptyOrder validates that an order with no items and no fee taxes to zero
func Test_PercentageCalculator_EmptyOrder(t *testing.T) {
	calc := tax.NewPercentageCalculator(0.08, "Sales Tax")

	result, err := calc.CalculateTax(context.Background(), tax.TaxParams{})

	assert.NoError(t, err)
	assert.Equal(t, int32(0), result.TotalTaxCents)
}

// Test_PercentageCalculator_InvalidInputs validates rejection of bad rates and negative amounts
func Test_PercentageCalculator_InvalidInputs(t *testing.T) {
	tests := []struct {
		name        string
		rate        float64
		params      tax.TaxParams
		expectedErr error
	}{
		{
			name:        "negative rate",
			rate:        -0.05,
			params:      tax.TaxParams{LineItems: []tax.LineItem{{TotalCents: 1000}}},
			expectedErr: tax.ErrInvalidRate,
		},
		{
			name:        "rate above one",
			rate:        1.5,
			params:      tax.TaxParams{LineItems: []tax.LineItem{{TotalCents: 1000}}},
			expectedErr: tax.ErrInvalidRate,
		},
		{
			name:        "negative line item total",
			rate:        0.08,
			params:      tax.TaxParams{LineItems: []tax.LineItem{{TotalCents: -500}}},
			expectedErr: tax.ErrNegativeAmount,
		},
		{
			name:        "negative delivery fee",
			rate:        0.08,
			params:      tax.TaxParams{DeliveryFeeCents: -100},
			expectedErr: tax.ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := tax.NewPercentageCalculator(tt.rate, "Sales Tax")

			result, err := calc.CalculateTax(context.Background(), tt.params)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, result)
		})
	}
}

// Test_PercentageCalculator_Idempotency validates that repeated calls return identical results
func Test_PercentageCalculator_Idempotency(t *testing.T) {
	calc := tax.NewPercentageCalculator(0.0875, "Sales Tax")

	params := tax.TaxParams{
		LineItems: []tax.LineItem{
			{Title: "Beef Bulgogi Bowl", Quantity: 3, UnitPriceCents: 1450, TotalCents: 4350},
		},
		DeliveryFeeCents: 599,
	}

	result1, err1 := calc.CalculateTax(context.Background(), params)
	result2, err2 := calc.CalculateTax(context.Background(), params)

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, result1.TotalTaxCents, result2.TotalTaxCents)
	assert.Equal(t, result1.Breakdown, result2.Breakdown)
}
