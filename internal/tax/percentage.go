package tax

import (
	"context"
	"math"
)

// PercentageCalculator applies a single flat rate to the taxable total
// (line items plus delivery fee). Suitable for single-jurisdiction
// deployments where prepared food is taxed at one rate.
type PercentageCalculator struct {
	rate float64
	name string
}

var _ Calculator = (*PercentageCalculator)(nil)

// NewPercentageCalculator creates a calculator that taxes orders at the
// given rate (0.08 for 8%). The name labels the jurisdiction in the
// breakdown; it defaults to "Sales Tax" when empty.
func NewPercentageCalculator(rate float64, name string) *PercentageCalculator {
	if name == "" {
		name = "Sales Tax"
	}
	return &PercentageCalculator{rate: rate, name: name}
}

// CalculateTax multiplies the taxable total by the configured rate,
// rounding to the nearest cent.
func (c *PercentageCalculator) CalculateTax(ctx context.Context, params TaxParams) (*TaxResult, error) {
	if c.rate < 0 || c.rate > 1 {
		return nil, ErrInvalidRate
	}
	if params.DeliveryFeeCents < 0 {
		return nil, ErrNegativeAmount
	}

	var subtotal int32
	for _, item := range params.LineItems {
		if item.TotalCents < 0 || item.UnitPriceCents < 0 || item.Quantity < 0 {
			return nil, ErrNegativeAmount
		}
		subtotal += item.TotalCents
	}

	taxable := subtotal + params.DeliveryFeeCents
	taxCents := int32(math.Round(float64(taxable) * c.rate))

	return &TaxResult{
		TotalTaxCents: taxCents,
		Breakdown: []TaxBreakdown{
			{
				Jurisdiction: "state",
				Name:         c.name,
				Rate:         c.rate,
				AmountCents:  taxCents,
			},
		},
	}, nil
}
