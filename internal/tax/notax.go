package tax

import "context"

// NoTaxCalculator returns zero tax for every order. Used in development
// and for jurisdictions where the marketplace does not collect tax.
type NoTaxCalculator struct{}

var _ Calculator = (*NoTaxCalculator)(nil)

// NewNoTaxCalculator creates a calculator that never charges tax.
func NewNoTaxCalculator() *NoTaxCalculator {
	return &NoTaxCalculator{}
}

// CalculateTax always returns a zero-tax result with an empty breakdown.
func (c *NoTaxCalculator) CalculateTax(ctx context.Context, params TaxParams) (*TaxResult, error) {
	return &TaxResult{
		TotalTaxCents: 0,
		Breakdown:     []TaxBreakdown{},
	}, nil
}
