package tax

import "context"

// MockCalculator is a test implementation of Calculator.
type MockCalculator struct {
	CalculateTaxFunc func(ctx context.Context, params TaxParams) (*TaxResult, error)

	// Calls records the params of every CalculateTax invocation.
	Calls []TaxParams
}

var _ Calculator = (*MockCalculator)(nil)

// NewMockCalculator creates a mock that returns zero tax by default.
func NewMockCalculator() *MockCalculator {
	return &MockCalculator{}
}

// CalculateTax delegates to the configured function or returns a
// zero-tax result.
func (m *MockCalculator) CalculateTax(ctx context.Context, params TaxParams) (*TaxResult, error) {
	m.Calls = append(m.Calls, params)
	if m.CalculateTaxFunc != nil {
		return m.CalculateTaxFunc(ctx, params)
	}
	return &TaxResult{TotalTaxCents: 0, Breakdown: []TaxBreakdown{}}, nil
}
