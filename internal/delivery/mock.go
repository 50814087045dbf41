package delivery

import "context"

// MockQuoter is a test implementation of Quoter.
type MockQuoter struct {
	QuoteFunc func(ctx context.Context, params QuoteParams) (*Quote, error)

	// Calls records the params of every Quote invocation.
	Calls []QuoteParams
}

var _ Quoter = (*MockQuoter)(nil)

// NewMockQuoter creates a mock that quotes free delivery by default.
func NewMockQuoter() *MockQuoter {
	return &MockQuoter{}
}

// Quote delegates to the configured function or returns a zero-fee quote.
func (m *MockQuoter) Quote(ctx context.Context, params QuoteParams) (*Quote, error) {
	m.Calls = append(m.Calls, params)
	if m.QuoteFunc != nil {
		return m.QuoteFunc(ctx, params)
	}
	return &Quote{FeeCents: 0, Description: "Pickup"}, nil
}
