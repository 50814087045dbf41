package grocery

import (
	"context"
	"fmt"
	"strings"
)

// MockProvider is a test implementation of Provider.
type MockProvider struct {
	SearchProductsFunc func(ctx context.Context, term string, limit int) ([]Product, error)

	// Searches records every search term seen.
	Searches []string
}

var _ Provider = (*MockProvider)(nil)

// NewMockProvider creates a mock that fabricates products for any term.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// SearchProducts delegates to the configured function or returns
// deterministic fake products for the term.
func (m *MockProvider) SearchProducts(ctx context.Context, term string, limit int) ([]Product, error) {
	m.Searches = append(m.Searches, term)
	if m.SearchProductsFunc != nil {
		return m.SearchProductsFunc(ctx, term, limit)
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 3 {
		limit = 3
	}

	products := make([]Product, 0, limit)
	for i := 0; i < limit; i++ {
		products = append(products, Product{
			ID:         fmt.Sprintf("mock-%s-%d", strings.ReplaceAll(term, " ", "-"), i+1),
			Name:       fmt.Sprintf("Mock %s %d", term, i+1),
			Brand:      "TestBrand",
			Size:       "1 ea",
			PriceCents: int64(199 + i*100),
			Categories: []string{"Mock"},
		})
	}
	return products, nil
}
