package grocery

import (
	"context"
	"errors"
)

// Provider defines the interface for grocery product search.
// Implementations: KrogerProvider
type Provider interface {
	// SearchProducts returns up to limit products matching the term.
	SearchProducts(ctx context.Context, term string, limit int) ([]Product, error)
}

// Product is a grocery item returned by a provider.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand,omitempty"`
	Size            string   `json:"size,omitempty"`
	PriceCents      int64    `json:"price_cents,omitempty"`
	PromoPriceCents int64    `json:"promo_price_cents,omitempty"`
	Categories      []string `json:"categories,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
}

var (
	// ErrNotConfigured is returned when the provider is missing client
	// credentials.
	ErrNotConfigured = errors.New("grocery: provider credentials not configured")

	// ErrEmptyTerm is returned when the search term is blank.
	ErrEmptyTerm = errors.New("grocery: search term is required")

	// ErrRateLimited is returned when the provider rejects the request
	// for quota reasons.
	ErrRateLimited = errors.New("grocery: provider rate limit exceeded")
)
