package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/offerings", "/api/offerings"},
		{"/api/offerings/0f8fad5b-d9cb-469f-a165-70867728950e", "/api/offerings/:id"},
		{"/api/orders/0f8fad5b-d9cb-469f-a165-70867728950e/checkout", "/api/orders/:id/checkout"},
		{"/api/waitlist/94110", "/api/waitlist/:postal_code"},
		{"/uploads/chefs/0f8fad5b-d9cb-469f-a165-70867728950e/offerings/7c9e6679-7425-40de-944b-e07fc1f90ae7.jpg", "/uploads/chefs/:id/offerings/:id"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizePath(tt.path))
		})
	}
}
