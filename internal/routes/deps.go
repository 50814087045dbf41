// Package routes assembles handlers into the HTTP route table. Route
// registration lives here so cmd/server only wires dependencies.
package routes

import (
	"github.com/localplate/localplate/internal/handler/admin"
	"github.com/localplate/localplate/internal/handler/api"
	"github.com/localplate/localplate/internal/handler/webhook"
	"github.com/localplate/localplate/internal/router"
)

// APIDeps contains handlers for the public and authenticated JSON API.
type APIDeps struct {
	Auth      *api.AuthHandler
	Me        *api.MeHandler
	Chefs     *api.ChefHandler
	Offerings *api.OfferingHandler
	Orders    *api.OrderHandler
	Waitlist  *api.WaitlistHandler
	Locations *api.LocationHandler
	Assistant *api.AssistantHandler

	// AuthRateLimit guards the credential endpoints against brute force.
	// Optional; nil means only the global limiter applies.
	AuthRateLimit router.Middleware
}

// AdminDeps contains handlers for the operator API.
type AdminDeps struct {
	Chefs    *admin.ChefReviewHandler
	Waitlist *admin.WaitlistAdminHandler
	Orders   *admin.OrderAdminHandler
	Imports  *admin.ImportStatusHandler
}

// WebhookDeps contains handlers for incoming webhooks.
type WebhookDeps struct {
	Stripe *webhook.StripeHandler
}
