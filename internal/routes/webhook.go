package routes

import (
	"github.com/localplate/localplate/internal/router"
)

// RegisterWebhookRoutes registers the inbound webhook endpoints.
//
// No authentication middleware runs here. External services cannot
// carry a bearer token; each handler verifies its own request
// signature instead (Stripe's Stripe-Signature header).
func RegisterWebhookRoutes(r *router.Router, deps WebhookDeps) {
	r.Post("/webhooks/stripe", deps.Stripe.HandleWebhook)
}
