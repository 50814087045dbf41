package routes

import (
	"net/http"

	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/router"
)

// RegisterAPIRoutes registers the customer-facing JSON API.
//
// Public routes still see the signed-in user when a bearer token is
// present: WithUser runs in the global chain, so browse results get
// personalized without requiring authentication.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	authLimit := deps.AuthRateLimit
	if authLimit == nil {
		authLimit = func(next http.Handler) http.Handler { return next }
	}

	// Account lifecycle. Credential and token endpoints carry the strict
	// rate limiter.
	r.Post("/api/auth/register", deps.Auth.Register, authLimit)
	r.Post("/api/auth/login", deps.Auth.Login, authLimit)
	r.Post("/api/auth/refresh", deps.Auth.Refresh, authLimit)
	r.Post("/api/auth/verify-email", deps.Auth.VerifyEmail, authLimit)
	r.Post("/api/auth/request-password-reset", deps.Auth.RequestPasswordReset, authLimit)
	r.Post("/api/auth/reset-password", deps.Auth.ResetPassword, authLimit)

	// Browse surface.
	r.Get("/api/chefs", deps.Chefs.List)
	r.Get("/api/chefs/{id}", deps.Chefs.Get)
	r.Get("/api/offerings", deps.Offerings.List)
	r.Get("/api/offerings/search", deps.Offerings.Search)
	r.Get("/api/offerings/{id}", deps.Offerings.Get)
	r.Post("/api/locations/validate", deps.Locations.Validate)
	r.Get("/api/locations/coverage", deps.Locations.Coverage)

	// Signed-in surface.
	auth := r.Group(middleware.RequireAuth)

	auth.Get("/api/me", deps.Me.Get)
	auth.Patch("/api/me", deps.Me.Update)
	auth.Get("/api/me/access", deps.Me.Access)

	auth.Post("/api/waitlist", deps.Waitlist.Join)
	auth.Get("/api/waitlist", deps.Waitlist.Status)
	auth.Delete("/api/waitlist/{postal_code}", deps.Waitlist.Leave)

	auth.Post("/api/chefs/apply", deps.Chefs.Apply)

	auth.Post("/api/orders", deps.Orders.Create)
	auth.Get("/api/orders", deps.Orders.List)
	auth.Get("/api/orders/{id}", deps.Orders.Get)
	auth.Post("/api/orders/{id}/checkout", deps.Orders.Checkout)
	auth.Post("/api/orders/{id}/cancel", deps.Orders.Cancel)

	auth.Post("/api/assistant/chat", deps.Assistant.Chat)
	auth.Post("/api/meal-plans", deps.Assistant.RequestMealPlan)
	auth.Get("/api/meal-plans", deps.Assistant.ListMealPlans)
	auth.Get("/api/meal-plans/{id}", deps.Assistant.GetMealPlan)

	// Chef console. RequireChef admits admins too.
	chef := r.Group(middleware.RequireChef)

	chef.Patch("/api/chef/profile", deps.Chefs.UpdateProfile)
	chef.Put("/api/chef/service-area", deps.Chefs.UpdateServiceArea)
	chef.Post("/api/chef/photo", deps.Chefs.UploadPhoto)

	chef.Post("/api/chef/offerings", deps.Offerings.Create)
	chef.Get("/api/chef/offerings", deps.Offerings.ListOwn)
	chef.Patch("/api/chef/offerings/{id}", deps.Offerings.Update)
	chef.Delete("/api/chef/offerings/{id}", deps.Offerings.Archive)
	chef.Post("/api/chef/offerings/{id}/photo", deps.Offerings.UploadPhoto)

	chef.Get("/api/chef/orders", deps.Orders.ListForChef)
	chef.Post("/api/chef/orders/{id}/status", deps.Orders.UpdateStatus)
	chef.Post("/api/chef/orders/{id}/refund", deps.Orders.Refund)

	chef.Post("/api/chef/payment-links", deps.Orders.CreatePaymentLink)
	chef.Get("/api/chef/payment-links", deps.Orders.ListPaymentLinks)
	chef.Delete("/api/chef/payment-links/{id}", deps.Orders.DeactivatePaymentLink)
}
