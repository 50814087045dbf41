package routes

import (
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/router"
)

// RegisterAdminRoutes registers the operator endpoints. Everything here
// sits behind RequireAdmin.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	admin := r.Group(middleware.RequireAdmin)

	// Chef verification queue
	admin.Get("/api/admin/chefs", deps.Chefs.List)
	admin.Post("/api/admin/chefs/{id}/approve", deps.Chefs.Approve)
	admin.Post("/api/admin/chefs/{id}/reject", deps.Chefs.Reject)

	// Waitlist inspection and manual notification sweeps
	admin.Get("/api/admin/waitlist", deps.Waitlist.List)
	admin.Post("/api/admin/waitlist/notify", deps.Waitlist.Notify)

	// Order intervention
	admin.Post("/api/admin/orders/{id}/refund", deps.Orders.Refund)

	// Import and queue health
	admin.Get("/api/admin/imports", deps.Imports.Status)
}
