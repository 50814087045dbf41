// Package admin contains the JSON handlers behind /api/admin. Every
// route is registered behind RequireAdmin; handlers here do not repeat
// the role check.
package admin

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/handler"
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/service"
	"github.com/localplate/localplate/internal/telemetry"
)

// ChefReviewHandler serves the chef application review queue.
type ChefReviewHandler struct {
	chefs  service.ChefService
	logger *slog.Logger
}

// NewChefReviewHandler creates a new chef review handler.
func NewChefReviewHandler(chefs service.ChefService, logger *slog.Logger) *ChefReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChefReviewHandler{chefs: chefs, logger: logger}
}

// List handles GET /api/admin/chefs?status= - chefs in a given status,
// pending applications by default.
func (h *ChefReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(domain.ChefStatusPending)
	}

	limit, offset := pagination(r)
	chefs, err := h.chefs.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		logger.Error("failed to list chefs", "status", status, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]any{"chefs": chefs})
}

// Approve handles POST /api/admin/chefs/{id}/approve - verifies a
// pending chef, which flips the user role and sweeps the waitlist for
// every area the chef serves.
func (h *ChefReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chefID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	chef, err := h.chefs.Approve(ctx, chefID)
	if err != nil {
		logger.Warn("chef approval failed", "chef_id", chefID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.ChefStatusChanges.WithLabelValues(chef.Status).Inc()
	}
	logger.Info("chef approved", "chef_id", chefID)
	handler.JSON(w, http.StatusOK, chef)
}

type rejectChefRequest struct {
	Reason string `json:"reason"`
}

// Reject handles POST /api/admin/chefs/{id}/reject - declines a pending
// application with a reason the applicant will see.
func (h *ChefReviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chefID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req rejectChefRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		handler.ValidationErrorResponse(w, r, domain.NewValidationError("admin.reject_chef", "reason", "a rejection reason is required"))
		return
	}

	chef, err := h.chefs.Reject(ctx, chefID, req.Reason)
	if err != nil {
		logger.Warn("chef rejection failed", "chef_id", chefID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.ChefStatusChanges.WithLabelValues(chef.Status).Inc()
	}
	logger.Info("chef rejected", "chef_id", chefID)
	handler.JSON(w, http.StatusOK, chef)
}
