package api

import (
	"log/slog"
	"net/http"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/handler"
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/service"
)

// MeHandler serves the authenticated user's own profile.
type MeHandler struct {
	users     service.UserService
	locations service.LocationService
	logger    *slog.Logger
}

// NewMeHandler creates a new profile handler.
func NewMeHandler(users service.UserService, locations service.LocationService, logger *slog.Logger) *MeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MeHandler{users: users, locations: locations, logger: logger}
}

// Get handles GET /api/me - returns the caller's profile.
func (h *MeHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	row, err := h.users.GetByID(ctx, user.ID)
	if err != nil {
		logger.Error("failed to load profile", "user_id", user.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, row)
}

type updateProfileRequest struct {
	FirstName           *string  `json:"first_name"`
	LastName            *string  `json:"last_name"`
	Phone               *string  `json:"phone"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	PostalCode          *string  `json:"postal_code"`
	Country             string   `json:"country"`
}

// Update handles PATCH /api/me - applies partial profile updates. Absent
// fields keep their current values.
func (h *MeHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	var req updateProfileRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	row, err := h.users.UpdateProfile(ctx, user.ID, service.UpdateProfileParams{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Phone:               req.Phone,
		DietaryRestrictions: req.DietaryRestrictions,
		PostalCode:          req.PostalCode,
		Country:             req.Country,
	})
	if err != nil {
		if domain.IsValidationError(err) {
			handler.ValidationErrorResponse(w, r, err)
			return
		}
		logger.Warn("profile update failed", "user_id", user.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	logger.Info("profile updated", "user_id", user.ID)
	handler.JSON(w, http.StatusOK, row)
}

// Access handles GET /api/me/access - reports whether marketplace
// features are open to the caller and, when they are not, why.
func (h *MeHandler) Access(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	access, err := h.locations.UserCanAccessChefFeatures(ctx, user.ID)
	if err != nil {
		logger.Error("feature access check failed", "user_id", user.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, access)
}
