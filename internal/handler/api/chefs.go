package api

import (
	"log/slog"
	"net/http"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/handler"
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/repository"
	"github.com/localplate/localplate/internal/service"
)

// maxPhotoUploadBytes caps profile and offering photo uploads.
const maxPhotoUploadBytes = 10 << 20

// ChefHandler serves the public chef directory and the chef's own
// profile management endpoints.
type ChefHandler struct {
	chefs  service.ChefService
	logger *slog.Logger
}

// NewChefHandler creates a new chef handler.
func NewChefHandler(chefs service.ChefService, logger *slog.Logger) *ChefHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChefHandler{chefs: chefs, logger: logger}
}

// List handles GET /api/chefs - the public directory of verified chefs,
// narrowed to those serving a postal code when one is given.
func (h *ChefHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	limit, offset := pagination(r)
	chefs, err := h.chefs.ListVerified(ctx, service.ListChefsParams{
		PostalCode: r.URL.Query().Get("postal_code"),
		Country:    r.URL.Query().Get("country"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		logger.Error("failed to list chefs", "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]any{"chefs": chefs})
}

// Get handles GET /api/chefs/{id} - one chef's public profile with their
// service area. Unverified chefs are invisible here.
func (h *ChefHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chefID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	chef, err := h.chefs.GetByID(ctx, chefID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if chef.Status != string(domain.ChefStatusVerified) {
		handler.ErrorResponse(w, r, domain.ErrChefNotFound)
		return
	}

	area, err := h.chefs.ServiceArea(ctx, chefID)
	if err != nil {
		logger.Error("failed to load service area", "chef_id", chefID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]any{"chef": chef, "service_area": area})
}

type applyChefRequest struct {
	DisplayName    string   `json:"display_name"`
	Bio            string   `json:"bio"`
	Cuisine        string   `json:"cuisine"`
	PostalCode     string   `json:"postal_code"`
	Country        string   `json:"country"`
	MaxTravelMiles *float64 `json:"max_travel_miles"`
}

// Apply handles POST /api/chefs/apply - submits a chef application for
// the calling customer.
func (h *ChefHandler) Apply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	var req applyChefRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	chef, err := h.chefs.Apply(ctx, user.ID, service.ApplyChefParams{
		DisplayName:    req.DisplayName,
		Bio:            req.Bio,
		Cuisine:        req.Cuisine,
		PostalCode:     req.PostalCode,
		Country:        req.Country,
		MaxTravelMiles: req.MaxTravelMiles,
	})
	if err != nil {
		if domain.IsValidationError(err) {
			handler.ValidationErrorResponse(w, r, err)
			return
		}
		logger.Warn("chef application failed", "user_id", user.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	logger.Info("chef application submitted", "user_id", user.ID, "chef_id", chef.ID)
	handler.JSON(w, http.StatusCreated, chef)
}

// requireChef resolves the chef profile owned by the calling user. The
// route middleware has already checked the role; this fetches the row.
func (h *ChefHandler) requireChef(w http.ResponseWriter, r *http.Request) (*repository.Chef, bool) {
	ctx := r.Context()

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return nil, false
	}

	chef, err := h.chefs.GetByUserID(ctx, user.ID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return nil, false
	}

	return chef, true
}

type updateChefProfileRequest struct {
	DisplayName    *string  `json:"display_name"`
	Bio            *string  `json:"bio"`
	Cuisine        *string  `json:"cuisine"`
	MaxTravelMiles *float64 `json:"max_travel_miles"`
}

// UpdateProfile handles PATCH /api/chef/profile - applies partial
// updates to the caller's chef profile.
func (h *ChefHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chef, ok := h.requireChef(w, r)
	if !ok {
		return
	}

	var req updateChefProfileRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	updated, err := h.chefs.UpdateProfile(ctx, repository.ToUUID(chef.ID), service.UpdateChefProfileParams{
		DisplayName:    req.DisplayName,
		Bio:            req.Bio,
		Cuisine:        req.Cuisine,
		MaxTravelMiles: req.MaxTravelMiles,
	})
	if err != nil {
		if domain.IsValidationError(err) {
			handler.ValidationErrorResponse(w, r, err)
			return
		}
		logger.Warn("chef profile update failed", "chef_id", chef.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, updated)
}

type serviceAreaRequest struct {
	PostalCodes []serviceAreaCode `json:"postal_codes"`
}

type serviceAreaCode struct {
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// UpdateServiceArea handles PUT /api/chef/service-area - replaces the
// caller's served postal codes with the submitted set.
func (h *ChefHandler) UpdateServiceArea(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chef, ok := h.requireChef(w, r)
	if !ok {
		return
	}

	var req serviceAreaRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	codes := make([]service.ServiceAreaCode, 0, len(req.PostalCodes))
	for _, c := range req.PostalCodes {
		codes = append(codes, service.ServiceAreaCode{PostalCode: c.PostalCode, Country: c.Country})
	}

	area, err := h.chefs.UpdateServiceArea(ctx, repository.ToUUID(chef.ID), codes)
	if err != nil {
		logger.Warn("service area update failed", "chef_id", chef.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	logger.Info("service area updated", "chef_id", chef.ID, "postal_codes", len(area))
	handler.JSON(w, http.StatusOK, map[string]any{"service_area": area})
}

// UploadPhoto handles POST /api/chef/photo - stores a profile photo and
// returns its public URL.
func (h *ChefHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chef, ok := h.requireChef(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "chef.upload_photo", "Invalid multipart upload"))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "chef.upload_photo", "A photo file is required"))
		return
	}
	defer file.Close()

	url, err := h.chefs.UploadPhoto(ctx, repository.ToUUID(chef.ID), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if domain.IsValidationError(err) {
			handler.ValidationErrorResponse(w, r, err)
			return
		}
		logger.Error("chef photo upload failed", "chef_id", chef.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	logger.Info("chef photo uploaded", "chef_id", chef.ID)
	handler.JSON(w, http.StatusOK, map[string]string{"photo_url": url})
}
