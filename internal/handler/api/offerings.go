package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/handler"
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/repository"
	"github.com/localplate/localplate/internal/service"
	"github.com/localplate/localplate/internal/telemetry"
)

// OfferingHandler serves the public offering feed and the chef's own
// offering management endpoints.
type OfferingHandler struct {
	offerings service.OfferingService
	chefs     service.ChefService
	logger    *slog.Logger
}

// NewOfferingHandler creates a new offering handler.
func NewOfferingHandler(offerings service.OfferingService, chefs service.ChefService, logger *slog.Logger) *OfferingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OfferingHandler{offerings: offerings, chefs: chefs, logger: logger}
}

// List handles GET /api/offerings - published offerings from verified
// chefs. The viewer location comes from the postal_code parameter or,
// for signed-in callers, the profile.
func (h *OfferingHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)
	query := r.URL.Query()

	limit, offset := pagination(r)
	params := service.ViewerOfferingsParams{
		PostalCode:  query.Get("postal_code"),
		Country:     query.Get("country"),
		DietaryTags: splitTags(query.Get("dietary_tags")),
		Limit:       limit,
		Offset:      offset,
	}
	if user := middleware.GetUserFromContext(ctx); user != nil {
		params.UserID = &user.ID
	}

	rows, err := h.offerings.ListForViewer(ctx, params)
	if err != nil {
		logger.Error("failed to list offerings", "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.OfferingSearches.WithLabelValues("browse").Inc()
	}
	handler.JSON(w, http.StatusOK, map[string]any{"offerings": rows})
}

// Get handles GET /api/offerings/{id} - one published offering.
func (h *OfferingHandler) Get(w http.ResponseWriter, r *http.Request) {
	offeringID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	offering, err := h.offerings.GetPublished(r.Context(), offeringID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, offering)
}

// Search handles GET /api/offerings/search?q= - semantic search over
// published offerings.
func (h *OfferingHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "offering.search", "A search query is required"))
		return
	}

	limit, _ := pagination(r)
	rows, err := h.offerings.SemanticSearch(ctx, query, limit)
	if err != nil {
		logger.Error("offering search failed", "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.OfferingSearches.WithLabelValues("semantic").Inc()
	}
	handler.JSON(w, http.StatusOK, map[string]any{"offerings": rows})
}

type createOfferingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PriceCents  int32    `json:"price_cents"`
	Fulfillment string   `json:"fulfillment"`
	Capacity    *int32   `json:"capacity"`
	DietaryTags []string `json:"dietary_tags"`
	AvailableOn string   `json:"available_on"`
}

// Create handles POST /api/chef/offerings - adds a draft offering for
// the calling chef.
func (h *OfferingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chefID, ok := h.requireChefID(w, r)
	if !ok {
		return
	}

	var req createOfferingRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	availableOn, err := parseDate(req.AvailableOn)
	if err != nil {
		handler.ValidationErrorResponse(w, r, domain.NewValidationError("offering.create", "available_on", "must be a date like 2026-09-01"))
		return
	}

	offering, err := h.offerings.Create(ctx, chefID, service.CreateOfferingParams{
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Fulfillment: req.Fulfillment,
		Capacity:    req.Capacity,
		DietaryTags: req.DietaryTags,
		AvailableOn: availableOn,
	})
	if err != nil {
		if domain.IsValidationError(err) {
			handler.ValidationErrorResponse(w, r, err)
			return
		}
		logger.Warn("offering creation failed", "chef_id", chefID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	logger.Info("offering created", "chef_id", chefID, "offering_id", offering.ID)
	handler.JSON(w, http.StatusCreated, offering)
}

type updateOfferingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	PriceCents  *int32   `json:"price_cents"`
	Fulfillment *string  `json:"fulfillment"`
	Capacity    *int32   `json:"capacity"`
	DietaryTags []string `json:"dietary_tags"`
	AvailableOn *string  `json:"available_on"`
	Status      *string  `json:"status"`
}

// Update handles PATCH /api/chef/offerings/{id} - applies partial
// updates. Setting status to published or archived moves the offering
// through its lifecycle.
func (h *OfferingHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chefID, ok := h.requireChefID(w, r)
	if !ok {
		return
	}

	offeringID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req updateOfferingRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	params := service.UpdateOfferingParams{
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Fulfillment: req.Fulfillment,
		Capacity:    req.Capacity,
		DietaryTags: req.DietaryTags,
	}
	if req.AvailableOn != nil {
		availableOn, err := parseDate(*req.AvailableOn)
		if err != nil {
			handler.ValidationErrorResponse(w, r, domain.NewValidationError("offering.update", "available_on", "must be a date like 2026-09-01"))
			return
		}
		params.AvailableOn = &availableOn
	}

	offering, err := h.offerings.Update(ctx, chefID, offeringID, params)
	if err != nil {
		if domain.IsValidationError(err) {
			handler.ValidationErrorResponse(w, r, err)
			return
		}
		logger.Warn("offering update failed", "offering_id", offeringID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	if req.Status != nil {
		switch *req.Status {
		case string(domain.OfferingStatusPublished):
			offering, err = h.offerings.Publish(ctx, chefID, offeringID)
		case string(domain.OfferingStatusArchived):
			offering, err = h.offerings.Archive(ctx, chefID, offeringID)
		default:
			err = domain.Errorf(domain.EINVALID, "offering.update", "Status can only be set to published or archived")
		}
		if err != nil {
			handler.ErrorResponse(w, r, err)
			return
		}
	}

	handler.JSON(w, http.StatusOK, offering)
}

// Archive handles DELETE /api/chef/offerings/{id} - takes an offering
// off the marketplace.
func (h *OfferingHandler) Archive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chefID, ok := h.requireChefID(w, r)
	if !ok {
		return
	}

	offeringID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if _, err := h.offerings.Archive(ctx, chefID, offeringID); err != nil {
		logger.Warn("offering archive failed", "offering_id", offeringID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.NoContent(w)
}

// ListOwn handles GET /api/chef/offerings - the calling chef's offerings
// in every status.
func (h *OfferingHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chefID, ok := h.requireChefID(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	rows, err := h.offerings.ListOwn(ctx, chefID, limit, offset)
	if err != nil {
		logger.Error("failed to list own offerings", "chef_id", chefID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]any{"offerings": rows})
}

// UploadPhoto handles POST /api/chef/offerings/{id}/photo - stores an
// offering photo and returns its public URL.
func (h *OfferingHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	chefID, ok := h.requireChefID(w, r)
	if !ok {
		return
	}

	offeringID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "offering.upload_photo", "Invalid multipart upload"))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "offering.upload_photo", "A photo file is required"))
		return
	}
	defer file.Close()

	url, err := h.offerings.UploadPhoto(ctx, chefID, offeringID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if domain.IsValidationError(err) {
			handler.ValidationErrorResponse(w, r, err)
			return
		}
		logger.Error("offering photo upload failed", "offering_id", offeringID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]string{"photo_url": url})
}

// requireChefID resolves the chef ID owned by the calling user.
func (h *OfferingHandler) requireChefID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return uuid.Nil, false
	}

	chef, err := h.chefs.GetByUserID(r.Context(), user.ID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return uuid.Nil, false
	}

	return repository.ToUUID(chef.ID), true
}

// parseDate accepts either a bare date or a full RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// splitTags parses a comma-separated tag list, dropping empty entries.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
