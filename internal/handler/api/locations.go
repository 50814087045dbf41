package api

import (
	"log/slog"
	"net/http"

	"github.com/localplate/localplate/internal/geo"
	"github.com/localplate/localplate/internal/handler"
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/service"
	"github.com/localplate/localplate/internal/telemetry"
)

// LocationHandler serves postal code validation and chef coverage
// lookups.
type LocationHandler struct {
	locations service.LocationService
	logger    *slog.Logger
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(locations service.LocationService, logger *slog.Logger) *LocationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocationHandler{locations: locations, logger: logger}
}

type validateLocationRequest struct {
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type validateLocationResponse struct {
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
	Display    string `json:"display,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Validate handles POST /api/locations/validate - checks a postal code
// against the country's format without touching stored data.
func (h *LocationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateLocationRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	country := geo.NormalizeCountry(req.Country)
	if !geo.ValidatePostalCode(req.PostalCode, country) {
		handler.JSON(w, http.StatusOK, validateLocationResponse{Valid: false})
		return
	}

	handler.JSON(w, http.StatusOK, validateLocationResponse{
		Valid:      true,
		Normalized: geo.NormalizePostalCode(req.PostalCode),
		Display:    req.PostalCode,
		Country:    country,
	})
}

// Coverage handles GET /api/locations/coverage?postal_code&country -
// reports whether a verified chef serves the postal code.
func (h *LocationHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	postalCode := r.URL.Query().Get("postal_code")
	country := r.URL.Query().Get("country")

	covered, err := h.locations.HasChefCoverageForArea(ctx, postalCode, country)
	if err != nil {
		logger.Warn("coverage check failed", "postal_code", postalCode, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		result := "no_chef_coverage"
		if covered {
			result = "granted"
		}
		telemetry.Business.CoverageChecks.WithLabelValues(result).Inc()
	}
	handler.JSON(w, http.StatusOK, map[string]bool{"covered": covered})
}
