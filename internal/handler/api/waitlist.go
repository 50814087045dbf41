package api

import (
	"log/slog"
	"net/http"

	"github.com/localplate/localplate/internal/handler"
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/service"
	"github.com/localplate/localplate/internal/telemetry"
)

// WaitlistHandler serves the signup waitlist for areas no chef covers
// yet.
type WaitlistHandler struct {
	waitlist service.WaitlistService
	logger   *slog.Logger
}

// NewWaitlistHandler creates a new waitlist handler.
func NewWaitlistHandler(waitlist service.WaitlistService, logger *slog.Logger) *WaitlistHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WaitlistHandler{waitlist: waitlist, logger: logger}
}

type joinWaitlistRequest struct {
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Join handles POST /api/waitlist - adds the caller to the waitlist for
// a postal code.
func (h *WaitlistHandler) Join(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	var req joinWaitlistRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	entry, err := h.waitlist.Join(ctx, user.ID, req.PostalCode, req.Country)
	if err != nil {
		logger.Warn("waitlist join failed", "user_id", user.ID, "postal_code", req.PostalCode, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.WaitlistJoins.Inc()
	}
	logger.Info("joined waitlist", "user_id", user.ID, "postal_code", req.PostalCode)
	handler.JSON(w, http.StatusCreated, entry)
}

// Leave handles DELETE /api/waitlist/{postal_code}?country= - removes
// the caller's waitlist entry for a postal code.
func (h *WaitlistHandler) Leave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	postalCode := r.PathValue("postal_code")
	country := r.URL.Query().Get("country")

	if err := h.waitlist.Leave(ctx, user.ID, postalCode, country); err != nil {
		logger.Warn("waitlist leave failed", "user_id", user.ID, "postal_code", postalCode, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.NoContent(w)
}

// Status handles GET /api/waitlist - the caller's waitlist entries,
// newest first.
func (h *WaitlistHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	entries, err := h.waitlist.Status(ctx, user.ID)
	if err != nil {
		logger.Error("failed to load waitlist status", "user_id", user.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]any{"entries": entries})
}
