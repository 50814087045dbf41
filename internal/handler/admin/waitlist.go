package admin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/geo"
	"github.com/localplate/localplate/internal/handler"
	"github.com/localplate/localplate/internal/jobs"
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/repository"
)

// WaitlistAdminHandler serves the waitlist review and notification
// endpoints.
type WaitlistAdminHandler struct {
	repo   repository.Querier
	logger *slog.Logger
}

// NewWaitlistAdminHandler creates a new waitlist admin handler.
func NewWaitlistAdminHandler(repo repository.Querier, logger *slog.Logger) *WaitlistAdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WaitlistAdminHandler{repo: repo, logger: logger}
}

// List handles GET /api/admin/waitlist?postal_code&country - who is
// still waiting on an area, with the total ever signed up there.
func (h *WaitlistAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	code, err := h.resolvePostalCode(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	waiting, err := h.repo.ListUnnotifiedWaitlistEntriesByPostalCode(ctx, code.ID)
	if err != nil {
		logger.Error("failed to list waitlist entries", "postal_code", code.Code, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	total, err := h.repo.CountWaitlistEntriesByPostalCode(ctx, code.ID)
	if err != nil {
		logger.Error("failed to count waitlist entries", "postal_code", code.Code, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]any{
		"postal_code": code,
		"waiting":     waiting,
		"total":       total,
	})
}

type notifyWaitlistRequest struct {
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Notify handles POST /api/admin/waitlist/notify - queues the job that
// emails everyone still waiting on an area. Normally the approval flow
// does this; the endpoint exists to re-run a sweep by hand.
func (h *WaitlistAdminHandler) Notify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	var req notifyWaitlistRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	code, err := h.lookupPostalCode(ctx, req.PostalCode, req.Country)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := jobs.EnqueueNotifyWaitlistArea(ctx, h.repo, jobs.NotifyWaitlistAreaPayload{
		PostalCodeID: repository.ToUUID(code.ID),
	}); err != nil {
		logger.Error("failed to queue waitlist sweep", "postal_code", code.Code, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	logger.Info("waitlist sweep queued", "postal_code", code.Code, "country", code.Country)
	handler.JSON(w, http.StatusAccepted, map[string]bool{"queued": true})
}

func (h *WaitlistAdminHandler) resolvePostalCode(r *http.Request) (*repository.PostalCode, error) {
	return h.lookupPostalCode(r.Context(), r.URL.Query().Get("postal_code"), r.URL.Query().Get("country"))
}

func (h *WaitlistAdminHandler) lookupPostalCode(ctx context.Context, raw, country string) (*repository.PostalCode, error) {
	country = geo.NormalizeCountry(country)
	if !geo.ValidatePostalCode(raw, country) {
		return nil, domain.ErrInvalidPostalCode
	}

	code, err := h.repo.GetPostalCodeByCode(ctx, repository.GetPostalCodeByCodeParams{
		Code:    geo.NormalizePostalCode(raw),
		Country: country,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostalCodeNotFound
		}
		return nil, err
	}
	return &code, nil
}
