package admin

import (
	"log/slog"
	"net/http"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/handler"
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/repository"
)

// ImportStatusHandler reports data volume counters so an operator can
// see whether the GeoNames import and the background queue are healthy.
type ImportStatusHandler struct {
	repo   repository.Querier
	logger *slog.Logger
}

// NewImportStatusHandler creates a new import status handler.
func NewImportStatusHandler(repo repository.Querier, logger *slog.Logger) *ImportStatusHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportStatusHandler{repo: repo, logger: logger}
}

type importStatusResponse struct {
	PostalCodes int64            `json:"postal_codes"`
	Users       int64            `json:"users"`
	Chefs       map[string]int64 `json:"chefs"`
	Jobs        map[string]int64 `json:"jobs"`
}

// Status handles GET /api/admin/imports - row counts for postal data,
// accounts, the chef pipeline, and the job queue.
func (h *ImportStatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	resp := importStatusResponse{
		Chefs: make(map[string]int64),
		Jobs:  make(map[string]int64),
	}

	var err error
	if resp.PostalCodes, err = h.repo.CountPostalCodes(ctx); err != nil {
		logger.Error("failed to count postal codes", "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}
	if resp.Users, err = h.repo.CountUsers(ctx); err != nil {
		logger.Error("failed to count users", "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	chefStatuses := []domain.ChefStatus{
		domain.ChefStatusPending,
		domain.ChefStatusVerified,
		domain.ChefStatusRejected,
		domain.ChefStatusSuspended,
	}
	for _, status := range chefStatuses {
		n, err := h.repo.CountChefsByStatus(ctx, string(status))
		if err != nil {
			logger.Error("failed to count chefs", "status", status, "error", err)
			handler.ErrorResponse(w, r, err)
			return
		}
		resp.Chefs[string(status)] = n
	}

	for _, status := range []string{"pending", "processing", "completed", "failed"} {
		n, err := h.repo.CountJobsByStatus(ctx, status)
		if err != nil {
			logger.Error("failed to count jobs", "status", status, "error", err)
			handler.ErrorResponse(w, r, err)
			return
		}
		resp.Jobs[status] = n
	}

	handler.JSON(w, http.StatusOK, resp)
}
