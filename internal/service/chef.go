package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/geo"
	"github.com/localplate/localplate/internal/jobs"
	"github.com/localplate/localplate/internal/repository"
	"github.com/localplate/localplate/internal/storage"
)

// defaultListLimit caps list endpoints when the caller does not page.
const defaultListLimit = 50

// ApplyChefParams carries a chef application.
type ApplyChefParams struct {
	DisplayName    string
	Bio            string
	Cuisine        string
	PostalCode     string
	Country        string
	MaxTravelMiles *float64
}

// UpdateChefProfileParams carries optional chef profile fields. Nil
// pointers leave the corresponding column unchanged.
type UpdateChefProfileParams struct {
	DisplayName    *string
	Bio            *string
	Cuisine        *string
	MaxTravelMiles *float64
}

// ServiceAreaCode identifies one postal code in a chef's service area.
type ServiceAreaCode struct {
	PostalCode string
	Country    string
}

// ListChefsParams filters the public chef directory.
type ListChefsParams struct {
	PostalCode string
	Country    string
	Limit      int32
	Offset     int32
}

// ChefService provides business logic for chef accounts
type ChefService interface {
	// Apply submits a chef application for a customer account
	Apply(ctx context.Context, userID uuid.UUID, params ApplyChefParams) (*repository.Chef, error)

	// Approve verifies a pending chef, flips the user role, and kicks off
	// the approval email and waitlist sweeps
	Approve(ctx context.Context, chefID uuid.UUID) (*repository.Chef, error)

	// Reject declines a pending chef application with a reason
	Reject(ctx context.Context, chefID uuid.UUID, reason string) (*repository.Chef, error)

	// UpdateProfile applies partial updates to the chef profile
	UpdateProfile(ctx context.Context, chefID uuid.UUID, params UpdateChefProfileParams) (*repository.Chef, error)

	// UpdateServiceArea replaces the chef's served postal codes
	UpdateServiceArea(ctx context.Context, chefID uuid.UUID, codes []ServiceAreaCode) ([]repository.PostalCode, error)

	// UploadPhoto stores a chef profile photo and returns its public URL
	UploadPhoto(ctx context.Context, chefID uuid.UUID, filename, contentType string, content io.Reader) (string, error)

	// GetByID retrieves a chef by ID
	GetByID(ctx context.Context, chefID uuid.UUID) (*repository.Chef, error)

	// GetByUserID retrieves the chef owned by a user
	GetByUserID(ctx context.Context, userID uuid.UUID) (*repository.Chef, error)

	// ServiceArea lists the postal codes a chef serves
	ServiceArea(ctx context.Context, chefID uuid.UUID) ([]repository.PostalCode, error)

	// ListVerified lists verified chefs, narrowed to those serving a
	// postal code when one is given
	ListVerified(ctx context.Context, params ListChefsParams) ([]repository.Chef, error)

	// ListByStatus lists chefs in a given status for the admin review queue
	ListByStatus(ctx context.Context, status string, limit, offset int32) ([]repository.Chef, error)
}

type chefService struct {
	repo     repository.Querier
	tx       repository.TxRunner
	location LocationService
	store    storage.Storage
	baseURL  string
}

// NewChefService creates a new ChefService instance
func NewChefService(repo repository.Querier, tx repository.TxRunner, location LocationService, store storage.Storage, baseURL string) ChefService {
	return &chefService{
		repo:     repo,
		tx:       tx,
		location: location,
		store:    store,
		baseURL:  baseURL,
	}
}

// Apply submits a chef application for a customer account
func (s *chefService) Apply(ctx context.Context, userID uuid.UUID, params ApplyChefParams) (*repository.Chef, error) {
	user, err := s.repo.GetUserByID(ctx, repository.UUID(userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	// One chef per account
	_, err = s.repo.GetChefByUserID(ctx, user.ID)
	if err == nil {
		return nil, domain.ErrChefExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing chef: %w", err)
	}

	displayName := strings.TrimSpace(params.DisplayName)
	if displayName == "" {
		return nil, domain.NewValidationError("chef.apply", "display_name", "display name is required")
	}

	base, err := s.location.GetOrCreatePostalCode(ctx, params.PostalCode, params.Country)
	if err != nil {
		return nil, err
	}

	chef, err := s.repo.CreateChef(ctx, repository.CreateChefParams{
		UserID:           user.ID,
		DisplayName:      displayName,
		Bio:              repository.Text(strings.TrimSpace(params.Bio)),
		Cuisine:          repository.Text(strings.TrimSpace(params.Cuisine)),
		MaxTravelMiles:   float8Ptr(params.MaxTravelMiles),
		BasePostalCodeID: base.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chef: %w", err)
	}

	// The kitchen postal code seeds the service area
	if err := s.repo.AddChefPostalCode(ctx, repository.AddChefPostalCodeParams{
		ChefID:       chef.ID,
		PostalCodeID: base.ID,
	}); err != nil {
		return nil, fmt.Errorf("failed to seed service area: %w", err)
	}

	return &chef, nil
}

// Approve verifies a pending chef
func (s *chefService) Approve(ctx context.Context, chefID uuid.UUID) (*repository.Chef, error) {
	var chef repository.Chef
	var applicant repository.User

	err := s.tx.ExecTx(ctx, func(q repository.Querier) error {
		current, err := q.GetChefByIDForUpdate(ctx, repository.UUID(chefID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrChefNotFound
			}
			return fmt.Errorf("failed to get chef: %w", err)
		}
		if !domain.CanTransitionChefStatus(domain.ChefStatus(current.Status), domain.ChefStatusVerified) {
			return domain.ErrChefStatusChange
		}

		applicant, err = q.GetUserByIDForUpdate(ctx, current.UserID)
		if err != nil {
			return fmt.Errorf("failed to get applicant: %w", err)
		}
		if applicant.Role == domain.RoleCustomer {
			if _, err := q.UpdateUserRole(ctx, repository.UpdateUserRoleParams{
				ID:   applicant.ID,
				Role: domain.RoleChef,
			}); err != nil {
				return fmt.Errorf("failed to update role: %w", err)
			}
		}

		chef, err = q.UpdateChefStatus(ctx, repository.UpdateChefStatusParams{
			ID:         current.ID,
			Status:     string(domain.ChefStatusVerified),
			IsVerified: true,
			VerifiedAt: repository.Timestamptz(time.Now()),
		})
		if err != nil {
			return fmt.Errorf("failed to update chef status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := jobs.EnqueueChefApprovedEmail(ctx, s.repo, jobs.ChefApprovedPayload{
		ChefID:       repository.ToUUID(chef.ID),
		Email:        applicant.Email,
		FirstName:    applicant.FirstName.String,
		BusinessName: chef.DisplayName,
		DashboardURL: s.baseURL + "/chef/dashboard",
	}); err != nil {
		return nil, fmt.Errorf("failed to queue approval email: %w", err)
	}

	if err := s.sweepWaitlists(ctx, chef.ID, nil); err != nil {
		return nil, err
	}

	return &chef, nil
}

// Reject declines a pending chef application
func (s *chefService) Reject(ctx context.Context, chefID uuid.UUID, reason string) (*repository.Chef, error) {
	var chef repository.Chef
	var applicant repository.User

	err := s.tx.ExecTx(ctx, func(q repository.Querier) error {
		current, err := q.GetChefByIDForUpdate(ctx, repository.UUID(chefID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrChefNotFound
			}
			return fmt.Errorf("failed to get chef: %w", err)
		}
		if !domain.CanTransitionChefStatus(domain.ChefStatus(current.Status), domain.ChefStatusRejected) {
			return domain.ErrChefStatusChange
		}

		applicant, err = q.GetUserByIDForUpdate(ctx, current.UserID)
		if err != nil {
			return fmt.Errorf("failed to get applicant: %w", err)
		}

		chef, err = q.UpdateChefStatus(ctx, repository.UpdateChefStatusParams{
			ID:             current.ID,
			Status:         string(domain.ChefStatusRejected),
			IsVerified:     false,
			RejectedReason: repository.Text(reason),
		})
		if err != nil {
			return fmt.Errorf("failed to update chef status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := jobs.EnqueueChefRejectedEmail(ctx, s.repo, jobs.ChefRejectedPayload{
		ChefID:       repository.ToUUID(chef.ID),
		Email:        applicant.Email,
		FirstName:    applicant.FirstName.String,
		BusinessName: chef.DisplayName,
		Reason:       reason,
	}); err != nil {
		return nil, fmt.Errorf("failed to queue rejection email: %w", err)
	}

	return &chef, nil
}

// UpdateProfile applies partial updates to the chef profile
func (s *chefService) UpdateProfile(ctx context.Context, chefID uuid.UUID, params UpdateChefProfileParams) (*repository.Chef, error) {
	chef, err := s.repo.UpdateChefProfile(ctx, repository.UpdateChefProfileParams{
		ID:             repository.UUID(chefID),
		DisplayName:    textPtr(params.DisplayName),
		Bio:            textPtr(params.Bio),
		Cuisine:        textPtr(params.Cuisine),
		MaxTravelMiles: float8Ptr(params.MaxTravelMiles),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChefNotFound
		}
		return nil, fmt.Errorf("failed to update chef profile: %w", err)
	}
	return &chef, nil
}

// UpdateServiceArea replaces the chef's served postal codes
func (s *chefService) UpdateServiceArea(ctx context.Context, chefID uuid.UUID, codes []ServiceAreaCode) ([]repository.PostalCode, error) {
	chef, err := s.GetByID(ctx, chefID)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return nil, domain.ErrServiceAreaRequired
	}

	// Resolve and dedupe before touching the join table
	resolved := make([]repository.PostalCode, 0, len(codes))
	seen := make(map[uuid.UUID]bool, len(codes))
	for _, c := range codes {
		code, err := s.location.GetOrCreatePostalCode(ctx, c.PostalCode, c.Country)
		if err != nil {
			return nil, err
		}
		id := repository.ToUUID(code.ID)
		if seen[id] {
			continue
		}
		seen[id] = true
		resolved = append(resolved, *code)
	}

	previous, err := s.repo.ListChefPostalCodes(ctx, chef.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list service area: %w", err)
	}
	had := make(map[uuid.UUID]bool, len(previous))
	for _, p := range previous {
		had[repository.ToUUID(p.ID)] = true
	}

	err = s.tx.ExecTx(ctx, func(q repository.Querier) error {
		if err := q.DeleteChefPostalCodes(ctx, chef.ID); err != nil {
			return fmt.Errorf("failed to clear service area: %w", err)
		}
		for _, code := range resolved {
			if err := q.AddChefPostalCode(ctx, repository.AddChefPostalCodeParams{
				ChefID:       chef.ID,
				PostalCodeID: code.ID,
			}); err != nil {
				return fmt.Errorf("failed to add service area code: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Newly covered areas may have people waiting
	if chef.IsVerified {
		added := make([]repository.PostalCode, 0, len(resolved))
		for _, code := range resolved {
			if !had[repository.ToUUID(code.ID)] {
				added = append(added, code)
			}
		}
		if err := s.sweepWaitlists(ctx, chef.ID, added); err != nil {
			return nil, err
		}
	}

	return resolved, nil
}

// sweepWaitlists queues a notify job for each covered postal code that has
// waitlist entries. A nil codes argument sweeps the chef's whole area.
func (s *chefService) sweepWaitlists(ctx context.Context, chefID pgtype.UUID, codes []repository.PostalCode) error {
	if codes == nil {
		var err error
		codes, err = s.repo.ListChefPostalCodes(ctx, chefID)
		if err != nil {
			return fmt.Errorf("failed to list service area: %w", err)
		}
	}

	for _, code := range codes {
		waiting, err := s.repo.CountWaitlistEntriesByPostalCode(ctx, code.ID)
		if err != nil {
			return fmt.Errorf("failed to count waitlist entries: %w", err)
		}
		if waiting == 0 {
			continue
		}
		if err := jobs.EnqueueNotifyWaitlistArea(ctx, s.repo, jobs.NotifyWaitlistAreaPayload{
			PostalCodeID: repository.ToUUID(code.ID),
		}); err != nil {
			return fmt.Errorf("failed to queue waitlist sweep: %w", err)
		}
	}
	return nil
}

// UploadPhoto stores a chef profile photo and returns its public URL
func (s *chefService) UploadPhoto(ctx context.Context, chefID uuid.UUID, filename, contentType string, content io.Reader) (string, error) {
	chef, err := s.GetByID(ctx, chefID)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.NewValidationError("chef.upload_photo", "photo", "photo must be an image")
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("chefs/%s/profile%s", repository.ToUUID(chef.ID), ext)

	url, err := s.store.Put(ctx, key, content, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	if _, err := s.repo.UpdateChefProfile(ctx, repository.UpdateChefProfileParams{
		ID:       chef.ID,
		PhotoKey: repository.Text(key),
	}); err != nil {
		return "", fmt.Errorf("failed to save photo key: %w", err)
	}

	return url, nil
}

// GetByID retrieves a chef by ID
func (s *chefService) GetByID(ctx context.Context, chefID uuid.UUID) (*repository.Chef, error) {
	chef, err := s.repo.GetChefByID(ctx, repository.UUID(chefID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChefNotFound
		}
		return nil, fmt.Errorf("failed to get chef: %w", err)
	}
	return &chef, nil
}

// GetByUserID retrieves the chef owned by a user
func (s *chefService) GetByUserID(ctx context.Context, userID uuid.UUID) (*repository.Chef, error) {
	chef, err := s.repo.GetChefByUserID(ctx, repository.UUID(userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChefNotFound
		}
		return nil, fmt.Errorf("failed to get chef: %w", err)
	}
	return &chef, nil
}

// ServiceArea lists the postal codes a chef serves
func (s *chefService) ServiceArea(ctx context.Context, chefID uuid.UUID) ([]repository.PostalCode, error) {
	codes, err := s.repo.ListChefPostalCodes(ctx, repository.UUID(chefID))
	if err != nil {
		return nil, fmt.Errorf("failed to list service area: %w", err)
	}
	return codes, nil
}

// ListVerified lists verified chefs for the public directory
func (s *chefService) ListVerified(ctx context.Context, params ListChefsParams) ([]repository.Chef, error) {
	if params.PostalCode != "" {
		code, err := s.repo.GetPostalCodeByCode(ctx, repository.GetPostalCodeByCodeParams{
			Code:    geo.NormalizePostalCode(params.PostalCode),
			Country: geo.NormalizeCountry(params.Country),
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return []repository.Chef{}, nil
			}
			return nil, fmt.Errorf("failed to get postal code: %w", err)
		}

		chefs, err := s.repo.ListVerifiedChefsServingPostalCode(ctx, code.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list chefs: %w", err)
		}
		return chefs, nil
	}

	return s.ListByStatus(ctx, string(domain.ChefStatusVerified), params.Limit, params.Offset)
}

// ListByStatus lists chefs in a given status
func (s *chefService) ListByStatus(ctx context.Context, status string, limit, offset int32) ([]repository.Chef, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	chefs, err := s.repo.ListChefsByStatus(ctx, repository.ListChefsByStatusParams{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list chefs: %w", err)
	}
	return chefs, nil
}

// float8Ptr maps an optional float to its column value. Nil leaves the
// column unchanged.
func float8Ptr(f *float64) pgtype.Float8 {
	if f == nil {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: *f, Valid: true}
}
