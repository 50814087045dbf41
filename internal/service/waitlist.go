package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/geo"
	"github.com/localplate/localplate/internal/jobs"
	"github.com/localplate/localplate/internal/repository"
)

// WaitlistStatus is one waitlist entry with the area's current coverage.
type WaitlistStatus struct {
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	PlaceName  string    `json:"place_name,omitempty"`
	Covered    bool      `json:"covered"`
	Notified   bool      `json:"notified"`
	JoinedAt   time.Time `json:"joined_at"`
}

// WaitlistService manages the waitlist for areas no chef serves yet.
type WaitlistService interface {
	// Join adds the user to the waitlist for a postal code. Areas a
	// verified chef already serves cannot be joined.
	Join(ctx context.Context, userID uuid.UUID, postalCode, country string) (*repository.AreaWaitlistEntry, error)

	// Leave removes the user's waitlist entry for a postal code.
	Leave(ctx context.Context, userID uuid.UUID, postalCode, country string) error

	// Status returns the user's waitlist entries, newest first.
	Status(ctx context.Context, userID uuid.UUID) ([]WaitlistStatus, error)

	// NotifyArea emails everyone still waiting on a postal code that a
	// chef now serves it, and returns how many were notified. Runs from
	// the job queue after a chef's service area gains the code.
	NotifyArea(ctx context.Context, postalCodeID uuid.UUID) (int, error)
}

type waitlistService struct {
	repo     repository.Querier
	location LocationService
	baseURL  string
}

// NewWaitlistService creates a new WaitlistService instance
func NewWaitlistService(repo repository.Querier, location LocationService, baseURL string) WaitlistService {
	return &waitlistService{
		repo:     repo,
		location: location,
		baseURL:  baseURL,
	}
}

func (s *waitlistService) Join(ctx context.Context, userID uuid.UUID, postalCode, country string) (*repository.AreaWaitlistEntry, error) {
	code, err := s.location.GetOrCreatePostalCode(ctx, postalCode, country)
	if err != nil {
		return nil, err
	}

	covered, err := s.repo.HasVerifiedChefForPostalCode(ctx, code.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check chef coverage: %w", err)
	}
	if covered {
		return nil, domain.ErrAreaAlreadyCovered
	}

	entry, err := s.repo.CreateWaitlistEntry(ctx, repository.CreateWaitlistEntryParams{
		UserID:       repository.UUID(userID),
		PostalCodeID: code.ID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAlreadyOnWaitlist
		}
		return nil, fmt.Errorf("failed to create waitlist entry: %w", err)
	}
	return &entry, nil
}

func (s *waitlistService) Leave(ctx context.Context, userID uuid.UUID, postalCode, country string) error {
	// Leaving never creates postal code rows, so the lookup is direct.
	code, err := s.repo.GetPostalCodeByCode(ctx, repository.GetPostalCodeByCodeParams{
		Code:    geo.NormalizePostalCode(postalCode),
		Country: geo.NormalizeCountry(country),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrWaitlistEntryNotFound
		}
		return fmt.Errorf("failed to get postal code: %w", err)
	}

	deleted, err := s.repo.DeleteWaitlistEntry(ctx, repository.DeleteWaitlistEntryParams{
		UserID:       repository.UUID(userID),
		PostalCodeID: code.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete waitlist entry: %w", err)
	}
	if deleted == 0 {
		return domain.ErrWaitlistEntryNotFound
	}
	return nil
}

func (s *waitlistService) Status(ctx context.Context, userID uuid.UUID) ([]WaitlistStatus, error) {
	entries, err := s.repo.ListWaitlistEntriesByUser(ctx, repository.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist entries: %w", err)
	}

	statuses := make([]WaitlistStatus, len(entries))
	for i, entry := range entries {
		covered, err := s.repo.HasVerifiedChefForPostalCode(ctx, entry.PostalCodeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check chef coverage: %w", err)
		}
		statuses[i] = WaitlistStatus{
			PostalCode: entry.PostalDisplayCode,
			Country:    entry.PostalCountry,
			PlaceName:  entry.PostalPlaceName.String,
			Covered:    covered,
			Notified:   entry.Notified,
			JoinedAt:   entry.CreatedAt.Time,
		}
	}
	return statuses, nil
}

func (s *waitlistService) NotifyArea(ctx context.Context, postalCodeID uuid.UUID) (int, error) {
	entries, err := s.repo.ListUnnotifiedWaitlistEntriesByPostalCode(ctx, repository.UUID(postalCodeID))
	if err != nil {
		return 0, fmt.Errorf("failed to list waitlist entries: %w", err)
	}

	// Enqueue before marking. A failure between the two re-sends the
	// email on retry rather than dropping it.
	notified := 0
	for _, entry := range entries {
		if err := jobs.EnqueueWaitlistAreaOpenedEmail(ctx, s.repo, jobs.WaitlistAreaOpenedPayload{
			Email:      entry.UserEmail,
			FirstName:  entry.UserFirstName.String,
			PostalCode: entry.PostalDisplayCode,
			PlaceName:  entry.PostalPlaceName.String,
			BrowseURL:  s.baseURL + "/offerings",
		}); err != nil {
			return notified, fmt.Errorf("failed to enqueue area-opened email: %w", err)
		}
		if err := s.repo.MarkWaitlistEntryNotified(ctx, entry.ID); err != nil {
			return notified, fmt.Errorf("failed to mark entry notified: %w", err)
		}
		notified++
	}
	return notified, nil
}
