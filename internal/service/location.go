package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/geo"
	"github.com/localplate/localplate/internal/repository"
)

// LocationService resolves postal codes and answers chef-coverage questions
type LocationService interface {
	// GetOrCreatePostalCode validates and normalizes a raw postal code,
	// inserting the row on first sighting. The display code keeps the
	// first-seen formatting.
	GetOrCreatePostalCode(ctx context.Context, raw, country string) (*repository.PostalCode, error)

	// GetUserLocation returns the postal code saved on the user's profile
	GetUserLocation(ctx context.Context, userID uuid.UUID) (*repository.PostalCode, error)

	// HasChefCoverage reports whether a verified chef serves the postal
	// code on the user's profile
	HasChefCoverage(ctx context.Context, userID uuid.UUID) (bool, error)

	// HasChefCoverageForArea reports whether a verified chef serves the
	// given postal code
	HasChefCoverageForArea(ctx context.Context, raw, country string) (bool, error)

	// UserCanAccessChefFeatures combines the location and coverage checks
	// into a single gate for marketplace features
	UserCanAccessChefFeatures(ctx context.Context, userID uuid.UUID) (*domain.FeatureAccess, error)
}

type locationService struct {
	repo repository.Querier
}

// NewLocationService creates a new LocationService
func NewLocationService(repo repository.Querier) LocationService {
	return &locationService{repo: repo}
}

func (s *locationService) GetOrCreatePostalCode(ctx context.Context, raw, country string) (*repository.PostalCode, error) {
	country = geo.NormalizeCountry(country)
	if !geo.ValidatePostalCode(raw, country) {
		return nil, domain.ErrInvalidPostalCode
	}

	code, err := s.repo.CreatePostalCode(ctx, repository.CreatePostalCodeParams{
		Code:        geo.NormalizePostalCode(raw),
		DisplayCode: raw,
		Country:     country,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert postal code: %w", err)
	}
	return &code, nil
}

func (s *locationService) GetUserLocation(ctx context.Context, userID uuid.UUID) (*repository.PostalCode, error) {
	user, err := s.repo.GetUserByID(ctx, repository.UUID(userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.PostalCodeID.Valid {
		return nil, domain.ErrNoLocationOnProfile
	}

	code, err := s.repo.GetPostalCodeByID(ctx, user.PostalCodeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostalCodeNotFound
		}
		return nil, fmt.Errorf("failed to get postal code: %w", err)
	}
	return &code, nil
}

func (s *locationService) HasChefCoverage(ctx context.Context, userID uuid.UUID) (bool, error) {
	code, err := s.GetUserLocation(ctx, userID)
	if err != nil {
		return false, err
	}

	covered, err := s.repo.HasVerifiedChefForPostalCode(ctx, code.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check chef coverage: %w", err)
	}
	return covered, nil
}

func (s *locationService) HasChefCoverageForArea(ctx context.Context, raw, country string) (bool, error) {
	country = geo.NormalizeCountry(country)
	if !geo.ValidatePostalCode(raw, country) {
		return false, domain.ErrInvalidPostalCode
	}

	code, err := s.repo.GetPostalCodeByCode(ctx, repository.GetPostalCodeByCodeParams{
		Code:    geo.NormalizePostalCode(raw),
		Country: country,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get postal code: %w", err)
	}

	covered, err := s.repo.HasVerifiedChefForPostalCode(ctx, code.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check chef coverage: %w", err)
	}
	return covered, nil
}

func (s *locationService) UserCanAccessChefFeatures(ctx context.Context, userID uuid.UUID) (*domain.FeatureAccess, error) {
	code, err := s.GetUserLocation(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoLocationOnProfile) {
			return &domain.FeatureAccess{Reason: domain.AccessReasonNoLocation}, nil
		}
		if errors.Is(err, domain.ErrPostalCodeNotFound) {
			return &domain.FeatureAccess{Reason: domain.AccessReasonInvalidPostalCode}, nil
		}
		return nil, err
	}

	if !geo.ValidatePostalCode(code.Code, code.Country) {
		return &domain.FeatureAccess{Reason: domain.AccessReasonInvalidPostalCode}, nil
	}

	covered, err := s.repo.HasVerifiedChefForPostalCode(ctx, code.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check chef coverage: %w", err)
	}
	if !covered {
		return &domain.FeatureAccess{Reason: domain.AccessReasonNoChefCoverage}, nil
	}

	return &domain.FeatureAccess{Allowed: true, Reason: domain.AccessReasonGranted}, nil
}
