package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/localplate/localplate/internal/auth"
	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/repository"
)

// dummyHash absorbs a bcrypt compare when the email has no account, so a
// failed login costs the same with or without a matching user.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// UpdateProfileParams carries the optional profile fields for UpdateProfile.
// Nil pointers leave the corresponding column unchanged.
type UpdateProfileParams struct {
	FirstName           *string
	LastName            *string
	Phone               *string
	DietaryRestrictions []string
	PostalCode          *string
	Country             string
}

// UserService provides business logic for user accounts
type UserService interface {
	// Register creates a new customer account
	Register(ctx context.Context, email, password, firstName, lastName string) (*repository.User, error)

	// Authenticate verifies email/password and returns the user if valid
	Authenticate(ctx context.Context, email, password string) (*repository.User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, userID uuid.UUID) (*repository.User, error)

	// UpdateProfile applies partial profile updates, routing a postal code
	// change through the location service
	UpdateProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (*repository.User, error)
}

type userService struct {
	repo     repository.Querier
	location LocationService
}

// NewUserService creates a new UserService instance
func NewUserService(repo repository.Querier, location LocationService) UserService {
	return &userService{repo: repo, location: location}
}

// Register creates a new customer account
func (s *userService) Register(ctx context.Context, email, password, firstName, lastName string) (*repository.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidEmail
	}

	// Check if the email is already taken
	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrUserExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) || errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, domain.NewValidationError("user.register", "password", err.Error())
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleCustomer,
		FirstName:    repository.Text(strings.TrimSpace(firstName)),
		LastName:     repository.Text(strings.TrimSpace(lastName)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies email/password and returns the user if valid
func (s *userService) Authenticate(ctx context.Context, email, password string) (*repository.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Burn a compare anyway
			_ = auth.VerifyPassword(password, dummyHash)
			return nil, domain.ErrInvalidPassword
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, domain.ErrInvalidPassword
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	switch domain.UserStatus(user.Status) {
	case domain.UserStatusSuspended:
		return nil, domain.ErrAccountSuspended
	case domain.UserStatusClosed:
		return nil, domain.ErrInvalidPassword
	}

	// Hashes minted at an older work factor are upgraded while the
	// plaintext is in hand. Login does not fail if the upgrade does.
	if auth.NeedsRehash(user.PasswordHash) {
		if rehash, err := auth.HashPassword(password); err == nil {
			if err := s.repo.UpdateUserPassword(ctx, repository.UpdateUserPasswordParams{
				ID:           user.ID,
				PasswordHash: rehash,
			}); err == nil {
				user.PasswordHash = rehash
			}
		}
	}

	return &user, nil
}

// GetByID retrieves a user by ID
func (s *userService) GetByID(ctx context.Context, userID uuid.UUID) (*repository.User, error) {
	user, err := s.repo.GetUserByID(ctx, repository.UUID(userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies partial profile updates
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (*repository.User, error) {
	if params.DietaryRestrictions != nil {
		normalized := make([]string, 0, len(params.DietaryRestrictions))
		for _, tag := range params.DietaryRestrictions {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if !domain.IsKnownDietaryRestriction(tag) {
				return nil, domain.NewValidationError("user.update_profile", "dietary_restrictions",
					fmt.Sprintf("unknown dietary restriction %q", tag))
			}
			normalized = append(normalized, tag)
		}
		params.DietaryRestrictions = normalized
	}

	if params.PostalCode != nil {
		code, err := s.location.GetOrCreatePostalCode(ctx, *params.PostalCode, params.Country)
		if err != nil {
			return nil, err
		}
		if _, err := s.repo.UpdateUserLocation(ctx, repository.UpdateUserLocationParams{
			ID:           repository.UUID(userID),
			PostalCodeID: code.ID,
		}); err != nil {
			return nil, fmt.Errorf("failed to update user location: %w", err)
		}
	}

	user, err := s.repo.UpdateUserProfile(ctx, repository.UpdateUserProfileParams{
		ID:                  repository.UUID(userID),
		FirstName:           textPtr(params.FirstName),
		LastName:            textPtr(params.LastName),
		Phone:               textPtr(params.Phone),
		DietaryRestrictions: params.DietaryRestrictions,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &user, nil
}

// textPtr maps an optional string to its column value. Nil means leave the
// column as is, an empty string clears it.
func textPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: strings.TrimSpace(*s), Valid: true}
}
