package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/localplate/localplate/internal/auth"
	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/jobs"
	"github.com/localplate/localplate/internal/repository"
)

const (
	// TokenExpiry is how long a reset token is valid (1 hour)
	TokenExpiry = 1 * time.Hour

	// RateLimitPerEmail is max reset requests per email in the rate limit window
	RateLimitPerEmail = 3

	// RateLimitPerIP is max reset requests per IP address in the rate limit window
	RateLimitPerIP = 5

	// RateLimitWindow is the time window for rate limiting (15 minutes)
	RateLimitWindow = 15 * time.Minute
)

// ErrRateLimitExceeded indicates too many password reset requests
var ErrRateLimitExceeded = domain.Errorf(domain.ERATELIMIT, "", "Too many password reset requests, please try again later")

// PasswordResetService handles the forgot-password flow
type PasswordResetService interface {
	// RequestReset issues a reset token and queues the email. Unknown
	// emails return nil so the endpoint does not leak which addresses
	// have accounts.
	RequestReset(ctx context.Context, email, ipAddress string) error

	// ResetPassword sets a new password using an emailed token
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

type passwordResetService struct {
	repo    repository.Querier
	tx      repository.TxRunner
	baseURL string
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(repo repository.Querier, tx repository.TxRunner, baseURL string) PasswordResetService {
	return &passwordResetService{
		repo:    repo,
		tx:      tx,
		baseURL: baseURL,
	}
}

// RequestReset initiates a password reset flow
func (s *passwordResetService) RequestReset(ctx context.Context, email, ipAddress string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	since := pgtype.Timestamptz{Time: time.Now().Add(-RateLimitWindow), Valid: true}
	emailCount, err := s.repo.CountRecentPasswordResetTokensByEmail(ctx, repository.CountRecentPasswordResetTokensByEmailParams{
		Email: email,
		Since: since,
	})
	if err != nil {
		return fmt.Errorf("failed to check email rate limit: %w", err)
	}
	if emailCount >= RateLimitPerEmail {
		return ErrRateLimitExceeded
	}

	ipCount, err := s.repo.CountRecentPasswordResetTokensByIP(ctx, repository.CountRecentPasswordResetTokensByIPParams{
		IpAddress: repository.Text(ipAddress),
		Since:     since,
	})
	if err != nil {
		return fmt.Errorf("failed to check IP rate limit: %w", err)
	}
	if ipCount >= RateLimitPerIP {
		return ErrRateLimitExceeded
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Do not reveal whether the address has an account
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	rawToken, err := generateToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	expiresAt := time.Now().Add(TokenExpiry)
	_, err = s.repo.CreatePasswordResetToken(ctx, repository.CreatePasswordResetTokenParams{
		UserID:    user.ID,
		Email:     email,
		TokenHash: hashToken(rawToken),
		IpAddress: repository.Text(ipAddress),
		ExpiresAt: pgtype.Timestamptz{Time: expiresAt, Valid: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	err = jobs.EnqueuePasswordReset(ctx, s.repo, jobs.PasswordResetPayload{
		Email:     user.Email,
		FirstName: user.FirstName.String,
		ResetURL:  fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, rawToken),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to queue reset email: %w", err)
	}

	return nil
}

// ResetPassword sets a new password using an emailed token
func (s *passwordResetService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	token, err := s.repo.GetPasswordResetTokenByHash(ctx, hashToken(rawToken))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrInvalidToken
		}
		return fmt.Errorf("failed to get reset token: %w", err)
	}
	if token.UsedAt.Valid {
		return domain.ErrInvalidToken
	}
	if token.ExpiresAt.Time.Before(time.Now()) {
		return domain.ErrTokenExpired
	}

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) || errors.Is(err, auth.ErrPasswordTooLong) {
			return domain.NewValidationError("password_reset.reset", "password", err.Error())
		}
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.tx.ExecTx(ctx, func(q repository.Querier) error {
		if err := q.MarkPasswordResetTokenUsed(ctx, token.ID); err != nil {
			return fmt.Errorf("failed to mark token used: %w", err)
		}
		if err := q.UpdateUserPassword(ctx, repository.UpdateUserPasswordParams{
			ID:           token.UserID,
			PasswordHash: passwordHash,
		}); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		return nil
	})
}
