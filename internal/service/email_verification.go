package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/jobs"
	"github.com/localplate/localplate/internal/repository"
)

const (
	// TokenLength is the number of random bytes in an emailed token
	// (32 bytes = 256 bits, hex-encoded on the wire)
	TokenLength = 32

	// VerificationTokenExpiry is how long a verification token is valid
	VerificationTokenExpiry = 24 * time.Hour

	// VerificationRateLimitPerUser is max verification requests per user in the rate limit window
	VerificationRateLimitPerUser = 5

	// VerificationRateLimitPerIP is max verification requests per IP address in the rate limit window
	VerificationRateLimitPerIP = 10

	// VerificationRateLimitWindow is the time window for verification rate limiting
	VerificationRateLimitWindow = 1 * time.Hour
)

var (
	// ErrVerificationRateLimitExceeded indicates too many verification requests
	ErrVerificationRateLimitExceeded = domain.Errorf(domain.ERATELIMIT, "", "Too many verification requests, please try again later")

	// ErrEmailAlreadyVerified indicates the email is already verified
	ErrEmailAlreadyVerified = domain.Errorf(domain.ECONFLICT, "", "Email is already verified")
)

// EmailVerificationService handles email verification flows
type EmailVerificationService interface {
	// RequestVerification issues a verification token and queues the email
	RequestVerification(ctx context.Context, userID uuid.UUID, ipAddress string) error

	// VerifyEmail completes the verification using an emailed token
	VerifyEmail(ctx context.Context, rawToken string) error
}

type emailVerificationService struct {
	repo    repository.Querier
	tx      repository.TxRunner
	baseURL string
}

// NewEmailVerificationService creates a new email verification service.
// baseURL is the public base URL links are built against.
func NewEmailVerificationService(repo repository.Querier, tx repository.TxRunner, baseURL string) EmailVerificationService {
	return &emailVerificationService{
		repo:    repo,
		tx:      tx,
		baseURL: baseURL,
	}
}

// RequestVerification issues a verification token and queues the email
func (s *emailVerificationService) RequestVerification(ctx context.Context, userID uuid.UUID, ipAddress string) error {
	user, err := s.repo.GetUserByID(ctx, repository.UUID(userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user.EmailVerified {
		return ErrEmailAlreadyVerified
	}

	since := pgtype.Timestamptz{Time: time.Now().Add(-VerificationRateLimitWindow), Valid: true}
	userCount, err := s.repo.CountRecentEmailVerificationTokensByUser(ctx, repository.CountRecentEmailVerificationTokensByUserParams{
		UserID: user.ID,
		Since:  since,
	})
	if err != nil {
		return fmt.Errorf("failed to check user rate limit: %w", err)
	}
	if userCount >= VerificationRateLimitPerUser {
		return ErrVerificationRateLimitExceeded
	}

	ipCount, err := s.repo.CountRecentEmailVerificationTokensByIP(ctx, repository.CountRecentEmailVerificationTokensByIPParams{
		IpAddress: repository.Text(ipAddress),
		Since:     since,
	})
	if err != nil {
		return fmt.Errorf("failed to check IP rate limit: %w", err)
	}
	if ipCount >= VerificationRateLimitPerIP {
		return ErrVerificationRateLimitExceeded
	}

	rawToken, err := generateToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	expiresAt := time.Now().Add(VerificationTokenExpiry)
	_, err = s.repo.CreateEmailVerificationToken(ctx, repository.CreateEmailVerificationTokenParams{
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		IpAddress: repository.Text(ipAddress),
		ExpiresAt: pgtype.Timestamptz{Time: expiresAt, Valid: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}

	err = jobs.EnqueueVerificationEmail(ctx, s.repo, jobs.VerificationPayload{
		Email:           user.Email,
		FirstName:       user.FirstName.String,
		VerificationURL: fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, rawToken),
		ExpiresAt:       expiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to queue verification email: %w", err)
	}

	return nil
}

// VerifyEmail completes the verification using an emailed token
func (s *emailVerificationService) VerifyEmail(ctx context.Context, rawToken string) error {
	token, err := s.repo.GetEmailVerificationTokenByHash(ctx, hashToken(rawToken))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrInvalidToken
		}
		return fmt.Errorf("failed to get verification token: %w", err)
	}
	if token.UsedAt.Valid {
		return domain.ErrInvalidToken
	}
	if token.ExpiresAt.Time.Before(time.Now()) {
		return domain.ErrTokenExpired
	}

	err = s.tx.ExecTx(ctx, func(q repository.Querier) error {
		if err := q.MarkEmailVerificationTokenUsed(ctx, token.ID); err != nil {
			return fmt.Errorf("failed to mark token used: %w", err)
		}
		if err := q.SetUserEmailVerified(ctx, token.UserID); err != nil {
			return fmt.Errorf("failed to mark email verified: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// generateToken creates a cryptographically secure random token
func generateToken() (string, error) {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashToken is the SHA-256 hex digest stored in place of the raw token
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
