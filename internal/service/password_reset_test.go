package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localplate/localplate/internal/auth"
	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/jobs"
	"github.com/localplate/localplate/internal/repository"
	"github.com/localplate/localplate/internal/service"
)

func TestPasswordResetService_RequestReset(t *testing.T) {
	userID := uuid.New()

	noRecentTokens := func(q *repository.MockQuerier) {
		q.CountRecentPasswordResetTokensByEmailFunc = func(ctx context.Context, arg repository.CountRecentPasswordResetTokensByEmailParams) (int64, error) {
			return 0, nil
		}
		q.CountRecentPasswordResetTokensByIPFunc = func(ctx context.Context, arg repository.CountRecentPasswordResetTokensByIPParams) (int64, error) {
			return 0, nil
		}
	}

	t.Run("unknown emails are swallowed", func(t *testing.T) {
		q := repository.NewMockQuerier()
		noRecentTokens(q)
		q.GetUserByEmailFunc = func(ctx context.Context, email string) (repository.User, error) {
			assert.Equal(t, "ghost@example.com", email)
			return repository.User{}, pgx.ErrNoRows
		}
		captured := captureJobs(q)
		svc := service.NewPasswordResetService(q, &repository.MockTxRunner{Q: q}, "https://localplate.test")

		err := svc.RequestReset(context.Background(), "  Ghost@Example.COM ", "203.0.113.9")
		require.NoError(t, err)
		assert.Empty(t, *captured)
		assert.NotContains(t, q.CallLog, "CreatePasswordResetToken")
	})

	t.Run("enforces the per-email rate limit", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.CountRecentPasswordResetTokensByEmailFunc = func(ctx context.Context, arg repository.CountRecentPasswordResetTokensByEmailParams) (int64, error) {
			assert.Equal(t, "ada@example.com", arg.Email)
			assert.WithinDuration(t, time.Now().Add(-service.RateLimitWindow), arg.Since.Time, 5*time.Second)
			return service.RateLimitPerEmail, nil
		}
		svc := service.NewPasswordResetService(q, &repository.MockTxRunner{Q: q}, "https://localplate.test")

		err := svc.RequestReset(context.Background(), "ada@example.com", "203.0.113.9")
		assert.ErrorIs(t, err, service.ErrRateLimitExceeded)
		// Rate limiting fires before the user lookup, so a limited
		// request cannot probe for account existence either.
		assert.NotContains(t, q.CallLog, "GetUserByEmail")
	})

	t.Run("enforces the per-IP rate limit", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.CountRecentPasswordResetTokensByEmailFunc = func(ctx context.Context, arg repository.CountRecentPasswordResetTokensByEmailParams) (int64, error) {
			return 0, nil
		}
		q.CountRecentPasswordResetTokensByIPFunc = func(ctx context.Context, arg repository.CountRecentPasswordResetTokensByIPParams) (int64, error) {
			assert.Equal(t, "203.0.113.9", arg.IpAddress.String)
			return service.RateLimitPerIP, nil
		}
		svc := service.NewPasswordResetService(q, &repository.MockTxRunner{Q: q}, "https://localplate.test")

		err := svc.RequestReset(context.Background(), "ada@example.com", "203.0.113.9")
		assert.ErrorIs(t, err, service.ErrRateLimitExceeded)
	})

	t.Run("stores a hashed token and queues the email", func(t *testing.T) {
		q := repository.NewMockQuerier()
		noRecentTokens(q)
		q.GetUserByEmailFunc = func(ctx context.Context, email string) (repository.User, error) {
			return repository.User{
				ID:        repository.UUID(userID),
				Email:     email,
				FirstName: repository.Text("Ada"),
			}, nil
		}
		var created *repository.CreatePasswordResetTokenParams
		q.CreatePasswordResetTokenFunc = func(ctx context.Context, arg repository.CreatePasswordResetTokenParams) (repository.PasswordResetToken, error) {
			created = &arg
			return repository.PasswordResetToken{ID: repository.UUID(uuid.New()), UserID: arg.UserID}, nil
		}
		captured := captureJobs(q)
		svc := service.NewPasswordResetService(q, &repository.MockTxRunner{Q: q}, "https://localplate.test")

		require.NoError(t, svc.RequestReset(context.Background(), "Ada@example.com", "203.0.113.9"))

		require.NotNil(t, created)
		assert.Equal(t, repository.UUID(userID), created.UserID)
		assert.Equal(t, "ada@example.com", created.Email)
		assert.Equal(t, "203.0.113.9", created.IpAddress.String)
		assert.WithinDuration(t, time.Now().Add(service.TokenExpiry), created.ExpiresAt.Time, 5*time.Second)

		require.Equal(t, []string{jobs.JobTypePasswordReset}, enqueuedJobTypes(*captured))
		var payload jobs.PasswordResetPayload
		require.NoError(t, json.Unmarshal((*captured)[0].Payload, &payload))
		assert.Equal(t, "ada@example.com", payload.Email)
		assert.Equal(t, "Ada", payload.FirstName)

		raw := strings.TrimPrefix(payload.ResetURL, "https://localplate.test/reset-password?token=")
		require.NotEqual(t, payload.ResetURL, raw)
		assert.Len(t, raw, service.TokenLength*2)
		assert.Equal(t, sha256Hex(raw), created.TokenHash)
	})
}

func TestPasswordResetService_ResetPassword(t *testing.T) {
	raw := "feedface feedface feedface feedface"
	tokenID := uuid.New()
	userID := uuid.New()

	liveToken := func() repository.PasswordResetToken {
		return repository.PasswordResetToken{
			ID:        repository.UUID(tokenID),
			UserID:    repository.UUID(userID),
			Email:     "ada@example.com",
			TokenHash: sha256Hex(raw),
			ExpiresAt: pgtype.Timestamptz{Time: time.Now().Add(30 * time.Minute), Valid: true},
		}
	}

	t.Run("an unknown token is invalid", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.GetPasswordResetTokenByHashFunc = func(ctx context.Context, tokenHash string) (repository.PasswordResetToken, error) {
			assert.Equal(t, sha256Hex(raw), tokenHash)
			return repository.PasswordResetToken{}, pgx.ErrNoRows
		}
		svc := service.NewPasswordResetService(q, &repository.MockTxRunner{Q: q}, "https://localplate.test")

		err := svc.ResetPassword(context.Background(), raw, "correct horse battery staple")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("a used token cannot be replayed", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.GetPasswordResetTokenByHashFunc = func(ctx context.Context, tokenHash string) (repository.PasswordResetToken, error) {
			token := liveToken()
			token.UsedAt = pgtype.Timestamptz{Time: time.Now().Add(-time.Minute), Valid: true}
			return token, nil
		}
		tx := &repository.MockTxRunner{Q: q}
		svc := service.NewPasswordResetService(q, tx, "https://localplate.test")

		err := svc.ResetPassword(context.Background(), raw, "correct horse battery staple")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
		assert.Equal(t, 0, tx.Calls)
	})

	t.Run("an expired token is reported as expired", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.GetPasswordResetTokenByHashFunc = func(ctx context.Context, tokenHash string) (repository.PasswordResetToken, error) {
			token := liveToken()
			token.ExpiresAt = pgtype.Timestamptz{Time: time.Now().Add(-time.Minute), Valid: true}
			return token, nil
		}
		svc := service.NewPasswordResetService(q, &repository.MockTxRunner{Q: q}, "https://localplate.test")

		err := svc.ResetPassword(context.Background(), raw, "correct horse battery staple")
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})

	t.Run("a short password is a validation error", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.GetPasswordResetTokenByHashFunc = func(ctx context.Context, tokenHash string) (repository.PasswordResetToken, error) {
			return liveToken(), nil
		}
		tx := &repository.MockTxRunner{Q: q}
		svc := service.NewPasswordResetService(q, tx, "https://localplate.test")

		err := svc.ResetPassword(context.Background(), raw, "short")
		assert.True(t, domain.IsValidationError(err))
		assert.Equal(t, 0, tx.Calls)
	})

	t.Run("burns the token and stores the new hash together", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.GetPasswordResetTokenByHashFunc = func(ctx context.Context, tokenHash string) (repository.PasswordResetToken, error) {
			return liveToken(), nil
		}
		var marked pgtype.UUID
		q.MarkPasswordResetTokenUsedFunc = func(ctx context.Context, id pgtype.UUID) error {
			marked = id
			return nil
		}
		var updated *repository.UpdateUserPasswordParams
		q.UpdateUserPasswordFunc = func(ctx context.Context, arg repository.UpdateUserPasswordParams) error {
			updated = &arg
			return nil
		}
		tx := &repository.MockTxRunner{Q: q}
		svc := service.NewPasswordResetService(q, tx, "https://localplate.test")

		require.NoError(t, svc.ResetPassword(context.Background(), raw, "correct horse battery staple"))
		assert.Equal(t, 1, tx.Calls)
		assert.Equal(t, repository.UUID(tokenID), marked)

		require.NotNil(t, updated)
		assert.Equal(t, repository.UUID(userID), updated.ID)
		assert.NoError(t, auth.VerifyPassword("correct horse battery staple", updated.PasswordHash))
	})
}
