package bootstrap_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localplate/localplate/internal/auth"
	"github.com/localplate/localplate/internal/bootstrap"
	"github.com/localplate/localplate/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("skips when no config is provided", func(t *testing.T) {
		q := repository.NewMockQuerier()

		err := bootstrap.EnsureAdmin(ctx, q, nil, discardLogger())

		require.NoError(t, err)
		assert.Empty(t, q.CallLog)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		q := repository.NewMockQuerier()
		cfg := &bootstrap.AdminConfig{Email: "ops@localplate.test", Password: "short"}

		err := bootstrap.EnsureAdmin(ctx, q, cfg, discardLogger())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 12 characters")
	})

	t.Run("creates the admin when missing", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.GetUserByEmailFunc = func(ctx context.Context, email string) (repository.User, error) {
			return repository.User{}, pgx.ErrNoRows
		}
		var created repository.CreateAdminUserParams
		q.CreateAdminUserFunc = func(ctx context.Context, arg repository.CreateAdminUserParams) (repository.User, error) {
			created = arg
			return repository.User{ID: repository.UUID(uuid.New()), Email: arg.Email, Role: "admin"}, nil
		}

		cfg := &bootstrap.AdminConfig{Email: "ops@localplate.test", Password: "a-long-enough-password"}
		err := bootstrap.EnsureAdmin(ctx, q, cfg, discardLogger())

		require.NoError(t, err)
		assert.Equal(t, "ops@localplate.test", created.Email)
		assert.Equal(t, "Admin", created.FirstName.String)
		assert.Equal(t, "User", created.LastName.String)
		assert.NotEqual(t, cfg.Password, created.PasswordHash)
		assert.NoError(t, auth.VerifyPassword(cfg.Password, created.PasswordHash))
	})

	t.Run("normalizes the configured email", func(t *testing.T) {
		q := repository.NewMockQuerier()
		var lookedUp string
		q.GetUserByEmailFunc = func(ctx context.Context, email string) (repository.User, error) {
			lookedUp = email
			return repository.User{}, pgx.ErrNoRows
		}
		var created repository.CreateAdminUserParams
		q.CreateAdminUserFunc = func(ctx context.Context, arg repository.CreateAdminUserParams) (repository.User, error) {
			created = arg
			return repository.User{ID: repository.UUID(uuid.New()), Email: arg.Email, Role: "admin"}, nil
		}

		cfg := &bootstrap.AdminConfig{Email: " Ops@LocalPlate.test ", Password: "a-long-enough-password"}
		err := bootstrap.EnsureAdmin(ctx, q, cfg, discardLogger())

		require.NoError(t, err)
		assert.Equal(t, "ops@localplate.test", lookedUp)
		assert.Equal(t, "ops@localplate.test", created.Email)
	})

	t.Run("does nothing when the admin already exists", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.GetUserByEmailFunc = func(ctx context.Context, email string) (repository.User, error) {
			return repository.User{ID: repository.UUID(uuid.New()), Email: email, Role: "admin"}, nil
		}

		cfg := &bootstrap.AdminConfig{Email: "ops@localplate.test", Password: "a-long-enough-password"}
		err := bootstrap.EnsureAdmin(ctx, q, cfg, discardLogger())

		require.NoError(t, err)
		assert.NotContains(t, q.CallLog, "CreateAdminUser")
	})

	t.Run("tolerates losing the creation race", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.GetUserByEmailFunc = func(ctx context.Context, email string) (repository.User, error) {
			return repository.User{}, pgx.ErrNoRows
		}
		q.CreateAdminUserFunc = func(ctx context.Context, arg repository.CreateAdminUserParams) (repository.User, error) {
			return repository.User{}, pgx.ErrNoRows
		}

		cfg := &bootstrap.AdminConfig{Email: "ops@localplate.test", Password: "a-long-enough-password"}
		err := bootstrap.EnsureAdmin(ctx, q, cfg, discardLogger())

		require.NoError(t, err)
	})
}
