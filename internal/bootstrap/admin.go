// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/localplate/localplate/internal/auth"
	"github.com/localplate/localplate/internal/repository"
)

// AdminConfig carries the bootstrap admin account settings.
type AdminConfig struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// adminMinPasswordLength is stricter than the customer minimum since the
// account can approve chefs and issue refunds.
const adminMinPasswordLength = 12

// Validate checks that the admin configuration is usable.
func (c *AdminConfig) Validate() error {
	switch {
	case c.Email == "":
		return errors.New("admin email is required")
	case c.Password == "":
		return errors.New("admin password is required")
	case len(c.Password) < adminMinPasswordLength:
		return fmt.Errorf("admin password must be at least %d characters", adminMinPasswordLength)
	}
	return nil
}

// EnsureAdmin creates the initial admin user if it doesn't exist.
// Idempotent, safe to call on every startup.
//
// If the admin user already exists (by email), it returns without error.
// If cfg is nil or has empty Email/Password, it logs a warning and skips,
// which allows running without an admin in development.
func EnsureAdmin(ctx context.Context, repo repository.Querier, cfg *AdminConfig, logger *slog.Logger) error {
	if cfg == nil || cfg.Email == "" || cfg.Password == "" {
		logger.Warn("bootstrap: skipping admin creation, LOCALPLATE_ADMIN_EMAIL or LOCALPLATE_ADMIN_PASSWORD not set",
			"hint", "set these environment variables to create an admin user on first startup",
		)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid admin configuration: %w", err)
	}

	// Stored lowercase, matching what login does to the submitted email.
	email := strings.ToLower(strings.TrimSpace(cfg.Email))

	existing, err := repo.GetUserByEmail(ctx, email)
	if err == nil && existing.ID.Valid {
		logger.Info("bootstrap: admin user already exists", "email", email)
		return nil
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}

	passwordHash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	firstName := cfg.FirstName
	if firstName == "" {
		firstName = "Admin"
	}
	lastName := cfg.LastName
	if lastName == "" {
		lastName = "User"
	}

	user, err := repo.CreateAdminUser(ctx, repository.CreateAdminUserParams{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    pgtype.Text{String: firstName, Valid: true},
		LastName:     pgtype.Text{String: lastName, Valid: true},
	})
	if err != nil {
		// ON CONFLICT DO NOTHING returns no row when another instance won
		// the race.
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info("bootstrap: admin user already exists", "email", email)
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("bootstrap: admin user created", "email", email, "user_id", repository.ToUUID(user.ID))
	return nil
}
