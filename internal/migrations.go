package internal

import (
	"database/sql"
	"fmt"

	"github.com/localplate/localplate/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations brings the schema up to date from the embedded
// migration files. Both binaries run this on startup before opening
// their pgx pool, so a failed migration stops the process instead of
// serving against a half-migrated schema.
func RunMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.MigrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
