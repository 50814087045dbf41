package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/localplate/localplate/internal"
	"github.com/localplate/localplate/internal/geonames"
	"github.com/localplate/localplate/internal/repository"
)

var rootCmd = &cobra.Command{
	Use:   "geonames",
	Short: "Postal code data management for LocalPlate",
	Long: `
geonames loads postal-code exports from download.geonames.org into the
LocalPlate locations schema: administrative areas (states, counties,
cities) plus the postal codes that link to them. Service areas, chef
coverage, and waitlists all resolve against this data.
`,
}

var importOptions struct {
	country   string
	batchSize int
	dryRun    bool
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a GeoNames postal code export (.txt or .zip)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := internal.NewConfig()
		if err != nil {
			return fmt.Errorf("config initialization failed: %w", err)
		}
		logger := internal.NewLogger(os.Stderr, cfg.Env, cfg.LogLevel)

		opts := []geonames.Option{
			geonames.WithBatchSize(importOptions.batchSize),
			geonames.WithDryRun(importOptions.dryRun),
		}
		if importOptions.country != "" {
			opts = append(opts, geonames.WithCountryFilter(importOptions.country))
		}

		var bar *progressbar.ProgressBar
		if isatty.IsTerminal(os.Stderr.Fd()) {
			bar = progressbar.NewOptions(-1,
				progressbar.OptionSetDescription("Importing postal codes"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			opts = append(opts, geonames.WithProgress(func(added int) {
				_ = bar.Add(added)
			}))
		}

		// A dry run only parses and counts, so it works without a database.
		var repo repository.Querier
		if !importOptions.dryRun {
			pool, err := connect(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer pool.Close()
			repo = repository.New(pool)
		}

		im := geonames.NewImporter(repo, logger, opts...)
		stats, err := im.ImportFile(ctx, args[0])
		if bar != nil {
			_ = bar.Finish()
		}
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d of %d lines (%d skipped, %d areas)\n",
			stats.Imported, stats.Lines, stats.Skipped, stats.AreasCreated)
		if importOptions.dryRun {
			fmt.Println("Dry run: nothing was written")
		}
		return nil
	},
}

var refreshCountsCmd = &cobra.Command{
	Use:   "refresh-counts",
	Short: "Recompute per-area postal code counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg, err := internal.NewConfig()
		if err != nil {
			return fmt.Errorf("config initialization failed: %w", err)
		}
		logger := internal.NewLogger(os.Stderr, cfg.Env, cfg.LogLevel)

		pool, err := connect(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := repository.New(pool).RefreshAreaPostalCodeCounts(ctx); err != nil {
			return fmt.Errorf("refreshing area counts: %w", err)
		}
		logger.Info("Area postal code counts refreshed")
		return nil
	},
}

// connect runs pending migrations over database/sql, then opens the
// pgx pool the importer uses.
func connect(ctx context.Context, cfg *internal.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if err := internal.RunMigrations(sqlDB); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database connection established")

	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	return pool, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(refreshCountsCmd)
	importCmd.Flags().StringVar(
		&importOptions.country,
		"country",
		"",
		"Import only rows for this ISO country code",
	)
	importCmd.Flags().IntVar(
		&importOptions.batchSize,
		"batch-size",
		geonames.DefaultBatchSize,
		"Postal codes per flush",
	)
	importCmd.Flags().BoolVar(
		&importOptions.dryRun,
		"dry-run",
		false,
		"Parse and count without writing to the database",
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
