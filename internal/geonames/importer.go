package geonames

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/localplate/localplate/internal/geo"
	"github.com/localplate/localplate/internal/repository"
)

// DefaultBatchSize is how many postal codes are flushed per batch.
const DefaultBatchSize = 500

// Importer loads GeoNames exports into the locations schema.
type Importer struct {
	repo      repository.Querier
	logger    *slog.Logger
	batchSize int
	country   string
	dryRun    bool
	progress  func(added int)
}

// Option configures an Importer.
type Option func(*Importer)

// WithBatchSize sets the flush size; values below 1 keep the default.
func WithBatchSize(n int) Option {
	return func(im *Importer) {
		if n > 0 {
			im.batchSize = n
		}
	}
}

// WithCountryFilter imports only rows for the given country.
func WithCountryFilter(country string) Option {
	return func(im *Importer) {
		im.country = geo.NormalizeCountry(country)
	}
}

// WithDryRun parses and counts without touching the database.
func WithDryRun(dryRun bool) Option {
	return func(im *Importer) {
		im.dryRun = dryRun
	}
}

// WithProgress reports batch completions, for progress bars.
func WithProgress(fn func(added int)) Option {
	return func(im *Importer) {
		im.progress = fn
	}
}

// NewImporter builds an importer over the given queries.
func NewImporter(repo repository.Querier, logger *slog.Logger, opts ...Option) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	im := &Importer{
		repo:      repo,
		logger:    logger,
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// ImportFile imports a plain TSV export or a GeoNames zip download.
// Zip archives import every .txt entry except the bundled readme.
func (im *Importer) ImportFile(ctx context.Context, filename string) (*Stats, error) {
	if strings.EqualFold(path.Ext(filename), ".zip") {
		return im.importZip(ctx, filename)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("geonames: open %s: %w", filename, err)
	}
	defer f.Close()

	return im.Import(ctx, f)
}

func (im *Importer) importZip(ctx context.Context, filename string) (*Stats, error) {
	archive, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("geonames: open %s: %w", filename, err)
	}
	defer archive.Close()

	total := &Stats{}
	for _, entry := range archive.File {
		name := path.Base(entry.Name)
		if !strings.EqualFold(path.Ext(name), ".txt") || strings.EqualFold(name, "readme.txt") {
			continue
		}

		f, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("geonames: open %s in %s: %w", entry.Name, filename, err)
		}
		stats, err := im.Import(ctx, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		total.merge(stats)
	}
	return total, nil
}

// Import streams records from r, upserting areas on first sight and
// postal codes in batches. After a real run it refreshes the per-area
// postal code counts.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*Stats, error) {
	areas := newHierarchy(im.repo, im.dryRun)
	stats := &Stats{}
	batch := make([]repository.UpsertPostalCodeParams, 0, im.batchSize)

	parseStats, err := Parse(r, im.logger, func(rec Record) error {
		if im.country != "" && rec.Country != im.country {
			stats.Skipped++
			return nil
		}

		areaID, err := areas.ensure(ctx, rec)
		if err != nil {
			return err
		}

		batch = append(batch, repository.UpsertPostalCodeParams{
			Code:        rec.PostalCode,
			DisplayCode: rec.DisplayCode,
			Country:     rec.Country,
			PlaceName:   repository.Text(rec.PlaceName),
			Latitude:    pgtype.Float8{Float64: rec.Latitude, Valid: rec.HasCoords},
			Longitude:   pgtype.Float8{Float64: rec.Longitude, Valid: rec.HasCoords},
			AreaID:      areaID,
		})
		if len(batch) >= im.batchSize {
			if err := im.flush(ctx, batch, stats); err != nil {
				return err
			}
			batch = batch[:0]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := im.flush(ctx, batch, stats); err != nil {
		return nil, err
	}

	stats.Lines = parseStats.Lines
	stats.Skipped += parseStats.Skipped
	stats.AreasCreated = areas.created

	if !im.dryRun && stats.Imported > 0 {
		if err := im.repo.RefreshAreaPostalCodeCounts(ctx); err != nil {
			return nil, fmt.Errorf("geonames: refresh area counts: %w", err)
		}
	}

	im.logger.Info("geonames import complete",
		"lines", stats.Lines,
		"imported", stats.Imported,
		"skipped", stats.Skipped,
		"areas_created", stats.AreasCreated,
		"dry_run", im.dryRun,
	)
	return stats, nil
}

func (im *Importer) flush(ctx context.Context, batch []repository.UpsertPostalCodeParams, stats *Stats) error {
	if len(batch) == 0 {
		return nil
	}
	if !im.dryRun {
		for _, params := range batch {
			if _, err := im.repo.UpsertPostalCode(ctx, params); err != nil {
				return fmt.Errorf("geonames: upsert %s %s: %w", params.Country, params.Code, err)
			}
		}
	}
	stats.Imported += len(batch)
	if im.progress != nil {
		im.progress(len(batch))
	}
	return nil
}
