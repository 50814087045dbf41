package geonames

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/localplate/localplate/internal/geo"
)

// GeoNames postal-code exports carry 12 tab-separated fields per line.
const recordFields = 12

const (
	fieldCountry = iota
	fieldPostalCode
	fieldPlaceName
	fieldAdmin1Name
	fieldAdmin1Code
	fieldAdmin2Name
	fieldAdmin2Code
	fieldAdmin3Name
	fieldAdmin3Code
	fieldLatitude
	fieldLongitude
	fieldAccuracy
)

// ParseStats counts what the parser saw.
type ParseStats struct {
	Lines   int
	Records int
	Skipped int
}

// Parse streams records from a GeoNames TSV export, calling fn for each
// usable row. Malformed lines (wrong field count, missing country or
// code) are logged and skipped; unparseable coordinates leave the
// record without them rather than dropping it. An error from fn aborts
// the scan.
func Parse(r io.Reader, logger *slog.Logger, fn func(Record) error) (ParseStats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var stats ParseStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		stats.Lines++
		line := scanner.Text()
		if line == "" {
			stats.Skipped++
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != recordFields {
			stats.Skipped++
			logger.Debug("geonames: skipping malformed line", "line", stats.Lines, "fields", len(fields))
			continue
		}

		display := strings.TrimSpace(fields[fieldPostalCode])
		rec := Record{
			Country:     geo.NormalizeCountry(fields[fieldCountry]),
			PostalCode:  geo.NormalizePostalCode(display),
			DisplayCode: display,
			PlaceName:   strings.TrimSpace(fields[fieldPlaceName]),
			Admin1Name:  strings.TrimSpace(fields[fieldAdmin1Name]),
			Admin1Code:  strings.TrimSpace(fields[fieldAdmin1Code]),
			Admin2Name:  strings.TrimSpace(fields[fieldAdmin2Name]),
			Admin2Code:  strings.TrimSpace(fields[fieldAdmin2Code]),
			Admin3Name:  strings.TrimSpace(fields[fieldAdmin3Name]),
			Admin3Code:  strings.TrimSpace(fields[fieldAdmin3Code]),
		}
		if rec.Country == "" || rec.PostalCode == "" {
			stats.Skipped++
			logger.Debug("geonames: skipping line without country or code", "line", stats.Lines)
			continue
		}

		lat, latErr := strconv.ParseFloat(strings.TrimSpace(fields[fieldLatitude]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(fields[fieldLongitude]), 64)
		if latErr == nil && lonErr == nil {
			rec.Latitude = lat
			rec.Longitude = lon
			rec.HasCoords = true
		} else {
			logger.Debug("geonames: unparseable coordinates", "line", stats.Lines, "code", rec.PostalCode)
		}

		stats.Records++
		if err := fn(rec); err != nil {
			return stats, err
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("geonames: scan: %w", err)
	}
	return stats, nil
}
