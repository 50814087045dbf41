// Package geonames imports GeoNames postal-code exports: each row links
// a postal code to its deepest known administrative area, and the
// admin1/admin2/admin3 hierarchy is upserted once per distinct node.
package geonames

// Record is one usable row of a GeoNames postal-code export.
type Record struct {
	Country     string
	PostalCode  string // normalized for matching
	DisplayCode string // as published, for display
	PlaceName   string

	Admin1Name string
	Admin1Code string
	Admin2Name string
	Admin2Code string
	Admin3Name string
	Admin3Code string

	// HasCoords is false when the export row had no parseable
	// latitude/longitude; the postal code still imports without them.
	Latitude  float64
	Longitude float64
	HasCoords bool
}

// Stats summarizes one import run.
type Stats struct {
	Lines        int
	Imported     int
	Skipped      int
	AreasCreated int
}

func (s *Stats) merge(other *Stats) {
	s.Lines += other.Lines
	s.Imported += other.Imported
	s.Skipped += other.Skipped
	s.AreasCreated += other.AreasCreated
}
