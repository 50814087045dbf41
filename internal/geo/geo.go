// Package geo provides postal code normalization and validation plus
// great-circle distance math used by the service area and discovery layers.
package geo

import (
	"math"
	"regexp"
	"strings"
)

const earthRadiusMiles = 3958.8

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HaversineMiles calculates the great-circle distance between two points
// on Earth in miles.
func (p Point) HaversineMiles(other Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

var nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9]`)

// NormalizePostalCode converts a postal code to canonical form: uppercase
// with every non-alphanumeric character removed. "K1A 0B1" and "k1a-0b1"
// both normalize to "K1A0B1". Normalizing an already normalized code is a
// no-op, so codes can be normalized at every boundary without drift.
func NormalizePostalCode(code string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToUpper(code), "")
}

// NormalizeCountry converts a country code to canonical ISO 3166-1 alpha-2
// form. "UK" is accepted as an alias for "GB".
func NormalizeCountry(country string) string {
	c := strings.ToUpper(strings.TrimSpace(country))
	if c == "UK" {
		return "GB"
	}
	return c
}

// Postal code formats per country, matched against normalized codes.
// US accepts both 5-digit ZIP and 9-digit ZIP+4.
var postalFormats = map[string]*regexp.Regexp{
	"US": regexp.MustCompile(`^\d{5}$|^\d{9}$`),
	"CA": regexp.MustCompile(`^[A-Z]\d[A-Z]\d[A-Z]\d$`),
	"JP": regexp.MustCompile(`^\d{7}$`),
	"GB": regexp.MustCompile(`^[A-Z]{1,2}\d[A-Z\d]?\d[A-Z]{2}$`),
}

// fallbackFormat is the permissive check for countries without a strict
// format: 3 to 10 alphanumeric characters after normalization.
var fallbackFormat = regexp.MustCompile(`^[A-Z0-9]{3,10}$`)

// ValidatePostalCode reports whether code is a plausible postal code for
// the given country. The code is normalized before matching, so formatted
// input ("90210-1234", "SW1A 1AA") validates the same as canonical input.
func ValidatePostalCode(code, country string) bool {
	normalized := NormalizePostalCode(code)
	if normalized == "" {
		return false
	}

	if format, ok := postalFormats[NormalizeCountry(country)]; ok {
		return format.MatchString(normalized)
	}
	return fallbackFormat.MatchString(normalized)
}
