package geo

import (
	"math"
	"testing"
)

func TestNormalizePostalCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already normalized", "90210", "90210"},
		{"lowercase", "k1a0b1", "K1A0B1"},
		{"canadian with space", "K1A 0B1", "K1A0B1"},
		{"zip plus four with hyphen", "90210-1234", "902101234"},
		{"uk with space", "SW1A 1AA", "SW1A1AA"},
		{"japanese with hyphen", "100-0001", "1000001"},
		{"mixed punctuation", " k1a-0b1 ", "K1A0B1"},
		{"empty", "", ""},
		{"only punctuation", "- -", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePostalCode(tt.input); got != tt.expected {
				t.Errorf("NormalizePostalCode(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizePostalCodeIdempotent(t *testing.T) {
	inputs := []string{"90210", "K1A 0B1", "sw1a-1aa", "100-0001", "90210-1234"}
	for _, input := range inputs {
		once := NormalizePostalCode(input)
		twice := NormalizePostalCode(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalizeCountry(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"us", "US"},
		{"US", "US"},
		{"uk", "GB"},
		{"UK", "GB"},
		{"GB", "GB"},
		{" jp ", "JP"},
	}

	for _, tt := range tests {
		if got := NormalizeCountry(tt.input); got != tt.expected {
			t.Errorf("NormalizeCountry(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestValidatePostalCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		country string
		valid   bool
	}{
		// United States: 5-digit ZIP and 9-digit ZIP+4
		{"us five digit", "90210", "US", true},
		{"us nine digit", "902101234", "US", true},
		{"us zip plus four formatted", "90210-1234", "US", true},
		{"us too short", "9021", "US", false},
		{"us six digit", "902101", "US", false},
		{"us letters", "9021A", "US", false},

		// Canada: letter-digit alternation
		{"ca normalized", "K1A0B1", "CA", true},
		{"ca formatted", "K1A 0B1", "CA", true},
		{"ca lowercase", "k1a 0b1", "CA", true},
		{"ca wrong pattern", "KKA0B1", "CA", false},
		{"ca too short", "K1A0B", "CA", false},

		// Japan: seven digits
		{"jp normalized", "1000001", "JP", true},
		{"jp formatted", "100-0001", "JP", true},
		{"jp too short", "100001", "JP", false},
		{"jp letters", "100000A", "JP", false},

		// United Kingdom, including the UK alias
		{"uk outcode incode", "SW1A 1AA", "GB", true},
		{"uk short form", "M1 1AE", "GB", true},
		{"uk via alias", "SW1A 1AA", "UK", true},
		{"uk digits only", "1234567", "GB", false},

		// Unlisted countries fall back to a length check
		{"unlisted valid", "75001", "FR", true},
		{"unlisted alphanumeric", "EC1A4", "XX", true},
		{"unlisted too short", "AB", "FR", false},
		{"unlisted too long", "12345678901", "FR", false},

		{"empty code", "", "US", false},
		{"punctuation only", "--", "US", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePostalCode(tt.code, tt.country); got != tt.valid {
				t.Errorf("ValidatePostalCode(%q, %q) = %v, want %v", tt.code, tt.country, got, tt.valid)
			}
		})
	}
}

func TestHaversineMiles(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Point
		expected  float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         Point{Lat: 40.7128, Lng: -74.0060},
			b:         Point{Lat: 40.7128, Lng: -74.0060},
			expected:  0,
			tolerance: 0.001,
		},
		{
			name:      "new york to los angeles",
			a:         Point{Lat: 40.7128, Lng: -74.0060},
			b:         Point{Lat: 34.0522, Lng: -118.2437},
			expected:  2445,
			tolerance: 10,
		},
		{
			name:      "seattle to portland",
			a:         Point{Lat: 47.6062, Lng: -122.3321},
			b:         Point{Lat: 45.5152, Lng: -122.6784},
			expected:  145,
			tolerance: 3,
		},
		{
			name:      "short hop within a city",
			a:         Point{Lat: 47.6062, Lng: -122.3321},
			b:         Point{Lat: 47.6205, Lng: -122.3493},
			expected:  1.2,
			tolerance: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.HaversineMiles(tt.b)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("HaversineMiles = %f, want %f (±%f)", got, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestHaversineMilesSymmetric(t *testing.T) {
	a := Point{Lat: 40.7128, Lng: -74.0060}
	b := Point{Lat: 34.0522, Lng: -118.2437}

	if d1, d2 := a.HaversineMiles(b), b.HaversineMiles(a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance should be symmetric: %f vs %f", d1, d2)
	}
}
