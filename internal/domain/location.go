package domain

// =============================================================================
// LOCATION DOMAIN TYPES
// =============================================================================

// AreaType classifies an administrative area within a country's hierarchy.
// Labels vary by country: US states, Canadian provinces, Japanese
// prefectures, and so on.
type AreaType string

const (
	AreaTypeCountry    AreaType = "country"
	AreaTypeState      AreaType = "state"
	AreaTypeProvince   AreaType = "province"
	AreaTypePrefecture AreaType = "prefecture"
	AreaTypeCounty     AreaType = "county"
	AreaTypeDistrict   AreaType = "district"
	AreaTypeCity       AreaType = "city"
	AreaTypeWard       AreaType = "ward"
)

// SupportedCountries lists the ISO 3166-1 alpha-2 codes with postal code
// format validation. Codes outside this set pass a permissive length check.
var SupportedCountries = []string{"US", "CA", "JP", "GB"}

// IsSupportedCountry reports whether country has strict postal validation.
func IsSupportedCountry(country string) bool {
	for _, c := range SupportedCountries {
		if c == country {
			return true
		}
	}
	return false
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

// Location-specific errors.
var (
	ErrPostalCodeNotFound  = &Error{Code: ENOTFOUND, Message: "Postal code not found"}
	ErrInvalidPostalCode   = &Error{Code: EINVALID, Message: "Postal code format is not valid for this country"}
	ErrAreaNotFound        = &Error{Code: ENOTFOUND, Message: "Administrative area not found"}
	ErrNoLocationOnProfile = &Error{Code: ENOTFOUND, Message: "No location saved on profile"}
)
