package domain

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// =============================================================================
// USER DOMAIN TYPES
// =============================================================================

// UserStatus represents the status of a user account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusClosed    UserStatus = "closed"
)

// DietaryRestriction is a normalized dietary restriction tag stored on a
// user's profile and matched against offering tags.
type DietaryRestriction string

const (
	DietVegetarian  DietaryRestriction = "vegetarian"
	DietVegan       DietaryRestriction = "vegan"
	DietGlutenFree  DietaryRestriction = "gluten_free"
	DietDairyFree   DietaryRestriction = "dairy_free"
	DietNutFree     DietaryRestriction = "nut_free"
	DietHalal       DietaryRestriction = "halal"
	DietKosher      DietaryRestriction = "kosher"
	DietPescatarian DietaryRestriction = "pescatarian"
)

// KnownDietaryRestrictions lists the tags accepted on profile updates.
var KnownDietaryRestrictions = []DietaryRestriction{
	DietVegetarian, DietVegan, DietGlutenFree, DietDairyFree,
	DietNutFree, DietHalal, DietKosher, DietPescatarian,
}

// IsKnownDietaryRestriction reports whether tag is an accepted dietary tag.
func IsKnownDietaryRestriction(tag string) bool {
	for _, d := range KnownDietaryRestrictions {
		if string(d) == tag {
			return true
		}
	}
	return false
}

// FullName joins optional first and last name fields for display.
func FullName(first, last pgtype.Text) string {
	if first.Valid && last.Valid {
		return first.String + " " + last.String
	} else if first.Valid {
		return first.String
	} else if last.Valid {
		return last.String
	}
	return ""
}

// =============================================================================
// FEATURE ACCESS
// =============================================================================

// Access reason codes explain why chef features are or are not available
// to a user. Empty string means access is granted.
const (
	AccessReasonGranted           = ""
	AccessReasonNoLocation        = "no_location"
	AccessReasonInvalidPostalCode = "invalid_postal_code"
	AccessReasonNoChefCoverage    = "no_chef_coverage"
)

// FeatureAccess is the result of a chef-feature availability check for a
// user's saved location.
type FeatureAccess struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

// User-specific errors.
var (
	ErrUserNotFound     = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrUserExists       = &Error{Code: ECONFLICT, Message: "User with this email already exists"}
	ErrInvalidEmail     = &Error{Code: EINVALID, Message: "Invalid email address"}
	ErrInvalidPassword  = &Error{Code: EUNAUTHORIZED, Message: "Invalid email or password"}
	ErrInvalidToken     = &Error{Code: EUNAUTHORIZED, Message: "Invalid or expired token"}
	ErrTokenExpired     = &Error{Code: EUNAUTHORIZED, Message: "Token has expired"}
	ErrAccountSuspended = &Error{Code: EFORBIDDEN, Message: "Account is suspended"}
	ErrEmailNotVerified = &Error{Code: EFORBIDDEN, Message: "Email has not been verified"}
)
