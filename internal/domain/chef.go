package domain

// =============================================================================
// CHEF DOMAIN TYPES
// =============================================================================

// ChefStatus represents the verification status of a chef profile.
type ChefStatus string

const (
	ChefStatusPending   ChefStatus = "pending"
	ChefStatusVerified  ChefStatus = "verified"
	ChefStatusRejected  ChefStatus = "rejected"
	ChefStatusSuspended ChefStatus = "suspended"
)

// CanTransitionChefStatus reports whether a chef profile may move from one
// status to another. Admin review drives every transition.
func CanTransitionChefStatus(from, to ChefStatus) bool {
	switch from {
	case ChefStatusPending:
		return to == ChefStatusVerified || to == ChefStatusRejected
	case ChefStatusVerified:
		return to == ChefStatusSuspended
	case ChefStatusSuspended:
		return to == ChefStatusVerified
	case ChefStatusRejected:
		return to == ChefStatusPending
	}
	return false
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

// Chef-specific errors.
var (
	ErrChefNotFound        = &Error{Code: ENOTFOUND, Message: "Chef not found"}
	ErrChefExists          = &Error{Code: ECONFLICT, Message: "User already has a chef profile"}
	ErrChefNotVerified     = &Error{Code: EFORBIDDEN, Message: "Chef profile is not verified"}
	ErrChefStatusChange    = &Error{Code: ECONFLICT, Message: "Chef status transition not allowed"}
	ErrServiceAreaRequired = &Error{Code: EINVALID, Message: "At least one service area postal code is required"}
)
