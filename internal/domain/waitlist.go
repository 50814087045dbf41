package domain

// =============================================================================
// WAITLIST DOMAIN ERRORS
// =============================================================================

// Waitlist-specific errors.
var (
	ErrWaitlistEntryNotFound = &Error{Code: ENOTFOUND, Message: "Waitlist entry not found"}
	ErrAlreadyOnWaitlist     = &Error{Code: ECONFLICT, Message: "Already on the waitlist for this location"}
	ErrAreaAlreadyCovered    = &Error{Code: ECONFLICT, Message: "Chefs already serve this location"}
)
