package domain

// =============================================================================
// OFFERING DOMAIN TYPES
// =============================================================================

// OfferingStatus represents the lifecycle status of a chef's offering.
type OfferingStatus string

const (
	OfferingStatusDraft     OfferingStatus = "draft"
	OfferingStatusPublished OfferingStatus = "published"
	OfferingStatusArchived  OfferingStatus = "archived"
)

// FulfillmentType is how a customer receives an offering.
type FulfillmentType string

const (
	FulfillmentPickup   FulfillmentType = "pickup"
	FulfillmentDelivery FulfillmentType = "delivery"
)

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

// Offering-specific errors.
var (
	ErrOfferingNotFound     = &Error{Code: ENOTFOUND, Message: "Offering not found"}
	ErrOfferingNotPublished = &Error{Code: ECONFLICT, Message: "Offering is not published"}
	ErrOfferingOutOfRange   = &Error{Code: EFORBIDDEN, Message: "Offering is outside the chef's travel radius"}
	ErrOfferingSoldOut      = &Error{Code: ECONFLICT, Message: "Offering has no remaining capacity"}
)
