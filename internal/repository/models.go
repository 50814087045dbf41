package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pgvector/pgvector-go"
)

type User struct {
	ID                  pgtype.UUID        `json:"id"`
	Email               string             `json:"email"`
	PasswordHash        string             `json:"-"`
	Role                string             `json:"role"`
	Status              string             `json:"status"`
	EmailVerified       bool               `json:"email_verified"`
	FirstName           pgtype.Text        `json:"first_name"`
	LastName            pgtype.Text        `json:"last_name"`
	Phone               pgtype.Text        `json:"phone"`
	DietaryRestrictions []string           `json:"dietary_restrictions"`
	PostalCodeID        pgtype.UUID        `json:"postal_code_id"`
	CreatedAt           pgtype.Timestamptz `json:"created_at"`
	UpdatedAt           pgtype.Timestamptz `json:"updated_at"`
}

type AdministrativeArea struct {
	ID              pgtype.UUID        `json:"id"`
	Name            string             `json:"name"`
	AreaType        string             `json:"area_type"`
	Country         string             `json:"country"`
	ParentID        pgtype.UUID        `json:"parent_id"`
	PostalCodeCount int32              `json:"postal_code_count"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}

type PostalCode struct {
	ID          pgtype.UUID        `json:"id"`
	Code        string             `json:"code"`
	DisplayCode string             `json:"display_code"`
	Country     string             `json:"country"`
	PlaceName   pgtype.Text        `json:"place_name"`
	Latitude    pgtype.Float8      `json:"latitude"`
	Longitude   pgtype.Float8      `json:"longitude"`
	AreaID      pgtype.UUID        `json:"area_id"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type Chef struct {
	ID               pgtype.UUID        `json:"id"`
	UserID           pgtype.UUID        `json:"user_id"`
	DisplayName      string             `json:"display_name"`
	Bio              pgtype.Text        `json:"bio"`
	Cuisine          pgtype.Text        `json:"cuisine"`
	PhotoKey         pgtype.Text        `json:"photo_key"`
	Status           string             `json:"status"`
	IsVerified       bool               `json:"is_verified"`
	MaxTravelMiles   pgtype.Float8      `json:"max_travel_miles"`
	BasePostalCodeID pgtype.UUID        `json:"base_postal_code_id"`
	StripeAccountID  pgtype.Text        `json:"stripe_account_id"`
	RejectedReason   pgtype.Text        `json:"rejected_reason"`
	VerifiedAt       pgtype.Timestamptz `json:"verified_at"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

type ChefPostalCode struct {
	ID           pgtype.UUID        `json:"id"`
	ChefID       pgtype.UUID        `json:"chef_id"`
	PostalCodeID pgtype.UUID        `json:"postal_code_id"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

type AreaWaitlistEntry struct {
	ID           pgtype.UUID        `json:"id"`
	UserID       pgtype.UUID        `json:"user_id"`
	PostalCodeID pgtype.UUID        `json:"postal_code_id"`
	Notified     bool               `json:"notified"`
	NotifiedAt   pgtype.Timestamptz `json:"notified_at"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

type Offering struct {
	ID          pgtype.UUID        `json:"id"`
	ChefID      pgtype.UUID        `json:"chef_id"`
	Title       string             `json:"title"`
	Description pgtype.Text        `json:"description"`
	PriceCents  int32              `json:"price_cents"`
	Currency    string             `json:"currency"`
	Status      string             `json:"status"`
	Fulfillment string             `json:"fulfillment"`
	Capacity    pgtype.Int4        `json:"capacity"`
	DietaryTags []string           `json:"dietary_tags"`
	PhotoKey    pgtype.Text        `json:"photo_key"`
	AvailableOn pgtype.Date        `json:"available_on"`
	Embedding   pgvector.Vector    `json:"-"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type Order struct {
	ID               pgtype.UUID        `json:"id"`
	OrderNumber      string             `json:"order_number"`
	CustomerID       pgtype.UUID        `json:"customer_id"`
	ChefID           pgtype.UUID        `json:"chef_id"`
	Status           string             `json:"status"`
	SubtotalCents    int32              `json:"subtotal_cents"`
	DeliveryFeeCents int32              `json:"delivery_fee_cents"`
	TaxCents         int32              `json:"tax_cents"`
	TotalCents       int32              `json:"total_cents"`
	Currency         string             `json:"currency"`
	Fulfillment      string             `json:"fulfillment"`
	Notes            pgtype.Text        `json:"notes"`
	StripeSessionID  pgtype.Text        `json:"stripe_session_id"`
	PlacedAt         pgtype.Timestamptz `json:"placed_at"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

type OrderItem struct {
	ID             pgtype.UUID        `json:"id"`
	OrderID        pgtype.UUID        `json:"order_id"`
	OfferingID     pgtype.UUID        `json:"offering_id"`
	Title          string             `json:"title"`
	UnitPriceCents int32              `json:"unit_price_cents"`
	Quantity       int32              `json:"quantity"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
}

type Payment struct {
	ID                    pgtype.UUID        `json:"id"`
	OrderID               pgtype.UUID        `json:"order_id"`
	StripePaymentIntentID pgtype.Text        `json:"stripe_payment_intent_id"`
	AmountCents           int32              `json:"amount_cents"`
	Currency              string             `json:"currency"`
	Status                string             `json:"status"`
	RefundedCents         int32              `json:"refunded_cents"`
	StripeRefundID        pgtype.Text        `json:"stripe_refund_id"`
	CreatedAt             pgtype.Timestamptz `json:"created_at"`
	UpdatedAt             pgtype.Timestamptz `json:"updated_at"`
}

type PaymentLink struct {
	ID                  pgtype.UUID        `json:"id"`
	ChefID              pgtype.UUID        `json:"chef_id"`
	OfferingID          pgtype.UUID        `json:"offering_id"`
	StripePaymentLinkID string             `json:"stripe_payment_link_id"`
	StripePriceID       string             `json:"stripe_price_id"`
	Url                 string             `json:"url"`
	Active              bool               `json:"active"`
	CreatedAt           pgtype.Timestamptz `json:"created_at"`
}

type MealPlan struct {
	ID           pgtype.UUID        `json:"id"`
	UserID       pgtype.UUID        `json:"user_id"`
	Title        string             `json:"title"`
	Status       string             `json:"status"`
	Request      pgtype.Text        `json:"request"`
	Plan         []byte             `json:"plan"`
	ErrorMessage pgtype.Text        `json:"error_message"`
	Attempts     int32              `json:"attempts"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

type Job struct {
	ID             pgtype.UUID        `json:"id"`
	JobType        string             `json:"job_type"`
	Queue          string             `json:"queue"`
	Payload        []byte             `json:"payload"`
	Metadata       []byte             `json:"metadata"`
	Status         string             `json:"status"`
	Priority       int32              `json:"priority"`
	RetryCount     int32              `json:"retry_count"`
	MaxRetries     int32              `json:"max_retries"`
	TimeoutSeconds int32              `json:"timeout_seconds"`
	ScheduledAt    pgtype.Timestamptz `json:"scheduled_at"`
	StartedAt      pgtype.Timestamptz `json:"started_at"`
	CompletedAt    pgtype.Timestamptz `json:"completed_at"`
	WorkerID       pgtype.Text        `json:"worker_id"`
	ErrorMessage   pgtype.Text        `json:"error_message"`
	ErrorDetails   []byte             `json:"error_details"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type WebhookEvent struct {
	ID          pgtype.UUID        `json:"id"`
	Provider    string             `json:"provider"`
	EventID     string             `json:"event_id"`
	EventType   string             `json:"event_type"`
	Payload     []byte             `json:"payload"`
	ProcessedAt pgtype.Timestamptz `json:"processed_at"`
}

type EmailVerificationToken struct {
	ID        pgtype.UUID        `json:"id"`
	UserID    pgtype.UUID        `json:"user_id"`
	TokenHash string             `json:"-"`
	IpAddress pgtype.Text        `json:"ip_address"`
	ExpiresAt pgtype.Timestamptz `json:"expires_at"`
	UsedAt    pgtype.Timestamptz `json:"used_at"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type PasswordResetToken struct {
	ID        pgtype.UUID        `json:"id"`
	UserID    pgtype.UUID        `json:"user_id"`
	Email     string             `json:"email"`
	TokenHash string             `json:"-"`
	IpAddress pgtype.Text        `json:"ip_address"`
	ExpiresAt pgtype.Timestamptz `json:"expires_at"`
	UsedAt    pgtype.Timestamptz `json:"used_at"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type GroceryCredential struct {
	ID                    pgtype.UUID        `json:"id"`
	Provider              string             `json:"provider"`
	AccessTokenCiphertext []byte             `json:"-"`
	ExpiresAt             pgtype.Timestamptz `json:"expires_at"`
	CreatedAt             pgtype.Timestamptz `json:"created_at"`
	UpdatedAt             pgtype.Timestamptz `json:"updated_at"`
}
