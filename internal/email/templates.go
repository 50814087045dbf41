package email

import "time"

// EmailTemplate defines the interface for email templates
type EmailTemplate interface {
	Subject() string
	TemplateName() string
}

// VerificationEmail asks a new user to confirm their address
type VerificationEmail struct {
	Email           string
	FirstName       string
	VerificationURL string
	ExpiresAt       time.Time
}

func (e VerificationEmail) Subject() string {
	return "Verify Your Email"
}

func (e VerificationEmail) TemplateName() string {
	return "verification_email"
}

// PasswordResetEmail carries a one-time password reset link
type PasswordResetEmail struct {
	Email     string
	FirstName string
	ResetURL  string
	ExpiresAt time.Time
}

func (e PasswordResetEmail) Subject() string {
	return "Reset Your Password"
}

func (e PasswordResetEmail) TemplateName() string {
	return "password_reset_email"
}

// OrderConfirmationEmail confirms a paid order to the customer
type OrderConfirmationEmail struct {
	Email            string
	CustomerName     string
	OrderNumber      string
	ChefName         string
	OrderDate        time.Time
	Items            []OrderItem
	SubtotalCents    int64
	DeliveryFeeCents int64
	TaxCents         int64
	TotalCents       int64
	Fulfillment      string // "pickup" or "delivery"
	OrderURL         string
}

func (e OrderConfirmationEmail) Subject() string {
	return "Order Confirmation - " + e.OrderNumber
}

func (e OrderConfirmationEmail) TemplateName() string {
	return "order_confirmation_email"
}

// ChefNewOrderEmail tells a chef a paid order is waiting for them
type ChefNewOrderEmail struct {
	Email        string
	ChefName     string
	OrderNumber  string
	CustomerName string
	Items        []OrderItem
	TotalCents   int64
	Fulfillment  string
	DashboardURL string
}

func (e ChefNewOrderEmail) Subject() string {
	return "New Order - " + e.OrderNumber
}

func (e ChefNewOrderEmail) TemplateName() string {
	return "chef_new_order_email"
}

// ChefApprovedEmail notifies an applicant their chef profile went live
type ChefApprovedEmail struct {
	Email        string
	FirstName    string
	BusinessName string
	DashboardURL string
}

func (e ChefApprovedEmail) Subject() string {
	return "Your Chef Application Was Approved"
}

func (e ChefApprovedEmail) TemplateName() string {
	return "chef_approved_email"
}

// ChefRejectedEmail notifies an applicant their application was declined
type ChefRejectedEmail struct {
	Email        string
	FirstName    string
	BusinessName string
	Reason       string // optional, shown when the reviewer left one
}

func (e ChefRejectedEmail) Subject() string {
	return "Update on Your Chef Application"
}

func (e ChefRejectedEmail) TemplateName() string {
	return "chef_rejected_email"
}

// WaitlistAreaOpenedEmail tells a waitlisted user their area now has coverage
type WaitlistAreaOpenedEmail struct {
	Email      string
	FirstName  string
	PostalCode string
	PlaceName  string // e.g. "Portland, OR"
	BrowseURL  string
}

func (e WaitlistAreaOpenedEmail) Subject() string {
	return "Chefs Are Now Cooking in " + e.PlaceName
}

func (e WaitlistAreaOpenedEmail) TemplateName() string {
	return "waitlist_area_opened_email"
}

// Supporting types

// OrderItem represents a line item in an order
type OrderItem struct {
	Title          string
	Quantity       int
	UnitPriceCents int64
	TotalCents     int64
}
