package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/localplate/localplate/internal/email"
	"github.com/localplate/localplate/internal/repository"
)

// Job type constants for email jobs
const (
	JobTypeVerificationEmail  = "email:verification"
	JobTypePasswordReset      = "email:password_reset"
	JobTypeOrderConfirmation  = "email:order_confirmation"
	JobTypeChefNewOrder       = "email:chef_new_order"
	JobTypeChefApproved       = "email:chef_approved"
	JobTypeChefRejected       = "email:chef_rejected"
	JobTypeWaitlistAreaOpened = "email:waitlist_area_opened"
)

// Email job payloads (JSON-serializable)

// VerificationPayload represents the payload for an email verification job
type VerificationPayload struct {
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	VerificationURL string    `json:"verification_url"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// PasswordResetPayload represents the payload for a password reset email job
type PasswordResetPayload struct {
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	ResetURL  string    `json:"reset_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OrderConfirmationPayload represents the payload for an order confirmation email job
type OrderConfirmationPayload struct {
	OrderID          uuid.UUID       `json:"order_id"`
	Email            string          `json:"email"`
	CustomerName     string          `json:"customer_name"`
	OrderNumber      string          `json:"order_number"`
	ChefName         string          `json:"chef_name"`
	OrderDate        time.Time       `json:"order_date"`
	Items            []OrderItemData `json:"items"`
	SubtotalCents    int64           `json:"subtotal_cents"`
	DeliveryFeeCents int64           `json:"delivery_fee_cents"`
	TaxCents         int64           `json:"tax_cents"`
	TotalCents       int64           `json:"total_cents"`
	Fulfillment      string          `json:"fulfillment"`
	OrderURL         string          `json:"order_url"`
}

// ChefNewOrderPayload represents the payload for a new-order notification to the chef
type ChefNewOrderPayload struct {
	OrderID      uuid.UUID       `json:"order_id"`
	Email        string          `json:"email"`
	ChefName     string          `json:"chef_name"`
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	Items        []OrderItemData `json:"items"`
	TotalCents   int64           `json:"total_cents"`
	Fulfillment  string          `json:"fulfillment"`
	DashboardURL string          `json:"dashboard_url"`
}

// OrderItemData represents a line item in an order email
type OrderItemData struct {
	Title          string `json:"title"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TotalCents     int64  `json:"total_cents"`
}

// ChefApprovedPayload represents the payload for a chef approval email job
type ChefApprovedPayload struct {
	ChefID       uuid.UUID `json:"chef_id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	BusinessName string    `json:"business_name"`
	DashboardURL string    `json:"dashboard_url"`
}

// ChefRejectedPayload represents the payload for a chef rejection email job
type ChefRejectedPayload struct {
	ChefID       uuid.UUID `json:"chef_id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	BusinessName string    `json:"business_name"`
	Reason       string    `json:"reason"`
}

// WaitlistAreaOpenedPayload represents the payload for a waitlist area-opened email job
type WaitlistAreaOpenedPayload struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	PostalCode string `json:"postal_code"`
	PlaceName  string `json:"place_name"`
	BrowseURL  string `json:"browse_url"`
}

// EnqueueVerificationEmail enqueues an email verification job
func EnqueueVerificationEmail(ctx context.Context, q repository.Querier, payload VerificationPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.EnqueueJob(ctx, repository.EnqueueJobParams{
		JobType:        JobTypeVerificationEmail,
		Queue:          "email",
		Payload:        payloadJSON,
		Metadata:       []byte("{}"),
		Priority:       50, // Higher priority for account emails
		MaxRetries:     3,
		TimeoutSeconds: 30,
		ScheduledAt: pgtype.Timestamptz{
			Time:  time.Now(),
			Valid: true,
		},
	})

	return err
}

// EnqueuePasswordReset enqueues a password reset email job
func EnqueuePasswordReset(ctx context.Context, q repository.Querier, payload PasswordResetPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.EnqueueJob(ctx, repository.EnqueueJobParams{
		JobType:        JobTypePasswordReset,
		Queue:          "email",
		Payload:        payloadJSON,
		Metadata:       []byte("{}"),
		Priority:       50, // Higher priority for password resets
		MaxRetries:     3,
		TimeoutSeconds: 30,
		ScheduledAt: pgtype.Timestamptz{
			Time:  time.Now(),
			Valid: true,
		},
	})

	return err
}

// EnqueueOrderConfirmationEmail enqueues an order confirmation email job
func EnqueueOrderConfirmationEmail(ctx context.Context, q repository.Querier, payload OrderConfirmationPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.EnqueueJob(ctx, repository.EnqueueJobParams{
		JobType:        JobTypeOrderConfirmation,
		Queue:          "email",
		Payload:        payloadJSON,
		Metadata:       []byte("{}"),
		Priority:       100,
		MaxRetries:     3,
		TimeoutSeconds: 30,
		ScheduledAt: pgtype.Timestamptz{
			Time:  time.Now(),
			Valid: true,
		},
	})

	return err
}

// EnqueueChefNewOrderEmail enqueues a new-order notification for the chef
func EnqueueChefNewOrderEmail(ctx context.Context, q repository.Querier, payload ChefNewOrderPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.EnqueueJob(ctx, repository.EnqueueJobParams{
		JobType:        JobTypeChefNewOrder,
		Queue:          "email",
		Payload:        payloadJSON,
		Metadata:       []byte("{}"),
		Priority:       100,
		MaxRetries:     3,
		TimeoutSeconds: 30,
		ScheduledAt: pgtype.Timestamptz{
			Time:  time.Now(),
			Valid: true,
		},
	})

	return err
}

// EnqueueChefApprovedEmail enqueues a chef approval email job
func EnqueueChefApprovedEmail(ctx context.Context, q repository.Querier, payload ChefApprovedPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.EnqueueJob(ctx, repository.EnqueueJobParams{
		JobType:        JobTypeChefApproved,
		Queue:          "email",
		Payload:        payloadJSON,
		Metadata:       []byte("{}"),
		Priority:       100,
		MaxRetries:     3,
		TimeoutSeconds: 30,
		ScheduledAt: pgtype.Timestamptz{
			Time:  time.Now(),
			Valid: true,
		},
	})

	return err
}

// EnqueueChefRejectedEmail enqueues a chef rejection email job
func EnqueueChefRejectedEmail(ctx context.Context, q repository.Querier, payload ChefRejectedPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.EnqueueJob(ctx, repository.EnqueueJobParams{
		JobType:        JobTypeChefRejected,
		Queue:          "email",
		Payload:        payloadJSON,
		Metadata:       []byte("{}"),
		Priority:       100,
		MaxRetries:     3,
		TimeoutSeconds: 30,
		ScheduledAt: pgtype.Timestamptz{
			Time:  time.Now(),
			Valid: true,
		},
	})

	return err
}

// EnqueueWaitlistAreaOpenedEmail enqueues an area-opened email for one waitlist entry
func EnqueueWaitlistAreaOpenedEmail(ctx context.Context, q repository.Querier, payload WaitlistAreaOpenedPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.EnqueueJob(ctx, repository.EnqueueJobParams{
		JobType:        JobTypeWaitlistAreaOpened,
		Queue:          "email",
		Payload:        payloadJSON,
		Metadata:       []byte("{}"),
		Priority:       100,
		MaxRetries:     3,
		TimeoutSeconds: 30,
		ScheduledAt: pgtype.Timestamptz{
			Time:  time.Now(),
			Valid: true,
		},
	})

	return err
}

// ProcessEmailJob processes an email job based on its type
func ProcessEmailJob(ctx context.Context, job *repository.Job, emailService *email.Service) error {
	switch job.JobType {
	case JobTypeVerificationEmail:
		var payload VerificationPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal verification payload: %w", err)
		}

		return emailService.SendVerification(ctx, email.VerificationEmail{
			Email:           payload.Email,
			FirstName:       payload.FirstName,
			VerificationURL: payload.VerificationURL,
			ExpiresAt:       payload.ExpiresAt,
		})

	case JobTypePasswordReset:
		var payload PasswordResetPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal password reset payload: %w", err)
		}

		return emailService.SendPasswordReset(ctx, email.PasswordResetEmail{
			Email:     payload.Email,
			FirstName: payload.FirstName,
			ResetURL:  payload.ResetURL,
			ExpiresAt: payload.ExpiresAt,
		})

	case JobTypeOrderConfirmation:
		var payload OrderConfirmationPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal order confirmation payload: %w", err)
		}

		return emailService.SendOrderConfirmation(ctx, email.OrderConfirmationEmail{
			Email:            payload.Email,
			CustomerName:     payload.CustomerName,
			OrderNumber:      payload.OrderNumber,
			ChefName:         payload.ChefName,
			OrderDate:        payload.OrderDate,
			Items:            emailOrderItems(payload.Items),
			SubtotalCents:    payload.SubtotalCents,
			DeliveryFeeCents: payload.DeliveryFeeCents,
			TaxCents:         payload.TaxCents,
			TotalCents:       payload.TotalCents,
			Fulfillment:      payload.Fulfillment,
			OrderURL:         payload.OrderURL,
		})

	case JobTypeChefNewOrder:
		var payload ChefNewOrderPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal chef new order payload: %w", err)
		}

		return emailService.SendChefNewOrder(ctx, email.ChefNewOrderEmail{
			Email:        payload.Email,
			ChefName:     payload.ChefName,
			OrderNumber:  payload.OrderNumber,
			CustomerName: payload.CustomerName,
			Items:        emailOrderItems(payload.Items),
			TotalCents:   payload.TotalCents,
			Fulfillment:  payload.Fulfillment,
			DashboardURL: payload.DashboardURL,
		})

	case JobTypeChefApproved:
		var payload ChefApprovedPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal chef approved payload: %w", err)
		}

		return emailService.SendChefApproved(ctx, email.ChefApprovedEmail{
			Email:        payload.Email,
			FirstName:    payload.FirstName,
			BusinessName: payload.BusinessName,
			DashboardURL: payload.DashboardURL,
		})

	case JobTypeChefRejected:
		var payload ChefRejectedPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal chef rejected payload: %w", err)
		}

		return emailService.SendChefRejected(ctx, email.ChefRejectedEmail{
			Email:        payload.Email,
			FirstName:    payload.FirstName,
			BusinessName: payload.BusinessName,
			Reason:       payload.Reason,
		})

	case JobTypeWaitlistAreaOpened:
		var payload WaitlistAreaOpenedPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal waitlist area opened payload: %w", err)
		}

		return emailService.SendWaitlistAreaOpened(ctx, email.WaitlistAreaOpenedEmail{
			Email:      payload.Email,
			FirstName:  payload.FirstName,
			PostalCode: payload.PostalCode,
			PlaceName:  payload.PlaceName,
			BrowseURL:  payload.BrowseURL,
		})

	default:
		return fmt.Errorf("unknown email job type: %s", job.JobType)
	}
}

func emailOrderItems(items []OrderItemData) []email.OrderItem {
	out := make([]email.OrderItem, len(items))
	for i, item := range items {
		out[i] = email.OrderItem{
			Title:          item.Title,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			TotalCents:     item.TotalCents,
		}
	}
	return out
}

// IsEmailJob checks if a job type is an email job
func IsEmailJob(jobType string) bool {
	switch jobType {
	case JobTypeVerificationEmail,
		JobTypePasswordReset,
		JobTypeOrderConfirmation,
		JobTypeChefNewOrder,
		JobTypeChefApproved,
		JobTypeChefRejected,
		JobTypeWaitlistAreaOpened:
		return true
	}
	return false
}
