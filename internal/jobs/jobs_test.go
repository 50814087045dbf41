package jobs_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localplate/localplate/internal/email"
	"github.com/localplate/localplate/internal/jobs"
	"github.com/localplate/localplate/internal/repository"
)

// captureEnqueues returns a mock whose EnqueueJob records every call.
func captureEnqueues() (*repository.MockQuerier, *[]repository.EnqueueJobParams) {
	captured := &[]repository.EnqueueJobParams{}
	q := repository.NewMockQuerier()
	q.EnqueueJobFunc = func(ctx context.Context, arg repository.EnqueueJobParams) (repository.Job, error) {
		*captured = append(*captured, arg)
		return repository.Job{JobType: arg.JobType, Queue: arg.Queue, Status: "pending"}, nil
	}
	return q, captured
}

func TestEnqueue_RoutesJobsByTypeAndQueue(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		enqueue  func(q repository.Querier) error
		jobType  string
		queue    string
		priority int32
	}{
		{
			name: "verification email",
			enqueue: func(q repository.Querier) error {
				return jobs.EnqueueVerificationEmail(ctx, q, jobs.VerificationPayload{Email: "a@b.c"})
			},
			jobType:  "email:verification",
			queue:    "email",
			priority: 50,
		},
		{
			name: "password reset",
			enqueue: func(q repository.Querier) error {
				return jobs.EnqueuePasswordReset(ctx, q, jobs.PasswordResetPayload{Email: "a@b.c"})
			},
			jobType:  "email:password_reset",
			queue:    "email",
			priority: 50,
		},
		{
			name: "order confirmation",
			enqueue: func(q repository.Querier) error {
				return jobs.EnqueueOrderConfirmationEmail(ctx, q, jobs.OrderConfirmationPayload{Email: "a@b.c"})
			},
			jobType:  "email:order_confirmation",
			queue:    "email",
			priority: 100,
		},
		{
			name: "chef new order",
			enqueue: func(q repository.Querier) error {
				return jobs.EnqueueChefNewOrderEmail(ctx, q, jobs.ChefNewOrderPayload{Email: "a@b.c"})
			},
			jobType:  "email:chef_new_order",
			queue:    "email",
			priority: 100,
		},
		{
			name: "chef approved",
			enqueue: func(q repository.Querier) error {
				return jobs.EnqueueChefApprovedEmail(ctx, q, jobs.ChefApprovedPayload{Email: "a@b.c"})
			},
			jobType:  "email:chef_approved",
			queue:    "email",
			priority: 100,
		},
		{
			name: "chef rejected",
			enqueue: func(q repository.Querier) error {
				return jobs.EnqueueChefRejectedEmail(ctx, q, jobs.ChefRejectedPayload{Email: "a@b.c"})
			},
			jobType:  "email:chef_rejected",
			queue:    "email",
			priority: 100,
		},
		{
			name: "waitlist area opened",
			enqueue: func(q repository.Querier) error {
				return jobs.EnqueueWaitlistAreaOpenedEmail(ctx, q, jobs.WaitlistAreaOpenedPayload{Email: "a@b.c"})
			},
			jobType:  "email:waitlist_area_opened",
			queue:    "email",
			priority: 100,
		},
		{
			name: "notify waitlist area",
			enqueue: func(q repository.Querier) error {
				return jobs.EnqueueNotifyWaitlistArea(ctx, q, jobs.NotifyWaitlistAreaPayload{PostalCodeID: uuid.New()})
			},
			jobType:  "waitlist:notify_area",
			queue:    "default",
			priority: 100,
		},
		{
			name: "offering embedding",
			enqueue: func(q repository.Querier) error {
				return jobs.EnqueueOfferingEmbedding(ctx, q, jobs.OfferingEmbeddingPayload{OfferingID: uuid.New()})
			},
			jobType:  "assistant:offering_embedding",
			queue:    "assistant",
			priority: 100,
		},
		{
			name: "meal plan",
			enqueue: func(q repository.Querier) error {
				return jobs.EnqueueMealPlan(ctx, q, jobs.MealPlanPayload{MealPlanID: uuid.New()})
			},
			jobType:  "assistant:meal_plan",
			queue:    "assistant",
			priority: 100,
		},
		{
			name: "cleanup expired tokens",
			enqueue: func(q repository.Querier) error {
				return jobs.EnqueueCleanupExpiredTokens(ctx, q)
			},
			jobType:  "cleanup:expired_tokens",
			queue:    "cleanup",
			priority: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, captured := captureEnqueues()

			require.NoError(t, tt.enqueue(q))
			require.Len(t, *captured, 1)

			arg := (*captured)[0]
			assert.Equal(t, tt.jobType, arg.JobType)
			assert.Equal(t, tt.queue, arg.Queue)
			assert.Equal(t, tt.priority, arg.Priority)
			assert.True(t, arg.ScheduledAt.Valid, "jobs should be scheduled immediately")
			assert.JSONEq(t, "{}", string(arg.Metadata))
			assert.Positive(t, arg.MaxRetries)
			assert.Positive(t, arg.TimeoutSeconds)
		})
	}
}

func TestEnqueueVerificationEmail_PayloadRoundTrips(t *testing.T) {
	q, captured := captureEnqueues()

	expires := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	err := jobs.EnqueueVerificationEmail(context.Background(), q, jobs.VerificationPayload{
		Email:           "newuser@example.com",
		FirstName:       "Priya",
		VerificationURL: "https://localplate.test/verify?token=abc",
		ExpiresAt:       expires,
	})
	require.NoError(t, err)
	require.Len(t, *captured, 1)

	var payload jobs.VerificationPayload
	require.NoError(t, json.Unmarshal((*captured)[0].Payload, &payload))
	assert.Equal(t, "newuser@example.com", payload.Email)
	assert.Equal(t, "Priya", payload.FirstName)
	assert.Equal(t, "https://localplate.test/verify?token=abc", payload.VerificationURL)
	assert.True(t, expires.Equal(payload.ExpiresAt))
}

// newEmailService builds the real email service against the shipped templates.
func newEmailService(t *testing.T) (*email.Service, *email.MockSender) {
	t.Helper()

	sender := email.NewMockSender()
	svc, err := email.NewService(sender, "orders@localplate.com", "LocalPlate", "../../web/templates")
	require.NoError(t, err)
	return svc, sender
}

func emailJob(t *testing.T, jobType string, payload any) *repository.Job {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &repository.Job{JobType: jobType, Queue: "email", Payload: raw}
}

func TestProcessEmailJob_SendsOrderConfirmation(t *testing.T) {
	svc, sender := newEmailService(t)

	job := emailJob(t, jobs.JobTypeOrderConfirmation, jobs.OrderConfirmationPayload{
		OrderID:      uuid.New(),
		Email:        "customer@example.com",
		CustomerName: "Sam",
		OrderNumber:  "LP-20250612-A4C1",
		ChefName:     "Rosa's Kitchen",
		OrderDate:    time.Date(2025, 6, 12, 18, 0, 0, 0, time.UTC),
		Items: []jobs.OrderItemData{
			{Title: "Tamales (dozen)", Quantity: 2, UnitPriceCents: 2400, TotalCents: 4800},
		},
		SubtotalCents:    4800,
		DeliveryFeeCents: 500,
		TaxCents:         424,
		TotalCents:       5724,
		Fulfillment:      "delivery",
		OrderURL:         "https://localplate.test/orders/LP-20250612-A4C1",
	})

	require.NoError(t, jobs.ProcessEmailJob(context.Background(), job, svc))

	sent := sender.LastSent()
	require.NotNil(t, sent)
	assert.Equal(t, []string{"customer@example.com"}, sent.To)
	assert.Contains(t, sent.Subject, "LP-20250612-A4C1")
	assert.Contains(t, sent.HTMLBody, "Tamales (dozen)")
	assert.Contains(t, sent.HTMLBody, "Rosa&#39;s Kitchen")
}

func TestProcessEmailJob_SendsChefRejectedWithReason(t *testing.T) {
	svc, sender := newEmailService(t)

	job := emailJob(t, jobs.JobTypeChefRejected, jobs.ChefRejectedPayload{
		ChefID:       uuid.New(),
		Email:        "chef@example.com",
		FirstName:    "Rosa",
		BusinessName: "Rosa's Kitchen",
		Reason:       "Service area outside our launch regions",
	})

	require.NoError(t, jobs.ProcessEmailJob(context.Background(), job, svc))

	sent := sender.LastSent()
	require.NotNil(t, sent)
	assert.Equal(t, []string{"chef@example.com"}, sent.To)
	assert.Contains(t, sent.HTMLBody, "Service area outside our launch regions")
}

func TestProcessEmailJob_BadPayload(t *testing.T) {
	svc, sender := newEmailService(t)

	job := &repository.Job{JobType: jobs.JobTypePasswordReset, Payload: []byte("{not json")}
	err := jobs.ProcessEmailJob(context.Background(), job, svc)
	require.Error(t, err)
	assert.Nil(t, sender.LastSent())
}

func TestProcessEmailJob_UnknownType(t *testing.T) {
	svc, _ := newEmailService(t)

	job := &repository.Job{JobType: "email:carrier_pigeon", Payload: []byte("{}")}
	err := jobs.ProcessEmailJob(context.Background(), job, svc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email:carrier_pigeon")
}

func TestProcessCleanupJob_ReportsDeletedCounts(t *testing.T) {
	q := repository.NewMockQuerier()
	q.DeleteExpiredEmailVerificationTokensFunc = func(ctx context.Context) (int64, error) {
		return 3, nil
	}
	q.DeleteExpiredPasswordResetTokensFunc = func(ctx context.Context) (int64, error) {
		return 2, nil
	}

	job := &repository.Job{JobType: jobs.JobTypeCleanupExpiredTokens, Payload: []byte("{}")}
	result, err := jobs.ProcessCleanupJob(context.Background(), job, q)
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.VerificationTokensDeleted)
	assert.Equal(t, int64(2), result.PasswordResetTokensDeleted)
}

func TestProcessCleanupJob_UnknownType(t *testing.T) {
	q := repository.NewMockQuerier()

	job := &repository.Job{JobType: "cleanup:attic"}
	_, err := jobs.ProcessCleanupJob(context.Background(), job, q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleanup:attic")
}

func TestJobTypePredicates(t *testing.T) {
	classify := func(jobType string) []string {
		var kinds []string
		if jobs.IsEmailJob(jobType) {
			kinds = append(kinds, "email")
		}
		if jobs.IsWaitlistJob(jobType) {
			kinds = append(kinds, "waitlist")
		}
		if jobs.IsAssistantJob(jobType) {
			kinds = append(kinds, "assistant")
		}
		if jobs.IsCleanupJob(jobType) {
			kinds = append(kinds, "cleanup")
		}
		return kinds
	}

	all := map[string]string{
		jobs.JobTypeVerificationEmail:    "email",
		jobs.JobTypePasswordReset:        "email",
		jobs.JobTypeOrderConfirmation:    "email",
		jobs.JobTypeChefNewOrder:         "email",
		jobs.JobTypeChefApproved:         "email",
		jobs.JobTypeChefRejected:         "email",
		jobs.JobTypeWaitlistAreaOpened:   "email",
		jobs.JobTypeNotifyWaitlistArea:   "waitlist",
		jobs.JobTypeOfferingEmbedding:    "assistant",
		jobs.JobTypeMealPlan:             "assistant",
		jobs.JobTypeCleanupExpiredTokens: "cleanup",
	}
	for jobType, kind := range all {
		assert.Equal(t, []string{kind}, classify(jobType), jobType)
	}

	assert.Empty(t, classify("sms:order_update"))
}
