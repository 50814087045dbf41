package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/localplate/localplate/internal/repository"
)

// Job type constants for waitlist jobs
const (
	JobTypeNotifyWaitlistArea = "waitlist:notify_area"
)

// NotifyWaitlistAreaPayload identifies the postal code whose waitlist gained coverage
type NotifyWaitlistAreaPayload struct {
	PostalCodeID uuid.UUID `json:"postal_code_id"`
}

// EnqueueNotifyWaitlistArea enqueues a sweep over the unnotified waitlist
// entries for a postal code. The sweep marks each entry notified and fans
// out one area-opened email job per entry.
func EnqueueNotifyWaitlistArea(ctx context.Context, q repository.Querier, payload NotifyWaitlistAreaPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.EnqueueJob(ctx, repository.EnqueueJobParams{
		JobType:        JobTypeNotifyWaitlistArea,
		Queue:          "default",
		Payload:        payloadJSON,
		Metadata:       []byte("{}"),
		Priority:       100,
		MaxRetries:     3,
		TimeoutSeconds: 60,
		ScheduledAt: pgtype.Timestamptz{
			Time:  time.Now(),
			Valid: true,
		},
	})

	return err
}

// IsWaitlistJob checks if a job type is a waitlist job
func IsWaitlistJob(jobType string) bool {
	switch jobType {
	case JobTypeNotifyWaitlistArea:
		return true
	}
	return false
}
