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

// Job type constants for assistant jobs. These run model calls and are
// dispatched by the worker through the offering and meal plan services.
const (
	JobTypeOfferingEmbedding = "assistant:offering_embedding"
	JobTypeMealPlan          = "assistant:meal_plan"
)

// OfferingEmbeddingPayload identifies the offering whose embedding should be refreshed
type OfferingEmbeddingPayload struct {
	OfferingID uuid.UUID `json:"offering_id"`
}

// MealPlanPayload identifies the meal plan row awaiting generation
type MealPlanPayload struct {
	MealPlanID uuid.UUID `json:"meal_plan_id"`
}

// EnqueueOfferingEmbedding enqueues a job to embed an offering for semantic search
func EnqueueOfferingEmbedding(ctx context.Context, q repository.Querier, payload OfferingEmbeddingPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.EnqueueJob(ctx, repository.EnqueueJobParams{
		JobType:        JobTypeOfferingEmbedding,
		Queue:          "assistant",
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

// EnqueueMealPlan enqueues a job to generate a requested meal plan. The
// generator retries the model itself and marks the plan failed when it
// gives up, so the job is not retried on top of that.
func EnqueueMealPlan(ctx context.Context, q repository.Querier, payload MealPlanPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.EnqueueJob(ctx, repository.EnqueueJobParams{
		JobType:        JobTypeMealPlan,
		Queue:          "assistant",
		Payload:        payloadJSON,
		Metadata:       []byte("{}"),
		Priority:       100,
		MaxRetries:     1,
		TimeoutSeconds: 120,
		ScheduledAt: pgtype.Timestamptz{
			Time:  time.Now(),
			Valid: true,
		},
	})

	return err
}

// IsAssistantJob checks if a job type is an assistant job
func IsAssistantJob(jobType string) bool {
	switch jobType {
	case JobTypeOfferingEmbedding, JobTypeMealPlan:
		return true
	}
	return false
}
