package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/localplate/localplate/internal/repository"
)

// Job type constants for cleanup jobs. These are maintenance sweeps the
// worker schedules for itself; nothing in the request path enqueues them.
const (
	JobTypeCleanupExpiredTokens = "cleanup:expired_tokens"
)

// CleanupExpiredTokensPayload represents the payload for a token cleanup job.
// The job is self-contained and needs no parameters.
type CleanupExpiredTokensPayload struct{}

// EnqueueCleanupExpiredTokens enqueues a job to remove expired email
// verification and password reset tokens. The worker schedules this daily.
func EnqueueCleanupExpiredTokens(ctx context.Context, q repository.Querier) error {
	payloadJSON, err := json.Marshal(CleanupExpiredTokensPayload{})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.EnqueueJob(ctx, repository.EnqueueJobParams{
		JobType:        JobTypeCleanupExpiredTokens,
		Queue:          "cleanup",
		Payload:        payloadJSON,
		Metadata:       []byte("{}"),
		Priority:       10, // Low priority maintenance task
		MaxRetries:     1,  // The next scheduled run covers a failure
		TimeoutSeconds: 60,
		ScheduledAt: pgtype.Timestamptz{
			Time:  time.Now(),
			Valid: true,
		},
	})

	return err
}

// CleanupResult holds the row counts from a cleanup run
type CleanupResult struct {
	VerificationTokensDeleted  int64 `json:"verification_tokens_deleted"`
	PasswordResetTokensDeleted int64 `json:"password_reset_tokens_deleted"`
}

// ProcessCleanupJob processes a cleanup job based on its type
func ProcessCleanupJob(ctx context.Context, job *repository.Job, q repository.Querier) (*CleanupResult, error) {
	switch job.JobType {
	case JobTypeCleanupExpiredTokens:
		return processCleanupExpiredTokens(ctx, q)
	default:
		return nil, fmt.Errorf("unknown cleanup job type: %s", job.JobType)
	}
}

// Expired tokens are dead weight either way: verification links that were
// never clicked and reset links that were never used.
func processCleanupExpiredTokens(ctx context.Context, q repository.Querier) (*CleanupResult, error) {
	var result CleanupResult

	sweeps := []struct {
		kind  string
		run   func(context.Context) (int64, error)
		total *int64
	}{
		{"email verification", q.DeleteExpiredEmailVerificationTokens, &result.VerificationTokensDeleted},
		{"password reset", q.DeleteExpiredPasswordResetTokens, &result.PasswordResetTokensDeleted},
	}
	for _, sweep := range sweeps {
		deleted, err := sweep.run(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to delete expired %s tokens: %w", sweep.kind, err)
		}
		*sweep.total = deleted
	}

	return &result, nil
}

// IsCleanupJob checks if a job type is a cleanup job
func IsCleanupJob(jobType string) bool {
	switch jobType {
	case JobTypeCleanupExpiredTokens:
		return true
	}
	return false
}
