package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const enqueueJob = `-- name: EnqueueJob :one
INSERT INTO jobs (job_type, queue, payload, metadata, priority, max_retries, timeout_seconds, scheduled_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, job_type, queue, payload, metadata, status, priority, retry_count, max_retries, timeout_seconds, scheduled_at, started_at, completed_at, worker_id, error_message, error_details, created_at, updated_at
`

type EnqueueJobParams struct {
	JobType        string
	Queue          string
	Payload        []byte
	Metadata       []byte
	Priority       int32
	MaxRetries     int32
	TimeoutSeconds int32
	ScheduledAt    pgtype.Timestamptz
}

func (q *Queries) EnqueueJob(ctx context.Context, arg EnqueueJobParams) (Job, error) {
	row := q.db.QueryRow(ctx, enqueueJob,
		arg.JobType,
		arg.Queue,
		arg.Payload,
		arg.Metadata,
		arg.Priority,
		arg.MaxRetries,
		arg.TimeoutSeconds,
		arg.ScheduledAt,
	)
	var i Job
	err := row.Scan(
		&i.ID,
		&i.JobType,
		&i.Queue,
		&i.Payload,
		&i.Metadata,
		&i.Status,
		&i.Priority,
		&i.RetryCount,
		&i.MaxRetries,
		&i.TimeoutSeconds,
		&i.ScheduledAt,
		&i.StartedAt,
		&i.CompletedAt,
		&i.WorkerID,
		&i.ErrorMessage,
		&i.ErrorDetails,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const claimNextJob = `-- name: ClaimNextJob :one
UPDATE jobs
SET status = 'running',
    started_at = now(),
    worker_id = $1,
    updated_at = now()
WHERE id = (
    SELECT id
    FROM jobs
    WHERE status = 'pending'
      AND queue = $2
      AND scheduled_at <= now()
    ORDER BY priority, scheduled_at
    LIMIT 1
    FOR UPDATE SKIP LOCKED
)
RETURNING id, job_type, queue, payload, metadata, status, priority, retry_count, max_retries, timeout_seconds, scheduled_at, started_at, completed_at, worker_id, error_message, error_details, created_at, updated_at
`

type ClaimNextJobParams struct {
	WorkerID pgtype.Text
	Queue    string
}

// ClaimNextJob atomically claims the highest-priority due job. Concurrent
// workers skip rows another worker has locked, so a job is claimed once.
// Returns pgx.ErrNoRows when the queue is empty.
func (q *Queries) ClaimNextJob(ctx context.Context, arg ClaimNextJobParams) (Job, error) {
	row := q.db.QueryRow(ctx, claimNextJob, arg.WorkerID, arg.Queue)
	var i Job
	err := row.Scan(
		&i.ID,
		&i.JobType,
		&i.Queue,
		&i.Payload,
		&i.Metadata,
		&i.Status,
		&i.Priority,
		&i.RetryCount,
		&i.MaxRetries,
		&i.TimeoutSeconds,
		&i.ScheduledAt,
		&i.StartedAt,
		&i.CompletedAt,
		&i.WorkerID,
		&i.ErrorMessage,
		&i.ErrorDetails,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const completeJob = `-- name: CompleteJob :exec
UPDATE jobs
SET status = 'completed',
    completed_at = now(),
    updated_at = now()
WHERE id = $1
`

func (q *Queries) CompleteJob(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, completeJob, id)
	return err
}

const failJob = `-- name: FailJob :exec
UPDATE jobs
SET retry_count = retry_count + 1,
    status = CASE WHEN retry_count + 1 >= max_retries THEN 'failed' ELSE 'pending' END,
    scheduled_at = CASE WHEN retry_count + 1 >= max_retries THEN scheduled_at
                        ELSE now() + make_interval(secs => 30 * power(2, retry_count)) END,
    completed_at = CASE WHEN retry_count + 1 >= max_retries THEN now() ELSE NULL END,
    error_message = $2,
    error_details = $3,
    worker_id = NULL,
    started_at = NULL,
    updated_at = now()
WHERE id = $1
`

type FailJobParams struct {
	ID           pgtype.UUID
	ErrorMessage pgtype.Text
	ErrorDetails []byte
}

// FailJob records the failure and either reschedules the job with
// exponential backoff or marks it failed once retries are exhausted.
func (q *Queries) FailJob(ctx context.Context, arg FailJobParams) error {
	_, err := q.db.Exec(ctx, failJob, arg.ID, arg.ErrorMessage, arg.ErrorDetails)
	return err
}

const getJobByID = `-- name: GetJobByID :one
SELECT id, job_type, queue, payload, metadata, status, priority, retry_count, max_retries, timeout_seconds, scheduled_at, started_at, completed_at, worker_id, error_message, error_details, created_at, updated_at
FROM jobs
WHERE id = $1
`

func (q *Queries) GetJobByID(ctx context.Context, id pgtype.UUID) (Job, error) {
	row := q.db.QueryRow(ctx, getJobByID, id)
	var i Job
	err := row.Scan(
		&i.ID,
		&i.JobType,
		&i.Queue,
		&i.Payload,
		&i.Metadata,
		&i.Status,
		&i.Priority,
		&i.RetryCount,
		&i.MaxRetries,
		&i.TimeoutSeconds,
		&i.ScheduledAt,
		&i.StartedAt,
		&i.CompletedAt,
		&i.WorkerID,
		&i.ErrorMessage,
		&i.ErrorDetails,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteCompletedJobs = `-- name: DeleteCompletedJobs :execrows
DELETE FROM jobs
WHERE status IN ('completed', 'failed')
  AND completed_at < $1
`

func (q *Queries) DeleteCompletedJobs(ctx context.Context, before pgtype.Timestamptz) (int64, error) {
	result, err := q.db.Exec(ctx, deleteCompletedJobs, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const countJobsByStatus = `-- name: CountJobsByStatus :one
SELECT count(*) FROM jobs WHERE status = $1
`

func (q *Queries) CountJobsByStatus(ctx context.Context, status string) (int64, error) {
	row := q.db.QueryRow(ctx, countJobsByStatus, status)
	var count int64
	err := row.Scan(&count)
	return count, err
}
