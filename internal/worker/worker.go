package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/localplate/localplate/internal/alerts"
	"github.com/localplate/localplate/internal/email"
	"github.com/localplate/localplate/internal/jobs"
	"github.com/localplate/localplate/internal/repository"
	"github.com/localplate/localplate/internal/service"
	"github.com/localplate/localplate/internal/telemetry"
)

const (
	// maintenanceInterval is how often finished jobs are pruned and the
	// daily schedules are checked
	maintenanceInterval = 1 * time.Hour

	// tokenSweepInterval is how often expired auth tokens are cleaned up
	tokenSweepInterval = 24 * time.Hour

	// defaultJobTimeout applies when a job row carries no timeout
	defaultJobTimeout = 1 * time.Minute
)

// defaultQueues covers every queue the marketplace enqueues to.
var defaultQueues = []string{"default", "email", "assistant", "cleanup"}

// Config holds worker configuration
type Config struct {
	// WorkerID uniquely identifies this worker instance
	WorkerID string

	// PollInterval is how often to check for new jobs
	PollInterval time.Duration

	// MaxConcurrency is the maximum number of jobs to process concurrently
	MaxConcurrency int

	// Queues to poll, in priority order (empty = all queues)
	Queues []string

	// ShutdownTimeout bounds the wait for in-flight jobs on stop
	ShutdownTimeout time.Duration

	// JobRetention is how long finished job rows are kept for inspection
	JobRetention time.Duration
}

// Services are the handlers jobs are routed to.
type Services struct {
	Email     *email.Service
	Offerings service.OfferingService
	MealPlans service.MealPlanService
	Waitlist  service.WaitlistService
}

// Worker drains the jobs table: transactional email, offering
// embeddings, meal plan generation, waitlist sweeps, and maintenance.
type Worker struct {
	config   Config
	repo     repository.Querier
	services Services
	notifier alerts.Notifier
	metrics  *telemetry.BusinessMetrics
	logger   *slog.Logger

	// nextQueue rotates the claim order. Touched only from the poll
	// loop goroutine.
	nextQueue int
}

// NewWorker creates a new background job worker
func NewWorker(
	repo repository.Querier,
	services Services,
	notifier alerts.Notifier,
	metrics *telemetry.BusinessMetrics,
	config Config,
	logger *slog.Logger,
) *Worker {
	if config.WorkerID == "" {
		config.WorkerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}
	if config.PollInterval == 0 {
		config.PollInterval = 1 * time.Second
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 5
	}
	if len(config.Queues) == 0 {
		config.Queues = defaultQueues
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 30 * time.Second
	}
	if config.JobRetention == 0 {
		config.JobRetention = 7 * 24 * time.Hour
	}
	if notifier == nil {
		notifier = alerts.NoopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Worker{
		config:   config,
		repo:     repo,
		services: services,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// Start begins processing jobs until the context is cancelled. New jobs
// stop being claimed on cancellation; in-flight jobs get up to
// ShutdownTimeout to finish.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("worker starting",
		"worker_id", w.config.WorkerID,
		"queues", w.config.Queues,
		"poll_interval", w.config.PollInterval,
		"max_concurrency", w.config.MaxConcurrency,
	)

	// The token sweep is cheap, so one runs at startup and then daily.
	if err := jobs.EnqueueCleanupExpiredTokens(ctx, w.repo); err != nil {
		w.logger.Error("failed to schedule token cleanup", "error", err)
	}
	nextTokenSweep := time.Now().Add(tokenSweepInterval)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()
	maintenance := time.NewTicker(maintenanceInterval)
	defer maintenance.Stop()

	sem := make(chan struct{}, w.config.MaxConcurrency)
	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker shutting down", "worker_id", w.config.WorkerID)
			return w.drain(&wg)

		case <-maintenance.C:
			if time.Now().After(nextTokenSweep) {
				if err := jobs.EnqueueCleanupExpiredTokens(ctx, w.repo); err != nil {
					w.logger.Error("failed to schedule token cleanup", "error", err)
				} else {
					nextTokenSweep = time.Now().Add(tokenSweepInterval)
				}
			}
			w.pruneFinishedJobs(ctx)

		case <-ticker.C:
			w.fillSlots(ctx, sem, &wg)
		}
	}
}

// fillSlots claims jobs into every free concurrency slot, stopping when
// the queues are empty. Jobs run on a detached context so shutdown does
// not abort work mid-flight.
func (w *Worker) fillSlots(ctx context.Context, sem chan struct{}, wg *sync.WaitGroup) {
	for {
		select {
		case sem <- struct{}{}:
		default:
			return
		}

		job, ok := w.claimNext(ctx)
		if !ok {
			<-sem
			return
		}

		jobCtx := context.WithoutCancel(ctx)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			w.runJob(jobCtx, job)
		}()
	}
}

// claimNext tries each queue once, starting after the queue that
// produced the previous job so a deep queue cannot starve the others.
func (w *Worker) claimNext(ctx context.Context) (repository.Job, bool) {
	queues := w.config.Queues
	for i := 0; i < len(queues); i++ {
		queue := queues[(w.nextQueue+i)%len(queues)]

		job, err := w.repo.ClaimNextJob(ctx, repository.ClaimNextJobParams{
			WorkerID: repository.Text(w.config.WorkerID),
			Queue:    queue,
		})
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) && ctx.Err() == nil {
				w.logger.Error("failed to claim job", "queue", queue, "error", err)
			}
			continue
		}

		w.nextQueue = (w.nextQueue + i + 1) % len(queues)
		return job, true
	}
	return repository.Job{}, false
}

// runJob processes one claimed job and records the outcome.
func (w *Worker) runJob(ctx context.Context, job repository.Job) {
	w.logger.Info("processing job",
		"job_id", repository.ToUUID(job.ID),
		"job_type", job.JobType,
		"queue", job.Queue,
		"retry_count", job.RetryCount,
	)

	start := time.Now()
	err := w.processJob(ctx, &job)
	if w.metrics != nil {
		w.metrics.JobDuration.WithLabelValues(job.JobType).Observe(time.Since(start).Seconds())
	}

	if err != nil {
		w.failJob(ctx, job, err)
		return
	}

	if err := w.repo.CompleteJob(ctx, job.ID); err != nil {
		w.logger.Error("failed to mark job completed",
			"job_id", repository.ToUUID(job.ID),
			"job_type", job.JobType,
			"error", err,
		)
		return
	}

	if w.metrics != nil {
		w.metrics.JobsProcessed.WithLabelValues(job.JobType).Inc()
	}
	w.logger.Info("job completed",
		"job_id", repository.ToUUID(job.ID),
		"job_type", job.JobType,
		"duration", time.Since(start),
	)
}

// processJob routes a job to its handler under the job's own timeout.
func (w *Worker) processJob(ctx context.Context, job *repository.Job) error {
	timeout := time.Duration(job.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}
	jobCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	switch {
	case jobs.IsEmailJob(job.JobType):
		return jobs.ProcessEmailJob(jobCtx, job, w.services.Email)

	case jobs.IsCleanupJob(job.JobType):
		result, err := jobs.ProcessCleanupJob(jobCtx, job, w.repo)
		if err != nil {
			return err
		}
		w.logger.Info("expired tokens swept",
			"verification_tokens", result.VerificationTokensDeleted,
			"password_reset_tokens", result.PasswordResetTokensDeleted,
		)
		return nil
	}

	switch job.JobType {
	case jobs.JobTypeOfferingEmbedding:
		var payload jobs.OfferingEmbeddingPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal embedding payload: %w", err)
		}
		return w.services.Offerings.GenerateEmbedding(jobCtx, payload.OfferingID)

	case jobs.JobTypeMealPlan:
		var payload jobs.MealPlanPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal meal plan payload: %w", err)
		}
		return w.services.MealPlans.Generate(jobCtx, payload.MealPlanID)

	case jobs.JobTypeNotifyWaitlistArea:
		var payload jobs.NotifyWaitlistAreaPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal waitlist payload: %w", err)
		}
		notified, err := w.services.Waitlist.NotifyArea(jobCtx, payload.PostalCodeID)
		if err != nil {
			return err
		}
		w.logger.Info("waitlist swept",
			"postal_code_id", payload.PostalCodeID,
			"notified", notified,
		)
		return nil

	default:
		return fmt.Errorf("unknown job type: %s", job.JobType)
	}
}

// failJob records the failure. The query reschedules the job with
// exponential backoff until its retries are exhausted; a dead job also
// raises an alert.
func (w *Worker) failJob(ctx context.Context, job repository.Job, jobErr error) {
	dead := job.RetryCount+1 >= job.MaxRetries

	details, _ := json.Marshal(map[string]string{"error": jobErr.Error()})
	if err := w.repo.FailJob(ctx, repository.FailJobParams{
		ID:           job.ID,
		ErrorMessage: repository.Text(jobErr.Error()),
		ErrorDetails: details,
	}); err != nil {
		w.logger.Error("failed to record job failure",
			"job_id", repository.ToUUID(job.ID),
			"error", err,
		)
		return
	}

	if w.metrics != nil {
		outcome := "retry"
		if dead {
			outcome = "dead"
		}
		w.metrics.JobsFailed.WithLabelValues(job.JobType, outcome).Inc()
	}

	if !dead {
		w.logger.Warn("job failed, will retry",
			"job_id", repository.ToUUID(job.ID),
			"job_type", job.JobType,
			"retry_count", job.RetryCount+1,
			"max_retries", job.MaxRetries,
			"error", jobErr,
		)
		return
	}

	w.logger.Error("job failed permanently",
		"job_id", repository.ToUUID(job.ID),
		"job_type", job.JobType,
		"retry_count", job.RetryCount+1,
		"error", jobErr,
	)
	alerts.NotifyError(w.notifier, alerts.ErrorEvent{
		Message: fmt.Sprintf("background job failed permanently: %s", jobErr),
		JobType: job.JobType,
	})
}

// pruneFinishedJobs deletes completed and dead jobs past the retention
// window.
func (w *Worker) pruneFinishedJobs(ctx context.Context) {
	before := repository.Timestamptz(time.Now().Add(-w.config.JobRetention))
	deleted, err := w.repo.DeleteCompletedJobs(ctx, before)
	if err != nil {
		w.logger.Error("failed to prune finished jobs", "error", err)
		return
	}
	if deleted > 0 {
		w.logger.Info("pruned finished jobs",
			"deleted", deleted,
			"older_than", w.config.JobRetention,
		)
	}
}

// drain waits for in-flight jobs, giving up after ShutdownTimeout.
func (w *Worker) drain(wg *sync.WaitGroup) error {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("worker stopped", "worker_id", w.config.WorkerID)
		return nil
	case <-time.After(w.config.ShutdownTimeout):
		w.logger.Warn("worker stopped with jobs still running",
			"worker_id", w.config.WorkerID,
			"timeout", w.config.ShutdownTimeout,
		)
		return fmt.Errorf("worker shutdown timed out after %s", w.config.ShutdownTimeout)
	}
}
