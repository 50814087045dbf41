package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/localplate/localplate/internal/assistant"
	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/jobs"
	"github.com/localplate/localplate/internal/repository"
)

// mealPlanAttempts is how many model runs a plan gets before it is
// marked failed.
const mealPlanAttempts = 2

// mealPlanMaxRounds allows the model enough tool round-trips to search
// offerings, check the pantry, and save the finished plan.
const mealPlanMaxRounds = 8

const mealPlanSystemPrompt = `You are LocalPlate's meal planning assistant. Build a meal plan from the customer's request, favoring dishes from the local chefs listed in the message. Respect the customer's dietary restrictions without exception. Use search_offerings to find more dishes and search_grocery_products for ingredients no chef covers. When the plan is complete you must call save_meal_plan with the full plan.`

// MealPlanService generates meal plans for customers through the
// assistant. Generation is asynchronous: Request records the plan and
// queues a job, Generate runs from the worker.
type MealPlanService interface {
	// Request records a meal plan request and queues its generation.
	// The returned row is in the generating status.
	Request(ctx context.Context, userID uuid.UUID, request string) (*repository.MealPlan, error)

	// Generate runs the assistant against a requested plan and stores
	// the result. Called from the job queue.
	Generate(ctx context.Context, mealPlanID uuid.UUID) error

	// Get returns one of the user's meal plans.
	Get(ctx context.Context, userID uuid.UUID, mealPlanID uuid.UUID) (*repository.MealPlan, error)

	// ListForUser returns the user's meal plans, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]repository.MealPlan, error)
}

type mealPlanService struct {
	repo      repository.Querier
	chat      *assistant.Service
	offerings OfferingService
	logger    *slog.Logger
}

// NewMealPlanService creates a new MealPlanService instance
func NewMealPlanService(repo repository.Querier, chat *assistant.Service, offerings OfferingService, logger *slog.Logger) MealPlanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &mealPlanService{
		repo:      repo,
		chat:      chat,
		offerings: offerings,
		logger:    logger,
	}
}

func (s *mealPlanService) Request(ctx context.Context, userID uuid.UUID, request string) (*repository.MealPlan, error) {
	request = strings.TrimSpace(request)
	if request == "" {
		return nil, domain.NewValidationError("mealplan.request", "request", "request is required")
	}

	plan, err := s.repo.CreateMealPlan(ctx, repository.CreateMealPlanParams{
		UserID: repository.UUID(userID),
		// The generator replaces the working title once the model names
		// the plan.
		Title:   "Meal plan",
		Request: request,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create meal plan: %w", err)
	}

	if err := jobs.EnqueueMealPlan(ctx, s.repo, jobs.MealPlanPayload{
		MealPlanID: repository.ToUUID(plan.ID),
	}); err != nil {
		return nil, fmt.Errorf("failed to enqueue meal plan job: %w", err)
	}

	return &plan, nil
}

func (s *mealPlanService) Generate(ctx context.Context, mealPlanID uuid.UUID) error {
	plan, err := s.repo.GetMealPlanByID(ctx, repository.UUID(mealPlanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrMealPlanNotFound
		}
		return fmt.Errorf("failed to get meal plan: %w", err)
	}
	if domain.MealPlanStatus(plan.Status) == domain.MealPlanStatusReady {
		return nil
	}

	user, err := s.repo.GetUserByID(ctx, plan.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	prompt, err := s.buildPrompt(ctx, user, plan.Request.String)
	if err != nil {
		return err
	}

	// The tools resolve the viewer from the context, and save_meal_plan
	// writes into the capture instead of creating a second row.
	capture := &assistant.PlanCapture{}
	genCtx := assistant.WithPlanCapture(ctx, capture)
	genCtx = domain.NewContextWithUser(genCtx, &domain.User{
		ID:    repository.ToUUID(plan.UserID),
		Email: user.Email,
		Role:  user.Role,
	})

	attempts := plan.Attempts
	var lastErr error
	for attempt := 1; attempt <= mealPlanAttempts; attempt++ {
		attempts++

		answer, err := s.chat.ChatOnce(genCtx, assistant.ChatOnceParams{
			System: mealPlanSystemPrompt,
			Messages: []assistant.Message{
				{Role: assistant.RoleUser, Content: prompt},
			},
			MaxRounds: mealPlanMaxRounds,
		})
		if err != nil {
			lastErr = err
			s.logger.Warn("meal plan attempt failed",
				"meal_plan_id", mealPlanID,
				"attempt", attempts,
				"error", err)
			continue
		}

		title, planJSON, ok := capture.Plan()
		if !ok {
			lastErr = fmt.Errorf("model answered without saving a plan: %s", truncate(answer, 200))
			s.logger.Warn("meal plan attempt saved nothing",
				"meal_plan_id", mealPlanID,
				"attempt", attempts)
			continue
		}

		if _, err := s.repo.UpdateMealPlanReady(ctx, repository.UpdateMealPlanReadyParams{
			ID:       plan.ID,
			Title:    title,
			Plan:     planJSON,
			Attempts: attempts,
		}); err != nil {
			return fmt.Errorf("failed to save meal plan: %w", err)
		}
		return nil
	}

	if _, err := s.repo.UpdateMealPlanFailed(ctx, repository.UpdateMealPlanFailedParams{
		ID:           plan.ID,
		ErrorMessage: repository.Text(lastErr.Error()),
		Attempts:     attempts,
	}); err != nil {
		s.logger.Error("failed to mark meal plan failed",
			"meal_plan_id", mealPlanID,
			"error", err)
	}
	return fmt.Errorf("meal plan generation gave up after %d attempts: %w", attempts, lastErr)
}

// buildPrompt folds the customer's request, dietary profile, and a
// sample of orderable dishes into one user message.
func (s *mealPlanService) buildPrompt(ctx context.Context, user repository.User, request string) (string, error) {
	var b strings.Builder
	b.WriteString(request)

	if len(user.DietaryRestrictions) > 0 {
		b.WriteString("\n\nDietary restrictions: ")
		b.WriteString(strings.Join(user.DietaryRestrictions, ", "))
	}

	userID := repository.ToUUID(user.ID)
	rows, err := s.offerings.ListForViewer(ctx, ViewerOfferingsParams{
		UserID: &userID,
		Limit:  20,
	})
	if err != nil {
		return "", fmt.Errorf("failed to list offerings: %w", err)
	}
	if len(rows) > 0 {
		b.WriteString("\n\nDishes currently available from local chefs:")
		for _, row := range rows {
			b.WriteString(fmt.Sprintf("\n- %s ($%d.%02d) by %s",
				row.Title, row.PriceCents/100, row.PriceCents%100, row.ChefDisplayName))
			if len(row.DietaryTags) > 0 {
				b.WriteString(" [" + strings.Join(row.DietaryTags, ", ") + "]")
			}
		}
	}

	return b.String(), nil
}

func (s *mealPlanService) Get(ctx context.Context, userID uuid.UUID, mealPlanID uuid.UUID) (*repository.MealPlan, error) {
	plan, err := s.repo.GetMealPlanByID(ctx, repository.UUID(mealPlanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMealPlanNotFound
		}
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	// Meal plans of other users read as not found.
	if repository.ToUUID(plan.UserID) != userID {
		return nil, domain.ErrMealPlanNotFound
	}
	return &plan, nil
}

func (s *mealPlanService) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]repository.MealPlan, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	plans, err := s.repo.ListMealPlansByUser(ctx, repository.ListMealPlansByUserParams{
		UserID: repository.UUID(userID),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	return plans, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
