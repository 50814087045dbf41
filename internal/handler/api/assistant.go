package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/localplate/localplate/internal/assistant"
	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/handler"
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/service"
	"github.com/localplate/localplate/internal/telemetry"
)

const chatSystemPrompt = `You are LocalPlate's marketplace assistant. Help customers find dishes from local chefs, check whether their area is covered, and plan meals around their dietary needs. Use search_offerings for dish questions, check_area_coverage for delivery questions, get_dietary_profile for the customer's saved restrictions, and search_grocery_products for ingredients no chef covers. Keep answers short and concrete.`

// maxChatHistory bounds how much prior conversation a request may replay.
const maxChatHistory = 20

// AssistantHandler serves the conversational assistant and meal plans.
type AssistantHandler struct {
	chat      *assistant.Service
	mealPlans service.MealPlanService
	logger    *slog.Logger
}

// NewAssistantHandler creates a new assistant handler.
func NewAssistantHandler(chat *assistant.Service, mealPlans service.MealPlanService, logger *slog.Logger) *AssistantHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssistantHandler{chat: chat, mealPlans: mealPlans, logger: logger}
}

type chatRequest struct {
	Message string        `json:"message"`
	History []chatMessage `json:"history"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat handles POST /api/assistant/chat - one conversation turn. The
// client replays its visible history; tool traffic stays server-side.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	var req chatRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "assistant.chat", "A message is required"))
		return
	}

	history := req.History
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}

	// Only user and assistant turns are replayable; anything else would
	// let the client impersonate the system prompt or tool results.
	messages := make([]assistant.Message, 0, len(history)+1)
	for _, m := range history {
		if m.Role != assistant.RoleUser && m.Role != assistant.RoleAssistant {
			continue
		}
		messages = append(messages, assistant.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, assistant.Message{Role: assistant.RoleUser, Content: message})

	reply, err := h.chat.ChatOnce(ctx, assistant.ChatOnceParams{
		System:   chatSystemPrompt,
		Messages: messages,
	})
	if err != nil {
		logger.Error("assistant chat failed", "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.AssistantChats.Inc()
	}
	handler.JSON(w, http.StatusOK, map[string]string{"reply": reply})
}

type mealPlanRequest struct {
	Request string `json:"request"`
}

// RequestMealPlan handles POST /api/meal-plans - records the request and
// queues generation. Responds 202 with the plan row still generating.
func (h *AssistantHandler) RequestMealPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	var req mealPlanRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	plan, err := h.mealPlans.Request(ctx, user.ID, req.Request)
	if err != nil {
		if domain.IsValidationError(err) {
			handler.ValidationErrorResponse(w, r, err)
			return
		}
		logger.Warn("meal plan request failed", "user_id", user.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	logger.Info("meal plan requested", "user_id", user.ID, "meal_plan_id", plan.ID)
	handler.JSON(w, http.StatusAccepted, plan)
}

// ListMealPlans handles GET /api/meal-plans - the caller's plans, newest
// first.
func (h *AssistantHandler) ListMealPlans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	limit, offset := pagination(r)
	plans, err := h.mealPlans.ListForUser(ctx, user.ID, limit, offset)
	if err != nil {
		logger.Error("failed to list meal plans", "user_id", user.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]any{"meal_plans": plans})
}

// GetMealPlan handles GET /api/meal-plans/{id} - one of the caller's
// plans, including its status while generation is still running.
func (h *AssistantHandler) GetMealPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return
	}

	planID, err := pathUUID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	plan, err := h.mealPlans.Get(ctx, user.ID, planID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, plan)
}
