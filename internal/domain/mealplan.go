package domain

// =============================================================================
// MEAL PLAN DOMAIN TYPES
// =============================================================================

// MealPlanStatus represents the generation status of an assistant meal plan.
type MealPlanStatus string

const (
	MealPlanStatusGenerating MealPlanStatus = "generating"
	MealPlanStatusReady      MealPlanStatus = "ready"
	MealPlanStatusFailed     MealPlanStatus = "failed"
)

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

// Meal plan and assistant errors.
var (
	ErrMealPlanNotFound   = &Error{Code: ENOTFOUND, Message: "Meal plan not found"}
	ErrMealPlanGeneration = &Error{Code: EINTERNAL, Message: "Meal plan generation failed"}
	ErrAssistantTool      = &Error{Code: EINVALID, Message: "Unknown assistant tool"}
)
