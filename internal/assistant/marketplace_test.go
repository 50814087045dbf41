package assistant_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localplate/localplate/internal/assistant"
	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/grocery"
	"github.com/localplate/localplate/internal/repository"
)

func newToolsRegistry(repo *repository.MockQuerier, provider assistant.Provider, g grocery.Provider) *assistant.Registry {
	tools := assistant.NewMarketplaceTools(repo, provider, g, nil)
	return tools.Registry()
}

func dispatch(t *testing.T, registry *assistant.Registry, ctx context.Context, name, args string) (map[string]any, error) {
	t.Helper()
	result, err := registry.Dispatch(ctx, assistant.ToolCall{
		ID:        "call-1",
		Name:      name,
		Arguments: json.RawMessage(args),
	})
	if err != nil {
		return nil, err
	}
	payload, marshalErr := json.Marshal(result)
	require.NoError(t, marshalErr)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	return decoded, nil
}

func userContext(role string) context.Context {
	return domain.NewContextWithUser(context.Background(), &domain.User{
		ID:    uuid.New(),
		Email: "customer@example.com",
		Role:  role,
	})
}

func TestSearchOfferingsTool_EmbedsQueryAndMapsRows(t *testing.T) {
	offeringID := uuid.New()
	repo := repository.NewMockQuerier()

	var gotLimit int32
	repo.SearchOfferingsByEmbeddingFunc = func(ctx context.Context, arg repository.SearchOfferingsByEmbeddingParams) ([]repository.SearchOfferingsByEmbeddingRow, error) {
		gotLimit = arg.Limit
		return []repository.SearchOfferingsByEmbeddingRow{
			{
				ID:              repository.UUID(offeringID),
				Title:           "Oaxacan Tamales",
				Description:     pgtype.Text{String: "Banana-leaf tamales with mole negro", Valid: true},
				PriceCents:      1800,
				Currency:        "usd",
				Fulfillment:     "pickup",
				DietaryTags:     []string{"gluten-free"},
				ChefDisplayName: "Rosa's Kitchen",
			},
		}, nil
	}

	provider := assistant.NewMockProvider()
	registry := newToolsRegistry(repo, provider, nil)

	result, err := dispatch(t, registry, context.Background(), "search_offerings",
		`{"query": "tamales", "limit": "3"}`)

	require.NoError(t, err)
	require.Len(t, provider.EmbedCalls(), 1)
	assert.Equal(t, []string{"tamales"}, provider.EmbedCalls()[0])
	assert.Equal(t, int32(3), gotLimit, "string limit should coerce to a number")

	offerings := result["offerings"].([]any)
	require.Len(t, offerings, 1)
	first := offerings[0].(map[string]any)
	assert.Equal(t, offeringID.String(), first["id"])
	assert.Equal(t, "Oaxacan Tamales", first["title"])
	assert.Equal(t, float64(1800), first["price_cents"])
	assert.Equal(t, "Rosa's Kitchen", first["chef_name"])
}

func TestSearchOfferingsTool_FiltersByDietaryTags(t *testing.T) {
	repo := repository.NewMockQuerier()
	repo.SearchOfferingsByEmbeddingFunc = func(ctx context.Context, arg repository.SearchOfferingsByEmbeddingParams) ([]repository.SearchOfferingsByEmbeddingRow, error) {
		return []repository.SearchOfferingsByEmbeddingRow{
			{ID: repository.UUID(uuid.New()), Title: "Vegan Pozole", DietaryTags: []string{"Vegan", "gluten-free"}},
			{ID: repository.UUID(uuid.New()), Title: "Carnitas Plate", DietaryTags: []string{"gluten-free"}},
		}, nil
	}

	registry := newToolsRegistry(repo, assistant.NewMockProvider(), nil)

	result, err := dispatch(t, registry, context.Background(), "search_offerings",
		`{"query": "dinner", "dietary_tags": ["vegan"]}`)

	require.NoError(t, err)
	offerings := result["offerings"].([]any)
	require.Len(t, offerings, 1, "tag filter should drop the carnitas plate")
	assert.Equal(t, "Vegan Pozole", offerings[0].(map[string]any)["title"])
}

func TestSearchOfferingsTool_RequiresQuery(t *testing.T) {
	registry := newToolsRegistry(repository.NewMockQuerier(), assistant.NewMockProvider(), nil)

	_, err := dispatch(t, registry, context.Background(), "search_offerings", `{}`)

	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestCheckAreaCoverageTool_Covered(t *testing.T) {
	postalCodeID := uuid.New()
	repo := repository.NewMockQuerier()
	repo.GetPostalCodeByCodeFunc = func(ctx context.Context, arg repository.GetPostalCodeByCodeParams) (repository.PostalCode, error) {
		assert.Equal(t, "98101", arg.Code)
		assert.Equal(t, "US", arg.Country)
		return repository.PostalCode{
			ID:          repository.UUID(postalCodeID),
			Code:        "98101",
			DisplayCode: "98101",
			Country:     "US",
			PlaceName:   pgtype.Text{String: "Seattle", Valid: true},
		}, nil
	}
	repo.HasVerifiedChefForPostalCodeFunc = func(ctx context.Context, id pgtype.UUID) (bool, error) {
		assert.Equal(t, repository.UUID(postalCodeID), id)
		return true, nil
	}

	registry := newToolsRegistry(repo, assistant.NewMockProvider(), nil)

	result, err := dispatch(t, registry, context.Background(), "check_area_coverage",
		`{"postal_code": "98101", "country": "us"}`)

	require.NoError(t, err)
	assert.Equal(t, true, result["covered"])
	assert.Equal(t, "Seattle", result["place_name"])
}

func TestCheckAreaCoverageTool_UnknownPostalCode(t *testing.T) {
	repo := repository.NewMockQuerier()
	repo.GetPostalCodeByCodeFunc = func(ctx context.Context, arg repository.GetPostalCodeByCodeParams) (repository.PostalCode, error) {
		return repository.PostalCode{}, pgx.ErrNoRows
	}

	registry := newToolsRegistry(repo, assistant.NewMockProvider(), nil)

	result, err := dispatch(t, registry, context.Background(), "check_area_coverage",
		`{"postal_code": "73301"}`)

	require.NoError(t, err)
	assert.Equal(t, false, result["covered"])
	assert.Contains(t, result["reason"], "not in the service area")
}

func TestCheckAreaCoverageTool_InvalidPostalCode(t *testing.T) {
	registry := newToolsRegistry(repository.NewMockQuerier(), assistant.NewMockProvider(), nil)

	result, err := dispatch(t, registry, context.Background(), "check_area_coverage",
		`{"postal_code": "12", "country": "US"}`)

	require.NoError(t, err, "an invalid code is an answer for the model, not a failure")
	assert.Equal(t, false, result["covered"])
	assert.Contains(t, result["reason"], "not a valid postal code")
}

func TestGetDietaryProfileTool_RequiresAuthentication(t *testing.T) {
	registry := newToolsRegistry(repository.NewMockQuerier(), assistant.NewMockProvider(), nil)

	_, err := dispatch(t, registry, context.Background(), "get_dietary_profile", `{}`)

	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestGetDietaryProfileTool_ReturnsRestrictions(t *testing.T) {
	ctx := userContext(domain.RoleCustomer)
	repo := repository.NewMockQuerier()
	repo.GetUserByIDFunc = func(ctx context.Context, id pgtype.UUID) (repository.User, error) {
		return repository.User{
			ID:                  id,
			FirstName:           pgtype.Text{String: "Dana", Valid: true},
			LastName:            pgtype.Text{String: "Okafor", Valid: true},
			DietaryRestrictions: []string{"vegetarian", "no peanuts"},
		}, nil
	}

	registry := newToolsRegistry(repo, assistant.NewMockProvider(), nil)

	result, err := dispatch(t, registry, ctx, "get_dietary_profile", `{}`)

	require.NoError(t, err)
	assert.Equal(t, "Dana Okafor", result["name"])
	assert.Equal(t, []any{"vegetarian", "no peanuts"}, result["dietary_restrictions"])
}

func TestGetDietaryProfileTool_EmptyProfileIsNotNull(t *testing.T) {
	ctx := userContext(domain.RoleCustomer)
	repo := repository.NewMockQuerier()
	repo.GetUserByIDFunc = func(ctx context.Context, id pgtype.UUID) (repository.User, error) {
		return repository.User{ID: id}, nil
	}

	registry := newToolsRegistry(repo, assistant.NewMockProvider(), nil)

	result, err := dispatch(t, registry, ctx, "get_dietary_profile", `{}`)

	require.NoError(t, err)
	assert.Equal(t, []any{}, result["dietary_restrictions"])
}

func TestSaveMealPlanTool_CapturesDuringGeneration(t *testing.T) {
	capture := &assistant.PlanCapture{}
	ctx := assistant.WithPlanCapture(userContext(domain.RoleCustomer), capture)
	repo := repository.NewMockQuerier()

	registry := newToolsRegistry(repo, assistant.NewMockProvider(), nil)

	result, err := dispatch(t, registry, ctx, "save_meal_plan",
		`{"title": "Veggie week", "days": [{"day": "monday", "meals": []}]}`)

	require.NoError(t, err)
	assert.Equal(t, true, result["saved"])

	title, plan, ok := capture.Plan()
	require.True(t, ok, "capture should have recorded the plan")
	assert.Equal(t, "Veggie week", title)
	assert.Contains(t, string(plan), "monday")
	assert.Empty(t, repo.CallLog, "generation runs must not write rows from inside the tool")
}

func TestSaveMealPlanTool_PersistsForAdHocChat(t *testing.T) {
	ctx := userContext(domain.RoleCustomer)
	planID := uuid.New()
	repo := repository.NewMockQuerier()

	var created repository.CreateMealPlanParams
	repo.CreateMealPlanFunc = func(ctx context.Context, arg repository.CreateMealPlanParams) (repository.MealPlan, error) {
		created = arg
		return repository.MealPlan{ID: repository.UUID(planID), Title: arg.Title, Status: "generating"}, nil
	}
	var saved repository.UpdateMealPlanReadyParams
	repo.UpdateMealPlanReadyFunc = func(ctx context.Context, arg repository.UpdateMealPlanReadyParams) (repository.MealPlan, error) {
		saved = arg
		return repository.MealPlan{ID: arg.ID, Title: arg.Title, Status: "ready", Plan: arg.Plan}, nil
	}

	registry := newToolsRegistry(repo, assistant.NewMockProvider(), nil)

	result, err := dispatch(t, registry, ctx, "save_meal_plan",
		`{"title": "Quick dinners", "days": [{"day": "tuesday"}], "notes": "shop sunday"}`)

	require.NoError(t, err)
	assert.Equal(t, true, result["saved"])
	assert.Equal(t, planID.String(), result["meal_plan_id"])
	assert.Equal(t, "Quick dinners", created.Title)
	assert.Contains(t, string(saved.Plan), "tuesday")
	assert.Contains(t, string(saved.Plan), "shop sunday")
}

func TestSaveMealPlanTool_RequiresDays(t *testing.T) {
	registry := newToolsRegistry(repository.NewMockQuerier(), assistant.NewMockProvider(), nil)

	_, err := dispatch(t, registry, userContext(domain.RoleCustomer), "save_meal_plan",
		`{"title": "Empty plan", "days": []}`)

	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestSearchGroceryProductsTool_DelegatesToProvider(t *testing.T) {
	groceryMock := grocery.NewMockProvider()
	registry := newToolsRegistry(repository.NewMockQuerier(), assistant.NewMockProvider(), groceryMock)

	result, err := dispatch(t, registry, context.Background(), "search_grocery_products",
		`{"term": "whole milk", "limit": 2}`)

	require.NoError(t, err)
	assert.Equal(t, []string{"whole milk"}, groceryMock.Searches)
	products := result["products"].([]any)
	require.Len(t, products, 2)
	assert.Contains(t, products[0].(map[string]any)["name"], "whole milk")
}

func TestSearchGroceryProductsTool_UnavailableWithoutProvider(t *testing.T) {
	registry := newToolsRegistry(repository.NewMockQuerier(), assistant.NewMockProvider(), nil)

	_, err := dispatch(t, registry, context.Background(), "search_grocery_products",
		`{"term": "milk"}`)

	require.Error(t, err)
	assert.Equal(t, domain.ENOTIMPL, domain.ErrorCode(err))
}
