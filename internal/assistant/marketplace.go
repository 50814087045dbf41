package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/geo"
	"github.com/localplate/localplate/internal/grocery"
	"github.com/localplate/localplate/internal/repository"
)

const (
	defaultSearchLimit = 5
	maxOfferingResults = 20
	maxGroceryResults  = 10
)

// MarketplaceTools wires the assistant's tools to the marketplace:
// offering search, area coverage, dietary profiles, meal plan saving,
// and grocery product lookup.
type MarketplaceTools struct {
	repo     repository.Querier
	provider Provider
	grocery  grocery.Provider
	logger   *slog.Logger
}

// NewMarketplaceTools builds the toolset. groceryProvider may be nil
// when the grocery integration is not configured; the tool then reports
// itself unavailable instead of failing the conversation.
func NewMarketplaceTools(repo repository.Querier, provider Provider, groceryProvider grocery.Provider, logger *slog.Logger) *MarketplaceTools {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarketplaceTools{
		repo:     repo,
		provider: provider,
		grocery:  groceryProvider,
		logger:   logger,
	}
}

// Registry returns a registry with every marketplace tool registered.
func (t *MarketplaceTools) Registry() *Registry {
	r := NewRegistry()
	r.Register(Tool{
		Name:        "search_offerings",
		Description: "Search published chef offerings by meaning, not just keywords. Returns dishes with prices and chef names.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "What the customer is looking for, e.g. 'spicy vegetarian dinner'",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results, default 5",
				},
				"dietary_tags": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Only return offerings carrying all of these tags, e.g. ['vegan', 'gluten-free']",
				},
			},
			"required": []string{"query"},
		},
		Handler: t.searchOfferings,
	})
	r.Register(Tool{
		Name:        "check_area_coverage",
		Description: "Check whether a postal code is inside the service area of at least one verified chef.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"postal_code": map[string]any{
					"type":        "string",
					"description": "The postal or ZIP code to check",
				},
				"country": map[string]any{
					"type":        "string",
					"description": "ISO country code, default US",
				},
			},
			"required": []string{"postal_code"},
		},
		Handler: t.checkAreaCoverage,
	})
	r.Register(Tool{
		Name:        "get_dietary_profile",
		Description: "Fetch the signed-in customer's dietary restrictions and preferences.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		Handler: t.getDietaryProfile,
	})
	r.Register(Tool{
		Name:        "save_meal_plan",
		Description: "Save a finished meal plan for the customer. Call this once the plan is complete.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "Short plan title, e.g. 'Vegetarian week of March 3'",
				},
				"days": map[string]any{
					"type":        "array",
					"description": "One entry per day with the meals for that day",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"day": map[string]any{"type": "string"},
							"meals": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "object"},
							},
						},
					},
				},
				"notes": map[string]any{
					"type":        "string",
					"description": "Optional shopping or prep notes",
				},
			},
			"required": []string{"title", "days"},
		},
		Handler: t.saveMealPlan,
	})
	r.Register(Tool{
		Name:        "search_grocery_products",
		Description: "Look up grocery products and prices for ingredients a meal plan needs.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"term": map[string]any{
					"type":        "string",
					"description": "Product search term, e.g. 'whole milk'",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of products, default 5",
				},
			},
			"required": []string{"term"},
		},
		Handler: t.searchGroceryProducts,
	})
	return r
}

type offeringResult struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	PriceCents  int32    `json:"price_cents"`
	Currency    string   `json:"currency"`
	Fulfillment string   `json:"fulfillment"`
	DietaryTags []string `json:"dietary_tags,omitempty"`
	ChefName    string   `json:"chef_name"`
}

func (t *MarketplaceTools) searchOfferings(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs(raw)
	if err != nil {
		return nil, err
	}
	query := args.String("query")
	if query == "" {
		return nil, domain.Invalid("assistant.search_offerings", "query is required")
	}
	limit := args.Int("limit", defaultSearchLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxOfferingResults {
		limit = maxOfferingResults
	}

	vectors, err := t.provider.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed search query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, ErrEmptyResponse
	}

	rows, err := t.repo.SearchOfferingsByEmbedding(ctx, repository.SearchOfferingsByEmbeddingParams{
		Embedding: pgvector.NewVector(vectors[0]),
		Limit:     int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("search offerings: %w", err)
	}

	tags := args.StringSlice("dietary_tags")
	results := make([]offeringResult, 0, len(rows))
	for _, row := range rows {
		if !hasAllTags(row.DietaryTags, tags) {
			continue
		}
		results = append(results, offeringResult{
			ID:          repository.ToUUID(row.ID).String(),
			Title:       row.Title,
			Description: row.Description.String,
			PriceCents:  row.PriceCents,
			Currency:    row.Currency,
			Fulfillment: row.Fulfillment,
			DietaryTags: row.DietaryTags,
			ChefName:    row.ChefDisplayName,
		})
	}
	return map[string]any{"offerings": results}, nil
}

func hasAllTags(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if strings.EqualFold(h, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (t *MarketplaceTools) checkAreaCoverage(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs(raw)
	if err != nil {
		return nil, err
	}
	code := geo.NormalizePostalCode(args.String("postal_code"))
	if code == "" {
		return nil, domain.Invalid("assistant.check_area_coverage", "postal_code is required")
	}
	country := geo.NormalizeCountry(args.String("country"))
	if country == "" {
		country = "US"
	}
	if !geo.ValidatePostalCode(code, country) {
		return map[string]any{
			"covered": false,
			"reason":  fmt.Sprintf("%q is not a valid postal code for %s", args.String("postal_code"), country),
		}, nil
	}

	row, err := t.repo.GetPostalCodeByCode(ctx, repository.GetPostalCodeByCodeParams{Code: code, Country: country})
	if errors.Is(err, pgx.ErrNoRows) {
		return map[string]any{
			"covered": false,
			"reason":  "postal code is not in the service area yet",
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("look up postal code: %w", err)
	}

	covered, err := t.repo.HasVerifiedChefForPostalCode(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("check chef coverage: %w", err)
	}

	result := map[string]any{
		"postal_code": row.DisplayCode,
		"country":     row.Country,
		"covered":     covered,
	}
	if row.PlaceName.Valid {
		result["place_name"] = row.PlaceName.String
	}
	if !covered {
		result["reason"] = "no verified chef serves this postal code yet"
	}
	return result, nil
}

func (t *MarketplaceTools) getDietaryProfile(ctx context.Context, _ json.RawMessage) (any, error) {
	user := domain.UserFromContext(ctx)
	if user == nil {
		return nil, domain.Unauthorized("assistant.get_dietary_profile", "sign in to use saved dietary preferences")
	}

	row, err := t.repo.GetUserByID(ctx, repository.UUID(user.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("assistant.get_dietary_profile", "user", user.ID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	restrictions := row.DietaryRestrictions
	if restrictions == nil {
		restrictions = []string{}
	}
	return map[string]any{
		"name":                 strings.TrimSpace(row.FirstName.String + " " + row.LastName.String),
		"dietary_restrictions": restrictions,
	}, nil
}

func (t *MarketplaceTools) saveMealPlan(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs(raw)
	if err != nil {
		return nil, err
	}
	title := args.String("title")
	if title == "" {
		title = "Meal plan"
	}
	days := args.Raw("days")
	if len(days) == 0 || string(days) == "[]" || string(days) == "null" {
		return nil, domain.Invalid("assistant.save_meal_plan", "days is required")
	}

	payload := map[string]any{"title": title, "days": json.RawMessage(days)}
	if notes := args.String("notes"); notes != "" {
		payload["notes"] = notes
	}
	plan, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}

	// A generation run pre-creates the row and collects the plan through
	// the capture; the service persists it after the loop finishes.
	if capture := planCaptureFrom(ctx); capture != nil {
		capture.set(title, plan)
		return map[string]any{"saved": true, "title": title}, nil
	}

	user := domain.UserFromContext(ctx)
	if user == nil {
		return nil, domain.Unauthorized("assistant.save_meal_plan", "sign in to save meal plans")
	}

	row, err := t.repo.CreateMealPlan(ctx, repository.CreateMealPlanParams{
		UserID: repository.UUID(user.ID),
		Title:  title,
	})
	if err != nil {
		return nil, fmt.Errorf("create meal plan: %w", err)
	}
	saved, err := t.repo.UpdateMealPlanReady(ctx, repository.UpdateMealPlanReadyParams{
		ID:       row.ID,
		Title:    title,
		Plan:     plan,
		Attempts: row.Attempts,
	})
	if err != nil {
		return nil, fmt.Errorf("save meal plan: %w", err)
	}
	return map[string]any{
		"saved":        true,
		"meal_plan_id": repository.ToUUID(saved.ID).String(),
		"title":        saved.Title,
	}, nil
}

func (t *MarketplaceTools) searchGroceryProducts(ctx context.Context, raw json.RawMessage) (any, error) {
	if t.grocery == nil {
		return nil, domain.Errorf(domain.ENOTIMPL, "assistant.search_grocery_products", "grocery search is not available")
	}

	args, err := decodeArgs(raw)
	if err != nil {
		return nil, err
	}
	term := args.String("term")
	if term == "" {
		return nil, domain.Invalid("assistant.search_grocery_products", "term is required")
	}
	limit := args.Int("limit", defaultSearchLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxGroceryResults {
		limit = maxGroceryResults
	}

	products, err := t.grocery.SearchProducts(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search grocery products: %w", err)
	}
	return map[string]any{"products": products}, nil
}
