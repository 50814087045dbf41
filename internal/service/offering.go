package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pgvector/pgvector-go"

	"github.com/localplate/localplate/internal/assistant"
	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/geo"
	"github.com/localplate/localplate/internal/jobs"
	"github.com/localplate/localplate/internal/repository"
	"github.com/localplate/localplate/internal/storage"
)

// defaultSearchLimit caps semantic search results when the caller does not
// ask for a specific count.
const defaultSearchLimit = 20

// CreateOfferingParams carries a new offering.
type CreateOfferingParams struct {
	Title       string
	Description string
	PriceCents  int32
	Fulfillment string
	Capacity    *int32
	DietaryTags []string
	AvailableOn time.Time
}

// UpdateOfferingParams carries optional offering fields. Nil pointers leave
// the corresponding column unchanged.
type UpdateOfferingParams struct {
	Title       *string
	Description *string
	PriceCents  *int32
	Fulfillment *string
	Capacity    *int32
	DietaryTags []string
	AvailableOn *time.Time
}

// ViewerOfferingsParams filters the public offering feed.
type ViewerOfferingsParams struct {
	// UserID resolves the viewer location from the profile when no
	// explicit postal code is given
	UserID      *uuid.UUID
	PostalCode  string
	Country     string
	DietaryTags []string
	Limit       int32
	Offset      int32
}

// OfferingService provides business logic for chef offerings
type OfferingService interface {
	// Create adds a draft offering for a verified chef and queues its
	// embedding
	Create(ctx context.Context, chefID uuid.UUID, params CreateOfferingParams) (*repository.Offering, error)

	// Update applies partial updates, re-embedding when searchable text
	// changes
	Update(ctx context.Context, chefID, offeringID uuid.UUID, params UpdateOfferingParams) (*repository.Offering, error)

	// Publish makes an offering visible to customers
	Publish(ctx context.Context, chefID, offeringID uuid.UUID) (*repository.Offering, error)

	// Archive takes an offering off the marketplace
	Archive(ctx context.Context, chefID, offeringID uuid.UUID) (*repository.Offering, error)

	// UploadPhoto stores an offering photo and returns its public URL
	UploadPhoto(ctx context.Context, chefID, offeringID uuid.UUID, filename, contentType string, content io.Reader) (string, error)

	// GetByID retrieves an offering regardless of status
	GetByID(ctx context.Context, offeringID uuid.UUID) (*repository.Offering, error)

	// GetPublished retrieves an offering for public display
	GetPublished(ctx context.Context, offeringID uuid.UUID) (*repository.Offering, error)

	// ListOwn lists a chef's offerings in every status
	ListOwn(ctx context.Context, chefID uuid.UUID, limit, offset int32) ([]repository.Offering, error)

	// ListForViewer lists published offerings of verified chefs, filtered
	// by the chef's travel radius when a viewer location resolves
	ListForViewer(ctx context.Context, params ViewerOfferingsParams) ([]repository.ListPublishedOfferingsRow, error)

	// SemanticSearch embeds the query and orders offerings by vector
	// distance
	SemanticSearch(ctx context.Context, query string, limit int32) ([]repository.SearchOfferingsByEmbeddingRow, error)

	// GenerateEmbedding computes and stores the embedding for an offering.
	// Runs as a background job.
	GenerateEmbedding(ctx context.Context, offeringID uuid.UUID) error
}

type offeringService struct {
	repo     repository.Querier
	provider assistant.Provider
	store    storage.Storage
}

// NewOfferingService creates a new OfferingService instance
func NewOfferingService(repo repository.Querier, provider assistant.Provider, store storage.Storage) OfferingService {
	return &offeringService{
		repo:     repo,
		provider: provider,
		store:    store,
	}
}

// Create adds a draft offering for a verified chef
func (s *offeringService) Create(ctx context.Context, chefID uuid.UUID, params CreateOfferingParams) (*repository.Offering, error) {
	chef, err := s.repo.GetChefByID(ctx, repository.UUID(chefID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChefNotFound
		}
		return nil, fmt.Errorf("failed to get chef: %w", err)
	}
	if !chef.IsVerified {
		return nil, domain.ErrChefNotVerified
	}

	if err := validateOffering(params.Title, params.PriceCents, params.Fulfillment, params.DietaryTags); err != nil {
		return nil, err
	}

	offering, err := s.repo.CreateOffering(ctx, repository.CreateOfferingParams{
		ChefID:      chef.ID,
		Title:       strings.TrimSpace(params.Title),
		Description: repository.Text(strings.TrimSpace(params.Description)),
		PriceCents:  params.PriceCents,
		Currency:    "usd",
		Fulfillment: params.Fulfillment,
		Capacity:    int4Ptr(params.Capacity),
		DietaryTags: normalizeTags(params.DietaryTags),
		AvailableOn: repository.Date(params.AvailableOn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create offering: %w", err)
	}

	if err := jobs.EnqueueOfferingEmbedding(ctx, s.repo, jobs.OfferingEmbeddingPayload{
		OfferingID: repository.ToUUID(offering.ID),
	}); err != nil {
		return nil, fmt.Errorf("failed to queue embedding: %w", err)
	}

	return &offering, nil
}

// Update applies partial updates to an offering
func (s *offeringService) Update(ctx context.Context, chefID, offeringID uuid.UUID, params UpdateOfferingParams) (*repository.Offering, error) {
	current, err := s.getOwned(ctx, chefID, offeringID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		return nil, domain.NewValidationError("offering.update", "title", "title is required")
	}
	if params.PriceCents != nil && *params.PriceCents <= 0 {
		return nil, domain.NewValidationError("offering.update", "price_cents", "price must be positive")
	}
	if params.Fulfillment != nil && !validFulfillment(*params.Fulfillment) {
		return nil, domain.NewValidationError("offering.update", "fulfillment", "fulfillment must be pickup or delivery")
	}
	if params.DietaryTags != nil {
		if err := validateTags("offering.update", params.DietaryTags); err != nil {
			return nil, err
		}
		params.DietaryTags = normalizeTags(params.DietaryTags)
	}

	offering, err := s.repo.UpdateOffering(ctx, repository.UpdateOfferingParams{
		ID:          current.ID,
		Title:       textPtr(params.Title),
		Description: textPtr(params.Description),
		PriceCents:  int4Ptr(params.PriceCents),
		Fulfillment: textPtr(params.Fulfillment),
		Capacity:    int4Ptr(params.Capacity),
		DietaryTags: params.DietaryTags,
		AvailableOn: datePtr(params.AvailableOn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update offering: %w", err)
	}

	if params.Title != nil || params.Description != nil || params.DietaryTags != nil {
		if err := jobs.EnqueueOfferingEmbedding(ctx, s.repo, jobs.OfferingEmbeddingPayload{
			OfferingID: repository.ToUUID(offering.ID),
		}); err != nil {
			return nil, fmt.Errorf("failed to queue embedding: %w", err)
		}
	}

	return &offering, nil
}

// Publish makes an offering visible to customers
func (s *offeringService) Publish(ctx context.Context, chefID, offeringID uuid.UUID) (*repository.Offering, error) {
	return s.setStatus(ctx, chefID, offeringID, domain.OfferingStatusPublished)
}

// Archive takes an offering off the marketplace
func (s *offeringService) Archive(ctx context.Context, chefID, offeringID uuid.UUID) (*repository.Offering, error) {
	return s.setStatus(ctx, chefID, offeringID, domain.OfferingStatusArchived)
}

func (s *offeringService) setStatus(ctx context.Context, chefID, offeringID uuid.UUID, status domain.OfferingStatus) (*repository.Offering, error) {
	current, err := s.getOwned(ctx, chefID, offeringID)
	if err != nil {
		return nil, err
	}

	offering, err := s.repo.UpdateOfferingStatus(ctx, repository.UpdateOfferingStatusParams{
		ID:     current.ID,
		Status: string(status),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update offering status: %w", err)
	}
	return &offering, nil
}

// UploadPhoto stores an offering photo and returns its public URL
func (s *offeringService) UploadPhoto(ctx context.Context, chefID, offeringID uuid.UUID, filename, contentType string, content io.Reader) (string, error) {
	current, err := s.getOwned(ctx, chefID, offeringID)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.NewValidationError("offering.upload_photo", "photo", "photo must be an image")
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("chefs/%s/offerings/%s%s", chefID, offeringID, ext)

	url, err := s.store.Put(ctx, key, content, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	if _, err := s.repo.UpdateOffering(ctx, repository.UpdateOfferingParams{
		ID:       current.ID,
		PhotoKey: repository.Text(key),
	}); err != nil {
		return "", fmt.Errorf("failed to save photo key: %w", err)
	}

	return url, nil
}

// GetByID retrieves an offering regardless of status
func (s *offeringService) GetByID(ctx context.Context, offeringID uuid.UUID) (*repository.Offering, error) {
	offering, err := s.repo.GetOfferingByID(ctx, repository.UUID(offeringID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOfferingNotFound
		}
		return nil, fmt.Errorf("failed to get offering: %w", err)
	}
	return &offering, nil
}

// GetPublished retrieves an offering for public display
func (s *offeringService) GetPublished(ctx context.Context, offeringID uuid.UUID) (*repository.Offering, error) {
	offering, err := s.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	if offering.Status != string(domain.OfferingStatusPublished) {
		return nil, domain.ErrOfferingNotFound
	}
	return offering, nil
}

// ListOwn lists a chef's offerings in every status
func (s *offeringService) ListOwn(ctx context.Context, chefID uuid.UUID, limit, offset int32) ([]repository.Offering, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	offerings, err := s.repo.ListOfferingsByChef(ctx, repository.ListOfferingsByChefParams{
		ChefID: repository.UUID(chefID),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list offerings: %w", err)
	}
	return offerings, nil
}

// ListForViewer lists published offerings of verified chefs
func (s *offeringService) ListForViewer(ctx context.Context, params ViewerOfferingsParams) ([]repository.ListPublishedOfferingsRow, error) {
	if params.Limit <= 0 {
		params.Limit = defaultListLimit
	}

	rows, err := s.repo.ListPublishedOfferings(ctx, repository.ListPublishedOfferingsParams{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list offerings: %w", err)
	}

	viewer := s.resolveViewer(ctx, params)

	filtered := make([]repository.ListPublishedOfferingsRow, 0, len(rows))
	for _, row := range rows {
		if len(params.DietaryTags) > 0 && !containsAllTags(row.DietaryTags, params.DietaryTags) {
			continue
		}
		if viewer != nil && !withinTravelRadius(*viewer, row.ChefLatitude, row.ChefLongitude, row.ChefMaxTravelMiles) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered, nil
}

// resolveViewer turns the request params into viewer coordinates, or nil
// when no location resolves. Resolution failures fall back to the
// unfiltered list rather than erroring the whole feed.
func (s *offeringService) resolveViewer(ctx context.Context, params ViewerOfferingsParams) *geo.Point {
	var code repository.PostalCode
	var err error

	switch {
	case params.PostalCode != "":
		code, err = s.repo.GetPostalCodeByCode(ctx, repository.GetPostalCodeByCodeParams{
			Code:    geo.NormalizePostalCode(params.PostalCode),
			Country: geo.NormalizeCountry(params.Country),
		})
	case params.UserID != nil:
		var user repository.User
		user, err = s.repo.GetUserByID(ctx, repository.UUID(*params.UserID))
		if err != nil || !user.PostalCodeID.Valid {
			return nil
		}
		code, err = s.repo.GetPostalCodeByID(ctx, user.PostalCodeID)
	default:
		return nil
	}

	if err != nil || !code.Latitude.Valid || !code.Longitude.Valid {
		return nil
	}
	return &geo.Point{Lat: code.Latitude.Float64, Lng: code.Longitude.Float64}
}

// withinTravelRadius keeps offerings whose chef travels far enough to reach
// the viewer. Chefs without a radius or without kitchen coordinates are
// never excluded.
func withinTravelRadius(viewer geo.Point, lat, lng, maxMiles pgtype.Float8) bool {
	if !maxMiles.Valid {
		return true
	}
	if !lat.Valid || !lng.Valid {
		return true
	}
	dist := viewer.HaversineMiles(geo.Point{Lat: lat.Float64, Lng: lng.Float64})
	return dist <= maxMiles.Float64
}

// SemanticSearch embeds the query and orders offerings by vector distance
func (s *offeringService) SemanticSearch(ctx context.Context, query string, limit int32) ([]repository.SearchOfferingsByEmbeddingRow, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("offering.search", "q", "query is required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	vectors, err := s.provider.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding provider returned no vectors")
	}

	rows, err := s.repo.SearchOfferingsByEmbedding(ctx, repository.SearchOfferingsByEmbeddingParams{
		Embedding: pgvector.NewVector(vectors[0]),
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search offerings: %w", err)
	}
	return rows, nil
}

// GenerateEmbedding computes and stores the embedding for an offering
func (s *offeringService) GenerateEmbedding(ctx context.Context, offeringID uuid.UUID) error {
	offering, err := s.GetByID(ctx, offeringID)
	if err != nil {
		return err
	}

	text := offering.Title
	if offering.Description.Valid {
		text += "\n" + offering.Description.String
	}
	if len(offering.DietaryTags) > 0 {
		text += "\n" + strings.Join(offering.DietaryTags, ", ")
	}

	vectors, err := s.provider.Embed(ctx, []string{text})
	if err != nil {
		return fmt.Errorf("failed to embed offering: %w", err)
	}
	if len(vectors) == 0 {
		return fmt.Errorf("embedding provider returned no vectors")
	}

	if err := s.repo.UpdateOfferingEmbedding(ctx, repository.UpdateOfferingEmbeddingParams{
		ID:        offering.ID,
		Embedding: pgvector.NewVector(vectors[0]),
	}); err != nil {
		return fmt.Errorf("failed to save embedding: %w", err)
	}
	return nil
}

// getOwned loads an offering and checks it belongs to the chef. Offerings
// of other chefs read as not found.
func (s *offeringService) getOwned(ctx context.Context, chefID, offeringID uuid.UUID) (*repository.Offering, error) {
	offering, err := s.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	if repository.ToUUID(offering.ChefID) != chefID {
		return nil, domain.ErrOfferingNotFound
	}
	return offering, nil
}

func validateOffering(title string, priceCents int32, fulfillment string, tags []string) error {
	if strings.TrimSpace(title) == "" {
		return domain.NewValidationError("offering.create", "title", "title is required")
	}
	if priceCents <= 0 {
		return domain.NewValidationError("offering.create", "price_cents", "price must be positive")
	}
	if !validFulfillment(fulfillment) {
		return domain.NewValidationError("offering.create", "fulfillment", "fulfillment must be pickup or delivery")
	}
	return validateTags("offering.create", tags)
}

func validFulfillment(fulfillment string) bool {
	switch domain.FulfillmentType(fulfillment) {
	case domain.FulfillmentPickup, domain.FulfillmentDelivery:
		return true
	}
	return false
}

func validateTags(op string, tags []string) error {
	for _, tag := range tags {
		if !domain.IsKnownDietaryRestriction(strings.ToLower(strings.TrimSpace(tag))) {
			return domain.NewValidationError(op, "dietary_tags", fmt.Sprintf("unknown dietary tag %q", tag))
		}
	}
	return nil
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, strings.ToLower(strings.TrimSpace(tag)))
	}
	return out
}

// containsAllTags reports whether every wanted tag appears on the offering.
func containsAllTags(have, want []string) bool {
	for _, w := range want {
		w = strings.ToLower(strings.TrimSpace(w))
		found := false
		for _, h := range have {
			if h == w {
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

// int4Ptr maps an optional int to its column value. Nil leaves the column
// unchanged.
func int4Ptr(n *int32) pgtype.Int4 {
	if n == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *n, Valid: true}
}

// datePtr maps an optional date to its column value. Nil leaves the column
// unchanged.
func datePtr(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *t, Valid: true}
}
