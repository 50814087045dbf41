package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pgvector/pgvector-go"
)

const createOffering = `-- name: CreateOffering :one
INSERT INTO offerings (chef_id, title, description, price_cents, currency, fulfillment, capacity, dietary_tags, available_on)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, chef_id, title, description, price_cents, currency, status, fulfillment, capacity, dietary_tags, photo_key, available_on, embedding, created_at, updated_at
`

type CreateOfferingParams struct {
	ChefID      pgtype.UUID
	Title       string
	Description pgtype.Text
	PriceCents  int32
	Currency    string
	Fulfillment string
	Capacity    pgtype.Int4
	DietaryTags []string
	AvailableOn pgtype.Date
}

func (q *Queries) CreateOffering(ctx context.Context, arg CreateOfferingParams) (Offering, error) {
	row := q.db.QueryRow(ctx, createOffering,
		arg.ChefID,
		arg.Title,
		arg.Description,
		arg.PriceCents,
		arg.Currency,
		arg.Fulfillment,
		arg.Capacity,
		arg.DietaryTags,
		arg.AvailableOn,
	)
	var i Offering
	err := row.Scan(
		&i.ID,
		&i.ChefID,
		&i.Title,
		&i.Description,
		&i.PriceCents,
		&i.Currency,
		&i.Status,
		&i.Fulfillment,
		&i.Capacity,
		&i.DietaryTags,
		&i.PhotoKey,
		&i.AvailableOn,
		&i.Embedding,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getOfferingByID = `-- name: GetOfferingByID :one
SELECT id, chef_id, title, description, price_cents, currency, status, fulfillment, capacity, dietary_tags, photo_key, available_on, embedding, created_at, updated_at
FROM offerings
WHERE id = $1
`

func (q *Queries) GetOfferingByID(ctx context.Context, id pgtype.UUID) (Offering, error) {
	row := q.db.QueryRow(ctx, getOfferingByID, id)
	var i Offering
	err := row.Scan(
		&i.ID,
		&i.ChefID,
		&i.Title,
		&i.Description,
		&i.PriceCents,
		&i.Currency,
		&i.Status,
		&i.Fulfillment,
		&i.Capacity,
		&i.DietaryTags,
		&i.PhotoKey,
		&i.AvailableOn,
		&i.Embedding,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateOffering = `-- name: UpdateOffering :one
UPDATE offerings
SET title = COALESCE($2, title),
    description = COALESCE($3, description),
    price_cents = COALESCE($4, price_cents),
    fulfillment = COALESCE($5, fulfillment),
    capacity = COALESCE($6, capacity),
    dietary_tags = COALESCE($7, dietary_tags),
    photo_key = COALESCE($8, photo_key),
    available_on = COALESCE($9, available_on),
    updated_at = now()
WHERE id = $1
RETURNING id, chef_id, title, description, price_cents, currency, status, fulfillment, capacity, dietary_tags, photo_key, available_on, embedding, created_at, updated_at
`

type UpdateOfferingParams struct {
	ID          pgtype.UUID
	Title       pgtype.Text
	Description pgtype.Text
	PriceCents  pgtype.Int4
	Fulfillment pgtype.Text
	Capacity    pgtype.Int4
	DietaryTags []string
	PhotoKey    pgtype.Text
	AvailableOn pgtype.Date
}

func (q *Queries) UpdateOffering(ctx context.Context, arg UpdateOfferingParams) (Offering, error) {
	row := q.db.QueryRow(ctx, updateOffering,
		arg.ID,
		arg.Title,
		arg.Description,
		arg.PriceCents,
		arg.Fulfillment,
		arg.Capacity,
		arg.DietaryTags,
		arg.PhotoKey,
		arg.AvailableOn,
	)
	var i Offering
	err := row.Scan(
		&i.ID,
		&i.ChefID,
		&i.Title,
		&i.Description,
		&i.PriceCents,
		&i.Currency,
		&i.Status,
		&i.Fulfillment,
		&i.Capacity,
		&i.DietaryTags,
		&i.PhotoKey,
		&i.AvailableOn,
		&i.Embedding,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateOfferingStatus = `-- name: UpdateOfferingStatus :one
UPDATE offerings
SET status = $2,
    updated_at = now()
WHERE id = $1
RETURNING id, chef_id, title, description, price_cents, currency, status, fulfillment, capacity, dietary_tags, photo_key, available_on, embedding, created_at, updated_at
`

type UpdateOfferingStatusParams struct {
	ID     pgtype.UUID
	Status string
}

func (q *Queries) UpdateOfferingStatus(ctx context.Context, arg UpdateOfferingStatusParams) (Offering, error) {
	row := q.db.QueryRow(ctx, updateOfferingStatus, arg.ID, arg.Status)
	var i Offering
	err := row.Scan(
		&i.ID,
		&i.ChefID,
		&i.Title,
		&i.Description,
		&i.PriceCents,
		&i.Currency,
		&i.Status,
		&i.Fulfillment,
		&i.Capacity,
		&i.DietaryTags,
		&i.PhotoKey,
		&i.AvailableOn,
		&i.Embedding,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateOfferingEmbedding = `-- name: UpdateOfferingEmbedding :exec
UPDATE offerings
SET embedding = $2,
    updated_at = now()
WHERE id = $1
`

type UpdateOfferingEmbeddingParams struct {
	ID        pgtype.UUID
	Embedding pgvector.Vector
}

func (q *Queries) UpdateOfferingEmbedding(ctx context.Context, arg UpdateOfferingEmbeddingParams) error {
	_, err := q.db.Exec(ctx, updateOfferingEmbedding, arg.ID, arg.Embedding)
	return err
}

const reserveOfferingCapacity = `-- name: ReserveOfferingCapacity :one
UPDATE offerings
SET capacity = capacity - $2,
    updated_at = now()
WHERE id = $1
  AND capacity IS NOT NULL
  AND capacity >= $2
RETURNING id, chef_id, title, description, price_cents, currency, status, fulfillment, capacity, dietary_tags, photo_key, available_on, embedding, created_at, updated_at
`

type ReserveOfferingCapacityParams struct {
	ID       pgtype.UUID
	Quantity int32
}

// ReserveOfferingCapacity decrements remaining capacity, failing with
// pgx.ErrNoRows when the offering tracks capacity and has too little left.
// Offerings with NULL capacity are unlimited; callers skip the reservation.
func (q *Queries) ReserveOfferingCapacity(ctx context.Context, arg ReserveOfferingCapacityParams) (Offering, error) {
	row := q.db.QueryRow(ctx, reserveOfferingCapacity, arg.ID, arg.Quantity)
	var i Offering
	err := row.Scan(
		&i.ID,
		&i.ChefID,
		&i.Title,
		&i.Description,
		&i.PriceCents,
		&i.Currency,
		&i.Status,
		&i.Fulfillment,
		&i.Capacity,
		&i.DietaryTags,
		&i.PhotoKey,
		&i.AvailableOn,
		&i.Embedding,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const releaseOfferingCapacity = `-- name: ReleaseOfferingCapacity :exec
UPDATE offerings
SET capacity = capacity + $2,
    updated_at = now()
WHERE id = $1
  AND capacity IS NOT NULL
`

type ReleaseOfferingCapacityParams struct {
	ID       pgtype.UUID
	Quantity int32
}

// ReleaseOfferingCapacity returns reserved capacity when an order is
// cancelled. No-op for offerings with NULL capacity.
func (q *Queries) ReleaseOfferingCapacity(ctx context.Context, arg ReleaseOfferingCapacityParams) error {
	_, err := q.db.Exec(ctx, releaseOfferingCapacity, arg.ID, arg.Quantity)
	return err
}

const listOfferingsByChef = `-- name: ListOfferingsByChef :many
SELECT id, chef_id, title, description, price_cents, currency, status, fulfillment, capacity, dietary_tags, photo_key, available_on, embedding, created_at, updated_at
FROM offerings
WHERE chef_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

type ListOfferingsByChefParams struct {
	ChefID pgtype.UUID
	Limit  int32
	Offset int32
}

func (q *Queries) ListOfferingsByChef(ctx context.Context, arg ListOfferingsByChefParams) ([]Offering, error) {
	rows, err := q.db.Query(ctx, listOfferingsByChef, arg.ChefID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Offering
	for rows.Next() {
		var i Offering
		if err := rows.Scan(
			&i.ID,
			&i.ChefID,
			&i.Title,
			&i.Description,
			&i.PriceCents,
			&i.Currency,
			&i.Status,
			&i.Fulfillment,
			&i.Capacity,
			&i.DietaryTags,
			&i.PhotoKey,
			&i.AvailableOn,
			&i.Embedding,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listPublishedOfferings = `-- name: ListPublishedOfferings :many
SELECT o.id, o.chef_id, o.title, o.description, o.price_cents, o.currency, o.status, o.fulfillment, o.capacity, o.dietary_tags, o.photo_key, o.available_on, o.created_at, o.updated_at,
       c.display_name AS chef_display_name,
       c.max_travel_miles AS chef_max_travel_miles,
       p.latitude AS chef_latitude,
       p.longitude AS chef_longitude
FROM offerings o
JOIN chefs c ON c.id = o.chef_id
LEFT JOIN postal_codes p ON p.id = c.base_postal_code_id
WHERE o.status = 'published'
  AND c.is_verified = true
ORDER BY o.created_at DESC
LIMIT $1 OFFSET $2
`

type ListPublishedOfferingsParams struct {
	Limit  int32
	Offset int32
}

type ListPublishedOfferingsRow struct {
	ID                 pgtype.UUID
	ChefID             pgtype.UUID
	Title              string
	Description        pgtype.Text
	PriceCents         int32
	Currency           string
	Status             string
	Fulfillment        string
	Capacity           pgtype.Int4
	DietaryTags        []string
	PhotoKey           pgtype.Text
	AvailableOn        pgtype.Date
	CreatedAt          pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
	ChefDisplayName    string
	ChefMaxTravelMiles pgtype.Float8
	ChefLatitude       pgtype.Float8
	ChefLongitude      pgtype.Float8
}

func (q *Queries) ListPublishedOfferings(ctx context.Context, arg ListPublishedOfferingsParams) ([]ListPublishedOfferingsRow, error) {
	rows, err := q.db.Query(ctx, listPublishedOfferings, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListPublishedOfferingsRow
	for rows.Next() {
		var i ListPublishedOfferingsRow
		if err := rows.Scan(
			&i.ID,
			&i.ChefID,
			&i.Title,
			&i.Description,
			&i.PriceCents,
			&i.Currency,
			&i.Status,
			&i.Fulfillment,
			&i.Capacity,
			&i.DietaryTags,
			&i.PhotoKey,
			&i.AvailableOn,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.ChefDisplayName,
			&i.ChefMaxTravelMiles,
			&i.ChefLatitude,
			&i.ChefLongitude,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const searchOfferingsByEmbedding = `-- name: SearchOfferingsByEmbedding :many
SELECT o.id, o.chef_id, o.title, o.description, o.price_cents, o.currency, o.status, o.fulfillment, o.capacity, o.dietary_tags, o.photo_key, o.available_on, o.created_at, o.updated_at,
       c.display_name AS chef_display_name,
       c.max_travel_miles AS chef_max_travel_miles,
       p.latitude AS chef_latitude,
       p.longitude AS chef_longitude,
       (o.embedding <=> $1)::double precision AS similarity_distance
FROM offerings o
JOIN chefs c ON c.id = o.chef_id
LEFT JOIN postal_codes p ON p.id = c.base_postal_code_id
WHERE o.status = 'published'
  AND c.is_verified = true
  AND o.embedding IS NOT NULL
ORDER BY o.embedding <=> $1
LIMIT $2
`

type SearchOfferingsByEmbeddingParams struct {
	Embedding pgvector.Vector
	Limit     int32
}

type SearchOfferingsByEmbeddingRow struct {
	ID                 pgtype.UUID
	ChefID             pgtype.UUID
	Title              string
	Description        pgtype.Text
	PriceCents         int32
	Currency           string
	Status             string
	Fulfillment        string
	Capacity           pgtype.Int4
	DietaryTags        []string
	PhotoKey           pgtype.Text
	AvailableOn        pgtype.Date
	CreatedAt          pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
	ChefDisplayName    string
	ChefMaxTravelMiles pgtype.Float8
	ChefLatitude       pgtype.Float8
	ChefLongitude      pgtype.Float8
	SimilarityDistance float64
}

func (q *Queries) SearchOfferingsByEmbedding(ctx context.Context, arg SearchOfferingsByEmbeddingParams) ([]SearchOfferingsByEmbeddingRow, error) {
	rows, err := q.db.Query(ctx, searchOfferingsByEmbedding, arg.Embedding, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SearchOfferingsByEmbeddingRow
	for rows.Next() {
		var i SearchOfferingsByEmbeddingRow
		if err := rows.Scan(
			&i.ID,
			&i.ChefID,
			&i.Title,
			&i.Description,
			&i.PriceCents,
			&i.Currency,
			&i.Status,
			&i.Fulfillment,
			&i.Capacity,
			&i.DietaryTags,
			&i.PhotoKey,
			&i.AvailableOn,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.ChefDisplayName,
			&i.ChefMaxTravelMiles,
			&i.ChefLatitude,
			&i.ChefLongitude,
			&i.SimilarityDistance,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
