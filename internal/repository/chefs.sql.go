package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createChef = `-- name: CreateChef :one
INSERT INTO chefs (user_id, display_name, bio, cuisine, max_travel_miles, base_postal_code_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, user_id, display_name, bio, cuisine, photo_key, status, is_verified, max_travel_miles, base_postal_code_id, stripe_account_id, rejected_reason, verified_at, created_at, updated_at
`

type CreateChefParams struct {
	UserID           pgtype.UUID
	DisplayName      string
	Bio              pgtype.Text
	Cuisine          pgtype.Text
	MaxTravelMiles   pgtype.Float8
	BasePostalCodeID pgtype.UUID
}

func (q *Queries) CreateChef(ctx context.Context, arg CreateChefParams) (Chef, error) {
	row := q.db.QueryRow(ctx, createChef,
		arg.UserID,
		arg.DisplayName,
		arg.Bio,
		arg.Cuisine,
		arg.MaxTravelMiles,
		arg.BasePostalCodeID,
	)
	var i Chef
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.DisplayName,
		&i.Bio,
		&i.Cuisine,
		&i.PhotoKey,
		&i.Status,
		&i.IsVerified,
		&i.MaxTravelMiles,
		&i.BasePostalCodeID,
		&i.StripeAccountID,
		&i.RejectedReason,
		&i.VerifiedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getChefByID = `-- name: GetChefByID :one
SELECT id, user_id, display_name, bio, cuisine, photo_key, status, is_verified, max_travel_miles, base_postal_code_id, stripe_account_id, rejected_reason, verified_at, created_at, updated_at
FROM chefs
WHERE id = $1
`

func (q *Queries) GetChefByID(ctx context.Context, id pgtype.UUID) (Chef, error) {
	row := q.db.QueryRow(ctx, getChefByID, id)
	var i Chef
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.DisplayName,
		&i.Bio,
		&i.Cuisine,
		&i.PhotoKey,
		&i.Status,
		&i.IsVerified,
		&i.MaxTravelMiles,
		&i.BasePostalCodeID,
		&i.StripeAccountID,
		&i.RejectedReason,
		&i.VerifiedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getChefByIDForUpdate = `-- name: GetChefByIDForUpdate :one
SELECT id, user_id, display_name, bio, cuisine, photo_key, status, is_verified, max_travel_miles, base_postal_code_id, stripe_account_id, rejected_reason, verified_at, created_at, updated_at
FROM chefs
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetChefByIDForUpdate(ctx context.Context, id pgtype.UUID) (Chef, error) {
	row := q.db.QueryRow(ctx, getChefByIDForUpdate, id)
	var i Chef
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.DisplayName,
		&i.Bio,
		&i.Cuisine,
		&i.PhotoKey,
		&i.Status,
		&i.IsVerified,
		&i.MaxTravelMiles,
		&i.BasePostalCodeID,
		&i.StripeAccountID,
		&i.RejectedReason,
		&i.VerifiedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getChefByUserID = `-- name: GetChefByUserID :one
SELECT id, user_id, display_name, bio, cuisine, photo_key, status, is_verified, max_travel_miles, base_postal_code_id, stripe_account_id, rejected_reason, verified_at, created_at, updated_at
FROM chefs
WHERE user_id = $1
`

func (q *Queries) GetChefByUserID(ctx context.Context, userID pgtype.UUID) (Chef, error) {
	row := q.db.QueryRow(ctx, getChefByUserID, userID)
	var i Chef
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.DisplayName,
		&i.Bio,
		&i.Cuisine,
		&i.PhotoKey,
		&i.Status,
		&i.IsVerified,
		&i.MaxTravelMiles,
		&i.BasePostalCodeID,
		&i.StripeAccountID,
		&i.RejectedReason,
		&i.VerifiedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listChefsByStatus = `-- name: ListChefsByStatus :many
SELECT id, user_id, display_name, bio, cuisine, photo_key, status, is_verified, max_travel_miles, base_postal_code_id, stripe_account_id, rejected_reason, verified_at, created_at, updated_at
FROM chefs
WHERE status = $1
ORDER BY created_at
LIMIT $2 OFFSET $3
`

type ListChefsByStatusParams struct {
	Status string
	Limit  int32
	Offset int32
}

func (q *Queries) ListChefsByStatus(ctx context.Context, arg ListChefsByStatusParams) ([]Chef, error) {
	rows, err := q.db.Query(ctx, listChefsByStatus, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Chef
	for rows.Next() {
		var i Chef
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.DisplayName,
			&i.Bio,
			&i.Cuisine,
			&i.PhotoKey,
			&i.Status,
			&i.IsVerified,
			&i.MaxTravelMiles,
			&i.BasePostalCodeID,
			&i.StripeAccountID,
			&i.RejectedReason,
			&i.VerifiedAt,
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

const updateChefProfile = `-- name: UpdateChefProfile :one
UPDATE chefs
SET display_name = COALESCE($2, display_name),
    bio = COALESCE($3, bio),
    cuisine = COALESCE($4, cuisine),
    max_travel_miles = COALESCE($5, max_travel_miles),
    photo_key = COALESCE($6, photo_key),
    updated_at = now()
WHERE id = $1
RETURNING id, user_id, display_name, bio, cuisine, photo_key, status, is_verified, max_travel_miles, base_postal_code_id, stripe_account_id, rejected_reason, verified_at, created_at, updated_at
`

type UpdateChefProfileParams struct {
	ID             pgtype.UUID
	DisplayName    pgtype.Text
	Bio            pgtype.Text
	Cuisine        pgtype.Text
	MaxTravelMiles pgtype.Float8
	PhotoKey       pgtype.Text
}

func (q *Queries) UpdateChefProfile(ctx context.Context, arg UpdateChefProfileParams) (Chef, error) {
	row := q.db.QueryRow(ctx, updateChefProfile,
		arg.ID,
		arg.DisplayName,
		arg.Bio,
		arg.Cuisine,
		arg.MaxTravelMiles,
		arg.PhotoKey,
	)
	var i Chef
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.DisplayName,
		&i.Bio,
		&i.Cuisine,
		&i.PhotoKey,
		&i.Status,
		&i.IsVerified,
		&i.MaxTravelMiles,
		&i.BasePostalCodeID,
		&i.StripeAccountID,
		&i.RejectedReason,
		&i.VerifiedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateChefBaseLocation = `-- name: UpdateChefBaseLocation :one
UPDATE chefs
SET base_postal_code_id = $2,
    updated_at = now()
WHERE id = $1
RETURNING id, user_id, display_name, bio, cuisine, photo_key, status, is_verified, max_travel_miles, base_postal_code_id, stripe_account_id, rejected_reason, verified_at, created_at, updated_at
`

type UpdateChefBaseLocationParams struct {
	ID               pgtype.UUID
	BasePostalCodeID pgtype.UUID
}

func (q *Queries) UpdateChefBaseLocation(ctx context.Context, arg UpdateChefBaseLocationParams) (Chef, error) {
	row := q.db.QueryRow(ctx, updateChefBaseLocation, arg.ID, arg.BasePostalCodeID)
	var i Chef
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.DisplayName,
		&i.Bio,
		&i.Cuisine,
		&i.PhotoKey,
		&i.Status,
		&i.IsVerified,
		&i.MaxTravelMiles,
		&i.BasePostalCodeID,
		&i.StripeAccountID,
		&i.RejectedReason,
		&i.VerifiedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateChefStatus = `-- name: UpdateChefStatus :one
UPDATE chefs
SET status = $2,
    is_verified = $3,
    rejected_reason = $4,
    verified_at = $5,
    updated_at = now()
WHERE id = $1
RETURNING id, user_id, display_name, bio, cuisine, photo_key, status, is_verified, max_travel_miles, base_postal_code_id, stripe_account_id, rejected_reason, verified_at, created_at, updated_at
`

type UpdateChefStatusParams struct {
	ID             pgtype.UUID
	Status         string
	IsVerified     bool
	RejectedReason pgtype.Text
	VerifiedAt     pgtype.Timestamptz
}

func (q *Queries) UpdateChefStatus(ctx context.Context, arg UpdateChefStatusParams) (Chef, error) {
	row := q.db.QueryRow(ctx, updateChefStatus,
		arg.ID,
		arg.Status,
		arg.IsVerified,
		arg.RejectedReason,
		arg.VerifiedAt,
	)
	var i Chef
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.DisplayName,
		&i.Bio,
		&i.Cuisine,
		&i.PhotoKey,
		&i.Status,
		&i.IsVerified,
		&i.MaxTravelMiles,
		&i.BasePostalCodeID,
		&i.StripeAccountID,
		&i.RejectedReason,
		&i.VerifiedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const addChefPostalCode = `-- name: AddChefPostalCode :exec
INSERT INTO chef_postal_codes (chef_id, postal_code_id)
VALUES ($1, $2)
ON CONFLICT (chef_id, postal_code_id) DO NOTHING
`

type AddChefPostalCodeParams struct {
	ChefID       pgtype.UUID
	PostalCodeID pgtype.UUID
}

func (q *Queries) AddChefPostalCode(ctx context.Context, arg AddChefPostalCodeParams) error {
	_, err := q.db.Exec(ctx, addChefPostalCode, arg.ChefID, arg.PostalCodeID)
	return err
}

const deleteChefPostalCodes = `-- name: DeleteChefPostalCodes :exec
DELETE FROM chef_postal_codes
WHERE chef_id = $1
`

func (q *Queries) DeleteChefPostalCodes(ctx context.Context, chefID pgtype.UUID) error {
	_, err := q.db.Exec(ctx, deleteChefPostalCodes, chefID)
	return err
}

const listChefPostalCodes = `-- name: ListChefPostalCodes :many
SELECT p.id, p.code, p.display_code, p.country, p.place_name, p.latitude, p.longitude, p.area_id, p.created_at, p.updated_at
FROM chef_postal_codes cpc
JOIN postal_codes p ON p.id = cpc.postal_code_id
WHERE cpc.chef_id = $1
ORDER BY p.code
`

func (q *Queries) ListChefPostalCodes(ctx context.Context, chefID pgtype.UUID) ([]PostalCode, error) {
	rows, err := q.db.Query(ctx, listChefPostalCodes, chefID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PostalCode
	for rows.Next() {
		var i PostalCode
		if err := rows.Scan(
			&i.ID,
			&i.Code,
			&i.DisplayCode,
			&i.Country,
			&i.PlaceName,
			&i.Latitude,
			&i.Longitude,
			&i.AreaID,
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

const listVerifiedChefsServingPostalCode = `-- name: ListVerifiedChefsServingPostalCode :many
SELECT c.id, c.user_id, c.display_name, c.bio, c.cuisine, c.photo_key, c.status, c.is_verified, c.max_travel_miles, c.base_postal_code_id, c.stripe_account_id, c.rejected_reason, c.verified_at, c.created_at, c.updated_at
FROM chef_postal_codes cpc
JOIN chefs c ON c.id = cpc.chef_id
WHERE cpc.postal_code_id = $1
  AND c.is_verified = true
ORDER BY c.display_name
`

func (q *Queries) ListVerifiedChefsServingPostalCode(ctx context.Context, postalCodeID pgtype.UUID) ([]Chef, error) {
	rows, err := q.db.Query(ctx, listVerifiedChefsServingPostalCode, postalCodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Chef
	for rows.Next() {
		var i Chef
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.DisplayName,
			&i.Bio,
			&i.Cuisine,
			&i.PhotoKey,
			&i.Status,
			&i.IsVerified,
			&i.MaxTravelMiles,
			&i.BasePostalCodeID,
			&i.StripeAccountID,
			&i.RejectedReason,
			&i.VerifiedAt,
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

const countChefsByStatus = `-- name: CountChefsByStatus :one
SELECT count(*) FROM chefs WHERE status = $1
`

func (q *Queries) CountChefsByStatus(ctx context.Context, status string) (int64, error) {
	row := q.db.QueryRow(ctx, countChefsByStatus, status)
	var count int64
	err := row.Scan(&count)
	return count, err
}
