package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertAdministrativeArea = `-- name: UpsertAdministrativeArea :one
INSERT INTO administrative_areas (name, area_type, country, parent_id)
VALUES ($1, $2, $3, $4)
ON CONFLICT (country, area_type, name, COALESCE(parent_id, '00000000-0000-0000-0000-000000000000'::uuid))
DO UPDATE SET updated_at = now()
RETURNING id, name, area_type, country, parent_id, postal_code_count, created_at, updated_at
`

type UpsertAdministrativeAreaParams struct {
	Name     string
	AreaType string
	Country  string
	ParentID pgtype.UUID
}

func (q *Queries) UpsertAdministrativeArea(ctx context.Context, arg UpsertAdministrativeAreaParams) (AdministrativeArea, error) {
	row := q.db.QueryRow(ctx, upsertAdministrativeArea,
		arg.Name,
		arg.AreaType,
		arg.Country,
		arg.ParentID,
	)
	var i AdministrativeArea
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.AreaType,
		&i.Country,
		&i.ParentID,
		&i.PostalCodeCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAdministrativeAreaByID = `-- name: GetAdministrativeAreaByID :one
SELECT id, name, area_type, country, parent_id, postal_code_count, created_at, updated_at
FROM administrative_areas
WHERE id = $1
`

func (q *Queries) GetAdministrativeAreaByID(ctx context.Context, id pgtype.UUID) (AdministrativeArea, error) {
	row := q.db.QueryRow(ctx, getAdministrativeAreaByID, id)
	var i AdministrativeArea
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.AreaType,
		&i.Country,
		&i.ParentID,
		&i.PostalCodeCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listAdministrativeAreas = `-- name: ListAdministrativeAreas :many
SELECT id, name, area_type, country, parent_id, postal_code_count, created_at, updated_at
FROM administrative_areas
WHERE country = $1
ORDER BY area_type, name
`

func (q *Queries) ListAdministrativeAreas(ctx context.Context, country string) ([]AdministrativeArea, error) {
	rows, err := q.db.Query(ctx, listAdministrativeAreas, country)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AdministrativeArea
	for rows.Next() {
		var i AdministrativeArea
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.AreaType,
			&i.Country,
			&i.ParentID,
			&i.PostalCodeCount,
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

const listChildAreas = `-- name: ListChildAreas :many
SELECT id, name, area_type, country, parent_id, postal_code_count, created_at, updated_at
FROM administrative_areas
WHERE parent_id = $1
ORDER BY name
`

func (q *Queries) ListChildAreas(ctx context.Context, parentID pgtype.UUID) ([]AdministrativeArea, error) {
	rows, err := q.db.Query(ctx, listChildAreas, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AdministrativeArea
	for rows.Next() {
		var i AdministrativeArea
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.AreaType,
			&i.Country,
			&i.ParentID,
			&i.PostalCodeCount,
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

const refreshAreaPostalCodeCounts = `-- name: RefreshAreaPostalCodeCounts :exec
UPDATE administrative_areas a
SET postal_code_count = sub.n,
    updated_at = now()
FROM (
    SELECT area_id, count(*) AS n
    FROM postal_codes
    WHERE area_id IS NOT NULL
    GROUP BY area_id
) sub
WHERE a.id = sub.area_id
  AND a.postal_code_count IS DISTINCT FROM sub.n
`

func (q *Queries) RefreshAreaPostalCodeCounts(ctx context.Context) error {
	_, err := q.db.Exec(ctx, refreshAreaPostalCodeCounts)
	return err
}

const upsertPostalCode = `-- name: UpsertPostalCode :one
INSERT INTO postal_codes (code, display_code, country, place_name, latitude, longitude, area_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (code, country)
DO UPDATE SET display_code = EXCLUDED.display_code,
              place_name = EXCLUDED.place_name,
              latitude = EXCLUDED.latitude,
              longitude = EXCLUDED.longitude,
              area_id = EXCLUDED.area_id,
              updated_at = now()
RETURNING id, code, display_code, country, place_name, latitude, longitude, area_id, created_at, updated_at
`

type UpsertPostalCodeParams struct {
	Code        string
	DisplayCode string
	Country     string
	PlaceName   pgtype.Text
	Latitude    pgtype.Float8
	Longitude   pgtype.Float8
	AreaID      pgtype.UUID
}

func (q *Queries) UpsertPostalCode(ctx context.Context, arg UpsertPostalCodeParams) (PostalCode, error) {
	row := q.db.QueryRow(ctx, upsertPostalCode,
		arg.Code,
		arg.DisplayCode,
		arg.Country,
		arg.PlaceName,
		arg.Latitude,
		arg.Longitude,
		arg.AreaID,
	)
	var i PostalCode
	err := row.Scan(
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
	)
	return i, err
}

const createPostalCode = `-- name: CreatePostalCode :one
INSERT INTO postal_codes (code, display_code, country)
VALUES ($1, $2, $3)
ON CONFLICT (code, country)
DO UPDATE SET updated_at = now()
RETURNING id, code, display_code, country, place_name, latitude, longitude, area_id, created_at, updated_at
`

type CreatePostalCodeParams struct {
	Code        string
	DisplayCode string
	Country     string
}

func (q *Queries) CreatePostalCode(ctx context.Context, arg CreatePostalCodeParams) (PostalCode, error) {
	row := q.db.QueryRow(ctx, createPostalCode, arg.Code, arg.DisplayCode, arg.Country)
	var i PostalCode
	err := row.Scan(
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
	)
	return i, err
}

const getPostalCodeByID = `-- name: GetPostalCodeByID :one
SELECT id, code, display_code, country, place_name, latitude, longitude, area_id, created_at, updated_at
FROM postal_codes
WHERE id = $1
`

func (q *Queries) GetPostalCodeByID(ctx context.Context, id pgtype.UUID) (PostalCode, error) {
	row := q.db.QueryRow(ctx, getPostalCodeByID, id)
	var i PostalCode
	err := row.Scan(
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
	)
	return i, err
}

const getPostalCodeByCode = `-- name: GetPostalCodeByCode :one
SELECT id, code, display_code, country, place_name, latitude, longitude, area_id, created_at, updated_at
FROM postal_codes
WHERE code = $1 AND country = $2
`

type GetPostalCodeByCodeParams struct {
	Code    string
	Country string
}

func (q *Queries) GetPostalCodeByCode(ctx context.Context, arg GetPostalCodeByCodeParams) (PostalCode, error) {
	row := q.db.QueryRow(ctx, getPostalCodeByCode, arg.Code, arg.Country)
	var i PostalCode
	err := row.Scan(
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
	)
	return i, err
}

const countPostalCodes = `-- name: CountPostalCodes :one
SELECT count(*) FROM postal_codes
`

func (q *Queries) CountPostalCodes(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countPostalCodes)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const hasVerifiedChefForPostalCode = `-- name: HasVerifiedChefForPostalCode :one
SELECT EXISTS (
    SELECT 1
    FROM chef_postal_codes cpc
    JOIN chefs c ON c.id = cpc.chef_id
    WHERE cpc.postal_code_id = $1
      AND c.is_verified = true
)
`

func (q *Queries) HasVerifiedChefForPostalCode(ctx context.Context, postalCodeID pgtype.UUID) (bool, error) {
	row := q.db.QueryRow(ctx, hasVerifiedChefForPostalCode, postalCodeID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const hasVerifiedChefForArea = `-- name: HasVerifiedChefForArea :one
SELECT EXISTS (
    SELECT 1
    FROM chef_postal_codes cpc
    JOIN chefs c ON c.id = cpc.chef_id
    JOIN postal_codes p ON p.id = cpc.postal_code_id
    WHERE p.area_id = $1
      AND c.is_verified = true
)
`

func (q *Queries) HasVerifiedChefForArea(ctx context.Context, areaID pgtype.UUID) (bool, error) {
	row := q.db.QueryRow(ctx, hasVerifiedChefForArea, areaID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}
