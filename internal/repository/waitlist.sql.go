package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createWaitlistEntry = `-- name: CreateWaitlistEntry :one
INSERT INTO area_waitlist_entries (user_id, postal_code_id)
VALUES ($1, $2)
ON CONFLICT (user_id, postal_code_id) DO NOTHING
RETURNING id, user_id, postal_code_id, notified, notified_at, created_at
`

type CreateWaitlistEntryParams struct {
	UserID       pgtype.UUID
	PostalCodeID pgtype.UUID
}

// CreateWaitlistEntry inserts a waitlist entry, returning pgx.ErrNoRows
// when the user is already waiting on this postal code.
func (q *Queries) CreateWaitlistEntry(ctx context.Context, arg CreateWaitlistEntryParams) (AreaWaitlistEntry, error) {
	row := q.db.QueryRow(ctx, createWaitlistEntry, arg.UserID, arg.PostalCodeID)
	var i AreaWaitlistEntry
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.PostalCodeID,
		&i.Notified,
		&i.NotifiedAt,
		&i.CreatedAt,
	)
	return i, err
}

const getWaitlistEntry = `-- name: GetWaitlistEntry :one
SELECT id, user_id, postal_code_id, notified, notified_at, created_at
FROM area_waitlist_entries
WHERE user_id = $1 AND postal_code_id = $2
`

type GetWaitlistEntryParams struct {
	UserID       pgtype.UUID
	PostalCodeID pgtype.UUID
}

func (q *Queries) GetWaitlistEntry(ctx context.Context, arg GetWaitlistEntryParams) (AreaWaitlistEntry, error) {
	row := q.db.QueryRow(ctx, getWaitlistEntry, arg.UserID, arg.PostalCodeID)
	var i AreaWaitlistEntry
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.PostalCodeID,
		&i.Notified,
		&i.NotifiedAt,
		&i.CreatedAt,
	)
	return i, err
}

const deleteWaitlistEntry = `-- name: DeleteWaitlistEntry :execrows
DELETE FROM area_waitlist_entries
WHERE user_id = $1 AND postal_code_id = $2
`

type DeleteWaitlistEntryParams struct {
	UserID       pgtype.UUID
	PostalCodeID pgtype.UUID
}

func (q *Queries) DeleteWaitlistEntry(ctx context.Context, arg DeleteWaitlistEntryParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteWaitlistEntry, arg.UserID, arg.PostalCodeID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listWaitlistEntriesByUser = `-- name: ListWaitlistEntriesByUser :many
SELECT w.id, w.user_id, w.postal_code_id, w.notified, w.notified_at, w.created_at,
       p.code AS postal_code,
       p.display_code AS postal_display_code,
       p.country AS postal_country,
       p.place_name AS postal_place_name
FROM area_waitlist_entries w
JOIN postal_codes p ON p.id = w.postal_code_id
WHERE w.user_id = $1
ORDER BY w.created_at DESC
`

type ListWaitlistEntriesByUserRow struct {
	ID                pgtype.UUID
	UserID            pgtype.UUID
	PostalCodeID      pgtype.UUID
	Notified          bool
	NotifiedAt        pgtype.Timestamptz
	CreatedAt         pgtype.Timestamptz
	PostalCode        string
	PostalDisplayCode string
	PostalCountry     string
	PostalPlaceName   pgtype.Text
}

func (q *Queries) ListWaitlistEntriesByUser(ctx context.Context, userID pgtype.UUID) ([]ListWaitlistEntriesByUserRow, error) {
	rows, err := q.db.Query(ctx, listWaitlistEntriesByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListWaitlistEntriesByUserRow
	for rows.Next() {
		var i ListWaitlistEntriesByUserRow
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.PostalCodeID,
			&i.Notified,
			&i.NotifiedAt,
			&i.CreatedAt,
			&i.PostalCode,
			&i.PostalDisplayCode,
			&i.PostalCountry,
			&i.PostalPlaceName,
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

const listUnnotifiedWaitlistEntriesByPostalCode = `-- name: ListUnnotifiedWaitlistEntriesByPostalCode :many
SELECT w.id, w.user_id, w.postal_code_id, w.notified, w.notified_at, w.created_at,
       u.email AS user_email,
       u.first_name AS user_first_name,
       p.display_code AS postal_display_code,
       p.place_name AS postal_place_name
FROM area_waitlist_entries w
JOIN users u ON u.id = w.user_id
JOIN postal_codes p ON p.id = w.postal_code_id
WHERE w.postal_code_id = $1
  AND w.notified = false
ORDER BY w.created_at
`

type ListUnnotifiedWaitlistEntriesByPostalCodeRow struct {
	ID                pgtype.UUID
	UserID            pgtype.UUID
	PostalCodeID      pgtype.UUID
	Notified          bool
	NotifiedAt        pgtype.Timestamptz
	CreatedAt         pgtype.Timestamptz
	UserEmail         string
	UserFirstName     pgtype.Text
	PostalDisplayCode string
	PostalPlaceName   pgtype.Text
}

func (q *Queries) ListUnnotifiedWaitlistEntriesByPostalCode(ctx context.Context, postalCodeID pgtype.UUID) ([]ListUnnotifiedWaitlistEntriesByPostalCodeRow, error) {
	rows, err := q.db.Query(ctx, listUnnotifiedWaitlistEntriesByPostalCode, postalCodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListUnnotifiedWaitlistEntriesByPostalCodeRow
	for rows.Next() {
		var i ListUnnotifiedWaitlistEntriesByPostalCodeRow
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.PostalCodeID,
			&i.Notified,
			&i.NotifiedAt,
			&i.CreatedAt,
			&i.UserEmail,
			&i.UserFirstName,
			&i.PostalDisplayCode,
			&i.PostalPlaceName,
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

const markWaitlistEntryNotified = `-- name: MarkWaitlistEntryNotified :exec
UPDATE area_waitlist_entries
SET notified = true,
    notified_at = now()
WHERE id = $1
`

func (q *Queries) MarkWaitlistEntryNotified(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, markWaitlistEntryNotified, id)
	return err
}

const countWaitlistEntriesByPostalCode = `-- name: CountWaitlistEntriesByPostalCode :one
SELECT count(*)
FROM area_waitlist_entries
WHERE postal_code_id = $1
`

func (q *Queries) CountWaitlistEntriesByPostalCode(ctx context.Context, postalCodeID pgtype.UUID) (int64, error) {
	row := q.db.QueryRow(ctx, countWaitlistEntriesByPostalCode, postalCodeID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
