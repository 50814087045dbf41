package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `-- name: CreateUser :one
INSERT INTO users (email, password_hash, role, first_name, last_name)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, email, password_hash, role, status, email_verified, first_name, last_name, phone, dietary_restrictions, postal_code_id, created_at, updated_at
`

type CreateUserParams struct {
	Email        string
	PasswordHash string
	Role         string
	FirstName    pgtype.Text
	LastName     pgtype.Text
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser,
		arg.Email,
		arg.PasswordHash,
		arg.Role,
		arg.FirstName,
		arg.LastName,
	)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.PasswordHash,
		&i.Role,
		&i.Status,
		&i.EmailVerified,
		&i.FirstName,
		&i.LastName,
		&i.Phone,
		&i.DietaryRestrictions,
		&i.PostalCodeID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createAdminUser = `-- name: CreateAdminUser :one
INSERT INTO users (email, password_hash, role, status, email_verified, first_name, last_name)
VALUES ($1, $2, 'admin', 'active', true, $3, $4)
ON CONFLICT (email) DO NOTHING
RETURNING id, email, password_hash, role, status, email_verified, first_name, last_name, phone, dietary_restrictions, postal_code_id, created_at, updated_at
`

type CreateAdminUserParams struct {
	Email        string
	PasswordHash string
	FirstName    pgtype.Text
	LastName     pgtype.Text
}

func (q *Queries) CreateAdminUser(ctx context.Context, arg CreateAdminUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createAdminUser,
		arg.Email,
		arg.PasswordHash,
		arg.FirstName,
		arg.LastName,
	)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.PasswordHash,
		&i.Role,
		&i.Status,
		&i.EmailVerified,
		&i.FirstName,
		&i.LastName,
		&i.Phone,
		&i.DietaryRestrictions,
		&i.PostalCodeID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, email, password_hash, role, status, email_verified, first_name, last_name, phone, dietary_restrictions, postal_code_id, created_at, updated_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id pgtype.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.PasswordHash,
		&i.Role,
		&i.Status,
		&i.EmailVerified,
		&i.FirstName,
		&i.LastName,
		&i.Phone,
		&i.DietaryRestrictions,
		&i.PostalCodeID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getUserByIDForUpdate = `-- name: GetUserByIDForUpdate :one
SELECT id, email, password_hash, role, status, email_verified, first_name, last_name, phone, dietary_restrictions, postal_code_id, created_at, updated_at
FROM users
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetUserByIDForUpdate(ctx context.Context, id pgtype.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUserByIDForUpdate, id)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.PasswordHash,
		&i.Role,
		&i.Status,
		&i.EmailVerified,
		&i.FirstName,
		&i.LastName,
		&i.Phone,
		&i.DietaryRestrictions,
		&i.PostalCodeID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT id, email, password_hash, role, status, email_verified, first_name, last_name, phone, dietary_restrictions, postal_code_id, created_at, updated_at
FROM users
WHERE lower(email) = lower($1)
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.PasswordHash,
		&i.Role,
		&i.Status,
		&i.EmailVerified,
		&i.FirstName,
		&i.LastName,
		&i.Phone,
		&i.DietaryRestrictions,
		&i.PostalCodeID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateUserProfile = `-- name: UpdateUserProfile :one
UPDATE users
SET first_name = COALESCE($2, first_name),
    last_name = COALESCE($3, last_name),
    phone = COALESCE($4, phone),
    dietary_restrictions = COALESCE($5, dietary_restrictions),
    updated_at = now()
WHERE id = $1
RETURNING id, email, password_hash, role, status, email_verified, first_name, last_name, phone, dietary_restrictions, postal_code_id, created_at, updated_at
`

type UpdateUserProfileParams struct {
	ID                  pgtype.UUID
	FirstName           pgtype.Text
	LastName            pgtype.Text
	Phone               pgtype.Text
	DietaryRestrictions []string
}

func (q *Queries) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (User, error) {
	row := q.db.QueryRow(ctx, updateUserProfile,
		arg.ID,
		arg.FirstName,
		arg.LastName,
		arg.Phone,
		arg.DietaryRestrictions,
	)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.PasswordHash,
		&i.Role,
		&i.Status,
		&i.EmailVerified,
		&i.FirstName,
		&i.LastName,
		&i.Phone,
		&i.DietaryRestrictions,
		&i.PostalCodeID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateUserLocation = `-- name: UpdateUserLocation :one
UPDATE users
SET postal_code_id = $2,
    updated_at = now()
WHERE id = $1
RETURNING id, email, password_hash, role, status, email_verified, first_name, last_name, phone, dietary_restrictions, postal_code_id, created_at, updated_at
`

type UpdateUserLocationParams struct {
	ID           pgtype.UUID
	PostalCodeID pgtype.UUID
}

func (q *Queries) UpdateUserLocation(ctx context.Context, arg UpdateUserLocationParams) (User, error) {
	row := q.db.QueryRow(ctx, updateUserLocation, arg.ID, arg.PostalCodeID)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.PasswordHash,
		&i.Role,
		&i.Status,
		&i.EmailVerified,
		&i.FirstName,
		&i.LastName,
		&i.Phone,
		&i.DietaryRestrictions,
		&i.PostalCodeID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateUserRole = `-- name: UpdateUserRole :one
UPDATE users
SET role = $2,
    updated_at = now()
WHERE id = $1
RETURNING id, email, password_hash, role, status, email_verified, first_name, last_name, phone, dietary_restrictions, postal_code_id, created_at, updated_at
`

type UpdateUserRoleParams struct {
	ID   pgtype.UUID
	Role string
}

func (q *Queries) UpdateUserRole(ctx context.Context, arg UpdateUserRoleParams) (User, error) {
	row := q.db.QueryRow(ctx, updateUserRole, arg.ID, arg.Role)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.PasswordHash,
		&i.Role,
		&i.Status,
		&i.EmailVerified,
		&i.FirstName,
		&i.LastName,
		&i.Phone,
		&i.DietaryRestrictions,
		&i.PostalCodeID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateUserPassword = `-- name: UpdateUserPassword :exec
UPDATE users
SET password_hash = $2,
    updated_at = now()
WHERE id = $1
`

type UpdateUserPasswordParams struct {
	ID           pgtype.UUID
	PasswordHash string
}

func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	_, err := q.db.Exec(ctx, updateUserPassword, arg.ID, arg.PasswordHash)
	return err
}

const setUserEmailVerified = `-- name: SetUserEmailVerified :exec
UPDATE users
SET email_verified = true,
    updated_at = now()
WHERE id = $1
`

func (q *Queries) SetUserEmailVerified(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, setUserEmailVerified, id)
	return err
}

const listUsers = `-- name: ListUsers :many
SELECT id, email, password_hash, role, status, email_verified, first_name, last_name, phone, dietary_restrictions, postal_code_id, created_at, updated_at
FROM users
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

type ListUsersParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) ListUsers(ctx context.Context, arg ListUsersParams) ([]User, error) {
	rows, err := q.db.Query(ctx, listUsers, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		var i User
		if err := rows.Scan(
			&i.ID,
			&i.Email,
			&i.PasswordHash,
			&i.Role,
			&i.Status,
			&i.EmailVerified,
			&i.FirstName,
			&i.LastName,
			&i.Phone,
			&i.DietaryRestrictions,
			&i.PostalCodeID,
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

const countUsers = `-- name: CountUsers :one
SELECT count(*) FROM users
`

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countUsers)
	var count int64
	err := row.Scan(&count)
	return count, err
}
