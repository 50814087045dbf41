package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createEmailVerificationToken = `-- name: CreateEmailVerificationToken :one
INSERT INTO email_verification_tokens (user_id, token_hash, ip_address, expires_at)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, token_hash, ip_address, expires_at, used_at, created_at
`

type CreateEmailVerificationTokenParams struct {
	UserID    pgtype.UUID
	TokenHash string
	IpAddress pgtype.Text
	ExpiresAt pgtype.Timestamptz
}

func (q *Queries) CreateEmailVerificationToken(ctx context.Context, arg CreateEmailVerificationTokenParams) (EmailVerificationToken, error) {
	row := q.db.QueryRow(ctx, createEmailVerificationToken,
		arg.UserID,
		arg.TokenHash,
		arg.IpAddress,
		arg.ExpiresAt,
	)
	var i EmailVerificationToken
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.TokenHash,
		&i.IpAddress,
		&i.ExpiresAt,
		&i.UsedAt,
		&i.CreatedAt,
	)
	return i, err
}

const getEmailVerificationTokenByHash = `-- name: GetEmailVerificationTokenByHash :one
SELECT id, user_id, token_hash, ip_address, expires_at, used_at, created_at
FROM email_verification_tokens
WHERE token_hash = $1
`

func (q *Queries) GetEmailVerificationTokenByHash(ctx context.Context, tokenHash string) (EmailVerificationToken, error) {
	row := q.db.QueryRow(ctx, getEmailVerificationTokenByHash, tokenHash)
	var i EmailVerificationToken
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.TokenHash,
		&i.IpAddress,
		&i.ExpiresAt,
		&i.UsedAt,
		&i.CreatedAt,
	)
	return i, err
}

const markEmailVerificationTokenUsed = `-- name: MarkEmailVerificationTokenUsed :exec
UPDATE email_verification_tokens
SET used_at = now()
WHERE id = $1
`

func (q *Queries) MarkEmailVerificationTokenUsed(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, markEmailVerificationTokenUsed, id)
	return err
}

const countRecentEmailVerificationTokensByUser = `-- name: CountRecentEmailVerificationTokensByUser :one
SELECT count(*)
FROM email_verification_tokens
WHERE user_id = $1 AND created_at > $2
`

type CountRecentEmailVerificationTokensByUserParams struct {
	UserID pgtype.UUID
	Since  pgtype.Timestamptz
}

func (q *Queries) CountRecentEmailVerificationTokensByUser(ctx context.Context, arg CountRecentEmailVerificationTokensByUserParams) (int64, error) {
	row := q.db.QueryRow(ctx, countRecentEmailVerificationTokensByUser, arg.UserID, arg.Since)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countRecentEmailVerificationTokensByIP = `-- name: CountRecentEmailVerificationTokensByIP :one
SELECT count(*)
FROM email_verification_tokens
WHERE ip_address = $1 AND created_at > $2
`

type CountRecentEmailVerificationTokensByIPParams struct {
	IpAddress pgtype.Text
	Since     pgtype.Timestamptz
}

func (q *Queries) CountRecentEmailVerificationTokensByIP(ctx context.Context, arg CountRecentEmailVerificationTokensByIPParams) (int64, error) {
	row := q.db.QueryRow(ctx, countRecentEmailVerificationTokensByIP, arg.IpAddress, arg.Since)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteExpiredEmailVerificationTokens = `-- name: DeleteExpiredEmailVerificationTokens :execrows
DELETE FROM email_verification_tokens
WHERE expires_at < now()
`

func (q *Queries) DeleteExpiredEmailVerificationTokens(ctx context.Context) (int64, error) {
	result, err := q.db.Exec(ctx, deleteExpiredEmailVerificationTokens)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const createPasswordResetToken = `-- name: CreatePasswordResetToken :one
INSERT INTO password_reset_tokens (user_id, email, token_hash, ip_address, expires_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_id, email, token_hash, ip_address, expires_at, used_at, created_at
`

type CreatePasswordResetTokenParams struct {
	UserID    pgtype.UUID
	Email     string
	TokenHash string
	IpAddress pgtype.Text
	ExpiresAt pgtype.Timestamptz
}

func (q *Queries) CreatePasswordResetToken(ctx context.Context, arg CreatePasswordResetTokenParams) (PasswordResetToken, error) {
	row := q.db.QueryRow(ctx, createPasswordResetToken,
		arg.UserID,
		arg.Email,
		arg.TokenHash,
		arg.IpAddress,
		arg.ExpiresAt,
	)
	var i PasswordResetToken
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Email,
		&i.TokenHash,
		&i.IpAddress,
		&i.ExpiresAt,
		&i.UsedAt,
		&i.CreatedAt,
	)
	return i, err
}

const getPasswordResetTokenByHash = `-- name: GetPasswordResetTokenByHash :one
SELECT id, user_id, email, token_hash, ip_address, expires_at, used_at, created_at
FROM password_reset_tokens
WHERE token_hash = $1
`

func (q *Queries) GetPasswordResetTokenByHash(ctx context.Context, tokenHash string) (PasswordResetToken, error) {
	row := q.db.QueryRow(ctx, getPasswordResetTokenByHash, tokenHash)
	var i PasswordResetToken
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Email,
		&i.TokenHash,
		&i.IpAddress,
		&i.ExpiresAt,
		&i.UsedAt,
		&i.CreatedAt,
	)
	return i, err
}

const markPasswordResetTokenUsed = `-- name: MarkPasswordResetTokenUsed :exec
UPDATE password_reset_tokens
SET used_at = now()
WHERE id = $1
`

func (q *Queries) MarkPasswordResetTokenUsed(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, markPasswordResetTokenUsed, id)
	return err
}

const countRecentPasswordResetTokensByEmail = `-- name: CountRecentPasswordResetTokensByEmail :one
SELECT count(*)
FROM password_reset_tokens
WHERE lower(email) = lower($1) AND created_at > $2
`

type CountRecentPasswordResetTokensByEmailParams struct {
	Email string
	Since pgtype.Timestamptz
}

func (q *Queries) CountRecentPasswordResetTokensByEmail(ctx context.Context, arg CountRecentPasswordResetTokensByEmailParams) (int64, error) {
	row := q.db.QueryRow(ctx, countRecentPasswordResetTokensByEmail, arg.Email, arg.Since)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countRecentPasswordResetTokensByIP = `-- name: CountRecentPasswordResetTokensByIP :one
SELECT count(*)
FROM password_reset_tokens
WHERE ip_address = $1 AND created_at > $2
`

type CountRecentPasswordResetTokensByIPParams struct {
	IpAddress pgtype.Text
	Since     pgtype.Timestamptz
}

func (q *Queries) CountRecentPasswordResetTokensByIP(ctx context.Context, arg CountRecentPasswordResetTokensByIPParams) (int64, error) {
	row := q.db.QueryRow(ctx, countRecentPasswordResetTokensByIP, arg.IpAddress, arg.Since)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteExpiredPasswordResetTokens = `-- name: DeleteExpiredPasswordResetTokens :execrows
DELETE FROM password_reset_tokens
WHERE expires_at < now()
`

func (q *Queries) DeleteExpiredPasswordResetTokens(ctx context.Context) (int64, error) {
	result, err := q.db.Exec(ctx, deleteExpiredPasswordResetTokens)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
