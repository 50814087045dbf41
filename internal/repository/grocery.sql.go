package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertGroceryCredential = `-- name: UpsertGroceryCredential :one
INSERT INTO grocery_credentials (provider, access_token_ciphertext, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (provider) DO UPDATE
SET access_token_ciphertext = EXCLUDED.access_token_ciphertext,
    expires_at = EXCLUDED.expires_at,
    updated_at = now()
RETURNING id, provider, access_token_ciphertext, expires_at, created_at, updated_at
`

type UpsertGroceryCredentialParams struct {
	Provider              string
	AccessTokenCiphertext []byte
	ExpiresAt             pgtype.Timestamptz
}

func (q *Queries) UpsertGroceryCredential(ctx context.Context, arg UpsertGroceryCredentialParams) (GroceryCredential, error) {
	row := q.db.QueryRow(ctx, upsertGroceryCredential,
		arg.Provider,
		arg.AccessTokenCiphertext,
		arg.ExpiresAt,
	)
	var i GroceryCredential
	err := row.Scan(
		&i.ID,
		&i.Provider,
		&i.AccessTokenCiphertext,
		&i.ExpiresAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getGroceryCredential = `-- name: GetGroceryCredential :one
SELECT id, provider, access_token_ciphertext, expires_at, created_at, updated_at
FROM grocery_credentials
WHERE provider = $1
`

func (q *Queries) GetGroceryCredential(ctx context.Context, provider string) (GroceryCredential, error) {
	row := q.db.QueryRow(ctx, getGroceryCredential, provider)
	var i GroceryCredential
	err := row.Scan(
		&i.ID,
		&i.Provider,
		&i.AccessTokenCiphertext,
		&i.ExpiresAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
