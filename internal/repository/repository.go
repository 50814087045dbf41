// Package repository provides typed access to the Postgres schema.
// Each entity has its own query file with SQL constants, typed parameter
// structs, and row structs. The Querier interface covers every query so
// services can be tested against MockQuerier without a database.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx, so the same
// queries run inside and outside transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// New returns a Queries bound to the given connection or pool.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries executes the application's SQL against a DBTX.
type Queries struct {
	db DBTX
}

// WithTx returns a Queries bound to the given transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}
