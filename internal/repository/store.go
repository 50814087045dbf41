package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRunner runs a function against a Querier bound to one transaction.
// Services use it for flows that must commit or roll back as a unit.
type TxRunner interface {
	ExecTx(ctx context.Context, fn func(Querier) error) error
}

// Store couples Queries with the pool that opens its transactions.
type Store struct {
	*Queries
	pool *pgxpool.Pool
}

// NewStore returns a Store over the pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Queries: New(pool), pool: pool}
}

// ExecTx begins a transaction, runs fn with a transaction-bound Querier,
// and commits. Any error rolls the transaction back.
func (s *Store) ExecTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(s.Queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
