package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/codereps/internal/review"
)

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx, so every repository
// method can run against the pool or inside a transaction.
type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

var _ review.Store = (*Store)(nil)

// InTx runs fn against a Store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise; either
// way the connection goes back to the pool.
func (s *Store) InTx(ctx context.Context, fn func(q review.Queries) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txStore := &Store{db: s.db, q: tx, driver: s.driver}
	if err := fn(txStore); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
