package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager opens and closes database transactions for repositories
// whose writes must be atomic across several rows.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits tx.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back tx. Rolling back a finished transaction is not an error.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
