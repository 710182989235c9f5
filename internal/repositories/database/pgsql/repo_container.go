package pgsql

import (
	portsrepo "github.com/SscSPs/finance_tracker_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		BudgetRepo:       newPgxBudgetRepository(dbPool),
		SubscriptionRepo: newPgxSubscriptionRepository(dbPool),
	}
}
