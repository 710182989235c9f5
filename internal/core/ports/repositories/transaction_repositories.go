package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
)

// TransactionFilter narrows a transaction listing. Nil fields are not applied.
type TransactionFilter struct {
	From     *time.Time
	To       *time.Time
	Category *domain.Category
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its identifier.
	FindTransactionByID(ctx context.Context, id domain.TransactionID) (*domain.Transaction, error)

	// ListTransactionsByOwner returns one page of an owner's transactions, newest first,
	// and a token for the next page when there is one.
	ListTransactionsByOwner(ctx context.Context, ownerID domain.UserID, filter TransactionFilter, limit int, nextToken *string) ([]*domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction inserts a new transaction and assigns its identifier.
	SaveTransaction(ctx context.Context, t *domain.Transaction) error

	// UpdateTransaction overwrites the mutable fields of a persisted transaction.
	UpdateTransaction(ctx context.Context, t *domain.Transaction) error
}

// TransactionSource supplies the transactions the analysis engine works on.
type TransactionSource interface {
	// FindByOwnerAndPeriod returns an owner's transactions dated within [from, to].
	FindByOwnerAndPeriod(ctx context.Context, ownerID domain.UserID, from, to time.Time) ([]*domain.Transaction, error)
}

// TransactionSummaryProvider aggregates spend for budget analysis.
type TransactionSummaryProvider interface {
	// SumExpenses returns the magnitude of expenses of one category in [start, end].
	// It returns zero, not an error, when nothing matches.
	SumExpenses(ctx context.Context, ownerID domain.UserID, category domain.Category, start, end time.Time, currency string) (domain.Money, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionSource
	TransactionSummaryProvider
}
