package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudgetByID retrieves a budget by its identifier.
	FindBudgetByID(ctx context.Context, id domain.BudgetID) (*domain.Budget, error)

	// ListBudgetsByOwner returns an owner's budgets, optionally only the active ones.
	ListBudgetsByOwner(ctx context.Context, ownerID domain.UserID, activeOnly bool) ([]*domain.Budget, error)

	// ExistsActiveBudget reports whether the owner already has an active budget for category.
	ExistsActiveBudget(ctx context.Context, ownerID domain.UserID, category domain.Category) (bool, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	// SaveBudget inserts a new budget and assigns its identifier.
	SaveBudget(ctx context.Context, b *domain.Budget) error

	// UpdateBudget persists limit, category, period and state.
	UpdateBudget(ctx context.Context, b *domain.Budget) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
