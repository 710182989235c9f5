package services

import (
	"context"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/SscSPs/finance_tracker_core/internal/dto"
)

// BudgetReaderSvc defines read operations for budget data
type BudgetReaderSvc interface {
	GetBudgetByID(ctx context.Context, ownerID domain.UserID, id domain.BudgetID) (*domain.Budget, error)
	ListBudgets(ctx context.Context, ownerID domain.UserID, params dto.ListBudgetsParams) ([]*domain.Budget, error)
}

// BudgetWriterSvc defines write operations for budget data
type BudgetWriterSvc interface {
	// CreateBudget fails with ErrDuplicate if the owner already has an active budget for the category.
	CreateBudget(ctx context.Context, ownerID domain.UserID, req dto.CreateBudgetRequest) (*domain.Budget, error)
	ChangeBudgetLimit(ctx context.Context, ownerID domain.UserID, id domain.BudgetID, req dto.ChangeBudgetLimitRequest) (*domain.Budget, error)
	ChangeBudgetCategory(ctx context.Context, ownerID domain.UserID, id domain.BudgetID, req dto.ChangeBudgetCategoryRequest) (*domain.Budget, error)
	RenewBudget(ctx context.Context, ownerID domain.UserID, id domain.BudgetID) (*domain.Budget, error)
	DeactivateBudget(ctx context.Context, ownerID domain.UserID, id domain.BudgetID) (*domain.Budget, error)
}

// BudgetAnalyzerSvc compares a budget with what was spent in its period.
type BudgetAnalyzerSvc interface {
	AnalyzeBudget(ctx context.Context, ownerID domain.UserID, id domain.BudgetID) (*domain.BudgetAnalysis, error)
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
	BudgetAnalyzerSvc
}
