package services

import (
	"github.com/SscSPs/finance_tracker_core/internal/core/analysis"
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_core/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	repos portsrepo.RepositoryProvider,
	registry *analysis.Registry,
	money domain.MoneyFactory,
	options ...ServiceOption,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Transaction:  NewTransactionService(repos.TransactionRepo, money, options...),
		Budget:       NewBudgetService(repos.BudgetRepo, repos.TransactionRepo, money, options...),
		Subscription: NewSubscriptionService(repos.SubscriptionRepo, money, options...),
		Analysis:     NewAnalysisService(repos.TransactionRepo, registry, money, options...),
	}
}
