package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_core/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_core/internal/dto"
)

type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
	spending   portsrepo.TransactionSummaryProvider
}

// NewBudgetService creates a new budget service. spending supplies the
// per-category expense totals used by AnalyzeBudget.
func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	spending portsrepo.TransactionSummaryProvider,
	money domain.MoneyFactory,
	options ...ServiceOption,
) portssvc.BudgetSvcFacade {
	return &budgetService{
		BaseService: newBaseService(money, options...),
		budgetRepo:  budgetRepo,
		spending:    spending,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, ownerID domain.UserID, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	limit, err := s.moneyOf(req.Limit, req.CurrencyCode)
	if err != nil {
		return nil, err
	}
	ref := s.Clock.Now()
	if req.ReferenceDate != "" {
		if ref, err = dto.ParseDate(req.ReferenceDate); err != nil {
			return nil, err
		}
	}

	budget, err := domain.NewBudget(ownerID, limit, req.Category, ref)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNoActiveBudget(ctx, ownerID, req.Category); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("category", string(req.Category)))
		return nil, err
	}
	s.LogInfo(ctx, "Budget created",
		slog.Int64("budget_id", int64(budget.ID())),
		slog.String("category", string(budget.Category())))
	return budget, nil
}

func (s *budgetService) ensureNoActiveBudget(ctx context.Context, ownerID domain.UserID, category domain.Category) error {
	exists, err := s.budgetRepo.ExistsActiveBudget(ctx, ownerID, category)
	if err != nil {
		s.LogError(ctx, err, "Failed to check for active budget", slog.String("category", string(category)))
		return err
	}
	if exists {
		return fmt.Errorf("%w: an active budget for %s already exists", apperrors.ErrDuplicate, category)
	}
	return nil
}

func (s *budgetService) GetBudgetByID(ctx context.Context, ownerID domain.UserID, id domain.BudgetID) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, budget.OwnerID(), ownerID, fmt.Sprintf("budget %d", id)); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, ownerID domain.UserID, params dto.ListBudgetsParams) ([]*domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgetsByOwner(ctx, ownerID, params.ActiveOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("owner_id", ownerID.String()))
		return nil, err
	}
	return budgets, nil
}

func (s *budgetService) ChangeBudgetLimit(ctx context.Context, ownerID domain.UserID, id domain.BudgetID, req dto.ChangeBudgetLimitRequest) (*domain.Budget, error) {
	return s.mutate(ctx, ownerID, id, "limit changed", func(b *domain.Budget) error {
		currency := b.Limit().Currency()
		if req.CurrencyCode != "" {
			requested, err := domain.NormalizeCurrency(req.CurrencyCode)
			if err != nil {
				return err
			}
			if requested != currency {
				return fmt.Errorf("%w: budget is in %s, not %s", apperrors.ErrCurrencyMismatch, currency, requested)
			}
		}
		limit, err := domain.NewMoney(req.Limit, currency)
		if err != nil {
			return err
		}
		return b.ChangeLimit(limit)
	})
}

func (s *budgetService) ChangeBudgetCategory(ctx context.Context, ownerID domain.UserID, id domain.BudgetID, req dto.ChangeBudgetCategoryRequest) (*domain.Budget, error) {
	return s.mutate(ctx, ownerID, id, "category changed", func(b *domain.Budget) error {
		if b.Category() == req.Category {
			return nil
		}
		if err := b.ChangeCategory(req.Category); err != nil {
			return err
		}
		if b.IsActive() {
			return s.ensureNoActiveBudget(ctx, ownerID, req.Category)
		}
		return nil
	})
}

func (s *budgetService) RenewBudget(ctx context.Context, ownerID domain.UserID, id domain.BudgetID) (*domain.Budget, error) {
	return s.mutate(ctx, ownerID, id, "renewed", (*domain.Budget).RenewBudget)
}

func (s *budgetService) DeactivateBudget(ctx context.Context, ownerID domain.UserID, id domain.BudgetID) (*domain.Budget, error) {
	return s.mutate(ctx, ownerID, id, "deactivated", (*domain.Budget).DeactivateBudget)
}

// mutate loads an owned budget, applies change and persists the result.
func (s *budgetService) mutate(ctx context.Context, ownerID domain.UserID, id domain.BudgetID, action string, change func(*domain.Budget) error) (*domain.Budget, error) {
	budget, err := s.GetBudgetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := change(budget); err != nil {
		return nil, err
	}
	if err := s.budgetRepo.UpdateBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.Int64("budget_id", int64(id)))
		return nil, err
	}
	s.LogInfo(ctx, "Budget "+action, slog.Int64("budget_id", int64(id)))
	return budget, nil
}

func (s *budgetService) AnalyzeBudget(ctx context.Context, ownerID domain.UserID, id domain.BudgetID) (*domain.BudgetAnalysis, error) {
	budget, err := s.GetBudgetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	period := budget.Period()
	spent, err := s.spending.SumExpenses(ctx, ownerID, budget.Category(), period.StartDate(), period.EndDate(), budget.Limit().Currency())
	if err != nil {
		s.LogError(ctx, err, "Failed to sum expenses for budget", slog.Int64("budget_id", int64(id)))
		return nil, err
	}

	analysis, err := domain.NewBudgetAnalysis(budget, spent)
	if err != nil {
		return nil, err
	}
	s.LogDebug(ctx, "Budget analyzed",
		slog.Int64("budget_id", int64(id)),
		slog.String("usage", analysis.UsagePercentage.String()))
	return analysis, nil
}
