package mapping

import (
	"fmt"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/SscSPs/finance_tracker_core/internal/models"
)

// ToModelBudget converts a domain.Budget to a models.Budget
func ToModelBudget(b *domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:     int64(b.ID()),
		OwnerID:      int64(b.OwnerID()),
		Category:     string(b.Category()),
		LimitAmount:  b.Limit().Amount(),
		CurrencyCode: b.Limit().Currency(),
		PeriodStart:  b.Period().StartDate(),
		State:        string(b.State()),
	}
}

// ToDomainBudget converts a models.Budget to a domain.Budget
func ToDomainBudget(m models.Budget) (*domain.Budget, error) {
	limit, err := domain.NewMoney(m.LimitAmount, m.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("budget %d: %w", m.BudgetID, err)
	}
	return domain.ReconstructBudget(
		domain.BudgetID(m.BudgetID),
		domain.UserID(m.OwnerID),
		limit,
		m.PeriodStart,
		domain.Category(m.Category),
		domain.BudgetState(m.State),
	)
}

// ToDomainBudgetSlice converts a slice of models.Budget to domain budgets.
func ToDomainBudgetSlice(ms []models.Budget) ([]*domain.Budget, error) {
	ds := make([]*domain.Budget, 0, len(ms))
	for _, m := range ms {
		d, err := ToDomainBudget(m)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}
