// Package analysis turns a list of transactions into financial KPIs.
//
// Each KPI is computed by exactly one Strategy. Strategies are registered in a
// Registry that is validated when it is built and is read-only afterwards, so a
// single Registry can serve concurrent requests without locking.
package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/SscSPs/finance_tracker_core/internal/platform/clock"
)

// ErrInvalidRegistry is returned when a Registry is wired incorrectly.
var ErrInvalidRegistry = errors.New("invalid kpi strategy registry")

// Strategy computes one KPI from a transaction list.
// Implementations must be pure: no shared mutable state between calls.
type Strategy interface {
	KPIType() domain.KPIType
	Analyze(transactions []*domain.Transaction) (*domain.AnalysisResult, error)
}

// Registry maps each KPI type to its strategy.
type Registry struct {
	strategies map[domain.KPIType]Strategy
}

// NewRegistry validates that every strategy reports a KPI type and that no
// type is claimed twice.
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	if len(strategies) == 0 {
		return nil, fmt.Errorf("%w: no strategies provided", ErrInvalidRegistry)
	}
	byType := make(map[domain.KPIType]Strategy, len(strategies))
	for i, s := range strategies {
		if s == nil {
			return nil, fmt.Errorf("%w: strategy #%d is nil", ErrInvalidRegistry, i)
		}
		kpi := s.KPIType()
		if kpi == "" {
			return nil, fmt.Errorf("%w: strategy %T reports no kpi type", ErrInvalidRegistry, s)
		}
		if existing, ok := byType[kpi]; ok {
			return nil, fmt.Errorf("%w: %s claimed by both %T and %T", ErrInvalidRegistry, kpi, existing, s)
		}
		byType[kpi] = s
	}
	return &Registry{strategies: byType}, nil
}

// NewDefaultRegistry wires the built-in strategies.
func NewDefaultRegistry(clk clock.Clock, money domain.MoneyFactory) (*Registry, error) {
	return NewRegistry(
		NewSavingsRateStrategy(money),
		NewMonthlyAverageExpenseStrategy(clk, money),
		NewSpendingTrendStrategy(clk, money),
	)
}

// KPITypes lists the registered types in sorted order.
func (r *Registry) KPITypes() []domain.KPIType {
	out := make([]domain.KPIType, 0, len(r.strategies))
	for k := range r.strategies {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Analyze delegates to the strategy registered for kpi.
func (r *Registry) Analyze(kpi domain.KPIType, transactions []*domain.Transaction) (*domain.AnalysisResult, error) {
	strategy, err := r.lookup(kpi, transactions)
	if err != nil {
		return nil, err
	}
	return strategy.Analyze(transactions)
}

// AnalyzeByCategory keeps only transactions of category before delegating.
func (r *Registry) AnalyzeByCategory(kpi domain.KPIType, transactions []*domain.Transaction, category domain.Category) (*domain.AnalysisResult, error) {
	strategy, err := r.lookup(kpi, transactions)
	if err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, category)
	}
	return strategy.Analyze(FilterByCategory(transactions, category))
}

func (r *Registry) lookup(kpi domain.KPIType, transactions []*domain.Transaction) (Strategy, error) {
	if len(transactions) == 0 {
		return nil, fmt.Errorf("%w: transaction list must not be empty", apperrors.ErrValidation)
	}
	if kpi == "" {
		return nil, fmt.Errorf("%w: kpi type is required", apperrors.ErrValidation)
	}
	strategy, ok := r.strategies[kpi]
	if !ok {
		return nil, fmt.Errorf("%w: no strategy registered for %s", apperrors.ErrValidation, kpi)
	}
	return strategy, nil
}

// FilterByCategory returns the transactions of a single category, preserving order.
func FilterByCategory(transactions []*domain.Transaction, category domain.Category) []*domain.Transaction {
	out := make([]*domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Category() == category {
			out = append(out, t)
		}
	}
	return out
}
