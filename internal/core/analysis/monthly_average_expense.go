package analysis

import (
	"time"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/SscSPs/finance_tracker_core/internal/platform/clock"
	"github.com/shopspring/decimal"
)

// MonthlyAverageExpenseStrategy divides total expenses by the number of whole
// months since the earliest expense (at least one). The result keeps the
// negative sign of stored expenses.
type MonthlyAverageExpenseStrategy struct {
	clock clock.Clock
	money domain.MoneyFactory
}

// NewMonthlyAverageExpenseStrategy builds the strategy.
func NewMonthlyAverageExpenseStrategy(clk clock.Clock, money domain.MoneyFactory) *MonthlyAverageExpenseStrategy {
	return &MonthlyAverageExpenseStrategy{clock: clk, money: money}
}

func (s *MonthlyAverageExpenseStrategy) KPIType() domain.KPIType { return domain.MonthlyAverageExpense }

func (s *MonthlyAverageExpenseStrategy) Analyze(transactions []*domain.Transaction) (*domain.AnalysisResult, error) {
	total := zeroFor(transactions, s.money)
	byCategory := make(map[domain.Category]domain.Money)
	var earliest time.Time

	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}
		var err error
		if total, err = total.Add(t.Amount()); err != nil {
			return nil, err
		}
		catTotal, ok := byCategory[t.Category()]
		if !ok {
			catTotal = domain.Zero(t.Amount().Currency())
		}
		if byCategory[t.Category()], err = catTotal.Add(t.Amount()); err != nil {
			return nil, err
		}
		if earliest.IsZero() || t.Date().Before(earliest) {
			earliest = t.Date()
		}
	}

	months := 1
	if !earliest.IsZero() {
		if m := domain.MonthsBetween(earliest, s.clock.Now()); m > 1 {
			months = m
		}
	}

	average, err := total.Divide(decimal.NewFromInt(int64(months)))
	if err != nil {
		return nil, err
	}

	breakdown := make(map[domain.Category]decimal.Decimal, len(byCategory))
	for c, m := range byCategory {
		breakdown[c] = m.Amount()
	}
	reference := total.Amount()
	return domain.NewAnalysisResult(domain.MonthlyAverageExpense, domain.MoneyMetric(average), breakdown, &reference), nil
}
