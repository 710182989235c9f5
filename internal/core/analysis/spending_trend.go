package analysis

import (
	"time"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/SscSPs/finance_tracker_core/internal/platform/clock"
	"github.com/shopspring/decimal"
)

// TrendWindowDays is the length of each comparison window.
const TrendWindowDays = 30

// SpendingTrendStrategy compares expense magnitudes of the trailing 30 days
// with the 30 days before that. Positive means spending went up.
type SpendingTrendStrategy struct {
	clock clock.Clock
	money domain.MoneyFactory
}

// NewSpendingTrendStrategy builds the strategy.
func NewSpendingTrendStrategy(clk clock.Clock, money domain.MoneyFactory) *SpendingTrendStrategy {
	return &SpendingTrendStrategy{clock: clk, money: money}
}

func (s *SpendingTrendStrategy) KPIType() domain.KPIType { return domain.SpendingTrend }

func (s *SpendingTrendStrategy) Analyze(transactions []*domain.Transaction) (*domain.AnalysisResult, error) {
	now := domain.DateOnly(s.clock.Now())
	recentStart := now.AddDate(0, 0, -TrendWindowDays)
	previousStart := now.AddDate(0, 0, -2*TrendWindowDays)

	recent := zeroFor(transactions, s.money)
	previous := recent

	var err error
	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}
		switch {
		case inWindow(t.Date(), recentStart, now):
			recent, err = recent.Add(t.Amount().Abs())
		case inWindow(t.Date(), previousStart, recentStart):
			previous, err = previous.Add(t.Amount().Abs())
		}
		if err != nil {
			return nil, err
		}
	}

	reference := previous.Amount()
	if previous.IsZero() {
		return domain.NewAnalysisResult(domain.SpendingTrend, domain.PercentMetric(decimal.Zero), nil, &reference), nil
	}

	diff, err := recent.Subtract(previous)
	if err != nil {
		return nil, err
	}
	trend := diff.Amount().Div(previous.Amount()).Mul(hundred).RoundBank(ratioScale)
	return domain.NewAnalysisResult(domain.SpendingTrend, domain.PercentMetric(trend), nil, &reference), nil
}

// inWindow reports from < date <= to.
func inWindow(date, from, to time.Time) bool {
	return date.After(from) && !date.After(to)
}
