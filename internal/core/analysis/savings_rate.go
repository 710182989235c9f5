package analysis

import (
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ratioScale is the precision of a ratio before it becomes a percentage.
const ratioScale int32 = 4

var hundred = decimal.NewFromInt(100)

// SavingsRateStrategy computes (income + expenses) / income as a percentage.
// Expenses are stored negative, so the numerator is the net amount saved.
type SavingsRateStrategy struct {
	money domain.MoneyFactory
}

// NewSavingsRateStrategy builds the strategy.
func NewSavingsRateStrategy(money domain.MoneyFactory) *SavingsRateStrategy {
	return &SavingsRateStrategy{money: money}
}

func (s *SavingsRateStrategy) KPIType() domain.KPIType { return domain.SavingsRate }

func (s *SavingsRateStrategy) Analyze(transactions []*domain.Transaction) (*domain.AnalysisResult, error) {
	totalIncome := zeroFor(transactions, s.money)
	totalExpenses := totalIncome

	var err error
	for _, t := range transactions {
		if t.IsIncome() {
			totalIncome, err = totalIncome.Add(t.Amount())
		} else {
			totalExpenses, err = totalExpenses.Add(t.Amount())
		}
		if err != nil {
			return nil, err
		}
	}

	reference := totalIncome.Amount()
	if totalIncome.IsZero() {
		return domain.NewAnalysisResult(domain.SavingsRate, domain.PercentMetric(decimal.Zero), nil, &reference), nil
	}

	net, err := totalIncome.Add(totalExpenses)
	if err != nil {
		return nil, err
	}
	rate := net.Amount().Div(totalIncome.Amount()).RoundBank(ratioScale).Mul(hundred)
	return domain.NewAnalysisResult(domain.SavingsRate, domain.PercentMetric(rate), nil, &reference), nil
}

// zeroFor returns zero in the currency of the first transaction, or the default currency.
func zeroFor(transactions []*domain.Transaction, money domain.MoneyFactory) domain.Money {
	if len(transactions) > 0 {
		return domain.Zero(transactions[0].Amount().Currency())
	}
	return money.Zero()
}
