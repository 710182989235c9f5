package domain

import (
	"github.com/shopspring/decimal"
)

// nearLimitThreshold is the usage percentage from which a budget counts as near its limit.
var nearLimitThreshold = decimal.NewFromInt(80)

// BudgetAnalysis is a snapshot of a budget against an externally computed spend.
type BudgetAnalysis struct {
	BudgetID        BudgetID
	Category        Category
	Period          BudgetPeriod
	Limit           Money
	Spent           Money
	Remaining       Money
	UsagePercentage decimal.Decimal
	Exceeded        bool
	NearLimit       bool
}

// NewBudgetAnalysis combines a budget with the amount spent in its current
// period and category. Spent is read as a magnitude.
func NewBudgetAnalysis(b *Budget, spent Money) (*BudgetAnalysis, error) {
	spent = spent.Abs()

	exceeded, err := b.IsExceeded(spent)
	if err != nil {
		return nil, err
	}
	remaining, err := b.RemainingAmount(spent)
	if err != nil {
		return nil, err
	}
	usage, err := b.UsagePercentage(spent)
	if err != nil {
		return nil, err
	}

	return &BudgetAnalysis{
		BudgetID:        b.ID(),
		Category:        b.Category(),
		Period:          b.Period(),
		Limit:           b.Limit(),
		Spent:           spent,
		Remaining:       remaining,
		UsagePercentage: usage,
		Exceeded:        exceeded,
		NearLimit:       !exceeded && usage.GreaterThanOrEqual(nearLimitThreshold),
	}, nil
}
