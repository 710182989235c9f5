package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the row shape of the budgets table. Only the period start is
// stored; the end is always the last day of the same month.
type Budget struct {
	BudgetID     int64           `db:"budget_id"`
	OwnerID      int64           `db:"owner_id"`
	Category     string          `db:"category"`
	LimitAmount  decimal.Decimal `db:"limit_amount"`
	CurrencyCode string          `db:"currency_code"`
	PeriodStart  time.Time       `db:"period_start"`
	State        string          `db:"state"`
	AuditFields
}
