package domain

import "time"

// BudgetPeriod is an immutable calendar-month window [StartDate, EndDate].
type BudgetPeriod struct {
	startDate time.Time
	endDate   time.Time
}

// NewBudgetPeriod returns the month containing ref.
func NewBudgetPeriod(ref time.Time) BudgetPeriod {
	y, m, _ := ref.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return BudgetPeriod{
		startDate: start,
		endDate:   start.AddDate(0, 1, -1),
	}
}

func (p BudgetPeriod) StartDate() time.Time { return p.startDate }
func (p BudgetPeriod) EndDate() time.Time   { return p.endDate }

// NextPeriod returns the following month. The receiver is left untouched.
func (p BudgetPeriod) NextPeriod() BudgetPeriod {
	return NewBudgetPeriod(p.startDate.AddDate(0, 1, 0))
}

// Contains reports whether date falls inside the period, inclusive on both ends.
func (p BudgetPeriod) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(p.startDate) && !d.After(p.endDate)
}
