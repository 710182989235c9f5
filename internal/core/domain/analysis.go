package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
	"github.com/shopspring/decimal"
)

// KPIType names a financial metric computed from transactions.
type KPIType string

const (
	SavingsRate           KPIType = "SAVINGS_RATE"
	MonthlyAverageExpense KPIType = "MONTHLY_AVERAGE_EXPENSE"
	SpendingTrend         KPIType = "SPENDING_TREND"
)

// ParseKPIType accepts e.g. "savings_rate" or "SAVINGS-RATE".
func ParseKPIType(s string) (KPIType, error) {
	k := KPIType(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_"))
	switch k {
	case SavingsRate, MonthlyAverageExpense, SpendingTrend:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown kpi type %q", apperrors.ErrValidation, s)
}

// MetricUnit is the unit of a metric value.
type MetricUnit string

const (
	PercentUnit  MetricUnit = "PERCENT"
	CurrencyUnit MetricUnit = "CURRENCY"
)

// Metric is a scalar value with a unit. Currency metrics also carry the ISO code.
type Metric struct {
	value    decimal.Decimal
	unit     MetricUnit
	currency string
}

// PercentMetric builds a PERCENT metric.
func PercentMetric(v decimal.Decimal) Metric {
	return Metric{value: v, unit: PercentUnit}
}

// MoneyMetric builds a CURRENCY metric from m.
func MoneyMetric(m Money) Metric {
	return Metric{value: m.Amount(), unit: CurrencyUnit, currency: m.Currency()}
}

func (m Metric) Value() decimal.Decimal { return m.value }
func (m Metric) Unit() MetricUnit       { return m.unit }
func (m Metric) Currency() string       { return m.currency }

// AnalysisResult is the immutable outcome of one KPI computation.
type AnalysisResult struct {
	kpiType   KPIType
	metric    Metric
	breakdown map[Category]decimal.Decimal
	reference *decimal.Decimal
}

// NewAnalysisResult copies breakdown so later changes by the caller are not observed.
// breakdown and reference may be nil.
func NewAnalysisResult(kpiType KPIType, metric Metric, breakdown map[Category]decimal.Decimal, reference *decimal.Decimal) *AnalysisResult {
	var owned map[Category]decimal.Decimal
	if breakdown != nil {
		owned = make(map[Category]decimal.Decimal, len(breakdown))
		for k, v := range breakdown {
			owned[k] = v
		}
	}
	var ref *decimal.Decimal
	if reference != nil {
		r := *reference
		ref = &r
	}
	return &AnalysisResult{kpiType: kpiType, metric: metric, breakdown: owned, reference: ref}
}

func (r *AnalysisResult) KPIType() KPIType { return r.kpiType }
func (r *AnalysisResult) Metric() Metric   { return r.metric }

// Breakdown returns a copy of the per-category values, or nil when there is none.
func (r *AnalysisResult) Breakdown() map[Category]decimal.Decimal {
	if r.breakdown == nil {
		return nil
	}
	out := make(map[Category]decimal.Decimal, len(r.breakdown))
	for k, v := range r.breakdown {
		out[k] = v
	}
	return out
}

// Reference returns the optional comparison value.
func (r *AnalysisResult) Reference() (decimal.Decimal, bool) {
	if r.reference == nil {
		return decimal.Zero, false
	}
	return *r.reference, true
}
