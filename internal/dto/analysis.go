package dto

import (
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AnalysisParams defines the query parameters of a KPI request.
type AnalysisParams struct {
	From     string `form:"from" binding:"required,datetime=2006-01-02"`
	To       string `form:"to" binding:"required,datetime=2006-01-02"`
	Category string `form:"category" binding:"omitempty,category"`
}

// AnalysisResponse defines the data returned for a KPI computation.
type AnalysisResponse struct {
	KPI          domain.KPIType                      `json:"kpi"`
	Value        decimal.Decimal                     `json:"value"`
	Unit         domain.MetricUnit                   `json:"unit"`
	CurrencyCode string                              `json:"currencyCode,omitempty"`
	Breakdown    map[domain.Category]decimal.Decimal `json:"breakdown,omitempty"`
	Reference    *decimal.Decimal                    `json:"reference,omitempty"`
}

// ToAnalysisResponse converts a domain.AnalysisResult.
func ToAnalysisResponse(r *domain.AnalysisResult) AnalysisResponse {
	res := AnalysisResponse{
		KPI:          r.KPIType(),
		Value:        r.Metric().Value(),
		Unit:         r.Metric().Unit(),
		CurrencyCode: r.Metric().Currency(),
		Breakdown:    r.Breakdown(),
	}
	if ref, ok := r.Reference(); ok {
		res.Reference = &ref
	}
	return res
}
