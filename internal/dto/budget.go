package dto

import (
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget.
type CreateBudgetRequest struct {
	Limit         decimal.Decimal `json:"limit"`
	CurrencyCode  string          `json:"currencyCode" binding:"omitempty,len=3,alpha"`
	Category      domain.Category `json:"category" binding:"required,category"`
	ReferenceDate string          `json:"referenceDate" binding:"omitempty,datetime=2006-01-02"` // Any day of the first month; defaults to today
}

// ChangeBudgetLimitRequest sets a new limit. The currency must match the budget's.
type ChangeBudgetLimitRequest struct {
	Limit        decimal.Decimal `json:"limit"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,len=3,alpha"`
}

// ChangeBudgetCategoryRequest retargets a budget.
type ChangeBudgetCategoryRequest struct {
	Category domain.Category `json:"category" binding:"required,category"`
}

// ListBudgetsParams defines query parameters for listing budgets.
type ListBudgetsParams struct {
	ActiveOnly bool `form:"activeOnly"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID     int64              `json:"budgetID"`
	Category     domain.Category    `json:"category"`
	Limit        decimal.Decimal    `json:"limit"`
	CurrencyCode string             `json:"currencyCode"`
	PeriodStart  string             `json:"periodStart"`
	PeriodEnd    string             `json:"periodEnd"`
	State        domain.BudgetState `json:"state"`
}

// BudgetAnalysisResponse reports a budget against its current spend.
type BudgetAnalysisResponse struct {
	BudgetID        int64           `json:"budgetID"`
	Category        domain.Category `json:"category"`
	PeriodStart     string          `json:"periodStart"`
	PeriodEnd       string          `json:"periodEnd"`
	CurrencyCode    string          `json:"currencyCode"`
	Limit           decimal.Decimal `json:"limit"`
	Spent           decimal.Decimal `json:"spent"`
	Remaining       decimal.Decimal `json:"remaining"`
	UsagePercentage decimal.Decimal `json:"usagePercentage"`
	Exceeded        bool            `json:"exceeded"`
	NearLimit       bool            `json:"nearLimit"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:     int64(b.ID()),
		Category:     b.Category(),
		Limit:        b.Limit().Amount(),
		CurrencyCode: b.Limit().Currency(),
		PeriodStart:  formatDate(b.Period().StartDate()),
		PeriodEnd:    formatDate(b.Period().EndDate()),
		State:        b.State(),
	}
}

// ToBudgetResponses converts a slice of domain budgets.
func ToBudgetResponses(budgets []*domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		res[i] = ToBudgetResponse(b)
	}
	return res
}

// ToBudgetAnalysisResponse converts a domain.BudgetAnalysis.
func ToBudgetAnalysisResponse(a *domain.BudgetAnalysis) BudgetAnalysisResponse {
	return BudgetAnalysisResponse{
		BudgetID:        int64(a.BudgetID),
		Category:        a.Category,
		PeriodStart:     formatDate(a.Period.StartDate()),
		PeriodEnd:       formatDate(a.Period.EndDate()),
		CurrencyCode:    a.Limit.Currency(),
		Limit:           a.Limit.Amount(),
		Spent:           a.Spent.Amount(),
		Remaining:       a.Remaining.Amount(),
		UsagePercentage: a.UsagePercentage,
		Exceeded:        a.Exceeded,
		NearLimit:       a.NearLimit,
	}
}
