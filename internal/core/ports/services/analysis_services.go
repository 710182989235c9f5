package services

import (
	"context"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/SscSPs/finance_tracker_core/internal/dto"
)

// AnalysisSvc computes KPIs over a user's transactions.
type AnalysisSvc interface {
	// Analyze loads the owner's transactions in [from, to] and runs the KPI,
	// restricted to one category when params.Category is set.
	Analyze(ctx context.Context, ownerID domain.UserID, kpi domain.KPIType, params dto.AnalysisParams) (*domain.AnalysisResult, error)

	// SupportedKPIs lists the registered KPI types.
	SupportedKPIs() []domain.KPIType
}
