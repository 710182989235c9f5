package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
	"github.com/SscSPs/finance_tracker_core/internal/core/analysis"
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_core/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_core/internal/dto"
)

type analysisService struct {
	BaseService
	source   portsrepo.TransactionSource
	registry *analysis.Registry
}

// NewAnalysisService creates the KPI service. The registry is built once at
// startup and shared across requests.
func NewAnalysisService(source portsrepo.TransactionSource, registry *analysis.Registry, money domain.MoneyFactory, options ...ServiceOption) portssvc.AnalysisSvc {
	return &analysisService{
		BaseService: newBaseService(money, options...),
		source:      source,
		registry:    registry,
	}
}

var _ portssvc.AnalysisSvc = (*analysisService)(nil)

func (s *analysisService) SupportedKPIs() []domain.KPIType {
	return s.registry.KPITypes()
}

func (s *analysisService) Analyze(ctx context.Context, ownerID domain.UserID, kpi domain.KPIType, params dto.AnalysisParams) (*domain.AnalysisResult, error) {
	from, err := dto.ParseDate(params.From)
	if err != nil {
		return nil, err
	}
	to, err := dto.ParseDate(params.To)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: from %s is after to %s", apperrors.ErrValidation, params.From, params.To)
	}

	transactions, err := s.source.FindByOwnerAndPeriod(ctx, ownerID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for analysis", slog.String("kpi", string(kpi)))
		return nil, err
	}

	var result *domain.AnalysisResult
	if params.Category != "" {
		category, err := domain.ParseCategory(params.Category)
		if err != nil {
			return nil, err
		}
		result, err = s.registry.AnalyzeByCategory(kpi, transactions, category)
		if err != nil {
			return nil, err
		}
	} else {
		result, err = s.registry.Analyze(kpi, transactions)
		if err != nil {
			return nil, err
		}
	}

	s.LogDebug(ctx, "KPI computed",
		slog.String("kpi", string(kpi)),
		slog.Int("transactions", len(transactions)),
		slog.String("value", result.Metric().Value().String()))
	return result, nil
}
