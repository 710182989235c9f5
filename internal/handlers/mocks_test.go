package handlers_test

import (
	"context"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker_core/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_core/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, ownerID domain.UserID, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetTransactionByID(ctx context.Context, ownerID domain.UserID, id domain.TransactionID) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, ownerID domain.UserID, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, ownerID domain.UserID, id domain.TransactionID, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) budget(args mock.Arguments) (*domain.Budget, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) GetBudgetByID(ctx context.Context, ownerID domain.UserID, id domain.BudgetID) (*domain.Budget, error) {
	return m.budget(m.Called(ctx, ownerID, id))
}
func (m *MockBudgetService) ListBudgets(ctx context.Context, ownerID domain.UserID, params dto.ListBudgetsParams) ([]*domain.Budget, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) CreateBudget(ctx context.Context, ownerID domain.UserID, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	return m.budget(m.Called(ctx, ownerID, req))
}
func (m *MockBudgetService) ChangeBudgetLimit(ctx context.Context, ownerID domain.UserID, id domain.BudgetID, req dto.ChangeBudgetLimitRequest) (*domain.Budget, error) {
	return m.budget(m.Called(ctx, ownerID, id, req))
}
func (m *MockBudgetService) ChangeBudgetCategory(ctx context.Context, ownerID domain.UserID, id domain.BudgetID, req dto.ChangeBudgetCategoryRequest) (*domain.Budget, error) {
	return m.budget(m.Called(ctx, ownerID, id, req))
}
func (m *MockBudgetService) RenewBudget(ctx context.Context, ownerID domain.UserID, id domain.BudgetID) (*domain.Budget, error) {
	return m.budget(m.Called(ctx, ownerID, id))
}
func (m *MockBudgetService) DeactivateBudget(ctx context.Context, ownerID domain.UserID, id domain.BudgetID) (*domain.Budget, error) {
	return m.budget(m.Called(ctx, ownerID, id))
}
func (m *MockBudgetService) AnalyzeBudget(ctx context.Context, ownerID domain.UserID, id domain.BudgetID) (*domain.BudgetAnalysis, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetAnalysis), args.Error(1)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Mock SubscriptionService ---
type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) subscription(args mock.Arguments) (*domain.Subscription, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}
func (m *MockSubscriptionService) payment(args mock.Arguments) (*domain.Payment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockSubscriptionService) GetSubscriptionByID(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID) (*domain.Subscription, error) {
	return m.subscription(m.Called(ctx, ownerID, id))
}
func (m *MockSubscriptionService) ListSubscriptions(ctx context.Context, ownerID domain.UserID) ([]*domain.Subscription, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Subscription), args.Error(1)
}
func (m *MockSubscriptionService) GetSubscriptionSummary(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID) (*dto.SubscriptionSummaryResponse, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubscriptionSummaryResponse), args.Error(1)
}
func (m *MockSubscriptionService) CreateSubscription(ctx context.Context, ownerID domain.UserID, req dto.CreateSubscriptionRequest) (*domain.Subscription, error) {
	return m.subscription(m.Called(ctx, ownerID, req))
}
func (m *MockSubscriptionService) ChangeSubscriptionType(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, req dto.ChangeSubscriptionTypeRequest) (*domain.Subscription, error) {
	return m.subscription(m.Called(ctx, ownerID, id, req))
}
func (m *MockSubscriptionService) ChangePaymentMethod(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, req dto.ChangePaymentMethodRequest) (*domain.Subscription, error) {
	return m.subscription(m.Called(ctx, ownerID, id, req))
}
func (m *MockSubscriptionService) ActivateSubscription(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID) (*domain.Subscription, error) {
	return m.subscription(m.Called(ctx, ownerID, id))
}
func (m *MockSubscriptionService) DeactivateSubscription(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID) (*domain.Subscription, error) {
	return m.subscription(m.Called(ctx, ownerID, id))
}
func (m *MockSubscriptionService) AddPendingPayment(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, req dto.RecordPaymentRequest) (*domain.Payment, error) {
	return m.payment(m.Called(ctx, ownerID, id, req))
}
func (m *MockSubscriptionService) RegisterPayment(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, req dto.RecordPaymentRequest) (*domain.Payment, error) {
	return m.payment(m.Called(ctx, ownerID, id, req))
}
func (m *MockSubscriptionService) ResolvePayment(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, paymentID domain.PaymentID, succeeded bool) (*domain.Payment, error) {
	return m.payment(m.Called(ctx, ownerID, id, paymentID, succeeded))
}

var _ portssvc.SubscriptionSvcFacade = (*MockSubscriptionService)(nil)

// --- Mock AnalysisService ---
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, ownerID domain.UserID, kpi domain.KPIType, params dto.AnalysisParams) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, ownerID, kpi, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}
func (m *MockAnalysisService) SupportedKPIs() []domain.KPIType {
	args := m.Called()
	return args.Get(0).([]domain.KPIType)
}

var _ portssvc.AnalysisSvc = (*MockAnalysisService)(nil)
