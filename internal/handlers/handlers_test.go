package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker_core/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_core/internal/dto"
	"github.com/SscSPs/finance_tracker_core/internal/handlers"
	"github.com/SscSPs/finance_tracker_core/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "finance-tracker-test"
	testUser   = domain.UserID(7)
)

type HandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	transactions    *MockTransactionService
	budgets         *MockBudgetService
	subscriptions   *MockSubscriptionService
	analysisService *MockAnalysisService
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.transactions = new(MockTransactionService)
	suite.budgets = new(MockBudgetService)
	suite.subscriptions = new(MockSubscriptionService)
	suite.analysisService = new(MockAnalysisService)
	suite.router = suite.newRouter(limiter.Rate{Period: time.Minute, Limit: 1000})
}

func (suite *HandlerTestSuite) newRouter(rate limiter.Rate) *gin.Engine {
	r := gin.New()
	cfg := &config.Config{
		JWTSecret:    testSecret,
		JWTIssuer:    testIssuer,
		IsProduction: true,
	}
	services := &portssvc.ServiceContainer{
		Transaction:  suite.transactions,
		Budget:       suite.budgets,
		Subscription: suite.subscriptions,
		Analysis:     suite.analysisService,
	}
	handlers.RegisterRoutes(r, cfg, services, limiter.New(memory.NewStore(), rate))
	return r
}

// generateTestToken creates a signed JWT for the given subject.
func (suite *HandlerTestSuite) generateTestToken(subject string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) do(router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("7"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) request(method, url string, body any) *httptest.ResponseRecorder {
	return suite.do(suite.router, method, url, body)
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func (suite *HandlerTestSuite) money(amount string) domain.Money {
	m, err := domain.NewMoney(decimal.RequireFromString(amount), "EUR")
	suite.Require().NoError(err)
	return m
}

func (suite *HandlerTestSuite) transaction(id int64, amount string) *domain.Transaction {
	txn, err := domain.ReconstructTransaction(domain.TransactionID(id), "groceries", suite.money(amount),
		time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC), domain.Food, testUser)
	suite.Require().NoError(err)
	return txn
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth_NoAuthRequired() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestMissingToken_Unauthorized() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.transactions.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *HandlerTestSuite) TestNonNumericSubject_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("alice"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestCreateTransaction_Success() {
	suite.transactions.On("CreateTransaction", mock.Anything, testUser,
		mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
			return r.Amount.Equal(decimal.RequireFromString("42.10")) && r.Category == domain.Food && r.Type == domain.Expense
		}),
	).Return(suite.transaction(11, "-42.10"), nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/transactions", map[string]any{
		"description": "groceries",
		"amount":      "42.10",
		"date":        "2024-06-05",
		"category":    "FOOD",
		"type":        "EXPENSE",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(int64(11), body.TransactionID)
	suite.True(body.Amount.Equal(decimal.RequireFromString("-42.10")))
	suite.Equal(domain.Expense, body.Type)
	suite.Equal("2024-06-05", body.Date)
	suite.transactions.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateTransaction_UnknownCategory() {
	w := suite.request(http.MethodPost, "/api/v1/transactions", map[string]any{
		"description": "groceries",
		"amount":      "42.10",
		"date":        "2024-06-05",
		"category":    "GROCERIES",
		"type":        "EXPENSE",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.transactions.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *HandlerTestSuite) TestCreateTransaction_DomainValidation() {
	suite.transactions.On("CreateTransaction", mock.Anything, testUser, mock.Anything).
		Return(nil, errors.Join(apperrors.ErrValidation, errors.New("transaction date is in the future"))).Once()

	w := suite.request(http.MethodPost, "/api/v1/transactions", map[string]any{
		"description": "rent",
		"amount":      "900",
		"date":        "2099-01-01",
		"category":    "HOUSING",
		"type":        "EXPENSE",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorBody(w), "future")
}

func (suite *HandlerTestSuite) TestGetTransaction_StatusMapping() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "forbidden", err: apperrors.ErrForbidden, status: http.StatusForbidden},
		{name: "not found", err: apperrors.ErrNotFound, status: http.StatusNotFound},
		{name: "infrastructure", err: apperrors.NewAppError(500, "db down", errors.New("boom")), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.transactions.On("GetTransactionByID", mock.Anything, testUser, domain.TransactionID(5)).Return(nil, tt.err).Once()

			w := suite.request(http.MethodGet, "/api/v1/transactions/5", nil)

			suite.Equal(tt.status, w.Code)
			if tt.status == http.StatusInternalServerError {
				suite.Equal("Failed to retrieve transaction", suite.errorBody(w))
			}
		})
	}
}

func (suite *HandlerTestSuite) TestGetTransaction_InvalidID() {
	w := suite.request(http.MethodGet, "/api/v1/transactions/abc", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.transactions.AssertNotCalled(suite.T(), "GetTransactionByID")
}

func (suite *HandlerTestSuite) TestListTransactions_PassesQuery() {
	next := "token"
	suite.transactions.On("ListTransactions", mock.Anything, testUser,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == 5 && p.Category == "FOOD" && p.From == "2024-06-01"
		}),
	).Return(&dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses([]*domain.Transaction{suite.transaction(3, "-10")}),
		NextToken:    &next,
	}, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/transactions?limit=5&category=FOOD&from=2024-06-01", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Transactions, 1)
	suite.Require().NotNil(body.NextToken)
	suite.Equal("token", *body.NextToken)
}

func (suite *HandlerTestSuite) TestListTransactions_LimitOutOfRange() {
	w := suite.request(http.MethodGet, "/api/v1/transactions?limit=500", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.transactions.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *HandlerTestSuite) TestCreateBudget_Duplicate() {
	suite.budgets.On("CreateBudget", mock.Anything, testUser, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.request(http.MethodPost, "/api/v1/budgets", map[string]any{"limit": "400", "category": "FOOD"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.budgets.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestAnalyzeBudget_Success() {
	budget, err := domain.ReconstructBudget(9, testUser, suite.money("400"),
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), domain.Food, domain.BudgetActive)
	suite.Require().NoError(err)
	analysis, err := domain.NewBudgetAnalysis(budget, suite.money("340"))
	suite.Require().NoError(err)
	suite.budgets.On("AnalyzeBudget", mock.Anything, testUser, domain.BudgetID(9)).Return(analysis, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/budgets/9/analysis", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.BudgetAnalysisResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Remaining.Equal(decimal.NewFromInt(60)))
	suite.True(body.NearLimit)
	suite.False(body.Exceeded)
}

func (suite *HandlerTestSuite) TestRecordPayment_DispatchesOnStatus() {
	pending, err := domain.ReconstructPayment(31, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), testUser, 4, suite.money("9.99"), domain.PaymentPending)
	suite.Require().NoError(err)
	paid, err := domain.ReconstructPayment(32, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), testUser, 4, suite.money("9.99"), domain.PaymentSucceeded)
	suite.Require().NoError(err)

	suite.subscriptions.On("AddPendingPayment", mock.Anything, testUser, domain.SubscriptionID(4), mock.Anything).Return(pending, nil).Once()
	suite.subscriptions.On("RegisterPayment", mock.Anything, testUser, domain.SubscriptionID(4),
		mock.MatchedBy(func(r dto.RecordPaymentRequest) bool { return r.Status == domain.PaymentSucceeded }),
	).Return(paid, nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/subscriptions/4/payments", map[string]any{"amount": "9.99", "paymentDate": "2024-06-01"})
	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"status":"PENDING"`)

	w = suite.request(http.MethodPost, "/api/v1/subscriptions/4/payments", map[string]any{"amount": "9.99", "paymentDate": "2024-06-01", "status": "SUCCEEDED"})
	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"status":"SUCCEEDED"`)

	suite.subscriptions.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestResolvePayment_Conflict() {
	suite.subscriptions.On("ResolvePayment", mock.Anything, testUser, domain.SubscriptionID(4), domain.PaymentID(31), false).
		Return(nil, apperrors.ErrInvariantViolation).Once()

	w := suite.request(http.MethodPost, "/api/v1/subscriptions/4/payments/31/fail", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.subscriptions.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateSubscription_UnknownBillingType() {
	w := suite.request(http.MethodPost, "/api/v1/subscriptions", map[string]any{"subscriptionDate": "2024-06-01", "billingType": "WEEKLY"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.subscriptions.AssertNotCalled(suite.T(), "CreateSubscription")
}

func (suite *HandlerTestSuite) TestChangePaymentMethod_UnknownMethod() {
	w := suite.request(http.MethodPatch, "/api/v1/subscriptions/3/payment-method", map[string]any{"paymentMethod": "CHEQUE"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.subscriptions.AssertNotCalled(suite.T(), "ChangePaymentMethod")
}

func (suite *HandlerTestSuite) TestAnalysis_ListAndCompute() {
	suite.analysisService.On("SupportedKPIs").Return([]domain.KPIType{domain.MonthlyAverageExpense, domain.SavingsRate, domain.SpendingTrend}).Once()
	result := domain.NewAnalysisResult(domain.SavingsRate, domain.PercentMetric(decimal.NewFromInt(60)), nil, nil)
	suite.analysisService.On("Analyze", mock.Anything, testUser, domain.SavingsRate,
		dto.AnalysisParams{From: "2024-06-01", To: "2024-06-30"},
	).Return(result, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/analysis", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "SAVINGS_RATE")

	w = suite.request(http.MethodGet, "/api/v1/analysis/savings_rate?from=2024-06-01&to=2024-06-30", nil)
	suite.Equal(http.StatusOK, w.Code)
	var body dto.AnalysisResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(domain.SavingsRate, body.KPI)
	suite.True(body.Value.Equal(decimal.NewFromInt(60)))
	suite.analysisService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestAnalysis_UnknownKPI() {
	w := suite.request(http.MethodGet, "/api/v1/analysis/net_worth?from=2024-06-01&to=2024-06-30", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.True(strings.HasPrefix(suite.errorBody(w), "Unknown KPI"))
	suite.analysisService.AssertNotCalled(suite.T(), "Analyze")
}

func (suite *HandlerTestSuite) TestRateLimit_PerUser() {
	router := suite.newRouter(limiter.Rate{Period: time.Minute, Limit: 1})
	suite.budgets.On("ListBudgets", mock.Anything, testUser, mock.Anything).Return([]*domain.Budget{}, nil).Once()

	first := suite.do(router, http.MethodGet, "/api/v1/budgets", nil)
	second := suite.do(router, http.MethodGet, "/api/v1/budgets", nil)

	suite.Equal(http.StatusOK, first.Code)
	suite.Equal("1", first.Header().Get("X-RateLimit-Limit"))
	suite.Equal(http.StatusTooManyRequests, second.Code)
	suite.budgets.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
