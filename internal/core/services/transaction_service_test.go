package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_core/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_core/internal/core/services"
	"github.com/SscSPs/finance_tracker_core/internal/dto"
	"github.com/SscSPs/finance_tracker_core/internal/platform/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var (
	testNow   = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	testOwner = domain.UserID(7)
	intruder  = domain.UserID(8)
)

func eurFactory(t *testing.T) domain.MoneyFactory {
	t.Helper()
	f, err := domain.NewMoneyFactory("EUR")
	require.NoError(t, err)
	return f
}

func eur(t *testing.T, amount string) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(decimal.RequireFromString(amount), "EUR")
	require.NoError(t, err)
	return m
}

func date(month time.Month, day int) time.Time {
	return time.Date(2024, month, day, 0, 0, 0, 0, time.UTC)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockRepo *MockTransactionRepository
	service  portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionService(suite.mockRepo, eurFactory(suite.T()), services.WithClock(clock.NewFixed(testNow)))
}

func (suite *TransactionServiceTestSuite) stored(id int64, amount string, owner domain.UserID) *domain.Transaction {
	txn, err := domain.ReconstructTransaction(domain.TransactionID(id), "Groceries", eur(suite.T(), amount), date(time.June, 10), domain.Food, owner)
	suite.Require().NoError(err)
	return txn
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseIsStoredNegative() {
	req := dto.CreateTransactionRequest{
		Description: "Groceries",
		Amount:      decimal.RequireFromString("42.5"),
		Date:        "2024-06-10",
		Category:    domain.Food,
		Type:        domain.Expense,
	}

	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(t *domain.Transaction) bool {
		return t.Amount().Amount().Equal(decimal.RequireFromString("-42.50")) && t.OwnerID() == testOwner
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Transaction).AssignID(11)
	}).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, testOwner, req)

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionID(11), txn.ID())
	suite.True(txn.IsExpense())
	suite.Equal("EUR", txn.Amount().Currency())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UsesRequestedCurrency() {
	req := dto.CreateTransactionRequest{
		Description:  "Salary",
		Amount:       decimal.NewFromInt(3000),
		CurrencyCode: "usd",
		Date:         "2024-06-01",
		Category:     domain.Salary,
		Type:         domain.Income,
	}
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, testOwner, req)

	suite.Require().NoError(err)
	suite.Equal("USD", txn.Amount().Currency())
	suite.True(txn.IsIncome())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_FutureDateRejected() {
	req := dto.CreateTransactionRequest{
		Description: "Concert",
		Amount:      decimal.NewFromInt(60),
		Date:        "2024-06-16",
		Category:    domain.Entertainment,
		Type:        domain.Expense,
	}

	txn, err := suite.service.CreateTransaction(suite.ctx, testOwner, req)

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ImportAcceptsFutureDate() {
	req := dto.CreateTransactionRequest{
		Description: "Prepaid rent",
		Amount:      decimal.NewFromInt(900),
		Date:        "2024-07-01",
		Category:    domain.Housing,
		Type:        domain.Expense,
		Imported:    true,
	}
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, testOwner, req)

	suite.Require().NoError(err)
	suite.Equal(date(time.July, 1), txn.Date())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SaveError() {
	req := dto.CreateTransactionRequest{
		Description: "Bus",
		Amount:      decimal.NewFromInt(3),
		Date:        "2024-06-14",
		Category:    domain.Transportation,
		Type:        domain.Expense,
	}
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.Anything).Return(assert.AnError).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, testOwner, req)

	suite.Nil(txn)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_OtherOwnerForbidden() {
	suite.mockRepo.On("FindTransactionByID", suite.ctx, domain.TransactionID(5)).Return(suite.stored(5, "-10", testOwner), nil).Once()

	txn, err := suite.service.GetTransactionByID(suite.ctx, intruder, 5)

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_NotFound() {
	suite.mockRepo.On("FindTransactionByID", suite.ctx, domain.TransactionID(404)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetTransactionByID(suite.ctx, testOwner, 404)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_BuildsFilter() {
	category := domain.Food
	from := date(time.June, 1)
	wantFilter := portsrepo.TransactionFilter{From: &from, Category: &category}
	token := "abc"
	params := dto.ListTransactionsParams{Limit: 2, NextToken: &token, From: "2024-06-01", Category: "FOOD"}

	suite.mockRepo.On("ListTransactionsByOwner", suite.ctx, testOwner, wantFilter, 2, &token).
		Return([]*domain.Transaction{suite.stored(3, "-5", testOwner), suite.stored(2, "-6", testOwner)}, "next", nil).Once()

	res, err := suite.service.ListTransactions(suite.ctx, testOwner, params)

	suite.Require().NoError(err)
	suite.Len(res.Transactions, 2)
	suite.Equal(int64(3), res.Transactions[0].TransactionID)
	suite.Require().NotNil(res.NextToken)
	suite.Equal("next", *res.NextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_InvalidDate() {
	_, err := suite.service.ListTransactions(suite.ctx, testOwner, dto.ListTransactionsParams{Limit: 10, To: "June"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListTransactionsByOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AmountAndTypeTogether() {
	suite.mockRepo.On("FindTransactionByID", suite.ctx, domain.TransactionID(5)).Return(suite.stored(5, "-10", testOwner), nil).Once()
	suite.mockRepo.On("UpdateTransaction", suite.ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()

	amount := decimal.NewFromInt(25)
	income := domain.Income
	txn, err := suite.service.UpdateTransaction(suite.ctx, testOwner, 5, dto.UpdateTransactionRequest{Amount: &amount, Type: &income})

	suite.Require().NoError(err)
	suite.True(txn.Amount().Amount().Equal(decimal.NewFromInt(25)))
	suite.Equal(domain.Income, txn.Type())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_FutureDateNotPersisted() {
	suite.mockRepo.On("FindTransactionByID", suite.ctx, domain.TransactionID(5)).Return(suite.stored(5, "-10", testOwner), nil).Once()

	future := "2024-06-30"
	_, err := suite.service.UpdateTransaction(suite.ctx, testOwner, 5, dto.UpdateTransactionRequest{Date: &future})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
