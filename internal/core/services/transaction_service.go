package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_core/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_core/internal/dto"
)

// transactionService records and edits a user's income and expenses.
type transactionService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, money domain.MoneyFactory, options ...ServiceOption) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService: newBaseService(money, options...),
		txnRepo:     repo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, ownerID domain.UserID, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	amount, err := s.moneyOf(req.Amount, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	txn, err := domain.NewTransaction(domain.CreateTransactionCommand{
		Description:   req.Description,
		Amount:        amount,
		Date:          date,
		Category:      req.Category,
		OwnerID:       ownerID,
		IsIncome:      req.Type == domain.Income,
		Reconstructed: req.Imported,
	}, s.Clock)
	if err != nil {
		s.LogDebug(ctx, "Rejected transaction", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("owner_id", ownerID.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.Int64("transaction_id", int64(txn.ID())),
		slog.String("type", string(txn.Type())),
		slog.String("category", string(txn.Category())))
	return txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, ownerID domain.UserID, id domain.TransactionID) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, txn.OwnerID(), ownerID, fmt.Sprintf("transaction %d", id)); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, ownerID domain.UserID, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	var filter portsrepo.TransactionFilter
	var err error
	if filter.From, err = dto.ParseOptionalDate(params.From); err != nil {
		return nil, err
	}
	if filter.To, err = dto.ParseOptionalDate(params.To); err != nil {
		return nil, err
	}
	if params.Category != "" {
		category, err := domain.ParseCategory(params.Category)
		if err != nil {
			return nil, err
		}
		filter.Category = &category
	}

	txns, nextToken, err := s.txnRepo.ListTransactionsByOwner(ctx, ownerID, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("owner_id", ownerID.String()))
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, ownerID domain.UserID, id domain.TransactionID, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		if err := txn.ChangeDescription(*req.Description); err != nil {
			return nil, err
		}
	}
	if req.Category != nil {
		if err := txn.ChangeCategory(*req.Category); err != nil {
			return nil, err
		}
	}
	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		if err := txn.ChangeDate(date, s.Clock); err != nil {
			return nil, err
		}
	}
	// Amount before type: ChangeAmount keeps the current sign, ChangeType then flips it.
	if req.Amount != nil {
		amount, err := domain.NewMoney(*req.Amount, txn.Amount().Currency())
		if err != nil {
			return nil, err
		}
		if err := txn.ChangeAmount(amount); err != nil {
			return nil, err
		}
	}
	if req.Type != nil {
		if err := txn.ChangeType(*req.Type); err != nil {
			return nil, err
		}
	}

	if err := s.txnRepo.UpdateTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.Int64("transaction_id", int64(id)))
		return nil, err
	}
	s.LogInfo(ctx, "Transaction updated", slog.Int64("transaction_id", int64(id)))
	return txn, nil
}
