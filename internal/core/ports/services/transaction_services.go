package services

import (
	"context"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/SscSPs/finance_tracker_core/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction owned by ownerID.
	GetTransactionByID(ctx context.Context, ownerID domain.UserID, id domain.TransactionID) (*domain.Transaction, error)

	// ListTransactions returns one page of the owner's transactions.
	ListTransactions(ctx context.Context, ownerID domain.UserID, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction validates and persists a new transaction.
	CreateTransaction(ctx context.Context, ownerID domain.UserID, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction applies the non-nil fields of req.
	UpdateTransaction(ctx context.Context, ownerID domain.UserID, id domain.TransactionID, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
