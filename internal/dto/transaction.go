package dto

import (
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Amount is a magnitude; Type decides the sign.
type CreateTransactionRequest struct {
	Description  string                 `json:"description" binding:"required,max=100"`
	Amount       decimal.Decimal        `json:"amount"`
	CurrencyCode string                 `json:"currencyCode" binding:"omitempty,len=3,alpha"` // Defaults to the configured currency
	Date         string                 `json:"date" binding:"required,datetime=2006-01-02"`
	Category     domain.Category        `json:"category" binding:"required,category"`
	Type         domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Imported     bool                   `json:"imported"` // Historical import: future dates are accepted
}

// UpdateTransactionRequest defines the fields that may change. Nil fields are left as they are.
type UpdateTransactionRequest struct {
	Description *string                 `json:"description" binding:"omitempty,max=100"`
	Amount      *decimal.Decimal        `json:"amount"`
	Date        *string                 `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Category    *domain.Category        `json:"category" binding:"omitempty,category"`
	Type        *domain.TransactionType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID int64                  `json:"transactionID"`
	Description   string                 `json:"description"`
	Amount        decimal.Decimal        `json:"amount"` // Signed: negative for expenses
	CurrencyCode  string                 `json:"currencyCode"`
	Date          string                 `json:"date"`
	Category      domain.Category        `json:"category"`
	Type          domain.TransactionType `json:"type"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
	From      string  `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string  `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Category  string  `form:"category" binding:"omitempty,category"`
}

// ListTransactionsResponse wraps one page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: int64(t.ID()),
		Description:   t.Description().String(),
		Amount:        t.Amount().Amount(),
		CurrencyCode:  t.Amount().Currency(),
		Date:          formatDate(t.Date()),
		Category:      t.Category(),
		Type:          t.Type(),
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []*domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		responses[i] = ToTransactionResponse(t)
	}
	return responses
}
