package mapping

import (
	"fmt"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/SscSPs/finance_tracker_core/internal/models"
)

// ToModelTransaction converts a domain.Transaction to a models.Transaction
func ToModelTransaction(t *domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   int64(t.ID()),
		OwnerID:         int64(t.OwnerID()),
		Description:     t.Description().String(),
		Amount:          t.Amount().Amount(),
		CurrencyCode:    t.Amount().Currency(),
		TransactionDate: t.Date(),
		Category:        string(t.Category()),
	}
}

// ToDomainTransaction converts a models.Transaction to a domain.Transaction
func ToDomainTransaction(m models.Transaction) (*domain.Transaction, error) {
	amount, err := domain.NewMoney(m.Amount, m.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("transaction %d: %w", m.TransactionID, err)
	}
	return domain.ReconstructTransaction(
		domain.TransactionID(m.TransactionID),
		m.Description,
		amount,
		m.TransactionDate,
		domain.Category(m.Category),
		domain.UserID(m.OwnerID),
	)
}

// ToDomainTransactionSlice converts a slice of models.Transaction to domain transactions.
func ToDomainTransactionSlice(ms []models.Transaction) ([]*domain.Transaction, error) {
	if ms == nil {
		return nil, nil
	}
	ds := make([]*domain.Transaction, len(ms))
	for i, m := range ms {
		d, err := ToDomainTransaction(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
