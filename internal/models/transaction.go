package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the transactions table.
// Amount is signed: negative for expenses.
type Transaction struct {
	TransactionID   int64           `db:"transaction_id"`
	OwnerID         int64           `db:"owner_id"`
	Description     string          `db:"description"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	TransactionDate time.Time       `db:"transaction_date"`
	Category        string          `db:"category"`
	AuditFields
}
