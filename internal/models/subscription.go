package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Subscription is the row shape of the subscriptions table.
type Subscription struct {
	SubscriptionID   int64          `db:"subscription_id"`
	OwnerID          int64          `db:"owner_id"`
	SubscriptionDate time.Time      `db:"subscription_date"`
	BillingType      string         `db:"billing_type"`
	PaymentMethod    sql.NullString `db:"payment_method"` // Nullable
	IsActive         bool           `db:"is_active"`
	AuditFields
}

// Payment is the row shape of the payments table.
type Payment struct {
	PaymentID      int64           `db:"payment_id"`
	SubscriptionID int64           `db:"subscription_id"`
	OwnerID        int64           `db:"owner_id"`
	PaymentDate    time.Time       `db:"payment_date"`
	Amount         decimal.Decimal `db:"amount"`
	CurrencyCode   string          `db:"currency_code"`
	Status         string          `db:"status"`
	AuditFields
}
