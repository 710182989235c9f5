package domain

import (
	"fmt"
	"strconv"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
)

// Identifiers are positive database keys. The zero value is the "empty"
// sentinel for aggregates that have not been persisted yet.
type (
	UserID         int64
	TransactionID  int64
	BudgetID       int64
	SubscriptionID int64
	PaymentID      int64
)

func validID(kind string, v int64) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", apperrors.ErrValidation, kind, v)
	}
	return nil
}

// NewUserID validates a persisted user identifier.
func NewUserID(v int64) (UserID, error) {
	if err := validID("user id", v); err != nil {
		return 0, err
	}
	return UserID(v), nil
}

// ParseUserID parses a decimal user identifier, e.g. a token subject.
func ParseUserID(s string) (UserID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid user id %q", apperrors.ErrValidation, s)
	}
	return NewUserID(v)
}

func (id UserID) IsEmpty() bool         { return id == 0 }
func (id TransactionID) IsEmpty() bool  { return id == 0 }
func (id BudgetID) IsEmpty() bool       { return id == 0 }
func (id SubscriptionID) IsEmpty() bool { return id == 0 }
func (id PaymentID) IsEmpty() bool      { return id == 0 }

func (id UserID) String() string { return strconv.FormatInt(int64(id), 10) }
