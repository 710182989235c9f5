package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
	"github.com/SscSPs/finance_tracker_core/internal/platform/clock"
)

// TransactionType tells whether a transaction adds or removes money.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// IsValid reports whether t is INCOME or EXPENSE.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// CreateTransactionCommand carries the input for a new transaction.
// Amount is a magnitude; its sign is derived from IsIncome.
type CreateTransactionCommand struct {
	Description string
	Amount      Money
	Date        time.Time
	Category    Category
	OwnerID     UserID
	IsIncome    bool
	// Reconstructed skips the future-date check for historical imports.
	Reconstructed bool
}

// Transaction is a single signed money movement owned by a user.
// Positive amounts are income, negative amounts are expenses; zero is never stored.
type Transaction struct {
	id          TransactionID
	description Description
	amount      Money
	date        time.Time
	category    Category
	ownerID     UserID
}

// NewTransaction validates cmd and builds a transaction.
func NewTransaction(cmd CreateTransactionCommand, clk clock.Clock) (*Transaction, error) {
	description, err := NewDescription(cmd.Description)
	if err != nil {
		return nil, err
	}
	if cmd.Amount.IsZero() {
		return nil, fmt.Errorf("%w: transaction amount must not be zero", apperrors.ErrValidation)
	}
	if cmd.Date.IsZero() {
		return nil, fmt.Errorf("%w: transaction date is required", apperrors.ErrValidation)
	}
	if !cmd.Reconstructed {
		if err := checkNotFuture(cmd.Date, clk); err != nil {
			return nil, err
		}
	}
	if !cmd.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, cmd.Category)
	}
	if cmd.OwnerID.IsEmpty() {
		return nil, fmt.Errorf("%w: transaction owner is required", apperrors.ErrValidation)
	}

	return &Transaction{
		description: description,
		amount:      signed(cmd.Amount, cmd.IsIncome),
		date:        DateOnly(cmd.Date),
		category:    cmd.Category,
		ownerID:     cmd.OwnerID,
	}, nil
}

// NewIncome creates a transaction with a positive amount.
func NewIncome(cmd CreateTransactionCommand, clk clock.Clock) (*Transaction, error) {
	cmd.IsIncome = true
	return NewTransaction(cmd, clk)
}

// NewExpense creates a transaction with a negative amount.
func NewExpense(cmd CreateTransactionCommand, clk clock.Clock) (*Transaction, error) {
	cmd.IsIncome = false
	return NewTransaction(cmd, clk)
}

// ReconstructTransaction rebuilds a persisted transaction. The amount is taken
// as stored (already signed); the future-date check does not apply.
func ReconstructTransaction(id TransactionID, description string, amount Money, date time.Time, category Category, ownerID UserID) (*Transaction, error) {
	desc, err := NewDescription(description)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, fmt.Errorf("%w: stored transaction %d has zero amount", apperrors.ErrValidation, id)
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, category)
	}
	return &Transaction{
		id:          id,
		description: desc,
		amount:      amount,
		date:        DateOnly(date),
		category:    category,
		ownerID:     ownerID,
	}, nil
}

func signed(m Money, income bool) Money {
	if income {
		return m.Abs()
	}
	return m.Abs().Negate()
}

func checkNotFuture(date time.Time, clk clock.Clock) error {
	if DateOnly(date).After(DateOnly(clk.Now())) {
		return fmt.Errorf("%w: transaction date %s is in the future", apperrors.ErrValidation, date.Format("2006-01-02"))
	}
	return nil
}

func (t *Transaction) ID() TransactionID        { return t.id }
func (t *Transaction) Description() Description { return t.description }
func (t *Transaction) Amount() Money            { return t.amount }
func (t *Transaction) Date() time.Time          { return t.date }
func (t *Transaction) Category() Category       { return t.category }
func (t *Transaction) OwnerID() UserID          { return t.ownerID }
func (t *Transaction) IsIncome() bool           { return t.amount.IsPositive() }
func (t *Transaction) IsExpense() bool          { return t.amount.IsNegative() }

// Type derives INCOME or EXPENSE from the stored sign.
func (t *Transaction) Type() TransactionType {
	if t.IsIncome() {
		return Income
	}
	return Expense
}

// AssignID sets the identifier once the transaction has been persisted.
func (t *Transaction) AssignID(id TransactionID) {
	t.id = id
}

// ChangeDescription replaces the description.
func (t *Transaction) ChangeDescription(s string) error {
	d, err := NewDescription(s)
	if err != nil {
		return err
	}
	t.description = d
	return nil
}

// ChangeAmount replaces the magnitude while keeping the current type.
func (t *Transaction) ChangeAmount(amount Money) error {
	if amount.IsZero() {
		return fmt.Errorf("%w: transaction amount must not be zero", apperrors.ErrValidation)
	}
	t.amount = signed(amount, t.IsIncome())
	return nil
}

// ChangeType flips the sign when the requested type differs from the current one.
func (t *Transaction) ChangeType(newType TransactionType) error {
	if !newType.IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, newType)
	}
	if newType != t.Type() {
		t.amount = t.amount.Negate()
	}
	return nil
}

// ChangeCategory moves the transaction to another category.
func (t *Transaction) ChangeCategory(c Category) error {
	if !c.IsValid() {
		return fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, c)
	}
	t.category = c
	return nil
}

// ChangeDate moves the transaction to another non-future date.
func (t *Transaction) ChangeDate(date time.Time, clk clock.Clock) error {
	if date.IsZero() {
		return fmt.Errorf("%w: transaction date is required", apperrors.ErrValidation)
	}
	if err := checkNotFuture(date, clk); err != nil {
		return err
	}
	t.date = DateOnly(date)
	return nil
}
