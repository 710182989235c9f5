package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
	"github.com/shopspring/decimal"
)

// BudgetState is the lifecycle state of a budget.
type BudgetState string

const (
	BudgetActive   BudgetState = "ACTIVE"
	BudgetInactive BudgetState = "INACTIVE"
)

// usageScale is the precision of spent/limit before it is turned into a percentage.
const usageScale int32 = 4

var hundred = decimal.NewFromInt(100)

// Budget is a monthly spending ceiling for one category of one user.
// It never tracks spend itself; callers pass the spent amount to its queries.
type Budget struct {
	id       BudgetID
	ownerID  UserID
	limit    Money
	period   BudgetPeriod
	category Category
	state    BudgetState
}

// NewBudget creates an active budget for the month containing ref.
// Uniqueness per owner and category is enforced by the service layer.
func NewBudget(ownerID UserID, limit Money, category Category, ref time.Time) (*Budget, error) {
	if ownerID.IsEmpty() {
		return nil, fmt.Errorf("%w: budget owner is required", apperrors.ErrValidation)
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	if err := validateBudgetCategory(category); err != nil {
		return nil, err
	}
	return &Budget{
		ownerID:  ownerID,
		limit:    limit,
		period:   NewBudgetPeriod(ref),
		category: category,
		state:    BudgetActive,
	}, nil
}

// ReconstructBudget rebuilds a persisted budget.
func ReconstructBudget(id BudgetID, ownerID UserID, limit Money, periodStart time.Time, category Category, state BudgetState) (*Budget, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	if state != BudgetActive && state != BudgetInactive {
		return nil, fmt.Errorf("%w: unknown budget state %q", apperrors.ErrValidation, state)
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, category)
	}
	return &Budget{
		id:       id,
		ownerID:  ownerID,
		limit:    limit,
		period:   NewBudgetPeriod(periodStart),
		category: category,
		state:    state,
	}, nil
}

func validateLimit(limit Money) error {
	if !limit.IsPositive() {
		return fmt.Errorf("%w: budget limit must be positive, got %s", apperrors.ErrValidation, limit)
	}
	return nil
}

func validateBudgetCategory(c Category) error {
	if !c.IsValid() {
		return fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, c)
	}
	if c == Other {
		return fmt.Errorf("%w: budgets must target a concrete category, not %s", apperrors.ErrValidation, Other)
	}
	return nil
}

func (b *Budget) ID() BudgetID           { return b.id }
func (b *Budget) OwnerID() UserID        { return b.ownerID }
func (b *Budget) Limit() Money           { return b.limit }
func (b *Budget) Period() BudgetPeriod   { return b.period }
func (b *Budget) Category() Category     { return b.category }
func (b *Budget) State() BudgetState     { return b.state }
func (b *Budget) IsActive() bool         { return b.state == BudgetActive }
func (b *Budget) AssignID(id BudgetID)   { b.id = id }

// ChangeLimit sets a new positive limit.
func (b *Budget) ChangeLimit(limit Money) error {
	if err := validateLimit(limit); err != nil {
		return err
	}
	b.limit = limit
	return nil
}

// ChangeCategory retargets the budget; OTHER is rejected.
func (b *Budget) ChangeCategory(c Category) error {
	if err := validateBudgetCategory(c); err != nil {
		return err
	}
	b.category = c
	return nil
}

// RenewBudget advances the period by one month. Only active budgets renew.
func (b *Budget) RenewBudget() error {
	if b.state != BudgetActive {
		return fmt.Errorf("%w: cannot renew inactive budget %d", apperrors.ErrInvariantViolation, b.id)
	}
	b.period = b.period.NextPeriod()
	return nil
}

// DeactivateBudget moves ACTIVE to INACTIVE. Deactivating twice is an error.
func (b *Budget) DeactivateBudget() error {
	if b.state != BudgetActive {
		return fmt.Errorf("%w: budget %d is already inactive", apperrors.ErrInvariantViolation, b.id)
	}
	b.state = BudgetInactive
	return nil
}

// IsExceeded reports spent >= limit.
func (b *Budget) IsExceeded(spent Money) (bool, error) {
	return spent.IsGreaterThanOrEqual(b.limit)
}

// RemainingAmount returns limit - spent, floored at zero.
func (b *Budget) RemainingAmount(spent Money) (Money, error) {
	remaining, err := b.limit.Subtract(spent)
	if err != nil {
		return Money{}, err
	}
	if remaining.IsNegative() {
		return Zero(b.limit.Currency()), nil
	}
	return remaining, nil
}

// UsagePercentage returns spent/limit*100, with the ratio rounded half-even
// to four places and the result capped at 100.
func (b *Budget) UsagePercentage(spent Money) (decimal.Decimal, error) {
	if spent.Currency() != b.limit.Currency() {
		return decimal.Zero, fmt.Errorf("%w: %s vs %s", apperrors.ErrCurrencyMismatch, spent.Currency(), b.limit.Currency())
	}
	ratio := spent.Amount().Div(b.limit.Amount()).RoundBank(usageScale)
	usage := ratio.Mul(hundred)
	if usage.GreaterThan(hundred) {
		return hundred, nil
	}
	return usage, nil
}
