package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits every Money amount is stored with.
const MoneyScale int32 = 2

// Money is an immutable amount in a single currency.
// Amounts are rounded half-up to MoneyScale digits at construction.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates Money after validating the ISO-4217 currency code.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	code, err := NormalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: amount.Round(MoneyScale), currency: code}, nil
}

// Zero returns a zero amount in the given currency.
// The currency is assumed to be valid; use NewMoney for untrusted input.
func Zero(currency string) Money {
	return Money{amount: decimal.Zero.Round(MoneyScale), currency: strings.ToUpper(currency)}
}

// NormalizeCurrency upper-cases and validates a three letter currency code.
func NormalizeCurrency(currency string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency code %q must have 3 letters", apperrors.ErrValidation, currency)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: currency code %q must be alphabetic", apperrors.ErrValidation, currency)
		}
	}
	return code, nil
}

// MoneyFactory builds Money in a configured default currency.
// It replaces a process-wide default with an explicit value passed at wiring time.
type MoneyFactory struct {
	defaultCurrency string
}

// NewMoneyFactory validates the default currency code.
func NewMoneyFactory(defaultCurrency string) (MoneyFactory, error) {
	code, err := NormalizeCurrency(defaultCurrency)
	if err != nil {
		return MoneyFactory{}, err
	}
	return MoneyFactory{defaultCurrency: code}, nil
}

// DefaultCurrency returns the configured currency code.
func (f MoneyFactory) DefaultCurrency() string {
	return f.defaultCurrency
}

// Of creates Money in the default currency.
func (f MoneyFactory) Of(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(MoneyScale), currency: f.defaultCurrency}
}

// Zero returns zero in the default currency.
func (f MoneyFactory) Zero() Money {
	return Zero(f.defaultCurrency)
}

// Amount returns the rounded decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the ISO currency code.
func (m Money) Currency() string {
	return m.currency
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s vs %s", apperrors.ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount).Round(MoneyScale), currency: m.currency}, nil
}

// Subtract returns m - other.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount).Round(MoneyScale), currency: m.currency}, nil
}

// Multiply scales the amount by factor and rounds the result.
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor).Round(MoneyScale), currency: m.currency}
}

// Divide divides the amount by divisor, rounding half-up to MoneyScale.
func (m Money) Divide(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, fmt.Errorf("%w: cannot divide %s", apperrors.ErrDivisionByZero, m)
	}
	return Money{amount: m.amount.DivRound(divisor, MoneyScale), currency: m.currency}, nil
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs(), currency: m.currency}
}

// Negate returns -m.
func (m Money) Negate() Money {
	return Money{amount: m.amount.Neg(), currency: m.currency}
}

func (m Money) IsPositive() bool { return m.amount.IsPositive() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }
func (m Money) IsZero() bool     { return m.amount.IsZero() }

// IsGreaterThan reports m > other.
func (m Money) IsGreaterThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

// IsLessThan reports m < other.
func (m Money) IsLessThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// IsGreaterThanOrEqual reports m >= other.
func (m Money) IsGreaterThanOrEqual(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// Equal reports whether both amount and currency match.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders e.g. "12.30 EUR".
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale) + " " + m.currency
}
