package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPayment(t *testing.T, amount string, date time.Time) *domain.Payment {
	t.Helper()
	p, err := domain.NewPayment(date, domain.UserID(7), domain.SubscriptionID(3), eur(t, amount))
	require.NoError(t, err)
	return p
}

func newSubscription(t *testing.T, billing domain.BillingType) *domain.Subscription {
	t.Helper()
	s, err := domain.NewSubscription(domain.UserID(7), time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), billing, domain.PaymentMethodCard)
	require.NoError(t, err)
	s.AssignID(3)
	return s
}

func TestPayment_StateMachine(t *testing.T) {
	p := newPayment(t, "9.99", today)
	assert.True(t, p.IsPending())

	require.NoError(t, p.MarkAsSucceeded())
	require.NoError(t, p.MarkAsSucceeded())
	assert.Equal(t, domain.PaymentSucceeded, p.Status())
	assert.ErrorIs(t, p.MarkAsFailed(), apperrors.ErrInvariantViolation)
	assert.True(t, p.IsSucceeded())

	f := newPayment(t, "9.99", today)
	require.NoError(t, f.MarkAsFailed())
	require.NoError(t, f.MarkAsFailed())
	assert.ErrorIs(t, f.MarkAsSucceeded(), apperrors.ErrInvariantViolation)
	assert.True(t, f.IsFailed())
	assert.True(t, f.Status().IsTerminal())
}

func TestNewPayment_Validation(t *testing.T) {
	_, err := domain.NewPayment(today, 7, 3, eur(t, "0"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = domain.NewPayment(today, 7, 3, eur(t, "-1"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = domain.NewPayment(time.Time{}, 7, 3, eur(t, "1"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = domain.NewPayment(today, 0, 3, eur(t, "1"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSubscription_RegisterPaymentSucceededIsIdempotent(t *testing.T) {
	s := newSubscription(t, domain.Monthly)
	require.NoError(t, s.DeactivateSubscription())

	require.NoError(t, s.RegisterPaymentSucceeded(newPayment(t, "9.99", today)))
	require.NoError(t, s.RegisterPaymentSucceeded(newPayment(t, "9.99", today)))

	payments := s.Payments()
	require.Len(t, payments, 1)
	assert.True(t, payments[0].IsSucceeded())
	assert.True(t, s.IsActive())

	require.NoError(t, s.RegisterPaymentSucceeded(newPayment(t, "9.99", today.AddDate(0, 1, 0))))
	assert.Len(t, s.Payments(), 2)

	total, err := s.TotalPaid("EUR")
	require.NoError(t, err)
	assert.True(t, total.Equal(eur(t, "19.98")))
}

func TestSubscription_RegisterPaymentFailed(t *testing.T) {
	s := newSubscription(t, domain.Monthly)
	require.NoError(t, s.DeactivateSubscription())

	p := newPayment(t, "9.99", today)
	require.NoError(t, s.RegisterPaymentFailed(p))
	assert.True(t, p.IsFailed())
	assert.False(t, s.IsActive())
	assert.Len(t, s.Payments(), 1)

	assert.ErrorIs(t, s.RegisterPaymentSucceeded(p), apperrors.ErrInvariantViolation)

	total, err := s.TotalPaid("EUR")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestSubscription_PendingPaymentsBlockActivation(t *testing.T) {
	s := newSubscription(t, domain.Monthly)
	p := newPayment(t, "9.99", today)
	require.NoError(t, s.AddPendingPayment(p))
	require.NoError(t, s.AddPendingPayment(p))
	assert.Len(t, s.Payments(), 1)
	assert.True(t, s.HasPendingPayments())

	assert.ErrorIs(t, s.DeactivateSubscription(), apperrors.ErrInvariantViolation)
	assert.ErrorIs(t, s.ActivateSubscription(), apperrors.ErrInvariantViolation)
	assert.True(t, s.IsActive())

	require.NoError(t, s.RegisterPaymentSucceeded(p))
	assert.Len(t, s.Payments(), 1)
	assert.False(t, s.HasPendingPayments())

	require.NoError(t, s.DeactivateSubscription())
	require.NoError(t, s.DeactivateSubscription())
	assert.False(t, s.IsActive())
	require.NoError(t, s.ActivateSubscription())
	assert.True(t, s.IsActive())

	assert.ErrorIs(t, s.AddPendingPayment(p), apperrors.ErrInvariantViolation)
}

func TestSubscription_RejectsForeignPayment(t *testing.T) {
	s := newSubscription(t, domain.Monthly)
	foreign, err := domain.NewPayment(today, 7, 99, eur(t, "5"))
	require.NoError(t, err)

	assert.ErrorIs(t, s.RegisterPaymentSucceeded(foreign), apperrors.ErrValidation)
	assert.ErrorIs(t, s.RegisterPaymentSucceeded(nil), apperrors.ErrValidation)
	assert.True(t, foreign.IsPending())
	assert.Empty(t, s.Payments())
}

func TestSubscription_ChangeType(t *testing.T) {
	annual := newSubscription(t, domain.Annual)
	require.NoError(t, annual.ChangeType(domain.Monthly))
	require.NoError(t, annual.ChangeType(domain.Annual))

	require.NoError(t, annual.RegisterPaymentSucceeded(newPayment(t, "99", today)))
	assert.ErrorIs(t, annual.ChangeType(domain.Monthly), apperrors.ErrInvariantViolation)
	assert.Equal(t, domain.Annual, annual.BillingType())

	monthly := newSubscription(t, domain.Monthly)
	require.NoError(t, monthly.RegisterPaymentSucceeded(newPayment(t, "9", today)))
	require.NoError(t, monthly.ChangeType(domain.Annual))
	assert.Equal(t, domain.Annual, monthly.BillingType())

	assert.ErrorIs(t, monthly.ChangeType("WEEKLY"), apperrors.ErrValidation)
}

func TestSubscription_ChangePaymentMethod(t *testing.T) {
	s := newSubscription(t, domain.Monthly)

	require.NoError(t, s.ChangePaymentMethod(domain.PaymentMethodPayPal))
	assert.Equal(t, domain.PaymentMethodPayPal, s.PaymentMethod())

	assert.ErrorIs(t, s.ChangePaymentMethod("CHEQUE"), apperrors.ErrValidation)
	assert.Equal(t, domain.PaymentMethodPayPal, s.PaymentMethod())

	require.NoError(t, s.ChangePaymentMethod(""))
	assert.Empty(t, s.PaymentMethod())
}

func TestSubscription_NextPaymentDate(t *testing.T) {
	monthly := newSubscription(t, domain.Monthly)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), monthly.NextPaymentDate())
	assert.False(t, monthly.IsExpired(time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC)))
	assert.True(t, monthly.IsExpired(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))

	annual := newSubscription(t, domain.Annual)
	assert.Equal(t, time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), annual.NextPaymentDate())
	assert.False(t, annual.IsExpired(today))
}
