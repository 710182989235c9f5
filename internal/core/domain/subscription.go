package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
)

// BillingType is the billing cycle of a subscription.
type BillingType string

const (
	Monthly BillingType = "MONTHLY"
	Annual  BillingType = "ANNUAL"
)

// IsValid reports whether t is a known billing cycle.
func (t BillingType) IsValid() bool {
	return t == Monthly || t == Annual
}

// months returns the length of one billing cycle.
func (t BillingType) months() int {
	if t == Annual {
		return 12
	}
	return 1
}

// PaymentMethod is how a subscription is charged. Empty means not set.
type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodPayPal       PaymentMethod = "PAYPAL"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// IsValid reports whether m is a known method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodPayPal, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// Subscription is a user's recurring billing record. It exclusively owns its payments.
type Subscription struct {
	id               SubscriptionID
	subscriptionDate time.Time
	billingType      BillingType
	ownerID          UserID
	active           bool
	paymentMethod    PaymentMethod
	payments         []*Payment
}

// NewSubscription creates an active subscription with no payments.
func NewSubscription(ownerID UserID, subscriptionDate time.Time, billingType BillingType, method PaymentMethod) (*Subscription, error) {
	if ownerID.IsEmpty() {
		return nil, fmt.Errorf("%w: subscription owner is required", apperrors.ErrValidation)
	}
	if subscriptionDate.IsZero() {
		return nil, fmt.Errorf("%w: subscription date is required", apperrors.ErrValidation)
	}
	if !billingType.IsValid() {
		return nil, fmt.Errorf("%w: unknown billing type %q", apperrors.ErrValidation, billingType)
	}
	if method != "" && !method.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, method)
	}
	return &Subscription{
		subscriptionDate: DateOnly(subscriptionDate),
		billingType:      billingType,
		ownerID:          ownerID,
		active:           true,
		paymentMethod:    method,
		payments:         []*Payment{},
	}, nil
}

// ReconstructSubscription rebuilds a persisted subscription with its payments in order.
func ReconstructSubscription(id SubscriptionID, ownerID UserID, subscriptionDate time.Time, billingType BillingType, active bool, method PaymentMethod, payments []*Payment) (*Subscription, error) {
	if !billingType.IsValid() {
		return nil, fmt.Errorf("%w: unknown billing type %q", apperrors.ErrValidation, billingType)
	}
	owned := make([]*Payment, len(payments))
	copy(owned, payments)
	return &Subscription{
		id:               id,
		subscriptionDate: DateOnly(subscriptionDate),
		billingType:      billingType,
		ownerID:          ownerID,
		active:           active,
		paymentMethod:    method,
		payments:         owned,
	}, nil
}

func (s *Subscription) ID() SubscriptionID           { return s.id }
func (s *Subscription) SubscriptionDate() time.Time  { return s.subscriptionDate }
func (s *Subscription) BillingType() BillingType     { return s.billingType }
func (s *Subscription) OwnerID() UserID              { return s.ownerID }
func (s *Subscription) IsActive() bool               { return s.active }
func (s *Subscription) PaymentMethod() PaymentMethod { return s.paymentMethod }

// AssignID sets the identifier once the subscription has been persisted.
func (s *Subscription) AssignID(id SubscriptionID) {
	s.id = id
}

// Payments returns a copy of the payment list in recording order.
func (s *Subscription) Payments() []*Payment {
	out := make([]*Payment, len(s.payments))
	copy(out, s.payments)
	return out
}

// Payment finds a recorded payment by id.
func (s *Subscription) Payment(id PaymentID) (*Payment, bool) {
	for _, p := range s.payments {
		if !id.IsEmpty() && p.id == id {
			return p, true
		}
	}
	return nil, false
}

func (s *Subscription) checkOwnership(p *Payment) error {
	if p == nil {
		return fmt.Errorf("%w: payment is required", apperrors.ErrValidation)
	}
	if !s.id.IsEmpty() && !p.subscriptionID.IsEmpty() && p.subscriptionID != s.id {
		return fmt.Errorf("%w: payment belongs to subscription %d, not %d", apperrors.ErrValidation, p.subscriptionID, s.id)
	}
	return nil
}

func (s *Subscription) contains(p *Payment) bool {
	for _, existing := range s.payments {
		if existing == p || (!p.id.IsEmpty() && existing.id == p.id) {
			return true
		}
	}
	return false
}

func (s *Subscription) record(p *Payment) {
	if !s.contains(p) {
		s.payments = append(s.payments, p)
	}
}

// AddPendingPayment records an attempt that awaits a provider outcome.
func (s *Subscription) AddPendingPayment(p *Payment) error {
	if err := s.checkOwnership(p); err != nil {
		return err
	}
	if !p.IsPending() {
		return fmt.Errorf("%w: payment is already %s", apperrors.ErrInvariantViolation, p.status)
	}
	s.record(p)
	return nil
}

// RegisterPaymentSucceeded marks p as paid, records it and activates the subscription.
// If a payment with the same amount and date has already succeeded, nothing happens.
func (s *Subscription) RegisterPaymentSucceeded(p *Payment) error {
	if err := s.checkOwnership(p); err != nil {
		return err
	}
	for _, existing := range s.payments {
		if existing.IsSucceeded() && existing.sameCharge(p) {
			return nil
		}
	}
	if err := p.MarkAsSucceeded(); err != nil {
		return err
	}
	s.record(p)
	s.active = true
	return nil
}

// RegisterPaymentFailed marks p as failed and records it. Activity is unchanged.
func (s *Subscription) RegisterPaymentFailed(p *Payment) error {
	if err := s.checkOwnership(p); err != nil {
		return err
	}
	if err := p.MarkAsFailed(); err != nil {
		return err
	}
	s.record(p)
	return nil
}

// ChangeType switches the billing cycle. An ANNUAL subscription with recorded
// payments cannot change; other cases are unguarded.
func (s *Subscription) ChangeType(newType BillingType) error {
	if !newType.IsValid() {
		return fmt.Errorf("%w: unknown billing type %q", apperrors.ErrValidation, newType)
	}
	if s.billingType == Annual && len(s.payments) > 0 {
		return fmt.Errorf("%w: annual subscription %d already has payments", apperrors.ErrInvariantViolation, s.id)
	}
	s.billingType = newType
	return nil
}

// ChangePaymentMethod sets or clears (empty) the payment method.
func (s *Subscription) ChangePaymentMethod(method PaymentMethod) error {
	if method != "" && !method.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, method)
	}
	s.paymentMethod = method
	return nil
}

// ActivateSubscription fails while any payment is pending.
func (s *Subscription) ActivateSubscription() error {
	if s.HasPendingPayments() {
		return fmt.Errorf("%w: subscription %d has pending payments", apperrors.ErrInvariantViolation, s.id)
	}
	s.active = true
	return nil
}

// DeactivateSubscription fails while any payment is pending.
func (s *Subscription) DeactivateSubscription() error {
	if s.HasPendingPayments() {
		return fmt.Errorf("%w: subscription %d has pending payments", apperrors.ErrInvariantViolation, s.id)
	}
	s.active = false
	return nil
}

// HasPendingPayments reports whether any payment is still PENDING.
func (s *Subscription) HasPendingPayments() bool {
	for _, p := range s.payments {
		if p.IsPending() {
			return true
		}
	}
	return false
}

// TotalPaid sums succeeded payments. Payments in another currency cause ErrCurrencyMismatch.
func (s *Subscription) TotalPaid(currency string) (Money, error) {
	total := Zero(currency)
	for _, p := range s.payments {
		if !p.IsSucceeded() {
			continue
		}
		var err error
		total, err = total.Add(p.amount)
		if err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

// NextPaymentDate is the subscription date plus one billing cycle.
func (s *Subscription) NextPaymentDate() time.Time {
	return AddMonthsClamped(s.subscriptionDate, s.billingType.months())
}

// IsExpired reports whether now is past the next payment date.
func (s *Subscription) IsExpired(now time.Time) bool {
	return DateOnly(now).After(s.NextPaymentDate())
}
