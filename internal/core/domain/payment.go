package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
)

// PaymentStatus is the state of a payment attempt.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentSucceeded PaymentStatus = "SUCCEEDED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// IsTerminal reports whether no further transition is allowed out of s.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentSucceeded || s == PaymentFailed
}

// Payment is one billing attempt for a subscription.
//
// PENDING moves to SUCCEEDED or FAILED exactly once. Re-marking the same
// terminal state is a no-op; crossing to the other terminal state fails.
type Payment struct {
	id             PaymentID
	date           time.Time
	ownerID        UserID
	subscriptionID SubscriptionID
	amount         Money
	status         PaymentStatus
}

// NewPayment creates a PENDING payment.
func NewPayment(date time.Time, ownerID UserID, subscriptionID SubscriptionID, amount Money) (*Payment, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: payment date is required", apperrors.ErrValidation)
	}
	if ownerID.IsEmpty() {
		return nil, fmt.Errorf("%w: payment owner is required", apperrors.ErrValidation)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	return &Payment{
		date:           DateOnly(date),
		ownerID:        ownerID,
		subscriptionID: subscriptionID,
		amount:         amount,
		status:         PaymentPending,
	}, nil
}

// ReconstructPayment rebuilds a persisted payment in any state.
func ReconstructPayment(id PaymentID, date time.Time, ownerID UserID, subscriptionID SubscriptionID, amount Money, status PaymentStatus) (*Payment, error) {
	switch status {
	case PaymentPending, PaymentSucceeded, PaymentFailed:
	default:
		return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, status)
	}
	return &Payment{
		id:             id,
		date:           DateOnly(date),
		ownerID:        ownerID,
		subscriptionID: subscriptionID,
		amount:         amount,
		status:         status,
	}, nil
}

func (p *Payment) ID() PaymentID                  { return p.id }
func (p *Payment) Date() time.Time                { return p.date }
func (p *Payment) OwnerID() UserID                { return p.ownerID }
func (p *Payment) SubscriptionID() SubscriptionID { return p.subscriptionID }
func (p *Payment) Amount() Money                  { return p.amount }
func (p *Payment) Status() PaymentStatus          { return p.status }
func (p *Payment) IsPending() bool                { return p.status == PaymentPending }
func (p *Payment) IsSucceeded() bool              { return p.status == PaymentSucceeded }
func (p *Payment) IsFailed() bool                 { return p.status == PaymentFailed }

// AssignID sets the identifier once the payment has been persisted.
func (p *Payment) AssignID(id PaymentID) {
	p.id = id
}

// MarkAsSucceeded resolves a pending payment as paid.
func (p *Payment) MarkAsSucceeded() error {
	switch p.status {
	case PaymentSucceeded:
		return nil
	case PaymentFailed:
		return fmt.Errorf("%w: payment %d already failed", apperrors.ErrInvariantViolation, p.id)
	}
	p.status = PaymentSucceeded
	return nil
}

// MarkAsFailed resolves a pending payment as failed.
func (p *Payment) MarkAsFailed() error {
	switch p.status {
	case PaymentFailed:
		return nil
	case PaymentSucceeded:
		return fmt.Errorf("%w: payment %d already succeeded", apperrors.ErrInvariantViolation, p.id)
	}
	p.status = PaymentFailed
	return nil
}

// sameCharge reports whether two payments bill the same amount on the same day.
func (p *Payment) sameCharge(other *Payment) bool {
	return p.amount.Equal(other.amount) && p.date.Equal(other.date)
}
