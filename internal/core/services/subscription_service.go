package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_core/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_core/internal/dto"
)

type subscriptionService struct {
	BaseService
	subRepo portsrepo.SubscriptionRepositoryWithTx
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(repo portsrepo.SubscriptionRepositoryWithTx, money domain.MoneyFactory, options ...ServiceOption) portssvc.SubscriptionSvcFacade {
	return &subscriptionService{
		BaseService: newBaseService(money, options...),
		subRepo:     repo,
	}
}

var _ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)

func (s *subscriptionService) CreateSubscription(ctx context.Context, ownerID domain.UserID, req dto.CreateSubscriptionRequest) (*domain.Subscription, error) {
	date, err := dto.ParseDate(req.SubscriptionDate)
	if err != nil {
		return nil, err
	}
	sub, err := domain.NewSubscription(ownerID, date, req.BillingType, req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if err := s.subRepo.SaveSubscription(ctx, sub); err != nil {
		s.LogError(ctx, err, "Failed to save subscription", slog.String("owner_id", ownerID.String()))
		return nil, err
	}
	s.LogInfo(ctx, "Subscription created",
		slog.Int64("subscription_id", int64(sub.ID())),
		slog.String("billing_type", string(sub.BillingType())))
	return sub, nil
}

func (s *subscriptionService) GetSubscriptionByID(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID) (*domain.Subscription, error) {
	sub, err := s.subRepo.FindSubscriptionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, sub.OwnerID(), ownerID, fmt.Sprintf("subscription %d", id)); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, ownerID domain.UserID) ([]*domain.Subscription, error) {
	subs, err := s.subRepo.ListSubscriptionsByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list subscriptions", slog.String("owner_id", ownerID.String()))
		return nil, err
	}
	return subs, nil
}

func (s *subscriptionService) GetSubscriptionSummary(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID) (*dto.SubscriptionSummaryResponse, error) {
	sub, err := s.GetSubscriptionByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	// Totals are reported in the currency of the first payment.
	currency := s.Money.DefaultCurrency()
	if payments := sub.Payments(); len(payments) > 0 {
		currency = payments[0].Amount().Currency()
	}
	total, err := sub.TotalPaid(currency)
	if err != nil {
		return nil, err
	}

	return &dto.SubscriptionSummaryResponse{
		SubscriptionID:     int64(sub.ID()),
		IsActive:           sub.IsActive(),
		TotalPaid:          total.Amount(),
		CurrencyCode:       total.Currency(),
		NextPaymentDate:    sub.NextPaymentDate().Format(dto.DateLayout),
		IsExpired:          sub.IsExpired(s.Clock.Now()),
		HasPendingPayments: sub.HasPendingPayments(),
	}, nil
}

func (s *subscriptionService) ChangeSubscriptionType(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, req dto.ChangeSubscriptionTypeRequest) (*domain.Subscription, error) {
	return s.withLockedSubscription(ctx, ownerID, id, func(sub *domain.Subscription) error {
		return sub.ChangeType(req.BillingType)
	})
}

func (s *subscriptionService) ChangePaymentMethod(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, req dto.ChangePaymentMethodRequest) (*domain.Subscription, error) {
	return s.withLockedSubscription(ctx, ownerID, id, func(sub *domain.Subscription) error {
		return sub.ChangePaymentMethod(req.PaymentMethod)
	})
}

func (s *subscriptionService) ActivateSubscription(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID) (*domain.Subscription, error) {
	return s.withLockedSubscription(ctx, ownerID, id, (*domain.Subscription).ActivateSubscription)
}

func (s *subscriptionService) DeactivateSubscription(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID) (*domain.Subscription, error) {
	return s.withLockedSubscription(ctx, ownerID, id, (*domain.Subscription).DeactivateSubscription)
}

func (s *subscriptionService) AddPendingPayment(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, req dto.RecordPaymentRequest) (*domain.Payment, error) {
	payment, err := s.newPayment(ownerID, id, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.withLockedSubscription(ctx, ownerID, id, func(sub *domain.Subscription) error {
		return sub.AddPendingPayment(payment)
	}); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *subscriptionService) RegisterPayment(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, req dto.RecordPaymentRequest) (*domain.Payment, error) {
	if req.Status != domain.PaymentSucceeded && req.Status != domain.PaymentFailed {
		return nil, fmt.Errorf("%w: status must be %s or %s", apperrors.ErrValidation, domain.PaymentSucceeded, domain.PaymentFailed)
	}
	payment, err := s.newPayment(ownerID, id, req)
	if err != nil {
		return nil, err
	}

	sub, err := s.withLockedSubscription(ctx, ownerID, id, func(sub *domain.Subscription) error {
		if req.Status == domain.PaymentSucceeded {
			return sub.RegisterPaymentSucceeded(payment)
		}
		return sub.RegisterPaymentFailed(payment)
	})
	if err != nil {
		return nil, err
	}
	return recordedPayment(sub, payment), nil
}

// recordedPayment returns p, or the already succeeded payment for the same
// charge when registering p was a no-op.
func recordedPayment(sub *domain.Subscription, p *domain.Payment) *domain.Payment {
	var match *domain.Payment
	for _, existing := range sub.Payments() {
		if existing == p {
			return p
		}
		if match == nil && existing.IsSucceeded() &&
			existing.Date().Equal(p.Date()) && existing.Amount().Equal(p.Amount()) {
			match = existing
		}
	}
	if match != nil {
		return match
	}
	return p
}

func (s *subscriptionService) ResolvePayment(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, paymentID domain.PaymentID, succeeded bool) (*domain.Payment, error) {
	var payment *domain.Payment
	_, err := s.withLockedSubscription(ctx, ownerID, id, func(sub *domain.Subscription) error {
		p, ok := sub.Payment(paymentID)
		if !ok {
			return fmt.Errorf("%w: payment %d of subscription %d", apperrors.ErrNotFound, paymentID, id)
		}
		payment = p
		if succeeded {
			return sub.RegisterPaymentSucceeded(p)
		}
		return sub.RegisterPaymentFailed(p)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *subscriptionService) newPayment(ownerID domain.UserID, id domain.SubscriptionID, req dto.RecordPaymentRequest) (*domain.Payment, error) {
	date, err := dto.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}
	amount, err := s.moneyOf(req.Amount, req.CurrencyCode)
	if err != nil {
		return nil, err
	}
	return domain.NewPayment(date, ownerID, id, amount)
}

// withLockedSubscription runs change against a row-locked subscription and
// persists it with its payments in the same database transaction.
func (s *subscriptionService) withLockedSubscription(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, change func(*domain.Subscription) error) (*domain.Subscription, error) {
	tx, err := s.subRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction", slog.Int64("subscription_id", int64(id)))
		return nil, err
	}
	defer func() {
		if rbErr := s.subRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to rollback transaction", slog.Int64("subscription_id", int64(id)))
		}
	}()

	sub, err := s.subRepo.FindSubscriptionByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, sub.OwnerID(), ownerID, fmt.Sprintf("subscription %d", id)); err != nil {
		return nil, err
	}
	if err := change(sub); err != nil {
		s.LogDebug(ctx, "Subscription change rejected",
			slog.Int64("subscription_id", int64(id)),
			slog.String("error", err.Error()))
		return nil, err
	}
	if err := s.subRepo.UpdateSubscriptionInTx(ctx, tx, sub); err != nil {
		s.LogError(ctx, err, "Failed to update subscription", slog.Int64("subscription_id", int64(id)))
		return nil, err
	}
	if err := s.subRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit subscription change", slog.Int64("subscription_id", int64(id)))
		return nil, err
	}

	s.LogInfo(ctx, "Subscription updated",
		slog.Int64("subscription_id", int64(id)),
		slog.Bool("active", sub.IsActive()),
		slog.Int("payments", len(sub.Payments())))
	return sub, nil
}
