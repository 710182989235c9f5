package mapping

import (
	"database/sql"
	"fmt"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/SscSPs/finance_tracker_core/internal/models"
)

// ToModelSubscription converts a domain.Subscription to a models.Subscription.
// Payments are mapped separately with ToModelPayment.
func ToModelSubscription(s *domain.Subscription) models.Subscription {
	m := models.Subscription{
		SubscriptionID:   int64(s.ID()),
		OwnerID:          int64(s.OwnerID()),
		SubscriptionDate: s.SubscriptionDate(),
		BillingType:      string(s.BillingType()),
		IsActive:         s.IsActive(),
	}
	if method := s.PaymentMethod(); method != "" {
		m.PaymentMethod = sql.NullString{String: string(method), Valid: true}
	}
	return m
}

// ToModelPayment converts a domain.Payment to a models.Payment
func ToModelPayment(p *domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:      int64(p.ID()),
		SubscriptionID: int64(p.SubscriptionID()),
		OwnerID:        int64(p.OwnerID()),
		PaymentDate:    p.Date(),
		Amount:         p.Amount().Amount(),
		CurrencyCode:   p.Amount().Currency(),
		Status:         string(p.Status()),
	}
}

// ToDomainPayment converts a models.Payment to a domain.Payment
func ToDomainPayment(m models.Payment) (*domain.Payment, error) {
	amount, err := domain.NewMoney(m.Amount, m.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("payment %d: %w", m.PaymentID, err)
	}
	return domain.ReconstructPayment(
		domain.PaymentID(m.PaymentID),
		m.PaymentDate,
		domain.UserID(m.OwnerID),
		domain.SubscriptionID(m.SubscriptionID),
		amount,
		domain.PaymentStatus(m.Status),
	)
}

// ToDomainSubscription rebuilds a subscription from its row and its payment rows,
// which must already be in recording order.
func ToDomainSubscription(m models.Subscription, payments []models.Payment) (*domain.Subscription, error) {
	ps := make([]*domain.Payment, 0, len(payments))
	for _, pm := range payments {
		p, err := ToDomainPayment(pm)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	var method domain.PaymentMethod
	if m.PaymentMethod.Valid {
		method = domain.PaymentMethod(m.PaymentMethod.String)
	}
	return domain.ReconstructSubscription(
		domain.SubscriptionID(m.SubscriptionID),
		domain.UserID(m.OwnerID),
		m.SubscriptionDate,
		domain.BillingType(m.BillingType),
		m.IsActive,
		method,
		ps,
	)
}
