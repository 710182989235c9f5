package services

import (
	"context"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/SscSPs/finance_tracker_core/internal/dto"
)

// SubscriptionReaderSvc defines read operations for subscription data
type SubscriptionReaderSvc interface {
	GetSubscriptionByID(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID) (*domain.Subscription, error)
	ListSubscriptions(ctx context.Context, ownerID domain.UserID) ([]*domain.Subscription, error)

	// GetSubscriptionSummary reports total paid, next payment date and expiry.
	GetSubscriptionSummary(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID) (*dto.SubscriptionSummaryResponse, error)
}

// SubscriptionWriterSvc defines write operations for subscription data
type SubscriptionWriterSvc interface {
	CreateSubscription(ctx context.Context, ownerID domain.UserID, req dto.CreateSubscriptionRequest) (*domain.Subscription, error)
	ChangeSubscriptionType(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, req dto.ChangeSubscriptionTypeRequest) (*domain.Subscription, error)
	ChangePaymentMethod(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, req dto.ChangePaymentMethodRequest) (*domain.Subscription, error)
	ActivateSubscription(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID) (*domain.Subscription, error)
	DeactivateSubscription(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID) (*domain.Subscription, error)
}

// PaymentSvc defines the payment lifecycle of a subscription.
type PaymentSvc interface {
	// AddPendingPayment records an attempt awaiting a provider outcome.
	AddPendingPayment(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, req dto.RecordPaymentRequest) (*domain.Payment, error)

	// RegisterPayment records an attempt whose outcome (SUCCEEDED or FAILED) is already known.
	RegisterPayment(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, req dto.RecordPaymentRequest) (*domain.Payment, error)

	// ResolvePayment settles a pending payment.
	ResolvePayment(ctx context.Context, ownerID domain.UserID, id domain.SubscriptionID, paymentID domain.PaymentID, succeeded bool) (*domain.Payment, error)
}

// SubscriptionSvcFacade combines all subscription-related service interfaces
type SubscriptionSvcFacade interface {
	SubscriptionReaderSvc
	SubscriptionWriterSvc
	PaymentSvc
}
