package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SubscriptionReader defines read operations for subscription data.
// Subscriptions are always loaded together with their payments.
type SubscriptionReader interface {
	// FindSubscriptionByID retrieves a subscription and its payments.
	FindSubscriptionByID(ctx context.Context, id domain.SubscriptionID) (*domain.Subscription, error)

	// ListSubscriptionsByOwner returns an owner's subscriptions with their payments.
	ListSubscriptionsByOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.Subscription, error)
}

// SubscriptionWriter defines write operations for subscription data
type SubscriptionWriter interface {
	// SaveSubscription inserts a new subscription and assigns its identifier.
	SaveSubscription(ctx context.Context, s *domain.Subscription) error
}

// SubscriptionTransactionSupport serializes concurrent changes to one subscription.
type SubscriptionTransactionSupport interface {
	// FindSubscriptionByIDForUpdate loads a subscription and locks its row until tx ends.
	FindSubscriptionByIDForUpdate(ctx context.Context, tx pgx.Tx, id domain.SubscriptionID) (*domain.Subscription, error)

	// UpdateSubscriptionInTx writes the subscription row, inserts new payments
	// (assigning their identifiers) and updates the status of existing ones.
	UpdateSubscriptionInTx(ctx context.Context, tx pgx.Tx, s *domain.Subscription) error
}

// SubscriptionRepositoryFacade combines all subscription-related repository interfaces
type SubscriptionRepositoryFacade interface {
	SubscriptionReader
	SubscriptionWriter
	SubscriptionTransactionSupport
}

// SubscriptionRepositoryWithTx extends SubscriptionRepositoryFacade with transaction capabilities
type SubscriptionRepositoryWithTx interface {
	SubscriptionRepositoryFacade
	TransactionManager
}
