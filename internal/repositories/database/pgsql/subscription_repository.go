package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_core/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_core/internal/models"
	"github.com/SscSPs/finance_tracker_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const subscriptionColumns = `subscription_id, owner_id, subscription_date, billing_type,
	payment_method, is_active, created_at, last_updated_at`

const paymentColumns = `payment_id, subscription_id, owner_id, payment_date, amount,
	currency_code, status, created_at, last_updated_at`

// PgxSubscriptionRepository stores subscriptions and their payments in PostgreSQL.
type PgxSubscriptionRepository struct {
	BaseRepository
}

func newPgxSubscriptionRepository(pool *pgxpool.Pool) *PgxSubscriptionRepository {
	return &PgxSubscriptionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SubscriptionRepositoryWithTx = (*PgxSubscriptionRepository)(nil)

func scanSubscription(row pgx.Row) (models.Subscription, error) {
	var m models.Subscription
	err := row.Scan(
		&m.SubscriptionID,
		&m.OwnerID,
		&m.SubscriptionDate,
		&m.BillingType,
		&m.PaymentMethod,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.SubscriptionID,
		&m.OwnerID,
		&m.PaymentDate,
		&m.Amount,
		&m.CurrencyCode,
		&m.Status,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// paymentsFor loads the payments of the given subscriptions grouped by
// subscription, each group in recording order.
func paymentsFor(ctx context.Context, q querier, subscriptionIDs []int64) (map[int64][]models.Payment, error) {
	grouped := make(map[int64][]models.Payment, len(subscriptionIDs))
	if len(subscriptionIDs) == 0 {
		return grouped, nil
	}
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE subscription_id = ANY($1)
		ORDER BY subscription_id, payment_id;`
	rows, err := q.Query(ctx, query, subscriptionIDs)
	if err != nil {
		return nil, wrapDBError(err, "failed to query payments")
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, wrapDBError(err, "failed to scan payment row")
		}
		grouped[p.SubscriptionID] = append(grouped[p.SubscriptionID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err, "error iterating payment rows")
	}
	return grouped, nil
}

func (r *PgxSubscriptionRepository) findSubscription(ctx context.Context, q querier, id domain.SubscriptionID, forUpdate bool) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE subscription_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	m, err := scanSubscription(q.QueryRow(ctx, query+";", int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("subscription", int64(id))
		}
		return nil, wrapDBError(err, "failed to find subscription "+strconv.FormatInt(int64(id), 10))
	}

	payments, err := paymentsFor(ctx, q, []int64{m.SubscriptionID})
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainSubscription(m, payments[m.SubscriptionID])
}

// FindSubscriptionByID retrieves a subscription and its payments.
func (r *PgxSubscriptionRepository) FindSubscriptionByID(ctx context.Context, id domain.SubscriptionID) (*domain.Subscription, error) {
	return r.findSubscription(ctx, r.Pool, id, false)
}

// FindSubscriptionByIDForUpdate loads a subscription and locks its row until tx ends.
func (r *PgxSubscriptionRepository) FindSubscriptionByIDForUpdate(ctx context.Context, tx pgx.Tx, id domain.SubscriptionID) (*domain.Subscription, error) {
	return r.findSubscription(ctx, tx, id, true)
}

// ListSubscriptionsByOwner returns an owner's subscriptions with their payments.
func (r *PgxSubscriptionRepository) ListSubscriptionsByOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE owner_id = $1 ORDER BY subscription_id;`
	rows, err := r.Pool.Query(ctx, query, int64(ownerID))
	if err != nil {
		return nil, wrapDBError(err, "failed to query subscriptions for owner "+ownerID.String())
	}
	var (
		ms  []models.Subscription
		ids []int64
	)
	for rows.Next() {
		m, err := scanSubscription(rows)
		if err != nil {
			rows.Close()
			return nil, wrapDBError(err, "failed to scan subscription row")
		}
		ms = append(ms, m)
		ids = append(ids, m.SubscriptionID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err, "error iterating subscription rows")
	}

	payments, err := paymentsFor(ctx, r.Pool, ids)
	if err != nil {
		return nil, err
	}

	subs := make([]*domain.Subscription, 0, len(ms))
	for _, m := range ms {
		s, err := mapping.ToDomainSubscription(m, payments[m.SubscriptionID])
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// SaveSubscription inserts s together with any payments it already holds.
func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, s *domain.Subscription) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	m := mapping.ToModelSubscription(s)
	query := `
		INSERT INTO subscriptions (owner_id, subscription_date, billing_type, payment_method, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING subscription_id;
	`
	var id int64
	if err = tx.QueryRow(ctx, query,
		m.OwnerID, m.SubscriptionDate, m.BillingType, m.PaymentMethod, m.IsActive,
	).Scan(&id); err != nil {
		return wrapDBError(err, "failed to insert subscription")
	}
	s.AssignID(domain.SubscriptionID(id))

	if err = r.writePayments(ctx, tx, s); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateSubscriptionInTx writes the subscription row and its payments.
func (r *PgxSubscriptionRepository) UpdateSubscriptionInTx(ctx context.Context, tx pgx.Tx, s *domain.Subscription) error {
	m := mapping.ToModelSubscription(s)
	query := `
		UPDATE subscriptions
		SET billing_type = $2, payment_method = $3, is_active = $4, last_updated_at = NOW()
		WHERE subscription_id = $1;
	`
	tag, err := tx.Exec(ctx, query, m.SubscriptionID, m.BillingType, m.PaymentMethod, m.IsActive)
	if err != nil {
		return wrapDBError(err, "failed to update subscription "+strconv.FormatInt(m.SubscriptionID, 10))
	}
	if tag.RowsAffected() == 0 {
		return notFound("subscription", m.SubscriptionID)
	}
	return r.writePayments(ctx, tx, s)
}

// writePayments inserts payments without an identifier and brings the status
// of persisted ones up to date.
func (r *PgxSubscriptionRepository) writePayments(ctx context.Context, tx pgx.Tx, s *domain.Subscription) error {
	insert := `
		INSERT INTO payments (subscription_id, owner_id, payment_date, amount, currency_code, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING payment_id;
	`
	update := `
		UPDATE payments SET status = $2, last_updated_at = NOW()
		WHERE payment_id = $1 AND status <> $2;
	`
	for _, p := range s.Payments() {
		m := mapping.ToModelPayment(p)
		if p.ID().IsEmpty() {
			var id int64
			if err := tx.QueryRow(ctx, insert,
				int64(s.ID()), m.OwnerID, m.PaymentDate, m.Amount, m.CurrencyCode, m.Status,
			).Scan(&id); err != nil {
				return wrapDBError(err, "failed to insert payment")
			}
			p.AssignID(domain.PaymentID(id))
			continue
		}
		if _, err := tx.Exec(ctx, update, m.PaymentID, m.Status); err != nil {
			return wrapDBError(err, "failed to update payment "+strconv.FormatInt(m.PaymentID, 10))
		}
	}
	return nil
}
