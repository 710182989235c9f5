package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_core/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_core/internal/models"
	"github.com/SscSPs/finance_tracker_core/internal/utils/mapping"
	"github.com/SscSPs/finance_tracker_core/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const defaultPageSize = 20

const transactionColumns = `transaction_id, owner_id, description, amount, currency_code,
	transaction_date, category, created_at, last_updated_at`

// PgxTransactionRepository stores transactions in PostgreSQL.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OwnerID,
		&m.Description,
		&m.Amount,
		&m.CurrencyCode,
		&m.TransactionDate,
		&m.Category,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func collectTransactions(rows pgx.Rows, capacity int) ([]models.Transaction, error) {
	defer rows.Close()
	out := make([]models.Transaction, 0, capacity)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SaveTransaction inserts t and assigns the generated identifier.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, t *domain.Transaction) error {
	m := mapping.ToModelTransaction(t)
	query := `
		INSERT INTO transactions (owner_id, description, amount, currency_code, transaction_date, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING transaction_id;
	`
	var id int64
	err := r.Pool.QueryRow(ctx, query,
		m.OwnerID, m.Description, m.Amount, m.CurrencyCode, m.TransactionDate, m.Category,
	).Scan(&id)
	if err != nil {
		return wrapDBError(err, "failed to insert transaction")
	}
	t.AssignID(domain.TransactionID(id))
	return nil
}

// UpdateTransaction overwrites the mutable columns of an existing row.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, t *domain.Transaction) error {
	m := mapping.ToModelTransaction(t)
	query := `
		UPDATE transactions
		SET description = $2, amount = $3, currency_code = $4, transaction_date = $5,
		    category = $6, last_updated_at = NOW()
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionID, m.Description, m.Amount, m.CurrencyCode, m.TransactionDate, m.Category,
	)
	if err != nil {
		return wrapDBError(err, "failed to update transaction "+strconv.FormatInt(m.TransactionID, 10))
	}
	if tag.RowsAffected() == 0 {
		return notFound("transaction", m.TransactionID)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, id domain.TransactionID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("transaction", int64(id))
		}
		return nil, wrapDBError(err, "failed to find transaction "+strconv.FormatInt(int64(id), 10))
	}
	return mapping.ToDomainTransaction(m)
}

// ListTransactionsByOwner returns one page ordered by date then id, both descending.
func (r *PgxTransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerID domain.UserID, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]*domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	args := []any{int64(ownerID)}
	conditions := []string{"owner_id = $1"}
	addCondition := func(format string, values ...any) {
		placeholders := make([]any, len(values))
		for i, v := range values {
			args = append(args, v)
			placeholders[i] = "$" + strconv.Itoa(len(args))
		}
		conditions = append(conditions, fmt.Sprintf(format, placeholders...))
	}

	if filter.From != nil {
		addCondition("transaction_date >= %s", *filter.From)
	}
	if filter.To != nil {
		addCondition("transaction_date <= %s", *filter.To)
	}
	if filter.Category != nil {
		addCondition("category = %s", string(*filter.Category))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		// Tuple comparison keeps the cursor stable across equal dates.
		addCondition("(transaction_date, transaction_id) < (%s, %s)", lastDate, lastID)
	}
	args = append(args, fetchLimit)

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` +
		strings.Join(conditions, " AND ") +
		` ORDER BY transaction_date DESC, transaction_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, wrapDBError(err, "failed to query transactions for owner "+ownerID.String())
	}
	ms, err := collectTransactions(rows, fetchLimit)
	if err != nil {
		return nil, nil, wrapDBError(err, "failed to scan transactions for owner "+ownerID.String())
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.TransactionDate, last.TransactionID)
		next = &token
	}

	txns, err := mapping.ToDomainTransactionSlice(ms)
	if err != nil {
		return nil, nil, err
	}
	return txns, next, nil
}

// FindByOwnerAndPeriod returns an owner's transactions dated within [from, to], oldest first.
func (r *PgxTransactionRepository) FindByOwnerAndPeriod(ctx context.Context, ownerID domain.UserID, from, to time.Time) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE owner_id = $1 AND transaction_date BETWEEN $2 AND $3
		ORDER BY transaction_date, transaction_id;`
	rows, err := r.Pool.Query(ctx, query, int64(ownerID), from, to)
	if err != nil {
		return nil, wrapDBError(err, "failed to query transactions by period")
	}
	ms, err := collectTransactions(rows, 0)
	if err != nil {
		return nil, wrapDBError(err, "failed to scan transactions by period")
	}
	return mapping.ToDomainTransactionSlice(ms)
}

// SumExpenses returns the magnitude of expenses of one category and currency in [start, end].
func (r *PgxTransactionRepository) SumExpenses(ctx context.Context, ownerID domain.UserID, category domain.Category, start, end time.Time, currency string) (domain.Money, error) {
	query := `
		SELECT COALESCE(SUM(-amount), 0)
		FROM transactions
		WHERE owner_id = $1 AND category = $2 AND currency_code = $3
		  AND transaction_date BETWEEN $4 AND $5 AND amount < 0;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, int64(ownerID), string(category), currency, start, end).Scan(&total); err != nil {
		return domain.Money{}, wrapDBError(err, "failed to sum expenses")
	}
	return domain.NewMoney(total, currency)
}
