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

const budgetColumns = `budget_id, owner_id, category, limit_amount, currency_code,
	period_start, state, created_at, last_updated_at`

// PgxBudgetRepository stores budgets in PostgreSQL.
type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.OwnerID,
		&m.Category,
		&m.LimitAmount,
		&m.CurrencyCode,
		&m.PeriodStart,
		&m.State,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveBudget inserts b and assigns the generated identifier. A second active
// budget for the same owner and category fails with ErrDuplicate.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, b *domain.Budget) error {
	m := mapping.ToModelBudget(b)
	query := `
		INSERT INTO budgets (owner_id, category, limit_amount, currency_code, period_start, state)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING budget_id;
	`
	var id int64
	err := r.Pool.QueryRow(ctx, query,
		m.OwnerID, m.Category, m.LimitAmount, m.CurrencyCode, m.PeriodStart, m.State,
	).Scan(&id)
	if err != nil {
		return wrapDBError(err, "failed to insert budget")
	}
	b.AssignID(domain.BudgetID(id))
	return nil
}

// UpdateBudget persists limit, category, period and state.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, b *domain.Budget) error {
	m := mapping.ToModelBudget(b)
	query := `
		UPDATE budgets
		SET category = $2, limit_amount = $3, currency_code = $4, period_start = $5,
		    state = $6, last_updated_at = NOW()
		WHERE budget_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BudgetID, m.Category, m.LimitAmount, m.CurrencyCode, m.PeriodStart, m.State,
	)
	if err != nil {
		return wrapDBError(err, "failed to update budget "+strconv.FormatInt(m.BudgetID, 10))
	}
	if tag.RowsAffected() == 0 {
		return notFound("budget", m.BudgetID)
	}
	return nil
}

// FindBudgetByID retrieves a budget by its identifier.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, id domain.BudgetID) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	m, err := scanBudget(r.Pool.QueryRow(ctx, query, int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("budget", int64(id))
		}
		return nil, wrapDBError(err, "failed to find budget "+strconv.FormatInt(int64(id), 10))
	}
	return mapping.ToDomainBudget(m)
}

// ListBudgetsByOwner returns an owner's budgets in creation order.
func (r *PgxBudgetRepository) ListBudgetsByOwner(ctx context.Context, ownerID domain.UserID, activeOnly bool) ([]*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE owner_id = $1`
	args := []any{int64(ownerID)}
	if activeOnly {
		query += ` AND state = $2`
		args = append(args, string(domain.BudgetActive))
	}
	query += ` ORDER BY budget_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err, "failed to query budgets for owner "+ownerID.String())
	}
	defer rows.Close()

	var ms []models.Budget
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, wrapDBError(err, "failed to scan budget row")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err, "error iterating budget rows")
	}
	return mapping.ToDomainBudgetSlice(ms)
}

// ExistsActiveBudget reports whether the owner already has an active budget for category.
func (r *PgxBudgetRepository) ExistsActiveBudget(ctx context.Context, ownerID domain.UserID, category domain.Category) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM budgets WHERE owner_id = $1 AND category = $2 AND state = $3);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, int64(ownerID), string(category), string(domain.BudgetActive)).Scan(&exists); err != nil {
		return false, wrapDBError(err, "failed to check for an active budget")
	}
	return exists, nil
}
