package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool     *pgxpool.Pool
	currency string
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool, currency string) *BudgetRepository {
	return &BudgetRepository{
		pool:     pool,
		currency: currency,
	}
}

// GetFigures loads a budget together with its spent, planned and average daily rate figures
func (r *BudgetRepository) GetFigures(ctx context.Context, budgetID int64) (*domain.BudgetFigures, error) {
	var (
		figures                                domain.BudgetFigures
		contractID                             pgtype.Int8
		taxRate                                pgtype.Numeric
		totalCents, limitCents                 int64
		spentCents, plannedCents, avgRateCents int64
		lastUpdated                            pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, `
		SELECT b.id, b.project_id, b.name, b.contract_id, c.tax_rate, b.tags,
			b.total_cents, b.limit_cents,
			COALESCE((SELECT SUM(`+dayEquivalentCents+`) FROM work_record r WHERE r.budget_id = b.id), 0)::BIGINT,
			COALESCE((SELECT SUM(`+dayEquivalentCents+`) FROM plan_record r WHERE r.budget_id = b.id), 0)::BIGINT,
			COALESCE((SELECT ROUND(SUM(r.daily_rate_cents * r.minutes)::NUMERIC / NULLIF(SUM(r.minutes), 0))
				FROM work_record r WHERE r.budget_id = b.id), 0)::BIGINT,
			(SELECT MAX(r.updated_at) FROM work_record r WHERE r.budget_id = b.id)
		FROM budget b
		LEFT JOIN contract c ON c.id = b.contract_id
		WHERE b.id = $1`, budgetID).
		Scan(&figures.ID, &figures.ProjectID, &figures.Name, &contractID, &taxRate, &figures.Tags,
			&totalCents, &limitCents, &spentCents, &plannedCents, &avgRateCents, &lastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}

	figures.ContractID = pgInt8ToPtr(contractID)
	figures.TaxRate = pgNumericToDecimalPtr(taxRate)
	figures.Total = centsToMoney(totalCents, r.currency)
	figures.Limit = centsToMoney(limitCents, r.currency)
	figures.Spent = centsToMoney(spentCents, r.currency)
	figures.Planned = centsToMoney(plannedCents, r.currency)
	figures.AvgDailyRate = centsToMoney(avgRateCents, r.currency)
	figures.LastUpdated = pgTimestamptzToPtr(lastUpdated)
	return &figures, nil
}

// FindIDsByTags returns the IDs of a project's budgets carrying any of the tags,
// or all of its budgets when no tags are given
func (r *BudgetRepository) FindIDsByTags(ctx context.Context, projectID int64, tags []string) ([]int64, error) {
	if tags == nil {
		tags = []string{}
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id
		FROM budget
		WHERE project_id = $1 AND (cardinality($2::TEXT[]) = 0 OR tags && $2::TEXT[])
		ORDER BY id`, projectID, tags)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}
