package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dayEquivalentCents mirrors service.DayEquivalent on a row of plan_record or work_record
const dayEquivalentCents = `CEIL(CEIL(r.daily_rate_cents * r.minutes / 60.0) / 8.0)`

// SampleRepository implements domain.SampleRepository using PostgreSQL
type SampleRepository struct {
	pool     *pgxpool.Pool
	currency string
}

// NewSampleRepository creates a new SampleRepository
func NewSampleRepository(pool *pgxpool.Pool, currency string) *SampleRepository {
	return &SampleRepository{
		pool:     pool,
		currency: currency,
	}
}

type periodColumns struct {
	year      string
	index     string
	monthYear string
	month     string
}

func columnsFor(g domain.Granularity, splitByMonth bool) periodColumns {
	switch g {
	case domain.GranularityWeek:
		cols := periodColumns{
			year:      `EXTRACT(ISOYEAR FROM r.date)::INT`,
			index:     `EXTRACT(WEEK FROM r.date)::INT`,
			monthYear: `-1`,
			month:     `-1`,
		}
		if splitByMonth {
			cols.monthYear = `EXTRACT(YEAR FROM r.date)::INT`
			cols.month = `(EXTRACT(MONTH FROM r.date)::INT - 1)`
		}
		return cols
	case domain.GranularityMonth:
		return periodColumns{
			year:      `EXTRACT(YEAR FROM r.date)::INT`,
			index:     `(EXTRACT(MONTH FROM r.date)::INT - 1)`,
			monthYear: `EXTRACT(YEAR FROM r.date)::INT`,
			month:     `(EXTRACT(MONTH FROM r.date)::INT - 1)`,
		}
	default:
		return periodColumns{
			year:      `EXTRACT(YEAR FROM r.date)::INT`,
			index:     `EXTRACT(DOY FROM r.date)::INT`,
			monthYear: `EXTRACT(YEAR FROM r.date)::INT`,
			month:     `(EXTRACT(MONTH FROM r.date)::INT - 1)`,
		}
	}
}

func scopeCondition(scope domain.Scope) (string, any, error) {
	switch scope.Kind {
	case domain.ScopeProject:
		return `b.project_id = $1`, scope.ID, nil
	case domain.ScopeBudget:
		return `r.budget_id = $1`, scope.ID, nil
	case domain.ScopePerson:
		return `r.person_id = $1`, scope.ID, nil
	case domain.ScopeBudgets:
		return `r.budget_id = ANY($1)`, scope.BudgetIDs, nil
	}
	return "", nil, fmt.Errorf("%w: unknown scope kind %d", domain.ErrInvalidInput, scope.Kind)
}

func labelColumn(b domain.Breakdown) string {
	switch b {
	case domain.BreakdownPerson:
		return `p.name`
	case domain.BreakdownBudget:
		return `b.name`
	}
	return `''`
}

// buildAggregateQuery renders the SQL for a sample query and its arguments
func buildAggregateQuery(q domain.SampleQuery) (string, []any, error) {
	table := "work_record"
	if q.Source == domain.SourcePlan {
		table = "plan_record"
	}

	where, scopeArg, err := scopeCondition(q.Scope)
	if err != nil {
		return "", nil, err
	}

	cols := columnsFor(q.Granularity, q.WithTax)
	taxColumn := `NULL::NUMERIC`
	if q.WithTax {
		taxColumn = `COALESCE(c.tax_rate, 0)`
	}

	sql := fmt.Sprintf(`
		SELECT %[1]s AS year, %[2]s AS idx, %[3]s AS month_year, %[4]s AS month,
			SUM(r.minutes)::BIGINT AS minutes,
			SUM(%[5]s)::BIGINT AS amount_cents,
			%[6]s AS tax_rate,
			%[7]s AS label
		FROM %[8]s r
		JOIN budget b ON b.id = r.budget_id
		LEFT JOIN contract c ON c.id = b.contract_id
		LEFT JOIN person p ON p.id = r.person_id
		WHERE %[9]s AND ($2::DATE IS NULL OR r.date >= $2::DATE)
		GROUP BY 1, 2, 3, 4, 7, 8
		ORDER BY 1, 2, 3, 4`,
		cols.year, cols.index, cols.monthYear, cols.month, dayEquivalentCents, taxColumn, labelColumn(q.Breakdown), table, where)

	return sql, []any{scopeArg, sinceArg(q.Since)}, nil
}

// Aggregate runs an aggregate query over plan or work records
func (r *SampleRepository) Aggregate(ctx context.Context, q domain.SampleQuery) ([]domain.Sample, error) {
	sql, args, err := buildAggregateQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s samples: %w", q.Source, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Sample, error) {
		return r.scanSample(row, q.Granularity)
	})
}

// AverageDailyRates returns, per booked day, the minute-weighted average daily rate of a project
func (r *SampleRepository) AverageDailyRates(ctx context.Context, projectID int64, since time.Time) ([]domain.Sample, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(YEAR FROM r.date)::INT AS year, EXTRACT(DOY FROM r.date)::INT AS idx,
			EXTRACT(YEAR FROM r.date)::INT AS month_year, (EXTRACT(MONTH FROM r.date)::INT - 1) AS month,
			SUM(r.minutes)::BIGINT AS minutes,
			ROUND(SUM(r.daily_rate_cents * r.minutes)::NUMERIC / NULLIF(SUM(r.minutes), 0))::BIGINT AS amount_cents,
			NULL::NUMERIC AS tax_rate,
			'' AS label
		FROM work_record r
		JOIN budget b ON b.id = r.budget_id
		WHERE b.project_id = $1 AND ($2::DATE IS NULL OR r.date >= $2::DATE)
		GROUP BY 1, 2, 3, 4
		ORDER BY 1, 2`, projectID, sinceArg(since))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily rates: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Sample, error) {
		return r.scanSample(row, domain.GranularityDay)
	})
}

func (r *SampleRepository) scanSample(row pgx.CollectableRow, g domain.Granularity) (domain.Sample, error) {
	var (
		year, index      int32
		monthYear, month int32
		minutes          int64
		amountCents      pgtype.Int8
		taxRate          pgtype.Numeric
		label            pgtype.Text
	)
	if err := row.Scan(&year, &index, &monthYear, &month, &minutes, &amountCents, &taxRate, &label); err != nil {
		return domain.Sample{}, err
	}

	// -1 marks weeks that were not split at month boundaries
	var monthKey domain.PeriodKey
	if month >= 0 {
		monthKey = domain.MonthKey(int(monthYear), int(month))
	}

	return domain.Sample{
		Period:  domain.PeriodKey{Granularity: g, Year: int(year), Index: int(index)},
		Month:   monthKey,
		Hours:   float64(minutes) / 60,
		Amount:  centsToMoney(amountCents.Int64, r.currency),
		TaxRate: pgNumericToDecimalPtr(taxRate),
		Label:   label.String,
	}, nil
}
