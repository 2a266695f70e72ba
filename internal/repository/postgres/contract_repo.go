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

// ContractRepository implements domain.ContractRepository using PostgreSQL
type ContractRepository struct {
	pool     *pgxpool.Pool
	currency string
}

// NewContractRepository creates a new ContractRepository
func NewContractRepository(pool *pgxpool.Pool, currency string) *ContractRepository {
	return &ContractRepository{
		pool:     pool,
		currency: currency,
	}
}

// GetByID retrieves a contract by ID
func (r *ContractRepository) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	var (
		contract    domain.Contract
		budgetCents int64
		taxRate     pgtype.Numeric
		startDate   pgtype.Date
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, project_id, name, budget_cents, tax_rate, start_date
		FROM contract
		WHERE id = $1`, id).
		Scan(&contract.ID, &contract.ProjectID, &contract.Name, &budgetCents, &taxRate, &startDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContractNotFound
		}
		return nil, err
	}

	contract.Budget = centsToMoney(budgetCents, r.currency)
	contract.TaxRate = pgNumericToDecimalPtr(taxRate)
	contract.StartDate = pgDateToTime(startDate)
	return &contract, nil
}

// GetWorkRecords returns the work records booked on any budget of the contract,
// summed per budget, month and daily rate
func (r *ContractRepository) GetWorkRecords(ctx context.Context, contractID int64) ([]domain.WorkRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.budget_id, EXTRACT(YEAR FROM r.date)::INT, (EXTRACT(MONTH FROM r.date)::INT - 1),
			SUM(r.minutes)::BIGINT, r.daily_rate_cents
		FROM work_record r
		JOIN budget b ON b.id = r.budget_id
		WHERE b.contract_id = $1
		GROUP BY 1, 2, 3, 5
		ORDER BY 2, 3, 1`, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to query work records: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WorkRecord, error) {
		var (
			record      domain.WorkRecord
			year, month int32
			rateCents   int64
		)
		if err := row.Scan(&record.BudgetID, &year, &month, &record.Minutes, &rateCents); err != nil {
			return domain.WorkRecord{}, err
		}
		record.Year = int(year)
		record.Month = int(month)
		record.DailyRate = centsToMoney(rateCents, r.currency)
		return record, nil
	})
}

// GetInvoices returns the invoices of a contract
func (r *ContractRepository) GetInvoices(ctx context.Context, contractID int64) ([]domain.Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT year, month, invoice_sum_cents
		FROM invoice
		WHERE contract_id = $1
		ORDER BY year, month`, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Invoice, error) {
		var (
			year, month int32
			sumCents    int64
		)
		if err := row.Scan(&year, &month, &sumCents); err != nil {
			return domain.Invoice{}, err
		}
		return domain.Invoice{
			Year:  int(year),
			Month: int(month),
			Sum:   centsToMoney(sumCents, r.currency),
		}, nil
	})
}
