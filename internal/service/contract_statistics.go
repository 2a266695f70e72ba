package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/dafibh/burnrate/burnrate-backend/internal/util"
	"github.com/shopspring/decimal"
)

// ProgressRatioPlaces is the precision of a contract's progress ratio; it is rounded up
const ProgressRatioPlaces = 2

// CalculateStatisticAsOf reports a contract's progress up to and including the given
// zero-based month. Spent and remaining are cumulative.
func CalculateStatisticAsOf(contract domain.Contract, records []domain.WorkRecord, invoices []domain.Invoice, year, month int) (*domain.ContractPeriodStatistic, error) {
	if err := domain.MonthKey(year, month).Validate(); err != nil {
		return nil, err
	}

	progress := workRecordBudget(records, func(r domain.WorkRecord) bool {
		return util.IsMonthOnOrBefore(r.Year, r.Month, year, month)
	})

	return &domain.ContractPeriodStatistic{
		Year:          year,
		Month:         month,
		ProgressRatio: progressRatio(progress, contract.Budget),
		Spent:         progress,
		Remaining:     contract.Budget.Minus(progress),
		Invoiced:      invoicedUntil(invoices, year, month),
	}, nil
}

// CalculateStatisticForMonth reports what was spent in exactly the given zero-based month.
// Remaining is the contract budget minus that month's spend; the progress ratio and the
// invoiced amount stay cumulative.
func CalculateStatisticForMonth(contract domain.Contract, records []domain.WorkRecord, invoices []domain.Invoice, year, month int) (*domain.ContractPeriodStatistic, error) {
	if err := domain.MonthKey(year, month).Validate(); err != nil {
		return nil, err
	}

	spent := workRecordBudget(records, func(r domain.WorkRecord) bool {
		return r.Year == year && r.Month == month
	})
	progress := workRecordBudget(records, func(r domain.WorkRecord) bool {
		return util.IsMonthOnOrBefore(r.Year, r.Month, year, month)
	})

	return &domain.ContractPeriodStatistic{
		Year:          year,
		Month:         month,
		ProgressRatio: progressRatio(progress, contract.Budget),
		Spent:         spent,
		Remaining:     contract.Budget.Minus(spent),
		Invoiced:      invoicedUntil(invoices, year, month),
	}, nil
}

func workRecordBudget(records []domain.WorkRecord, include func(domain.WorkRecord) bool) domain.Money {
	total := domain.ZeroMoney()
	for _, r := range records {
		if include(r) {
			total = total.Plus(DayEquivalent(r.Minutes, r.DailyRate))
		}
	}
	return total
}

func invoicedUntil(invoices []domain.Invoice, year, month int) domain.Money {
	total := domain.ZeroMoney()
	for _, inv := range invoices {
		if util.IsMonthOnOrBefore(inv.Year, inv.Month, year, month) {
			total = total.Plus(inv.Sum)
		}
	}
	return total
}

// progressRatio is nil for a contract without budget
func progressRatio(progress, budget domain.Money) *decimal.Decimal {
	if budget.IsZero() {
		return nil
	}
	ratio := progress.Ratio(budget, ProgressRatioPlaces)
	return &ratio
}

// ContractStatisticsService loads contract data and computes its statistics
type ContractStatisticsService struct {
	contractRepo domain.ContractRepository
	now          func() time.Time
}

// NewContractStatisticsService creates a new ContractStatisticsService
func NewContractStatisticsService(contractRepo domain.ContractRepository) *ContractStatisticsService {
	return &ContractStatisticsService{
		contractRepo: contractRepo,
		now:          time.Now,
	}
}

// WithClock replaces the clock used to determine the current month
func (s *ContractStatisticsService) WithClock(now func() time.Time) *ContractStatisticsService {
	s.now = now
	return s
}

type contractData struct {
	contract *domain.Contract
	records  []domain.WorkRecord
	invoices []domain.Invoice
}

func (s *ContractStatisticsService) load(ctx context.Context, contractID int64) (*contractData, error) {
	contract, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	records, err := s.contractRepo.GetWorkRecords(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to load work records: %w", err)
	}
	invoices, err := s.contractRepo.GetInvoices(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	return &contractData{contract: contract, records: records, invoices: invoices}, nil
}

// StatisticAsOf returns the cumulative statistic of a contract up to the given month
func (s *ContractStatisticsService) StatisticAsOf(ctx context.Context, contractID int64, year, month int) (*domain.ContractPeriodStatistic, error) {
	data, err := s.load(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return CalculateStatisticAsOf(*data.contract, data.records, data.invoices, year, month)
}

// StatisticForMonth returns the statistic of a contract for exactly the given month
func (s *ContractStatisticsService) StatisticForMonth(ctx context.Context, contractID int64, year, month int) (*domain.ContractPeriodStatistic, error) {
	data, err := s.load(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return CalculateStatisticForMonth(*data.contract, data.records, data.invoices, year, month)
}

// MonthlyStatistics returns one per-month statistic for every month from the
// contract's start up to the current month
func (s *ContractStatisticsService) MonthlyStatistics(ctx context.Context, contractID int64) ([]domain.ContractPeriodStatistic, error) {
	data, err := s.load(ctx, contractID)
	if err != nil {
		return nil, err
	}

	months := util.MonthsBetween(data.contract.StartDate, s.now())
	stats := make([]domain.ContractPeriodStatistic, 0, len(months))
	for _, ym := range months {
		stat, err := CalculateStatisticForMonth(*data.contract, data.records, data.invoices, ym[0], ym[1])
		if err != nil {
			return nil, err
		}
		stats = append(stats, *stat)
	}
	return stats, nil
}
