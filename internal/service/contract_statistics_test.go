package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/dafibh/burnrate/burnrate-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractFixture(t *testing.T) (domain.Contract, []domain.WorkRecord, []domain.Invoice) {
	t.Helper()
	contract := domain.Contract{
		ID:        3,
		Name:      "Framework agreement",
		Budget:    money(t, "10000.00"),
		StartDate: time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	dailyRate := money(t, "800.00")
	records := []domain.WorkRecord{
		{Year: 2015, Month: 0, Minutes: 480, DailyRate: dailyRate},
		{Year: 2015, Month: 1, Minutes: 240, DailyRate: dailyRate},
		{Year: 2015, Month: 2, Minutes: 480, DailyRate: dailyRate},
		// booked before the year of interest
		{Year: 2014, Month: 11, Minutes: 60, DailyRate: dailyRate},
	}
	invoices := []domain.Invoice{
		{Year: 2015, Month: 0, Sum: money(t, "800.00")},
		{Year: 2015, Month: 2, Sum: money(t, "500.00")},
	}
	return contract, records, invoices
}

func TestCalculateStatisticAsOf(t *testing.T) {
	contract, records, invoices := contractFixture(t)

	stat, err := CalculateStatisticAsOf(contract, records, invoices, 2015, 1)
	require.NoError(t, err)

	// Dec 100.00 + Jan 800.00 + Feb 400.00
	assert.Equal(t, "1300.00", stat.Spent.String())
	assert.Equal(t, "8700.00", stat.Remaining.String())
	assert.Equal(t, "800.00", stat.Invoiced.String())
	require.NotNil(t, stat.ProgressRatio)
	assert.Equal(t, "0.13", stat.ProgressRatio.StringFixed(2))
	assert.Equal(t, 2015, stat.Year)
	assert.Equal(t, 1, stat.Month)
}

func TestCalculateStatisticForMonth(t *testing.T) {
	contract, records, invoices := contractFixture(t)

	stat, err := CalculateStatisticForMonth(contract, records, invoices, 2015, 2)
	require.NoError(t, err)

	assert.Equal(t, "800.00", stat.Spent.String())
	assert.Equal(t, "9200.00", stat.Remaining.String())
	assert.Equal(t, "1300.00", stat.Invoiced.String())
	// cumulative 2100.00 of 10000.00 = 0.21
	assert.Equal(t, "0.21", stat.ProgressRatio.StringFixed(2))
}

func TestCalculateStatistic_ProgressRoundsUp(t *testing.T) {
	contract := domain.Contract{Budget: money(t, "3000.00")}
	records := []domain.WorkRecord{{Year: 2015, Month: 0, Minutes: 480, DailyRate: money(t, "1000.00")}}

	stat, err := CalculateStatisticAsOf(contract, records, nil, 2015, 0)
	require.NoError(t, err)
	// 1/3 rounds up
	assert.Equal(t, "0.34", stat.ProgressRatio.StringFixed(2))
}

func TestCalculateStatistic_ZeroBudget(t *testing.T) {
	contract := domain.Contract{Budget: domain.ZeroMoney()}
	records := []domain.WorkRecord{{Year: 2015, Month: 0, Minutes: 480, DailyRate: money(t, "800.00")}}

	stat, err := CalculateStatisticAsOf(contract, records, nil, 2015, 0)
	require.NoError(t, err)
	assert.Nil(t, stat.ProgressRatio)
	assert.Equal(t, "-800.00", stat.Remaining.String())
}

func TestCalculateStatistic_InvalidMonth(t *testing.T) {
	contract, records, invoices := contractFixture(t)

	for _, month := range []int{-1, 12} {
		_, err := CalculateStatisticAsOf(contract, records, invoices, 2015, month)
		if !errors.Is(err, domain.ErrInvalidPeriod) {
			t.Errorf("CalculateStatisticAsOf(month %d) error = %v, want ErrInvalidPeriod", month, err)
		}
		_, err = CalculateStatisticForMonth(contract, records, invoices, 2015, month)
		if !errors.Is(err, domain.ErrInvalidPeriod) {
			t.Errorf("CalculateStatisticForMonth(month %d) error = %v, want ErrInvalidPeriod", month, err)
		}
	}
}

func newContractService(t *testing.T) (*ContractStatisticsService, *testutil.MockContractRepository) {
	t.Helper()
	contract, records, invoices := contractFixture(t)

	repo := testutil.NewMockContractRepository()
	repo.AddContract(&contract)
	repo.AddWorkRecords(contract.ID, records...)
	repo.AddInvoices(contract.ID, invoices...)

	svc := NewContractStatisticsService(repo).WithClock(func() time.Time {
		return time.Date(2015, time.March, 15, 0, 0, 0, 0, time.UTC)
	})
	return svc, repo
}

func TestContractStatisticsService_MonthlyStatistics(t *testing.T) {
	svc, _ := newContractService(t)

	stats, err := svc.MonthlyStatistics(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, stats, 3)

	spent := make([]string, len(stats))
	for i, s := range stats {
		spent[i] = s.Spent.String()
	}
	assert.Equal(t, []string{"800.00", "400.00", "800.00"}, spent)
	assert.Equal(t, 0, stats[0].Month)
	assert.Equal(t, 2, stats[2].Month)
}

func TestContractStatisticsService_StatisticAsOf(t *testing.T) {
	svc, _ := newContractService(t)

	stat, err := svc.StatisticAsOf(context.Background(), 3, 2015, 2)
	require.NoError(t, err)
	assert.Equal(t, "2100.00", stat.Spent.String())

	single, err := svc.StatisticForMonth(context.Background(), 3, 2015, 2)
	require.NoError(t, err)
	assert.Equal(t, "800.00", single.Spent.String())
}

func TestContractStatisticsService_NotFound(t *testing.T) {
	svc, _ := newContractService(t)

	_, err := svc.StatisticAsOf(context.Background(), 99, 2015, 2)
	assert.ErrorIs(t, err, domain.ErrContractNotFound)

	_, err = svc.MonthlyStatistics(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrContractNotFound)
}

func TestContractStatisticsService_RepositoryError(t *testing.T) {
	svc, repo := newContractService(t)
	repo.GetByIDFn = func(ctx context.Context, id int64) (*domain.Contract, error) {
		return nil, errors.New("connection reset")
	}

	_, err := svc.StatisticForMonth(context.Background(), 3, 2015, 2)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrContractNotFound))
}
