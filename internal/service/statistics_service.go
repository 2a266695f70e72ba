package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/dafibh/burnrate/burnrate-backend/internal/util"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultWindow is the number of periods shown when a caller does not ask for a window
const DefaultWindow = 5

// StatisticsService feeds the chart and table builders from the sample repository
type StatisticsService struct {
	sampleRepo domain.SampleRepository
	budgetRepo domain.BudgetRepository
	logger     zerolog.Logger
	now        func() time.Time
}

// NewStatisticsService creates a new StatisticsService
func NewStatisticsService(sampleRepo domain.SampleRepository, budgetRepo domain.BudgetRepository, logger zerolog.Logger) *StatisticsService {
	return &StatisticsService{
		sampleRepo: sampleRepo,
		budgetRepo: budgetRepo,
		logger:     logger.With().Str("component", "statistics_service").Logger(),
		now:        time.Now,
	}
}

// WithClock replaces the clock that decides which period is current
func (s *StatisticsService) WithClock(now func() time.Time) *StatisticsService {
	s.now = now
	return s
}

// Sparkline returns the burned (work) or planned amounts of a scope for the last window periods
func (s *StatisticsService) Sparkline(ctx context.Context, source domain.RecordSource, g domain.Granularity, scope domain.Scope, window int) (*domain.MoneySeries, error) {
	now := s.now()
	since, err := WindowStart(g, window, now)
	if err != nil {
		return nil, err
	}

	samples, err := s.sampleRepo.Aggregate(ctx, domain.SampleQuery{
		Source:      source,
		Granularity: g,
		Scope:       scope,
		Since:       since,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s samples: %w", source, err)
	}

	series, err := BuildMoneySeries(source.String(), g, window, samples, now, false)
	if err != nil {
		return nil, err
	}
	return &series, nil
}

// WorkingHours returns the booked hours of a scope for the last window periods
func (s *StatisticsService) WorkingHours(ctx context.Context, g domain.Granularity, scope domain.Scope, window int) (*domain.HoursSeries, error) {
	now := s.now()
	since, err := WindowStart(g, window, now)
	if err != nil {
		return nil, err
	}

	samples, err := s.sampleRepo.Aggregate(ctx, domain.SampleQuery{
		Source:      domain.SourceWork,
		Granularity: g,
		Scope:       scope,
		Since:       since,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load work samples: %w", err)
	}

	values, err := FillHours(g, window, samples, now)
	if err != nil {
		return nil, err
	}
	return &domain.HoursSeries{Name: "hours", Values: values}, nil
}

// AverageDailyRates returns the average daily rate of a project for each of the last window days
func (s *StatisticsService) AverageDailyRates(ctx context.Context, projectID int64, window int) (*domain.MoneySeries, error) {
	now := s.now()
	since, err := WindowStart(domain.GranularityDay, window, now)
	if err != nil {
		return nil, err
	}

	samples, err := s.sampleRepo.AverageDailyRates(ctx, projectID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily rates: %w", err)
	}

	series, err := BuildMoneySeries("avgDailyRate", domain.GranularityDay, window, samples, now, false)
	if err != nil {
		return nil, err
	}
	return &series, nil
}

// TargetAndActual returns the planned amounts of a scope next to its booked amounts,
// broken down by person or budget, for the last window periods
func (s *StatisticsService) TargetAndActual(ctx context.Context, g domain.Granularity, scope domain.Scope, breakdown domain.Breakdown, window int) (*domain.TargetAndActual, error) {
	now := s.now()
	since, err := WindowStart(g, window, now)
	if err != nil {
		return nil, err
	}

	var plan, actual []domain.Sample
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		plan, err = s.sampleRepo.Aggregate(egCtx, domain.SampleQuery{
			Source: domain.SourcePlan, Granularity: g, Scope: scope, Since: since,
		})
		return err
	})
	eg.Go(func() error {
		var err error
		actual, err = s.sampleRepo.Aggregate(egCtx, domain.SampleQuery{
			Source: domain.SourceWork, Granularity: g, Scope: scope, Since: since, Breakdown: breakdown,
		})
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load samples: %w", err)
	}

	return BuildTargetAndActual(g, window, plan, actual, now, false)
}

// WeeklyTargetAndActualWithTax is the tax-aware weekly TargetAndActual. Weekly gross
// values are shares of their month's gross total, so samples are loaded from the
// first day of the month the window starts in.
func (s *StatisticsService) WeeklyTargetAndActualWithTax(ctx context.Context, scope domain.Scope, breakdown domain.Breakdown, window int) (*domain.TargetAndActual, error) {
	now := s.now()
	windowStart, err := WindowStart(domain.GranularityWeek, window, now)
	if err != nil {
		return nil, err
	}

	in, err := s.loadTaxInputs(ctx, scope, breakdown, util.StartOfMonth(windowStart))
	if err != nil {
		return nil, err
	}

	stats := NewMonthlyStats(in.planMonths, in.actualMonths)
	allocated, err := stats.CalculateCentValuesByMonthlyFraction(in.planWeeks, in.actualWeeks)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("window", window).
		Int("plan_weeks", len(allocated.Plan)).
		Int("actual_weeks", len(allocated.Actual)).
		Msg("Allocated weekly gross values")

	return BuildTargetAndActual(domain.GranularityWeek, window, allocated.Plan, allocated.Actual, now, true)
}

// BudgetRecords returns the joined plan-vs-actual table of a budget over its whole history
func (s *StatisticsService) BudgetRecords(ctx context.Context, budgetID int64, g domain.Granularity, withTax bool) ([]domain.AggregatedRecord, error) {
	scope := domain.Scope{Kind: domain.ScopeBudget, ID: budgetID}

	if withTax && g == domain.GranularityWeek {
		in, err := s.loadTaxInputs(ctx, scope, domain.BreakdownNone, time.Time{})
		if err != nil {
			return nil, err
		}
		return JoinWeeklyByMonthFraction(in.planWeeks, in.actualWeeks, NewMonthlyStats(in.planMonths, in.actualMonths))
	}

	var plan, actual []domain.Sample
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		plan, err = s.sampleRepo.Aggregate(egCtx, domain.SampleQuery{
			Source: domain.SourcePlan, Granularity: g, Scope: scope, WithTax: withTax,
		})
		return err
	})
	eg.Go(func() error {
		var err error
		actual, err = s.sampleRepo.Aggregate(egCtx, domain.SampleQuery{
			Source: domain.SourceWork, Granularity: g, Scope: scope, WithTax: withTax,
		})
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load samples: %w", err)
	}

	switch {
	case withTax:
		return JoinMonthlyWithTax(plan, actual)
	case g == domain.GranularityWeek:
		return JoinWeekly(plan, actual), nil
	default:
		return JoinMonthly(plan, actual), nil
	}
}

// BudgetsByTags resolves a tag filter to a scope over the matching budgets of a project
func (s *StatisticsService) BudgetsByTags(ctx context.Context, projectID int64, tags []string) (domain.Scope, error) {
	ids, err := s.budgetRepo.FindIDsByTags(ctx, projectID, tags)
	if err != nil {
		return domain.Scope{}, fmt.Errorf("failed to find budgets by tags: %w", err)
	}
	return domain.Scope{Kind: domain.ScopeBudgets, ID: projectID, BudgetIDs: ids}, nil
}

type taxInputs struct {
	planMonths   []domain.Sample
	actualMonths []domain.Sample
	planWeeks    []domain.Sample
	actualWeeks  []domain.Sample
}

// loadTaxInputs runs the four tax-aware queries concurrently
func (s *StatisticsService) loadTaxInputs(ctx context.Context, scope domain.Scope, breakdown domain.Breakdown, since time.Time) (*taxInputs, error) {
	in := &taxInputs{}
	queries := []struct {
		q   domain.SampleQuery
		out *[]domain.Sample
	}{
		{domain.SampleQuery{Source: domain.SourcePlan, Granularity: domain.GranularityMonth}, &in.planMonths},
		{domain.SampleQuery{Source: domain.SourceWork, Granularity: domain.GranularityMonth, Breakdown: breakdown}, &in.actualMonths},
		{domain.SampleQuery{Source: domain.SourcePlan, Granularity: domain.GranularityWeek}, &in.planWeeks},
		{domain.SampleQuery{Source: domain.SourceWork, Granularity: domain.GranularityWeek, Breakdown: breakdown}, &in.actualWeeks},
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, query := range queries {
		q := query.q
		q.Scope = scope
		q.Since = since
		q.WithTax = true
		eg.Go(func() error {
			samples, err := s.sampleRepo.Aggregate(egCtx, q)
			if err != nil {
				return err
			}
			*query.out = samples
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load tax samples: %w", err)
	}
	return in, nil
}
