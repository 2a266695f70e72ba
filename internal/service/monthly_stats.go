package service

import (
	"slices"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// MonthlyStats holds the month-level, tax-aware totals that weekly gross values
// are derived from. Plan samples are unlabelled; actual samples carry a label
// (person or budget name) and are allocated per label.
type MonthlyStats struct {
	plan   []domain.Sample
	actual []domain.Sample
}

// AllocatedWeeks are copies of the weekly samples with Gross set
type AllocatedWeeks struct {
	Plan   []domain.Sample
	Actual []domain.Sample
}

type monthTotal struct {
	hours float64
	net   domain.Money
	gross domain.Money
}

// NewMonthlyStats creates month-level stats from monthly plan and actual samples
func NewMonthlyStats(plan, actual []domain.Sample) *MonthlyStats {
	return &MonthlyStats{
		plan:   slices.Clone(plan),
		actual: slices.Clone(actual),
	}
}

// Plan returns the current plan buckets
func (s *MonthlyStats) Plan() []domain.Sample {
	return slices.Clone(s.plan)
}

// SumPlanStats merges plan samples into one bucket per month. Hours and net amounts
// are added; the gross amount is the sum of each sample's gross, so the merged
// bucket keeps the tax weighting of its parts. Calling it twice is a no-op.
func (s *MonthlyStats) SumPlanStats() error {
	totals, err := monthTotals(s.plan)
	if err != nil {
		return err
	}

	keys := lo.Keys(totals)
	slices.SortFunc(keys, domain.PeriodKey.Compare)

	merged := make([]domain.Sample, 0, len(keys))
	for _, k := range keys {
		t := totals[k]
		gross := t.gross
		merged = append(merged, domain.Sample{
			Period: k,
			Month:  k,
			Hours:  t.hours,
			Amount: t.net,
			Gross:  &gross,
		})
	}
	s.plan = merged
	return nil
}

// CalculateCentValuesByMonthlyFraction distributes each month's gross total over the
// weeks of that month in proportion to their hours. For every month the weekly
// hours are summed; each week gets monthGross * weekHours / monthHours, rounded up
// to cents (zero when the month has no hours). The plan side uses the plan month
// totals; the actual side is allocated independently per label against that
// label's own month totals. Inputs are left untouched.
func (s *MonthlyStats) CalculateCentValuesByMonthlyFraction(weekPlan, weekActual []domain.Sample) (*AllocatedWeeks, error) {
	if err := s.SumPlanStats(); err != nil {
		return nil, err
	}

	planTotals, err := monthTotals(s.plan)
	if err != nil {
		return nil, err
	}
	plan := make([]domain.Sample, len(weekPlan))
	if err := allocate(weekPlan, lo.Range(len(weekPlan)), planTotals, plan); err != nil {
		return nil, err
	}

	actual := make([]domain.Sample, len(weekActual))
	statsByLabel := lo.GroupBy(s.actual, func(sample domain.Sample) string { return sample.Label })
	indexesByLabel := make(map[string][]int)
	for i, sample := range weekActual {
		indexesByLabel[sample.Label] = append(indexesByLabel[sample.Label], i)
	}

	// each label writes only its own indexes of actual
	var g errgroup.Group
	for label, indexes := range indexesByLabel {
		g.Go(func() error {
			totals, err := monthTotals(statsByLabel[label])
			if err != nil {
				return err
			}
			return allocate(weekActual, indexes, totals, actual)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &AllocatedWeeks{Plan: plan, Actual: actual}, nil
}

// allocate writes the allocated copies of weeks[i] for every i in indexes into out[i]
func allocate(weeks []domain.Sample, indexes []int, totals map[domain.PeriodKey]monthTotal, out []domain.Sample) error {
	monthHours := make(map[domain.PeriodKey]float64)
	for _, i := range indexes {
		monthHours[weeks[i].MonthPeriod()] += weeks[i].Hours
	}

	for _, i := range indexes {
		week := weeks[i]
		month := week.MonthPeriod()

		var gross domain.Money
		total, ok := totals[month]
		switch {
		case !ok:
			// no month figures: fall back to the week's own rate
			fallback, err := weekOwnGross(week)
			if err != nil {
				return err
			}
			gross = fallback
		case monthHours[month] == 0:
			gross = domain.ZeroMoney()
		default:
			gross = total.gross.MulDiv(
				decimal.NewFromFloat(week.Hours),
				decimal.NewFromFloat(monthHours[month]),
				domain.RoundCeiling,
			)
		}

		week.Gross = &gross
		out[i] = week
	}
	return nil
}

func weekOwnGross(week domain.Sample) (domain.Money, error) {
	if week.TaxRate == nil {
		return week.Amount, nil
	}
	return SampleGross(week)
}

// monthTotals sums samples per month. Samples that already carry a gross value
// (merged buckets) contribute it as is.
func monthTotals(samples []domain.Sample) (map[domain.PeriodKey]monthTotal, error) {
	totals := make(map[domain.PeriodKey]monthTotal)
	for _, sample := range samples {
		var gross domain.Money
		if sample.Gross != nil {
			gross = *sample.Gross
		} else {
			g, err := weekOwnGross(sample)
			if err != nil {
				return nil, err
			}
			gross = g
		}

		key := sample.MonthPeriod()
		t := totals[key]
		t.hours += sample.Hours
		t.net = t.net.Plus(sample.Amount)
		t.gross = t.gross.Plus(gross)
		totals[key] = t
	}
	return totals, nil
}
