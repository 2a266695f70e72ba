package service

import (
	"slices"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/samber/lo"
)

const (
	sideActual = 0
	sidePlan   = 1
)

// joinBucket accumulates both sides of one period
type joinBucket struct {
	key    domain.PeriodKey
	hours  [2]float64
	counts [2]int
	net    [2]domain.Money
	gross  [2]domain.Money
}

// grossFunc returns the gross value of a sample, or nil for net-only tables
type grossFunc func(domain.Sample) (domain.Money, error)

// JoinWeekly outer-joins weekly plan and actual samples into one row per ISO week
func JoinWeekly(plan, actual []domain.Sample) []domain.AggregatedRecord {
	records, _ := join(domain.GranularityWeek, plan, actual, nil)
	return records
}

// JoinMonthly outer-joins monthly plan and actual samples into one row per month
func JoinMonthly(plan, actual []domain.Sample) []domain.AggregatedRecord {
	records, _ := join(domain.GranularityMonth, plan, actual, nil)
	return records
}

// JoinWeeklyWithTax joins weekly samples and fills the gross columns from each sample's own tax rate
func JoinWeeklyWithTax(plan, actual []domain.Sample) ([]domain.AggregatedRecord, error) {
	return join(domain.GranularityWeek, plan, actual, SampleGross)
}

// JoinMonthlyWithTax joins monthly samples and fills the gross columns from each sample's own tax rate
func JoinMonthlyWithTax(plan, actual []domain.Sample) ([]domain.AggregatedRecord, error) {
	return join(domain.GranularityMonth, plan, actual, SampleGross)
}

// JoinWeeklyByMonthFraction joins weekly samples whose gross values are a share of
// their month's tax-weighted total, as computed by the monthly stats allocator.
func JoinWeeklyByMonthFraction(plan, actual []domain.Sample, stats *MonthlyStats) ([]domain.AggregatedRecord, error) {
	allocated, err := stats.CalculateCentValuesByMonthlyFraction(plan, actual)
	if err != nil {
		return nil, err
	}
	return join(domain.GranularityWeek, allocated.Plan, allocated.Actual, allocatedGross)
}

func allocatedGross(s domain.Sample) (domain.Money, error) {
	if s.Gross != nil {
		return *s.Gross, nil
	}
	return SampleGross(s)
}

func join(g domain.Granularity, plan, actual []domain.Sample, grossOf grossFunc) ([]domain.AggregatedRecord, error) {
	buckets := make(map[domain.PeriodKey]*joinBucket)

	add := func(side int, samples []domain.Sample) error {
		for _, s := range samples {
			key := domain.PeriodKey{Granularity: g, Year: s.Period.Year, Index: s.Period.Index}
			b, ok := buckets[key]
			if !ok {
				b = &joinBucket{key: key}
				for i := range b.net {
					b.net[i] = domain.ZeroMoney()
					b.gross[i] = domain.ZeroMoney()
				}
				buckets[key] = b
			}
			b.hours[side] += s.Hours
			b.counts[side]++
			b.net[side] = b.net[side].Plus(s.Amount)
			if grossOf != nil {
				gross, err := grossOf(s)
				if err != nil {
					return err
				}
				b.gross[side] = b.gross[side].Plus(gross)
			}
		}
		return nil
	}

	if err := add(sideActual, actual); err != nil {
		return nil, err
	}
	if err := add(sidePlan, plan); err != nil {
		return nil, err
	}

	keys := lo.Keys(buckets)
	slices.SortFunc(keys, domain.PeriodKey.Compare)

	records := make([]domain.AggregatedRecord, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		record := domain.AggregatedRecord{
			Period:        k,
			Title:         k.Title(),
			StartDate:     k.Start(),
			EndDate:       k.End(),
			Hours:         b.hoursOf(),
			BudgetBurned:  b.net[sideActual],
			BudgetPlanned: b.net[sidePlan],
		}
		if grossOf != nil {
			burned, planned := b.gross[sideActual], b.gross[sidePlan]
			record.BudgetBurnedGross = &burned
			record.BudgetPlannedGross = &planned
		}
		records = append(records, record)
	}
	return records, nil
}

// hoursOf takes the booked hours whenever work was booked for the period and the
// planned hours only for periods without any booking
func (b *joinBucket) hoursOf() float64 {
	if b.counts[sideActual] == 0 {
		return b.hours[sidePlan]
	}
	return b.hours[sideActual]
}
