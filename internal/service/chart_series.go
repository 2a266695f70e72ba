package service

import (
	"slices"
	"strings"
	"time"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/samber/lo"
)

const (
	TargetSeriesName = "Target"
	ActualSeriesName = "Actual"
)

// BuildMoneySeries gap-fills samples into one named series. Gross values are
// filled as well when withGross is set.
func BuildMoneySeries(name string, g domain.Granularity, window int, samples []domain.Sample, now time.Time, withGross bool) (domain.MoneySeries, error) {
	values, err := FillMoney(g, window, samples, now)
	if err != nil {
		return domain.MoneySeries{}, err
	}
	series := domain.MoneySeries{Name: name, Values: values}
	if withGross {
		gross, err := FillGross(g, window, samples, now)
		if err != nil {
			return domain.MoneySeries{}, err
		}
		series.ValuesGross = gross
	}
	return series, nil
}

// BuildTargetAndActual builds the plan series and one actual series per label,
// all of the same length, with the actual series sorted by name
func BuildTargetAndActual(g domain.Granularity, window int, plan, actual []domain.Sample, now time.Time, withGross bool) (*domain.TargetAndActual, error) {
	target, err := BuildMoneySeries(TargetSeriesName, g, window, plan, now, withGross)
	if err != nil {
		return nil, err
	}

	byLabel := lo.GroupBy(actual, func(s domain.Sample) string {
		if s.Label == "" {
			return ActualSeriesName
		}
		return s.Label
	})
	labels := lo.Keys(byLabel)
	slices.SortFunc(labels, strings.Compare)

	series := make([]domain.MoneySeries, 0, len(labels))
	for _, label := range labels {
		s, err := BuildMoneySeries(label, g, window, byLabel[label], now, withGross)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}

	return &domain.TargetAndActual{Target: target, Actual: series}, nil
}
