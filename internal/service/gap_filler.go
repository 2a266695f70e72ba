package service

import (
	"fmt"
	"time"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
)

// Window returns the window keys ending at the period containing now, oldest first.
// The first key is the current period moved back window-1 steps on the calendar.
func Window(g domain.Granularity, window int, now time.Time) ([]domain.PeriodKey, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidWindow, window)
	}
	current := domain.PeriodOf(g, now)
	first := current.Add(-(window - 1))

	keys := make([]domain.PeriodKey, window)
	for i := range keys {
		keys[i] = first.Add(i)
	}
	return keys, nil
}

// WindowStart returns the first calendar day of a window; queries use it as lower bound
func WindowStart(g domain.Granularity, window int, now time.Time) (time.Time, error) {
	keys, err := Window(g, window, now)
	if err != nil {
		return time.Time{}, err
	}
	return keys[0].Start(), nil
}

// FillMoney returns exactly window amounts, one per period, ending with the current
// period. Periods without samples are zero; duplicate samples are summed; samples
// outside the window are ignored.
func FillMoney(g domain.Granularity, window int, samples []domain.Sample, now time.Time) ([]domain.Money, error) {
	return fill(g, window, samples, now, func(s domain.Sample) domain.Money { return s.Amount })
}

// FillGross works like FillMoney on the samples' gross values, falling back to the
// net amount when a sample carries none
func FillGross(g domain.Granularity, window int, samples []domain.Sample, now time.Time) ([]domain.Money, error) {
	return fill(g, window, samples, now, func(s domain.Sample) domain.Money {
		if s.Gross != nil {
			return *s.Gross
		}
		return s.Amount
	})
}

// FillHours returns exactly window hour totals, one per period, ending with the current period
func FillHours(g domain.Granularity, window int, samples []domain.Sample, now time.Time) ([]float64, error) {
	keys, err := Window(g, window, now)
	if err != nil {
		return nil, err
	}
	byKey := make(map[domain.PeriodKey]float64, len(samples))
	for _, s := range samples {
		byKey[normalize(g, s.Period)] += s.Hours
	}
	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = byKey[k]
	}
	return values, nil
}

func fill(g domain.Granularity, window int, samples []domain.Sample, now time.Time, value func(domain.Sample) domain.Money) ([]domain.Money, error) {
	keys, err := Window(g, window, now)
	if err != nil {
		return nil, err
	}
	byKey := make(map[domain.PeriodKey]domain.Money, len(samples))
	for _, s := range samples {
		k := normalize(g, s.Period)
		byKey[k] = byKey[k].Plus(value(s))
	}
	values := make([]domain.Money, len(keys))
	for i, k := range keys {
		values[i] = byKey[k]
	}
	return values, nil
}

func normalize(g domain.Granularity, k domain.PeriodKey) domain.PeriodKey {
	k.Granularity = g
	return k
}
