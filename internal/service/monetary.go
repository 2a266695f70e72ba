package service

import (
	"fmt"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	MinutesPerHour = 60
	HoursPerDay    = 8
)

var (
	minutesPerHour = decimal.NewFromInt(MinutesPerHour)
	hoursPerDay    = decimal.NewFromInt(HoursPerDay)
	hundred        = decimal.NewFromInt(100)
)

// DayEquivalent converts booked minutes at a daily rate into money:
// rate*minutes/60, rounded up to cents, then /8, rounded up to cents.
func DayEquivalent(minutes int64, dailyRate domain.Money) domain.Money {
	return dailyRate.
		MultipliedBy(decimal.NewFromInt(minutes), domain.RoundCeiling).
		DividedBy(minutesPerHour, domain.RoundCeiling).
		DividedBy(hoursPerDay, domain.RoundCeiling)
}

// TaxCoefficient returns 1 + rate/100. A missing rate means no tax.
func TaxCoefficient(rate *decimal.Decimal) (decimal.Decimal, error) {
	if rate == nil {
		return decimal.NewFromInt(1), nil
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrNegativeTaxRate, rate.String())
	}
	return decimal.NewFromInt(1).Add(rate.Div(hundred)), nil
}

// Gross applies a tax coefficient, rounding down to cents
func Gross(net domain.Money, coefficient decimal.Decimal) domain.Money {
	return net.MultipliedBy(coefficient, domain.RoundFloor)
}

// SampleGross returns the gross amount of a single sample from its own tax rate.
// Samples without a rate are rejected because a tax-aware table cannot guess one.
func SampleGross(s domain.Sample) (domain.Money, error) {
	if s.TaxRate == nil {
		return domain.Money{}, fmt.Errorf("%w: %s", domain.ErrMissingTaxRate, s.Period.Title())
	}
	coefficient, err := TaxCoefficient(s.TaxRate)
	if err != nil {
		return domain.Money{}, err
	}
	return Gross(s.Amount, coefficient), nil
}

// SummarizeBudget derives the remaining, unplanned and gross values of a budget.
// Budgets without a contract use a coefficient of 1.
func SummarizeBudget(figures domain.BudgetFigures) (*domain.BudgetSummary, error) {
	coefficient, err := TaxCoefficient(figures.TaxRate)
	if err != nil {
		return nil, err
	}

	remaining := figures.Total.Minus(figures.Spent)
	unplanned := figures.Total.Minus(figures.Planned)

	return &domain.BudgetSummary{
		BudgetFigures:     figures,
		TaxCoefficient:    coefficient,
		Remaining:         remaining,
		Unplanned:         unplanned,
		TotalGross:        Gross(figures.Total, coefficient),
		SpentGross:        Gross(figures.Spent, coefficient),
		RemainingGross:    Gross(remaining, coefficient),
		UnplannedGross:    Gross(unplanned, coefficient),
		AvgDailyRateGross: Gross(figures.AvgDailyRate, coefficient),
		LimitReached:      LimitReached(figures.Limit, figures.Spent),
	}, nil
}

// LimitReached reports whether a configured (non-zero) limit has been spent
func LimitReached(limit, spent domain.Money) bool {
	if limit.IsZero() {
		return false
	}
	return spent.Cmp(limit) >= 0
}
