package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sample is one pre-aggregated bucket of plan or actual data as delivered by the
// persistence layer. Samples carry no identity; they are value objects.
type Sample struct {
	Period PeriodKey `json:"period"`
	// Month is the calendar month a weekly sample falls in. A week spanning two
	// months is delivered as two samples, one per month.
	Month   PeriodKey        `json:"month"`
	Hours   float64          `json:"hours"`
	Amount  Money            `json:"amount"`
	TaxRate *decimal.Decimal `json:"taxRate,omitempty"`
	// Gross is set once a tax allocation has been applied
	Gross *Money `json:"gross,omitempty"`
	Label string `json:"label,omitempty"`
}

// MonthPeriod returns the month a sample belongs to: its own key for monthly
// samples, Month when set, otherwise the month its period starts in.
func (s Sample) MonthPeriod() PeriodKey {
	switch {
	case s.Period.Granularity == GranularityMonth:
		return s.Period
	case s.Month.Granularity == GranularityMonth:
		return s.Month
	}
	return PeriodOf(GranularityMonth, s.Period.Start())
}

// AggregatedRecord is one row of a joined plan-vs-actual table
type AggregatedRecord struct {
	Period        PeriodKey `json:"-"`
	Title         string    `json:"aggregationPeriodTitle"`
	StartDate     time.Time `json:"aggregationPeriodStart"`
	EndDate       time.Time `json:"aggregationPeriodEnd"`
	Hours         float64   `json:"hours"`
	BudgetBurned  Money     `json:"budgetBurned"`
	BudgetPlanned Money     `json:"budgetPlanned"`
	// Gross values are only present in tax-aware tables
	BudgetBurnedGross  *Money `json:"budgetBurnedGross,omitempty"`
	BudgetPlannedGross *Money `json:"budgetPlannedGross,omitempty"`
}

// MoneySeries is a named chart series, one value per period
type MoneySeries struct {
	Name        string  `json:"name"`
	Values      []Money `json:"values"`
	ValuesGross []Money `json:"valuesGross,omitempty"`
}

// HoursSeries is a named chart series of hours, one value per period
type HoursSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// TargetAndActual pairs a plan series with one actual series per label
type TargetAndActual struct {
	Target MoneySeries   `json:"target"`
	Actual []MoneySeries `json:"actual"`
}
