package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetFigures are the stored and aggregated numbers of one budget
type BudgetFigures struct {
	ID           int64            `json:"id"`
	ProjectID    int64            `json:"projectId"`
	Name         string           `json:"name"`
	ContractID   *int64           `json:"contractId,omitempty"`
	TaxRate      *decimal.Decimal `json:"taxRate,omitempty"`
	Tags         []string         `json:"tags"`
	Total        Money            `json:"total"`
	Limit        Money            `json:"limit"`
	Spent        Money            `json:"spent"`
	Planned      Money            `json:"planned"`
	AvgDailyRate Money            `json:"avgDailyRate"`
	LastUpdated  *time.Time       `json:"lastUpdated,omitempty"`
}

// BudgetSummary extends BudgetFigures with derived and gross values
type BudgetSummary struct {
	BudgetFigures
	TaxCoefficient    decimal.Decimal `json:"taxCoefficient"`
	Remaining         Money           `json:"remaining"`
	Unplanned         Money           `json:"unplanned"`
	TotalGross        Money           `json:"totalGross"`
	SpentGross        Money           `json:"spentGross"`
	RemainingGross    Money           `json:"remainingGross"`
	UnplannedGross    Money           `json:"unplannedGross"`
	AvgDailyRateGross Money           `json:"avgDailyRateGross"`
	LimitReached      bool            `json:"limitReached"`
}

// BudgetRepository defines the budget lookups the reports need
type BudgetRepository interface {
	GetFigures(ctx context.Context, budgetID int64) (*BudgetFigures, error)
	FindIDsByTags(ctx context.Context, projectID int64, tags []string) ([]int64, error)
}

// RecordSource selects plan records or booked work records
type RecordSource int

const (
	SourceWork RecordSource = iota
	SourcePlan
)

func (s RecordSource) String() string {
	if s == SourcePlan {
		return "plan"
	}
	return "work"
}

// ScopeKind selects which records a query covers
type ScopeKind int

const (
	ScopeProject ScopeKind = iota
	ScopeBudget
	ScopePerson
	ScopeBudgets
)

// Scope narrows a sample query to a project, a budget, a person or a set of budgets
type Scope struct {
	Kind      ScopeKind
	ID        int64
	BudgetIDs []int64
}

// Breakdown selects how samples are labelled
type Breakdown int

const (
	BreakdownNone Breakdown = iota
	BreakdownPerson
	BreakdownBudget
)

// SampleQuery describes one aggregate query against plan or work records
type SampleQuery struct {
	Source      RecordSource
	Granularity Granularity
	Scope       Scope
	// Since is inclusive; the zero time means no lower bound
	Since     time.Time
	Breakdown Breakdown
	// WithTax groups by tax rate as well, so each sample carries one rate.
	// Weekly samples are then also split at month boundaries.
	WithTax bool
}

// SampleRepository delivers pre-aggregated samples
type SampleRepository interface {
	Aggregate(ctx context.Context, q SampleQuery) ([]Sample, error)
	// AverageDailyRates returns one day sample per booked day with the average daily rate as amount
	AverageDailyRates(ctx context.Context, projectID int64, since time.Time) ([]Sample, error)
}
