package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Contract struct {
	ID        int64            `json:"id"`
	ProjectID int64            `json:"projectId"`
	Name      string           `json:"name"`
	Budget    Money            `json:"budget"`
	TaxRate   *decimal.Decimal `json:"taxRate,omitempty"`
	StartDate time.Time        `json:"startDate"`
}

// WorkRecord is the minimal view of a booked work record needed for contract progress.
// Month is zero-based.
type WorkRecord struct {
	BudgetID  int64 `json:"budgetId"`
	Year      int   `json:"year"`
	Month     int   `json:"month"`
	Minutes   int64 `json:"minutes"`
	DailyRate Money `json:"dailyRate"`
}

// Invoice is an amount billed against a contract for one month. Month is zero-based.
type Invoice struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Sum   Money `json:"sum"`
}

// ContractPeriodStatistic summarises a contract's progress for a year and month
type ContractPeriodStatistic struct {
	Year          int              `json:"year"`
	Month         int              `json:"month"`
	ProgressRatio *decimal.Decimal `json:"progress"`
	Spent         Money            `json:"spentBudget"`
	Remaining     Money            `json:"remainingContractBudget"`
	Invoiced      Money            `json:"invoicedBudget"`
}

// ContractRepository defines the data the contract statistics need
type ContractRepository interface {
	GetByID(ctx context.Context, id int64) (*Contract, error)
	GetWorkRecords(ctx context.Context, contractID int64) ([]WorkRecord, error)
	GetInvoices(ctx context.Context, contractID int64) ([]Invoice, error)
}
