package service

import (
	"context"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
)

// BudgetService provides budget level figures
type BudgetService struct {
	budgetRepo domain.BudgetRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository) *BudgetService {
	return &BudgetService{
		budgetRepo: budgetRepo,
	}
}

// GetSummary loads a budget and derives its remaining, unplanned and gross values
func (s *BudgetService) GetSummary(ctx context.Context, budgetID int64) (*domain.BudgetSummary, error) {
	figures, err := s.budgetRepo.GetFigures(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	return SummarizeBudget(*figures)
}
