package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// GetBudgetInput represents the input for retrieving a budget.
type GetBudgetInput struct {
	BudgetID uuid.UUID
	UserID   uuid.UUID
}

// GetBudgetOutput represents the output of retrieving a budget.
type GetBudgetOutput struct {
	Budget *entity.BudgetWithProgress
}

// GetBudgetUseCase handles retrieving a single budget with its progress.
type GetBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	spend        SpendCalculator
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(budgetRepo adapter.BudgetRepository, categoryRepo adapter.CategoryRepository, spend SpendCalculator) *GetBudgetUseCase {
	return &GetBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		spend:        spend,
	}
}

// Execute retrieves the budget.
func (uc *GetBudgetUseCase) Execute(ctx context.Context, input GetBudgetInput) (*GetBudgetOutput, error) {
	b, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	progress, err := buildProgress(ctx, uc.spend, uc.categoryRepo, b)
	if err != nil {
		return nil, err
	}

	return &GetBudgetOutput{Budget: progress}, nil
}
