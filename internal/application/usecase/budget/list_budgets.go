package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID     uuid.UUID
	ActiveOnly bool
	CategoryID *uuid.UUID
	Period     *entity.BudgetPeriod
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*entity.BudgetWithProgress
}

// ListBudgetsUseCase handles listing a user's budgets with their progress.
type ListBudgetsUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	spend        SpendCalculator
	clock        adapter.Clock
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	spend SpendCalculator,
	clock adapter.Clock,
) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		spend:        spend,
		clock:        clock,
	}
}

// Execute lists the budgets.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	if input.Period != nil && !input.Period.IsValid() {
		return nil, invalidPeriodError()
	}

	filter := adapter.BudgetFilter{
		UserID:     input.UserID,
		CategoryID: input.CategoryID,
		Period:     input.Period,
	}
	if input.ActiveOnly {
		now := uc.clock.Now()
		filter.ActiveOn = &now
	}

	budgets, err := uc.budgetRepo.FindByUser(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	result := make([]*entity.BudgetWithProgress, 0, len(budgets))
	for _, b := range budgets {
		progress, err := buildProgress(ctx, uc.spend, uc.categoryRepo, b)
		if err != nil {
			return nil, err
		}
		result = append(result, progress)
	}

	return &ListBudgetsOutput{Budgets: result}, nil
}
