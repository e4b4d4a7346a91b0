package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// buildProgress attaches the current spend and alert state to a budget.
func buildProgress(
	ctx context.Context,
	spend SpendCalculator,
	categoryRepo adapter.CategoryRepository,
	b *entity.Budget,
) (*entity.BudgetWithProgress, error) {
	spent, err := spend.ComputeSpend(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("failed to compute budget spend: %w", err)
	}

	var category *entity.Category
	if b.CategoryID != nil {
		category, err = categoryRepo.FindByID(ctx, *b.CategoryID)
		if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, fmt.Errorf("failed to find budget category: %w", err)
		}
	}

	remaining := b.Amount.Sub(spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	percentage, _ := b.PercentageOf(spent)

	return &entity.BudgetWithProgress{
		Budget:     b,
		Category:   category,
		Spent:      spent,
		Remaining:  remaining,
		Percentage: percentage.Round(2),
		State:      b.StateAt(percentage),
	}, nil
}
