package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

const (
	minAlertThreshold = 1
	maxAlertThreshold = entity.ExceededPercentage
)

// findOwnedBudget loads a budget and checks that userID owns it.
func findOwnedBudget(ctx context.Context, repo adapter.BudgetRepository, budgetID, userID uuid.UUID) (*entity.Budget, error) {
	b, err := repo.FindByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	if b.UserID != userID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeUnauthorizedBudgetAccess,
			"not authorized to access this budget",
			domainerror.ErrUnauthorizedBudgetAccess,
		)
	}

	return b, nil
}

// checkBudgetCategory verifies that a budget may be scoped to categoryID.
func checkBudgetCategory(ctx context.Context, repo adapter.CategoryRepository, categoryID, userID uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetCategoryNotFound,
				"category not found",
				domainerror.ErrBudgetCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if category.UserID != userID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotOwned,
			"category does not belong to user",
			domainerror.ErrBudgetCategoryNotOwned,
		)
	}

	if category.Type != entity.CategoryTypeExpense {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotExpense,
			"budgets can only track expense categories",
			domainerror.ErrBudgetCategoryNotExpense,
		)
	}

	return category, nil
}

func validateThreshold(threshold int) error {
	if threshold < minAlertThreshold || threshold > maxAlertThreshold {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidAlertThreshold,
			"alert threshold must be between 1 and 100",
			domainerror.ErrInvalidAlertThreshold,
		)
	}
	return nil
}

func invalidAmountError() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeInvalidBudgetAmount,
		"amount must be greater than zero",
		domainerror.ErrInvalidBudgetAmount,
	)
}

func invalidPeriodError() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeInvalidBudgetPeriod,
		"period must be 'weekly', 'monthly', or 'yearly'",
		domainerror.ErrInvalidBudgetPeriod,
	)
}
