// Package savings_goal contains savings goal use cases.
package savings_goal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// MaxNameLength is the longest goal name accepted.
const MaxNameLength = 100

// DefaultGoalIcon is the icon used when none is given.
const DefaultGoalIcon = "🎯"

func findOwnedGoal(ctx context.Context, repo adapter.SavingsGoalRepository, goalID, userID uuid.UUID) (*entity.SavingsGoal, error) {
	goal, err := repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSavingsGoalNotFound) {
			return nil, domainerror.NewSavingsGoalError(
				domainerror.ErrCodeSavingsGoalNotFound,
				"savings goal not found",
				domainerror.ErrSavingsGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find savings goal: %w", err)
	}

	if goal.UserID != userID {
		return nil, domainerror.NewSavingsGoalError(
			domainerror.ErrCodeUnauthorizedSavingsGoalAccess,
			"not authorized to access this savings goal",
			domainerror.ErrUnauthorizedSavingsGoalAccess,
		)
	}

	return goal, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return "", domainerror.NewSavingsGoalError(
			domainerror.ErrCodeMissingSavingsGoalFields,
			fmt.Sprintf("name is required and must be at most %d characters", MaxNameLength),
			nil,
		)
	}
	return name, nil
}

func validateTarget(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewSavingsGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}
	return nil
}
