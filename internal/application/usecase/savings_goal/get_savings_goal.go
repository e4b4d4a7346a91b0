package savings_goal

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// GetSavingsGoalInput represents the input for fetching a savings goal.
type GetSavingsGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// GetSavingsGoalUseCase handles fetching a single savings goal.
type GetSavingsGoalUseCase struct {
	goalRepo adapter.SavingsGoalRepository
}

// NewGetSavingsGoalUseCase creates a new GetSavingsGoalUseCase instance.
func NewGetSavingsGoalUseCase(goalRepo adapter.SavingsGoalRepository) *GetSavingsGoalUseCase {
	return &GetSavingsGoalUseCase{goalRepo: goalRepo}
}

// Execute returns the goal when it belongs to the user.
func (uc *GetSavingsGoalUseCase) Execute(ctx context.Context, input GetSavingsGoalInput) (*entity.SavingsGoal, error) {
	return findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
}
