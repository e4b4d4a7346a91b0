package savings_goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// DeleteSavingsGoalInput represents the input for savings goal deletion.
type DeleteSavingsGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// DeleteSavingsGoalUseCase handles savings goal deletion.
type DeleteSavingsGoalUseCase struct {
	goalRepo adapter.SavingsGoalRepository
}

// NewDeleteSavingsGoalUseCase creates a new DeleteSavingsGoalUseCase instance.
func NewDeleteSavingsGoalUseCase(goalRepo adapter.SavingsGoalRepository) *DeleteSavingsGoalUseCase {
	return &DeleteSavingsGoalUseCase{goalRepo: goalRepo}
}

// Execute performs the savings goal deletion.
func (uc *DeleteSavingsGoalUseCase) Execute(ctx context.Context, input DeleteSavingsGoalInput) error {
	if _, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID); err != nil {
		return err
	}

	if err := uc.goalRepo.Delete(ctx, input.GoalID); err != nil {
		return fmt.Errorf("failed to delete savings goal: %w", err)
	}

	return nil
}
