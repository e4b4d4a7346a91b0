package savings_goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// ListSavingsGoalsInput represents the input for listing savings goals.
type ListSavingsGoalsInput struct {
	UserID uuid.UUID
	Status entity.SavingsGoalStatus // Empty means all
}

// ListSavingsGoalsOutput represents the output of listing savings goals.
type ListSavingsGoalsOutput struct {
	Goals []*entity.SavingsGoal
}

// ListSavingsGoalsUseCase handles listing savings goals.
type ListSavingsGoalsUseCase struct {
	goalRepo adapter.SavingsGoalRepository
}

// NewListSavingsGoalsUseCase creates a new ListSavingsGoalsUseCase instance.
func NewListSavingsGoalsUseCase(goalRepo adapter.SavingsGoalRepository) *ListSavingsGoalsUseCase {
	return &ListSavingsGoalsUseCase{goalRepo: goalRepo}
}

// Execute lists the user's savings goals matching the status filter.
func (uc *ListSavingsGoalsUseCase) Execute(ctx context.Context, input ListSavingsGoalsInput) (*ListSavingsGoalsOutput, error) {
	status := input.Status
	if status == "" {
		status = entity.SavingsGoalStatusAll
	}
	if !status.IsValid() {
		return nil, domainerror.NewSavingsGoalError(
			domainerror.ErrCodeInvalidSavingsGoalStatus,
			"status must be: active, completed, or all",
			domainerror.ErrInvalidSavingsGoalStatus,
		)
	}

	goals, err := uc.goalRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings goals: %w", err)
	}

	filtered := make([]*entity.SavingsGoal, 0, len(goals))
	for _, g := range goals {
		if g.MatchesStatus(status) {
			filtered = append(filtered, g)
		}
	}

	return &ListSavingsGoalsOutput{Goals: filtered}, nil
}
