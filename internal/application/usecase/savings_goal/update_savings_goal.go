package savings_goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// UpdateSavingsGoalInput represents the input for savings goal update.
// Nil fields are left unchanged.
type UpdateSavingsGoalInput struct {
	GoalID        uuid.UUID
	UserID        uuid.UUID
	Name          *string
	TargetAmount  *decimal.Decimal
	Deadline      *time.Time
	ClearDeadline bool
	Icon          *string
	Color         *string
}

// UpdateSavingsGoalUseCase handles savings goal update logic.
type UpdateSavingsGoalUseCase struct {
	goalRepo adapter.SavingsGoalRepository
	clock    adapter.Clock
}

// NewUpdateSavingsGoalUseCase creates a new UpdateSavingsGoalUseCase instance.
func NewUpdateSavingsGoalUseCase(goalRepo adapter.SavingsGoalRepository, clock adapter.Clock) *UpdateSavingsGoalUseCase {
	return &UpdateSavingsGoalUseCase{
		goalRepo: goalRepo,
		clock:    clock,
	}
}

// Execute performs the savings goal update.
func (uc *UpdateSavingsGoalUseCase) Execute(ctx context.Context, input UpdateSavingsGoalInput) (*entity.SavingsGoal, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		goal.Name = name
	}

	if input.TargetAmount != nil {
		if err := validateTarget(*input.TargetAmount); err != nil {
			return nil, err
		}
		goal.TargetAmount = *input.TargetAmount
	}

	switch {
	case input.ClearDeadline:
		goal.Deadline = nil
	case input.Deadline != nil:
		day := valueobject.CalendarDay(*input.Deadline)
		goal.Deadline = &day
	}

	if input.Icon != nil {
		goal.Icon = *input.Icon
	}
	if input.Color != nil {
		goal.Color = *input.Color
	}

	goal.UpdatedAt = uc.clock.Now()

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update savings goal: %w", err)
	}

	return goal, nil
}
