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

// CreateSavingsGoalInput represents the input for savings goal creation.
type CreateSavingsGoalInput struct {
	UserID       uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	Deadline     *time.Time // Optional
	Icon         string     // Optional, defaults to DefaultGoalIcon
	Color        string     // Optional, defaults to entity.DefaultCategoryColor
}

// CreateSavingsGoalOutput represents the output of savings goal creation.
type CreateSavingsGoalOutput struct {
	Goal *entity.SavingsGoal
}

// CreateSavingsGoalUseCase handles savings goal creation logic.
type CreateSavingsGoalUseCase struct {
	goalRepo adapter.SavingsGoalRepository
	clock    adapter.Clock
}

// NewCreateSavingsGoalUseCase creates a new CreateSavingsGoalUseCase instance.
func NewCreateSavingsGoalUseCase(goalRepo adapter.SavingsGoalRepository, clock adapter.Clock) *CreateSavingsGoalUseCase {
	return &CreateSavingsGoalUseCase{
		goalRepo: goalRepo,
		clock:    clock,
	}
}

// Execute performs the savings goal creation.
func (uc *CreateSavingsGoalUseCase) Execute(ctx context.Context, input CreateSavingsGoalInput) (*CreateSavingsGoalOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateTarget(input.TargetAmount); err != nil {
		return nil, err
	}

	icon := input.Icon
	if icon == "" {
		icon = DefaultGoalIcon
	}
	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}

	var deadline *time.Time
	if input.Deadline != nil {
		day := valueobject.CalendarDay(*input.Deadline)
		deadline = &day
	}

	goal := entity.NewSavingsGoal(input.UserID, name, input.TargetAmount, deadline, icon, color, uc.clock.Now())

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create savings goal: %w", err)
	}

	return &CreateSavingsGoalOutput{Goal: goal}, nil
}
