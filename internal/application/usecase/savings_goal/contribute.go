package savings_goal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// ContributeInput represents an amount added to a savings goal.
type ContributeInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
	Amount decimal.Decimal
}

// ContributeUseCase adds money to a savings goal.
type ContributeUseCase struct {
	goalRepo adapter.SavingsGoalRepository
	clock    adapter.Clock
}

// NewContributeUseCase creates a new ContributeUseCase instance.
func NewContributeUseCase(goalRepo adapter.SavingsGoalRepository, clock adapter.Clock) *ContributeUseCase {
	return &ContributeUseCase{
		goalRepo: goalRepo,
		clock:    clock,
	}
}

// Execute records the contribution. Contributions past the target are kept.
func (uc *ContributeUseCase) Execute(ctx context.Context, input ContributeInput) (*entity.SavingsGoal, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewSavingsGoalError(
			domainerror.ErrCodeInvalidContributionAmount,
			"contribution amount must be greater than zero",
			domainerror.ErrInvalidContributionAmount,
		)
	}

	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	wasCompleted := goal.IsCompleted()
	goal.Contribute(input.Amount, uc.clock.Now())

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to record contribution: %w", err)
	}

	if !wasCompleted && goal.IsCompleted() {
		slog.Info("Savings goal completed", "goal_id", goal.ID, "user_id", goal.UserID)
	}

	return goal, nil
}
