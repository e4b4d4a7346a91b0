package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// UpdateBudgetInput represents the input for budget update. Nil fields are left unchanged.
type UpdateBudgetInput struct {
	BudgetID       uuid.UUID
	UserID         uuid.UUID
	CategoryID     *uuid.UUID
	AllCategories  bool // Clears the category scope; wins over CategoryID
	Amount         *decimal.Decimal
	Period         *entity.BudgetPeriod
	StartDate      *time.Time
	EndDate        *time.Time
	AlertThreshold *int
}

// UpdateBudgetOutput represents the output of budget update.
type UpdateBudgetOutput struct {
	Budget *entity.BudgetWithProgress
}

// UpdateBudgetUseCase handles budget update logic.
// No alert history exists, so a new scope or window simply applies from the next evaluation.
type UpdateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	spend        SpendCalculator
	clock        adapter.Clock
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	spend SpendCalculator,
	clock adapter.Clock,
) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		spend:        spend,
		clock:        clock,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	b, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	switch {
	case input.AllCategories:
		b.CategoryID = nil
	case input.CategoryID != nil:
		if _, err := checkBudgetCategory(ctx, uc.categoryRepo, *input.CategoryID, input.UserID); err != nil {
			return nil, err
		}
		categoryID := *input.CategoryID
		b.CategoryID = &categoryID
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, invalidAmountError()
		}
		b.Amount = *input.Amount
	}

	if input.Period != nil {
		if !input.Period.IsValid() {
			return nil, invalidPeriodError()
		}
		b.Period = *input.Period
	}

	if input.AlertThreshold != nil {
		if err := validateThreshold(*input.AlertThreshold); err != nil {
			return nil, err
		}
		b.AlertThreshold = *input.AlertThreshold
	}

	start, end := b.StartDate, b.EndDate
	if input.StartDate != nil {
		start = *input.StartDate
	}
	if input.EndDate != nil {
		end = *input.EndDate
	}
	window, err := valueobject.NewDateWindow(start, end)
	if err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetWindow,
			"end date must not be before start date",
			domainerror.ErrInvalidBudgetWindow,
		)
	}
	b.StartDate = window.Start
	b.EndDate = window.End

	b.UpdatedAt = uc.clock.Now()

	if err := uc.budgetRepo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	progress, err := buildProgress(ctx, uc.spend, uc.categoryRepo, b)
	if err != nil {
		return nil, err
	}

	return &UpdateBudgetOutput{Budget: progress}, nil
}
