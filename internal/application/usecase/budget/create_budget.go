package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID         uuid.UUID
	CategoryID     *uuid.UUID // nil tracks every expense category
	Amount         decimal.Decimal
	Period         entity.BudgetPeriod
	AlertThreshold *int // Optional, defaults to the configured threshold
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *entity.BudgetWithProgress
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo       adapter.BudgetRepository
	categoryRepo     adapter.CategoryRepository
	spend            SpendCalculator
	clock            adapter.Clock
	defaultThreshold int
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	spend SpendCalculator,
	clock adapter.Clock,
	defaultThreshold int,
) *CreateBudgetUseCase {
	if defaultThreshold < minAlertThreshold || defaultThreshold > maxAlertThreshold {
		defaultThreshold = entity.DefaultAlertThreshold
	}
	return &CreateBudgetUseCase{
		budgetRepo:       budgetRepo,
		categoryRepo:     categoryRepo,
		spend:            spend,
		clock:            clock,
		defaultThreshold: defaultThreshold,
	}
}

// Execute performs the budget creation. The window always starts today;
// budgets are never backdated.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, invalidAmountError()
	}

	if !input.Period.IsValid() {
		return nil, invalidPeriodError()
	}

	threshold := uc.defaultThreshold
	if input.AlertThreshold != nil {
		if err := validateThreshold(*input.AlertThreshold); err != nil {
			return nil, err
		}
		threshold = *input.AlertThreshold
	}

	if input.CategoryID != nil {
		if _, err := checkBudgetCategory(ctx, uc.categoryRepo, *input.CategoryID, input.UserID); err != nil {
			return nil, err
		}
	}

	b := entity.NewBudget(
		input.UserID,
		input.CategoryID,
		input.Amount,
		input.Period,
		threshold,
		uc.clock.Now(),
	)

	if err := uc.budgetRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	progress, err := buildProgress(ctx, uc.spend, uc.categoryRepo, b)
	if err != nil {
		return nil, err
	}

	return &CreateBudgetOutput{Budget: progress}, nil
}
