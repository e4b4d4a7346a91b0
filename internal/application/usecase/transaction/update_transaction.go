package transaction

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

// UpdateTransactionInput represents the input for transaction update. Nil fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID      uuid.UUID
	UserID             uuid.UUID
	CategoryID         *uuid.UUID
	Amount             *decimal.Decimal
	Description        *string
	Date               *time.Time
	Type               *entity.TransactionType
	PaymentMethod      *string
	IsRecurring        *bool
	RecurringFrequency *entity.RecurringFrequency
}

// UpdateTransactionUseCase handles transaction update logic.
// Edits never re-trigger budget alerts.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	clock           adapter.Clock
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		clock:           clock,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*TransactionOutput, error) {
	t, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	categoryID := t.CategoryID
	if input.CategoryID != nil {
		categoryID = *input.CategoryID
	}
	category, err := findOwnedCategory(ctx, uc.categoryRepo, categoryID, input.UserID)
	if err != nil {
		return nil, err
	}
	t.CategoryID = categoryID

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		t.Amount = *input.Amount
	}

	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		t.Description = *input.Description
	}

	if input.Date != nil {
		t.Date = valueobject.CalendarDay(*input.Date)
	}

	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
		t.Type = *input.Type
	}

	if input.PaymentMethod != nil {
		t.PaymentMethod = *input.PaymentMethod
	}

	if input.RecurringFrequency != nil {
		if err := validateFrequency(input.RecurringFrequency); err != nil {
			return nil, err
		}
		t.RecurringFrequency = input.RecurringFrequency
	}

	if input.IsRecurring != nil {
		t.IsRecurring = *input.IsRecurring
		if !t.IsRecurring {
			t.RecurringFrequency = nil
		}
	}

	t.UpdatedAt = uc.clock.Now()

	if err := uc.transactionRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return toOutput(t, category), nil
}
