// Package transaction contains transaction-related use cases.
package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	CategoryID         uuid.UUID
	Category           *CategoryOutput
	Amount             decimal.Decimal
	Description        string
	Date               time.Time
	Type               entity.TransactionType
	PaymentMethod      string
	IsRecurring        bool
	RecurringFrequency *entity.RecurringFrequency
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CategoryOutput represents category information in transaction output.
type CategoryOutput struct {
	ID    uuid.UUID
	Name  string
	Color string
	Icon  string
	Type  entity.CategoryType
}

func toOutput(t *entity.Transaction, category *entity.Category) *TransactionOutput {
	out := &TransactionOutput{
		ID:                 t.ID,
		UserID:             t.UserID,
		CategoryID:         t.CategoryID,
		Amount:             t.Amount,
		Description:        t.Description,
		Date:               t.Date,
		Type:               t.Type,
		PaymentMethod:      t.PaymentMethod,
		IsRecurring:        t.IsRecurring,
		RecurringFrequency: t.RecurringFrequency,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}

	if category != nil {
		out.Category = &CategoryOutput{
			ID:    category.ID,
			Name:  category.Name,
			Color: category.Color,
			Icon:  category.Icon,
			Type:  category.Type,
		}
	}

	return out
}
