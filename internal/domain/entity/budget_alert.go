// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertKind identifies which crossing produced a budget alert.
type AlertKind string

const (
	AlertKindWarning  AlertKind = "warning"
	AlertKindExceeded AlertKind = "exceeded"
)

// UnknownCategoryName is shown when a budget's category can no longer be resolved.
const UnknownCategoryName = "Unknown category"

// AlertMetadataType tags every budget alert payload.
const AlertMetadataType = "budget-alert"

const (
	warningAlertTitle  = "📊 Budget Alert"
	exceededAlertTitle = "⚠️ Budget Exceeded!"
)

// BudgetAlert is an ephemeral instruction to present a threshold crossing to the user.
// It is never persisted.
type BudgetAlert struct {
	BudgetID     uuid.UUID
	UserID       uuid.UUID
	UserEmail    string
	Kind         AlertKind
	CategoryName string
	Spent        decimal.Decimal
	Total        decimal.Decimal
	Percentage   decimal.Decimal
	Remaining    decimal.Decimal
	Threshold    int
	Title        string
	Body         string
	Metadata     map[string]string
}

// NewBudgetAlert builds the alert content for a crossing on budget b.
func NewBudgetAlert(b *Budget, kind AlertKind, categoryName string, spent, percentage decimal.Decimal) *BudgetAlert {
	remaining := b.Amount.Sub(spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	alert := &BudgetAlert{
		BudgetID:     b.ID,
		UserID:       b.UserID,
		Kind:         kind,
		CategoryName: categoryName,
		Spent:        spent,
		Total:        b.Amount,
		Percentage:   percentage.Round(2),
		Remaining:    remaining,
		Threshold:    b.Threshold(),
		Metadata: map[string]string{
			"budget_id": b.ID.String(),
			"type":      AlertMetadataType,
			"kind":      string(kind),
		},
	}

	pct := percentage.Round(0).String()
	switch kind {
	case AlertKindExceeded:
		alert.Title = exceededAlertTitle
		alert.Body = fmt.Sprintf("You've exceeded your %s budget! Spent %s of %s (%s%%)",
			categoryName, spent.StringFixed(2), b.Amount.StringFixed(2), pct)
	default:
		alert.Title = warningAlertTitle
		alert.Body = fmt.Sprintf("You've used %s%% of your %s budget. %s remaining.",
			pct, categoryName, remaining.StringFixed(2))
	}

	return alert
}
