// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// BudgetPeriod represents the period a budget is sized for.
// It only drives the end date at creation; evaluation always uses the explicit window.
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// DefaultAlertThreshold is the alert percentage used when none is configured.
const DefaultAlertThreshold = 80

// ExceededPercentage is the hard limit at which a budget counts as exceeded.
const ExceededPercentage = 100

// AllCategoriesName is the display name of a budget without a category scope.
const AllCategoriesName = "All Categories"

// IsValid reports whether the period is known.
func (p BudgetPeriod) IsValid() bool {
	switch p {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return true
	}
	return false
}

// EndDateFrom returns the inclusive end of a window of one period starting on start.
func (p BudgetPeriod) EndDateFrom(start time.Time) time.Time {
	day := valueobject.CalendarDay(start)
	switch p {
	case BudgetPeriodWeekly:
		return day.AddDate(0, 0, 7)
	case BudgetPeriodYearly:
		return addMonthsClamped(day, 12)
	default:
		return addMonthsClamped(day, 1)
	}
}

// addMonthsClamped moves day forward by months, keeping the day of month but
// never past the last day of the target month (Jan 31 + 1 month = Feb 28).
func addMonthsClamped(day time.Time, months int) time.Time {
	y, m, d := day.Date()
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := target.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, time.UTC)
}

// Budget is a spending ceiling over a window of calendar days.
type Budget struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	CategoryID     *uuid.UUID // nil means every expense category
	Amount         decimal.Decimal
	Period         BudgetPeriod
	StartDate      time.Time
	EndDate        time.Time
	AlertThreshold int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// NewBudget creates a budget that starts on the day of now and runs for one period.
func NewBudget(
	userID uuid.UUID,
	categoryID *uuid.UUID,
	amount decimal.Decimal,
	period BudgetPeriod,
	alertThreshold int,
	now time.Time,
) *Budget {
	start := valueobject.CalendarDay(now)

	return &Budget{
		ID:             uuid.New(),
		UserID:         userID,
		CategoryID:     categoryID,
		Amount:         amount,
		Period:         period,
		StartDate:      start,
		EndDate:        period.EndDateFrom(start),
		AlertThreshold: alertThreshold,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Window returns the budget's inclusive calendar-day window.
func (b *Budget) Window() valueobject.DateWindow {
	return valueobject.DateWindow{Start: b.StartDate, End: b.EndDate}
}

// IsActive reports whether now falls within the budget window.
func (b *Budget) IsActive(now time.Time) bool {
	return b.Window().Contains(now)
}

// IsAllCategories reports whether the budget spans every expense category.
func (b *Budget) IsAllCategories() bool {
	return b.CategoryID == nil
}

// Covers reports whether an expense in categoryID counts toward this budget.
func (b *Budget) Covers(categoryID uuid.UUID) bool {
	return b.CategoryID == nil || *b.CategoryID == categoryID
}

// Threshold returns the configured alert threshold, falling back to the default.
func (b *Budget) Threshold() int {
	if b.AlertThreshold <= 0 {
		return DefaultAlertThreshold
	}
	return b.AlertThreshold
}

// PercentageOf returns spent as a percentage of the budget amount.
// The second result is false when the amount is not positive and no percentage exists.
func (b *Budget) PercentageOf(spent decimal.Decimal) (decimal.Decimal, bool) {
	if !b.Amount.IsPositive() {
		return decimal.Zero, false
	}
	return spent.Mul(decimal.NewFromInt(100)).Div(b.Amount), true
}

// AlertState is where a budget sits in its alerting lifecycle.
type AlertState string

const (
	AlertStateBelowThreshold AlertState = "below_threshold"
	AlertStateWarned         AlertState = "warned"
	AlertStateExceeded       AlertState = "exceeded"
)

// StateAt derives the alert state for a given spend percentage.
func (b *Budget) StateAt(percentage decimal.Decimal) AlertState {
	switch {
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(ExceededPercentage)):
		return AlertStateExceeded
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(int64(b.Threshold()))):
		return AlertStateWarned
	default:
		return AlertStateBelowThreshold
	}
}

// SpendFilter selects the ledger entries that count toward a budget.
type SpendFilter struct {
	UserID      uuid.UUID
	CategoryID  *uuid.UUID
	Window      valueobject.DateWindow
	CreatedFrom time.Time
}

// NewSpendFilter builds the filter for a budget: expenses of the budget's owner,
// dated inside its window, recorded at or after the budget was created.
func NewSpendFilter(b *Budget) SpendFilter {
	return SpendFilter{
		UserID:      b.UserID,
		CategoryID:  b.CategoryID,
		Window:      b.Window(),
		CreatedFrom: b.CreatedAt,
	}
}

// Matches reports whether a transaction counts toward the filtered budget.
func (f SpendFilter) Matches(t *Transaction) bool {
	if t == nil || !t.IsExpense() || t.DeletedAt != nil {
		return false
	}
	if t.UserID != f.UserID {
		return false
	}
	if !f.Window.Contains(t.Date) {
		return false
	}
	if t.CreatedAt.Before(f.CreatedFrom) {
		return false
	}
	if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
		return false
	}
	return true
}

// BudgetWithProgress is a budget together with its current spend.
type BudgetWithProgress struct {
	Budget     *Budget
	Category   *Category
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Percentage decimal.Decimal
	State      AlertState
}
