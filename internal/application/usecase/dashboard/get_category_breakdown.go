package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// GetCategoryBreakdownInput represents the input for getting category breakdown.
type GetCategoryBreakdownInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// CategoryBreakdownItem represents a single category in the breakdown.
type CategoryBreakdownItem struct {
	CategoryID       uuid.UUID
	CategoryName     string
	CategoryColor    string
	CategoryIcon     string
	Amount           decimal.Decimal
	Percentage       decimal.Decimal
	TransactionCount int
}

// GetCategoryBreakdownOutput represents the output of getting category breakdown.
type GetCategoryBreakdownOutput struct {
	Period        Period
	TotalExpenses decimal.Decimal
	Categories    []CategoryBreakdownItem
}

// GetCategoryBreakdownUseCase handles getting spending breakdown by category.
type GetCategoryBreakdownUseCase struct {
	dashboardRepo DashboardRepository
	clock         adapter.Clock
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(dashboardRepo DashboardRepository, clock adapter.Clock) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		dashboardRepo: dashboardRepo,
		clock:         clock,
	}
}

// Execute returns each category's share of the period's expenses.
func (uc *GetCategoryBreakdownUseCase) Execute(ctx context.Context, input GetCategoryBreakdownInput) (*GetCategoryBreakdownOutput, error) {
	period, err := resolvePeriod(input.StartDate, input.EndDate, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	raw, err := uc.dashboardRepo.GetCategoryBreakdown(ctx, input.UserID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}

	total := decimal.Zero
	for _, r := range raw {
		total = total.Add(r.Amount)
	}

	items := make([]CategoryBreakdownItem, 0, len(raw))
	for _, r := range raw {
		percentage := decimal.Zero
		if total.IsPositive() {
			percentage = r.Amount.Mul(decimal.NewFromInt(100)).Div(total).Round(2)
		}
		items = append(items, CategoryBreakdownItem{
			CategoryID:       r.CategoryID,
			CategoryName:     r.CategoryName,
			CategoryColor:    r.CategoryColor,
			CategoryIcon:     r.CategoryIcon,
			Amount:           r.Amount,
			Percentage:       percentage,
			TransactionCount: r.TransactionCount,
		})
	}

	return &GetCategoryBreakdownOutput{
		Period:        period,
		TotalExpenses: total,
		Categories:    items,
	}, nil
}
