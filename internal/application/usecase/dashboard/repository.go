// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardRepository defines the interface for dashboard data operations.
type DashboardRepository interface {
	// GetPeriodSummary returns summary totals for a period.
	GetPeriodSummary(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (*PeriodSummary, error)

	// GetCategoryBreakdown returns expenses grouped by category for a period, largest first.
	GetCategoryBreakdown(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]RawCategoryBreakdown, error)
}

// RawCategoryBreakdown represents raw category breakdown from the database.
type RawCategoryBreakdown struct {
	CategoryID       uuid.UUID
	CategoryName     string
	CategoryColor    string
	CategoryIcon     string
	Amount           decimal.Decimal
	TransactionCount int
}

// PeriodSummary represents summary totals for a period.
type PeriodSummary struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
}
