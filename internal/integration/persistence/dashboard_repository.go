package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/application/usecase/dashboard"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// dashboardRepository implements the dashboard.DashboardRepository interface.
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository instance.
func NewDashboardRepository(db *gorm.DB) dashboard.DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// GetCategoryBreakdown returns expenses grouped by category for a period, largest first.
func (r *dashboardRepository) GetCategoryBreakdown(
	ctx context.Context,
	userID uuid.UUID,
	startDate, endDate time.Time,
) ([]dashboard.RawCategoryBreakdown, error) {
	var results []struct {
		CategoryID       uuid.UUID       `gorm:"column:category_id"`
		CategoryName     *string         `gorm:"column:category_name"`
		CategoryColor    *string         `gorm:"column:category_color"`
		CategoryIcon     *string         `gorm:"column:category_icon"`
		Amount           decimal.Decimal `gorm:"column:amount"`
		TransactionCount int             `gorm:"column:transaction_count"`
	}

	query := `
		SELECT
			t.category_id,
			c.name as category_name,
			c.color as category_color,
			c.icon as category_icon,
			SUM(t.amount) as amount,
			COUNT(*) as transaction_count
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id AND c.deleted_at IS NULL
		WHERE t.user_id = ?
			AND t.date >= ?
			AND t.date <= ?
			AND t.type = ?
			AND t.deleted_at IS NULL
		GROUP BY t.category_id, c.name, c.color, c.icon
		ORDER BY amount DESC
	`

	err := r.db.WithContext(ctx).
		Raw(query, userID, startDate, endDate, string(entity.TransactionTypeExpense)).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}

	breakdown := make([]dashboard.RawCategoryBreakdown, len(results))
	for i, res := range results {
		breakdown[i] = dashboard.RawCategoryBreakdown{
			CategoryID:       res.CategoryID,
			CategoryName:     deref(res.CategoryName, entity.UnknownCategoryName),
			CategoryColor:    deref(res.CategoryColor, entity.DefaultCategoryColor),
			CategoryIcon:     deref(res.CategoryIcon, entity.DefaultCategoryIcon),
			Amount:           res.Amount,
			TransactionCount: res.TransactionCount,
		}
	}

	return breakdown, nil
}

// GetPeriodSummary returns summary totals for a period.
func (r *dashboardRepository) GetPeriodSummary(
	ctx context.Context,
	userID uuid.UUID,
	startDate, endDate time.Time,
) (*dashboard.PeriodSummary, error) {
	var result struct {
		TotalIncome      decimal.Decimal `gorm:"column:total_income"`
		TotalExpenses    decimal.Decimal `gorm:"column:total_expenses"`
		TransactionCount int             `gorm:"column:transaction_count"`
	}

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as total_income,
			COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as total_expenses,
			COUNT(*) as transaction_count
		FROM transactions
		WHERE user_id = ?
			AND date >= ?
			AND date <= ?
			AND deleted_at IS NULL
	`

	err := r.db.WithContext(ctx).
		Raw(query,
			string(entity.TransactionTypeIncome),
			string(entity.TransactionTypeExpense),
			userID, startDate, endDate,
		).
		Scan(&result).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get period summary: %w", err)
	}

	return &dashboard.PeriodSummary{
		TotalIncome:      result.TotalIncome,
		TotalExpenses:    result.TotalExpenses,
		Balance:          result.TotalIncome.Sub(result.TotalExpenses),
		TransactionCount: result.TransactionCount,
	}, nil
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
