package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_budgets_user_window"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Period         string          `gorm:"type:varchar(10);not null;default:'monthly'"`
	StartDate      time.Time       `gorm:"type:date;not null;index:idx_budgets_user_window"`
	EndDate        time.Time       `gorm:"type:date;not null;index:idx_budgets_user_window"`
	AlertThreshold int             `gorm:"not null;default:80"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:             m.ID,
		UserID:         m.UserID,
		CategoryID:     m.CategoryID,
		Amount:         m.Amount,
		Period:         entity.BudgetPeriod(m.Period),
		StartDate:      valueobject.CalendarDay(m.StartDate),
		EndDate:        valueobject.CalendarDay(m.EndDate),
		AlertThreshold: m.AlertThreshold,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		DeletedAt:      deletedAtPtr(m.DeletedAt),
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:             budget.ID,
		UserID:         budget.UserID,
		CategoryID:     budget.CategoryID,
		Amount:         budget.Amount,
		Period:         string(budget.Period),
		StartDate:      valueobject.CalendarDay(budget.StartDate),
		EndDate:        valueobject.CalendarDay(budget.EndDate),
		AlertThreshold: budget.AlertThreshold,
		CreatedAt:      budget.CreatedAt,
		UpdatedAt:      budget.UpdatedAt,
		DeletedAt:      gormDeletedAt(budget.DeletedAt),
	}
}
