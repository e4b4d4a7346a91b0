package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user_date"`
	CategoryID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date               time.Time       `gorm:"type:date;not null;index:idx_transactions_user_date"`
	Description        string          `gorm:"type:varchar(255);not null"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type               string          `gorm:"type:varchar(10);not null;index"`
	PaymentMethod      string          `gorm:"type:varchar(50)"`
	IsRecurring        bool            `gorm:"default:false"`
	RecurringFrequency *string         `gorm:"type:varchar(10)"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
	DeletedAt          gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var frequency *entity.RecurringFrequency
	if m.RecurringFrequency != nil {
		f := entity.RecurringFrequency(*m.RecurringFrequency)
		frequency = &f
	}

	return &entity.Transaction{
		ID:                 m.ID,
		UserID:             m.UserID,
		CategoryID:         m.CategoryID,
		Amount:             m.Amount,
		Description:        m.Description,
		Date:               valueobject.CalendarDay(m.Date),
		Type:               entity.TransactionType(m.Type),
		PaymentMethod:      m.PaymentMethod,
		IsRecurring:        m.IsRecurring,
		RecurringFrequency: frequency,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		DeletedAt:          deletedAtPtr(m.DeletedAt),
	}
}

// ToEntityWithCategory converts a TransactionModel with its Category to a TransactionWithCategory entity.
func (m *TransactionModel) ToEntityWithCategory() *entity.TransactionWithCategory {
	result := &entity.TransactionWithCategory{
		Transaction: m.ToEntity(),
	}

	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}

	return result
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var frequency *string
	if transaction.RecurringFrequency != nil {
		f := string(*transaction.RecurringFrequency)
		frequency = &f
	}

	return &TransactionModel{
		ID:                 transaction.ID,
		UserID:             transaction.UserID,
		CategoryID:         transaction.CategoryID,
		Date:               valueobject.CalendarDay(transaction.Date),
		Description:        transaction.Description,
		Amount:             transaction.Amount,
		Type:               string(transaction.Type),
		PaymentMethod:      transaction.PaymentMethod,
		IsRecurring:        transaction.IsRecurring,
		RecurringFrequency: frequency,
		CreatedAt:          transaction.CreatedAt,
		UpdatedAt:          transaction.UpdatedAt,
		DeletedAt:          gormDeletedAt(transaction.DeletedAt),
	}
}
