// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryType represents the classification of a category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "🏷️"

// Category represents a transaction category owned by a user.
type Category struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Icon        string
	Color       string
	Type        CategoryType
	BudgetLimit *decimal.Decimal // Informational; budgets carry their own ceilings
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewCategory creates a new Category entity.
// Defaults for color and icon are applied by the use case before calling this constructor.
func NewCategory(userID uuid.UUID, name, icon, color string, categoryType CategoryType, now time.Time) *Category {
	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Icon:      icon,
		Color:     color,
		Type:      categoryType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsValid reports whether the category type is known.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// CategorySeed describes one of the categories every new user can start from.
type CategorySeed struct {
	Name  string
	Icon  string
	Color string
	Type  CategoryType
}

// DefaultCategories is the starter set seeded for a user with no categories.
var DefaultCategories = []CategorySeed{
	{Name: "Food", Icon: "🍔", Color: "#FF6B6B", Type: CategoryTypeExpense},
	{Name: "Transport", Icon: "🚗", Color: "#4ECDC4", Type: CategoryTypeExpense},
	{Name: "Shopping", Icon: "🛍️", Color: "#45B7D1", Type: CategoryTypeExpense},
	{Name: "Entertainment", Icon: "🎬", Color: "#96CEB4", Type: CategoryTypeExpense},
	{Name: "Bills", Icon: "📄", Color: "#F7DC6F", Type: CategoryTypeExpense},
	{Name: "Healthcare", Icon: "🏥", Color: "#BB8FCE", Type: CategoryTypeExpense},
	{Name: "Salary", Icon: "💰", Color: "#58D68D", Type: CategoryTypeIncome},
	{Name: "Freelance", Icon: "💼", Color: "#5DADE2", Type: CategoryTypeIncome},
}
