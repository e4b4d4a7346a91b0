// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// BudgetFilter narrows a budget listing.
type BudgetFilter struct {
	UserID     uuid.UUID
	CategoryID *uuid.UUID
	Period     *entity.BudgetPeriod
	ActiveOn   *time.Time // Only budgets whose window contains this day
}

// BudgetRepository defines the interface for budget persistence operations.
// It is the Budget Registry of the budget engine.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByUser retrieves the user's budgets matching the filter, newest first.
	FindByUser(ctx context.Context, filter BudgetFilter) ([]*entity.Budget, error)

	// FindActive retrieves the user's budgets whose window contains the calendar day of now.
	FindActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]*entity.Budget, error)

	// FindByCategory retrieves the budgets scoped to a category.
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entity.Budget, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete soft-deletes a budget from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
