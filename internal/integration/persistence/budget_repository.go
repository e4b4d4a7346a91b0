package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget in the database.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	return r.db.WithContext(ctx).Create(model.BudgetFromEntity(budget)).Error
}

// FindByID retrieves a budget by its ID.
func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindByUser retrieves the user's budgets matching the filter, newest first.
func (r *budgetRepository) FindByUser(ctx context.Context, filter adapter.BudgetFilter) ([]*entity.Budget, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Period != nil {
		query = query.Where("period = ?", string(*filter.Period))
	}
	if filter.ActiveOn != nil {
		day := valueobject.CalendarDay(*filter.ActiveOn)
		query = query.Where("start_date <= ? AND end_date >= ?", day, day)
	}

	return r.find(query.Order("created_at DESC"))
}

// FindActive retrieves the user's budgets whose window contains the calendar day of now.
func (r *budgetRepository) FindActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]*entity.Budget, error) {
	day := valueobject.CalendarDay(now)
	return r.find(r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("start_date <= ? AND end_date >= ?", day, day))
}

// FindByCategory retrieves the budgets scoped to a category.
func (r *budgetRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entity.Budget, error) {
	return r.find(r.db.WithContext(ctx).Where("category_id = ?", categoryID))
}

func (r *budgetRepository) find(query *gorm.DB) ([]*entity.Budget, error) {
	var budgetModels []model.BudgetModel
	if err := query.Find(&budgetModels).Error; err != nil {
		return nil, err
	}

	budgets := make([]*entity.Budget, len(budgetModels))
	for i := range budgetModels {
		budgets[i] = budgetModels[i].ToEntity()
	}
	return budgets, nil
}

// Update updates an existing budget in the database.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	return r.db.WithContext(ctx).Save(model.BudgetFromEntity(budget)).Error
}

// Delete soft-deletes a budget from the database.
func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BudgetModel{}, "id = ?", id).Error
}
