package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// SeedDefaultCategoriesInput represents the input for seeding default categories.
type SeedDefaultCategoriesInput struct {
	UserID uuid.UUID
}

// SeedDefaultCategoriesOutput represents the output of seeding default categories.
type SeedDefaultCategoriesOutput struct {
	Categories []*entity.Category
	Created    bool
}

// SeedDefaultCategoriesUseCase gives a user without categories the starter set.
// Users that already have categories are left untouched.
type SeedDefaultCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewSeedDefaultCategoriesUseCase creates a new SeedDefaultCategoriesUseCase instance.
func NewSeedDefaultCategoriesUseCase(categoryRepo adapter.CategoryRepository, clock adapter.Clock) *SeedDefaultCategoriesUseCase {
	return &SeedDefaultCategoriesUseCase{
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute seeds the defaults when the user has no categories yet.
func (uc *SeedDefaultCategoriesUseCase) Execute(ctx context.Context, input SeedDefaultCategoriesInput) (*SeedDefaultCategoriesOutput, error) {
	count, err := uc.categoryRepo.CountByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	if count > 0 {
		existing, err := uc.categoryRepo.FindByUser(ctx, input.UserID, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		return &SeedDefaultCategoriesOutput{Categories: existing}, nil
	}

	now := uc.clock.Now()
	categories := make([]*entity.Category, 0, len(entity.DefaultCategories))
	for _, seed := range entity.DefaultCategories {
		categories = append(categories, entity.NewCategory(input.UserID, seed.Name, seed.Icon, seed.Color, seed.Type, now))
	}

	if err := uc.categoryRepo.CreateBatch(ctx, categories); err != nil {
		return nil, fmt.Errorf("failed to seed default categories: %w", err)
	}

	return &SeedDefaultCategoriesOutput{Categories: categories, Created: true}, nil
}
