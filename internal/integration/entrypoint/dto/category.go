// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=50"`
	Color       string           `json:"color,omitempty"`
	Icon        string           `json:"icon,omitempty"`
	Type        string           `json:"type" binding:"required,category_type"`
	BudgetLimit *decimal.Decimal `json:"budget_limit,omitempty" binding:"omitempty,gte=0"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name             *string          `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Color            *string          `json:"color,omitempty"`
	Icon             *string          `json:"icon,omitempty"`
	BudgetLimit      *decimal.Decimal `json:"budget_limit,omitempty" binding:"omitempty,gte=0"`
	ClearBudgetLimit bool             `json:"clear_budget_limit,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Type        string    `json:"type"`
	BudgetLimit *string   `json:"budget_limit,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// SeedCategoriesResponse represents the response for seeding default categories.
type SeedCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Created    bool               `json:"created"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	response := CategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Color:     cat.Color,
		Icon:      cat.Icon,
		Type:      string(cat.Type),
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}

	if cat.BudgetLimit != nil {
		limit := cat.BudgetLimit.StringFixed(2)
		response.BudgetLimit = &limit
	}

	return response
}

// ToCategoryListResponse converts a list of categories to CategoryListResponse.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	items := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		items[i] = ToCategoryResponse(cat)
	}
	return CategoryListResponse{
		Categories: items,
	}
}
