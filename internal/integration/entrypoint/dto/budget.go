// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// CreateBudgetRequest represents the request body for budget creation.
// Omitting category_id tracks every expense category.
type CreateBudgetRequest struct {
	CategoryID     *string         `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Amount         decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Period         string          `json:"period" binding:"required,budget_period"`
	AlertThreshold *int            `json:"alert_threshold,omitempty" binding:"omitempty,min=1,max=100"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	CategoryID     *string          `json:"category_id,omitempty" binding:"omitempty,uuid"`
	AllCategories  bool             `json:"all_categories,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Period         *string          `json:"period,omitempty" binding:"omitempty,budget_period"`
	StartDate      *string          `json:"start_date,omitempty"`
	EndDate        *string          `json:"end_date,omitempty"`
	AlertThreshold *int             `json:"alert_threshold,omitempty" binding:"omitempty,min=1,max=100"`
}

// ListBudgetsQuery represents the query string for listing budgets.
type ListBudgetsQuery struct {
	Active     bool   `form:"active"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Period     string `form:"period" binding:"omitempty,budget_period"`
}

// BudgetResponse represents a single budget with its progress in API responses.
type BudgetResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	CategoryID     *string   `json:"category_id"`
	CategoryName   string    `json:"category_name"`
	Amount         string    `json:"amount"`
	Period         string    `json:"period"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	AlertThreshold int       `json:"alert_threshold"`
	Spent          string    `json:"spent"`
	Remaining      string    `json:"remaining"`
	Percentage     string    `json:"percentage"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a budget with progress to a BudgetResponse DTO.
func ToBudgetResponse(bp *entity.BudgetWithProgress) BudgetResponse {
	b := bp.Budget
	response := BudgetResponse{
		ID:             b.ID.String(),
		UserID:         b.UserID.String(),
		CategoryName:   entity.AllCategoriesName,
		Amount:         b.Amount.StringFixed(2),
		Period:         string(b.Period),
		StartDate:      valueobject.FormatDate(b.StartDate),
		EndDate:        valueobject.FormatDate(b.EndDate),
		AlertThreshold: b.Threshold(),
		Spent:          bp.Spent.StringFixed(2),
		Remaining:      bp.Remaining.StringFixed(2),
		Percentage:     bp.Percentage.StringFixed(2),
		Status:         string(bp.State),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	if b.CategoryID != nil {
		categoryID := b.CategoryID.String()
		response.CategoryID = &categoryID
		response.CategoryName = entity.UnknownCategoryName
	}
	if bp.Category != nil {
		response.CategoryName = bp.Category.Name
	}

	return response
}

// ToBudgetListResponse converts budgets with progress to BudgetListResponse.
func ToBudgetListResponse(budgets []*entity.BudgetWithProgress) BudgetListResponse {
	items := make([]BudgetResponse, len(budgets))
	for i, bp := range budgets {
		items[i] = ToBudgetResponse(bp)
	}
	return BudgetListResponse{
		Budgets: items,
	}
}
