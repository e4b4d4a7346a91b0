// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// CreateSavingsGoalRequest represents the request body for savings goal creation.
type CreateSavingsGoalRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required,gt=0"`
	Deadline     *string         `json:"deadline,omitempty"`
	Icon         string          `json:"icon,omitempty"`
	Color        string          `json:"color,omitempty" binding:"omitempty,hex_color"`
}

// UpdateSavingsGoalRequest represents the request body for savings goal update.
type UpdateSavingsGoalRequest struct {
	Name          *string          `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	TargetAmount  *decimal.Decimal `json:"target_amount,omitempty" binding:"omitempty,gt=0"`
	Deadline      *string          `json:"deadline,omitempty"`
	ClearDeadline bool             `json:"clear_deadline,omitempty"`
	Icon          *string          `json:"icon,omitempty"`
	Color         *string          `json:"color,omitempty" binding:"omitempty,hex_color"`
}

// ContributeRequest represents the request body for a savings contribution.
type ContributeRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// ListSavingsGoalsQuery represents the query string for listing savings goals.
type ListSavingsGoalsQuery struct {
	Status string `form:"status" binding:"omitempty,savings_goal_status"`
}

// SavingsGoalResponse represents a single savings goal in API responses.
type SavingsGoalResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TargetAmount  string    `json:"target_amount"`
	CurrentAmount string    `json:"current_amount"`
	Progress      string    `json:"progress"`
	Completed     bool      `json:"completed"`
	Deadline      *string   `json:"deadline"`
	Icon          string    `json:"icon"`
	Color         string    `json:"color"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SavingsGoalListResponse represents the response for listing savings goals.
type SavingsGoalListResponse struct {
	Goals []SavingsGoalResponse `json:"goals"`
}

// ToSavingsGoalResponse converts a domain SavingsGoal to a SavingsGoalResponse DTO.
func ToSavingsGoalResponse(g *entity.SavingsGoal) SavingsGoalResponse {
	response := SavingsGoalResponse{
		ID:            g.ID.String(),
		Name:          g.Name,
		TargetAmount:  g.TargetAmount.StringFixed(2),
		CurrentAmount: g.CurrentAmount.StringFixed(2),
		Progress:      g.Progress().StringFixed(2),
		Completed:     g.IsCompleted(),
		Icon:          g.Icon,
		Color:         g.Color,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}

	if g.Deadline != nil {
		deadline := valueobject.FormatDate(*g.Deadline)
		response.Deadline = &deadline
	}

	return response
}

// ToSavingsGoalListResponse converts savings goals to SavingsGoalListResponse.
func ToSavingsGoalListResponse(goals []*entity.SavingsGoal) SavingsGoalListResponse {
	items := make([]SavingsGoalResponse, len(goals))
	for i, g := range goals {
		items[i] = ToSavingsGoalResponse(g)
	}
	return SavingsGoalListResponse{
		Goals: items,
	}
}
