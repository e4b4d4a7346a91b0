// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/budget-tracker/backend/internal/application/usecase/dashboard"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// PeriodResponse represents the period a statistic covers.
type PeriodResponse struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	PeriodLabel string `json:"period_label"`
}

// SummaryResponse represents the period summary.
type SummaryResponse struct {
	Period           PeriodResponse `json:"period"`
	TotalIncome      string         `json:"total_income"`
	TotalExpenses    string         `json:"total_expenses"`
	Balance          string         `json:"balance"`
	TransactionCount int            `json:"transaction_count"`
}

// CategoryBreakdownItemResponse represents one category's share of expenses.
type CategoryBreakdownItemResponse struct {
	CategoryID       string `json:"category_id"`
	CategoryName     string `json:"category_name"`
	CategoryColor    string `json:"category_color"`
	CategoryIcon     string `json:"category_icon"`
	Amount           string `json:"amount"`
	Percentage       string `json:"percentage"`
	TransactionCount int    `json:"transaction_count"`
}

// CategoryBreakdownResponse represents expenses broken down by category.
type CategoryBreakdownResponse struct {
	Period        PeriodResponse                  `json:"period"`
	TotalExpenses string                          `json:"total_expenses"`
	Categories    []CategoryBreakdownItemResponse `json:"categories"`
}

func toPeriodResponse(p dashboard.Period) PeriodResponse {
	return PeriodResponse{
		StartDate:   valueobject.FormatDate(p.StartDate),
		EndDate:     valueobject.FormatDate(p.EndDate),
		PeriodLabel: p.PeriodLabel,
	}
}

// ToSummaryResponse converts a GetSummaryOutput to SummaryResponse.
func ToSummaryResponse(output *dashboard.GetSummaryOutput) SummaryResponse {
	return SummaryResponse{
		Period:           toPeriodResponse(output.Period),
		TotalIncome:      output.Summary.TotalIncome.StringFixed(2),
		TotalExpenses:    output.Summary.TotalExpenses.StringFixed(2),
		Balance:          output.Summary.Balance.StringFixed(2),
		TransactionCount: output.Summary.TransactionCount,
	}
}

// ToCategoryBreakdownResponse converts a GetCategoryBreakdownOutput to CategoryBreakdownResponse.
func ToCategoryBreakdownResponse(output *dashboard.GetCategoryBreakdownOutput) CategoryBreakdownResponse {
	categories := make([]CategoryBreakdownItemResponse, len(output.Categories))
	for i, item := range output.Categories {
		categories[i] = CategoryBreakdownItemResponse{
			CategoryID:       item.CategoryID.String(),
			CategoryName:     item.CategoryName,
			CategoryColor:    item.CategoryColor,
			CategoryIcon:     item.CategoryIcon,
			Amount:           item.Amount.StringFixed(2),
			Percentage:       item.Percentage.StringFixed(2),
			TransactionCount: item.TransactionCount,
		}
	}

	return CategoryBreakdownResponse{
		Period:        toPeriodResponse(output.Period),
		TotalExpenses: output.TotalExpenses.StringFixed(2),
		Categories:    categories,
	}
}
