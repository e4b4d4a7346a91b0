// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/usecase/transaction"
	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	CategoryID         string          `json:"category_id" binding:"required,uuid"`
	Amount             decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Description        string          `json:"description" binding:"max=255"`
	Date               string          `json:"date" binding:"required"`
	Type               string          `json:"type" binding:"required,transaction_type"`
	PaymentMethod      string          `json:"payment_method,omitempty" binding:"omitempty,max=50"`
	IsRecurring        bool            `json:"is_recurring,omitempty"`
	RecurringFrequency *string         `json:"recurring_frequency,omitempty" binding:"omitempty,recurring_frequency"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	CategoryID         *string          `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Amount             *decimal.Decimal `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Description        *string          `json:"description,omitempty" binding:"omitempty,max=255"`
	Date               *string          `json:"date,omitempty"`
	Type               *string          `json:"type,omitempty" binding:"omitempty,transaction_type"`
	PaymentMethod      *string          `json:"payment_method,omitempty" binding:"omitempty,max=50"`
	IsRecurring        *bool            `json:"is_recurring,omitempty"`
	RecurringFrequency *string          `json:"recurring_frequency,omitempty" binding:"omitempty,recurring_frequency"`
}

// ListTransactionsQuery represents the query string for listing transactions.
type ListTransactionsQuery struct {
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	CategoryIDs string `form:"category_ids"` // Comma separated
	Type        string `form:"type" binding:"omitempty,transaction_type"`
	IsRecurring *bool  `form:"is_recurring"`
	Search      string `form:"search"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                 string                       `json:"id"`
	UserID             string                       `json:"user_id"`
	CategoryID         string                       `json:"category_id"`
	Category           *TransactionCategoryResponse `json:"category,omitempty"`
	Amount             string                       `json:"amount"`
	Description        string                       `json:"description"`
	Date               string                       `json:"date"`
	Type               string                       `json:"type"`
	PaymentMethod      string                       `json:"payment_method,omitempty"`
	IsRecurring        bool                         `json:"is_recurring"`
	RecurringFrequency *string                      `json:"recurring_frequency,omitempty"`
	CreatedAt          time.Time                    `json:"created_at"`
	UpdatedAt          time.Time                    `json:"updated_at"`
}

// CreateTransactionResponse carries the stored transaction and the alerts it raised.
type CreateTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Alerts      []AlertResponse     `json:"alerts"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	Balance      string `json:"balance"`
	Count        int    `json:"count"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
	Totals       TransactionTotalsResponse     `json:"totals"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:            txn.ID.String(),
		UserID:        txn.UserID.String(),
		CategoryID:    txn.CategoryID.String(),
		Amount:        txn.Amount.StringFixed(2),
		Description:   txn.Description,
		Date:          valueobject.FormatDate(txn.Date),
		Type:          string(txn.Type),
		PaymentMethod: txn.PaymentMethod,
		IsRecurring:   txn.IsRecurring,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}

	if txn.RecurringFrequency != nil {
		freq := string(*txn.RecurringFrequency)
		response.RecurringFrequency = &freq
	}

	if txn.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:    txn.Category.ID.String(),
			Name:  txn.Category.Name,
			Color: txn.Category.Color,
			Icon:  txn.Category.Icon,
			Type:  string(txn.Category.Type),
		}
	}

	return response
}

// ToCreateTransactionResponse converts a CreateTransactionOutput to its response DTO.
func ToCreateTransactionResponse(output *transaction.CreateTransactionOutput) CreateTransactionResponse {
	return CreateTransactionResponse{
		Transaction: ToTransactionResponse(output.Transaction),
		Alerts:      ToAlertResponses(output.Alerts),
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Pagination: TransactionPaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
		Totals: TransactionTotalsResponse{
			IncomeTotal:  output.Totals.IncomeTotal.StringFixed(2),
			ExpenseTotal: output.Totals.ExpenseTotal.StringFixed(2),
			Balance:      output.Totals.Balance.StringFixed(2),
			Count:        output.Totals.Count,
		},
	}
}

// AlertResponse represents a budget alert raised by a transaction.
type AlertResponse struct {
	BudgetID     string            `json:"budget_id"`
	Kind         string            `json:"kind"`
	Title        string            `json:"title"`
	Body         string            `json:"body"`
	CategoryName string            `json:"category_name"`
	Spent        string            `json:"spent"`
	Total        string            `json:"total"`
	Remaining    string            `json:"remaining"`
	Percentage   string            `json:"percentage"`
	Threshold    int               `json:"threshold"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// ToAlertResponses converts budget alerts to their response DTOs.
// The result is never nil so an empty list renders as [].
func ToAlertResponses(alerts []*entity.BudgetAlert) []AlertResponse {
	responses := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		responses = append(responses, AlertResponse{
			BudgetID:     a.BudgetID.String(),
			Kind:         string(a.Kind),
			Title:        a.Title,
			Body:         a.Body,
			CategoryName: a.CategoryName,
			Spent:        a.Spent.StringFixed(2),
			Total:        a.Total.StringFixed(2),
			Remaining:    a.Remaining.StringFixed(2),
			Percentage:   a.Percentage.StringFixed(2),
			Threshold:    a.Threshold,
			Metadata:     a.Metadata,
		})
	}
	return responses
}
