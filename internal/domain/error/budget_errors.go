// Package error defines domain-specific errors for the Budget Tracker application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrInvalidBudgetAmount is returned when the budget amount is zero or negative.
	ErrInvalidBudgetAmount = errors.New("budget amount must be greater than zero")

	// ErrInvalidBudgetPeriod is returned when the period is not weekly, monthly or yearly.
	ErrInvalidBudgetPeriod = errors.New("invalid budget period")

	// ErrInvalidAlertThreshold is returned when the alert threshold is outside 1..100.
	ErrInvalidAlertThreshold = errors.New("alert threshold must be between 1 and 100")

	// ErrInvalidBudgetWindow is returned when a budget would end before it starts.
	ErrInvalidBudgetWindow = errors.New("end date must not be before start date")

	// ErrBudgetCategoryNotFound is returned when the budget category does not exist.
	ErrBudgetCategoryNotFound = errors.New("category not found")

	// ErrBudgetCategoryNotOwned is returned when the budget category belongs to another user.
	ErrBudgetCategoryNotOwned = errors.New("category does not belong to user")

	// ErrBudgetCategoryNotExpense is returned when a budget targets an income category.
	ErrBudgetCategoryNotExpense = errors.New("budgets can only track expense categories")

	// ErrUnauthorizedBudgetAccess is returned when user is not authorized to access a budget.
	ErrUnauthorizedBudgetAccess = errors.New("unauthorized access to budget")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetNotFound           BudgetErrorCode = "BGT-010001"
	ErrCodeInvalidBudgetAmount      BudgetErrorCode = "BGT-010002"
	ErrCodeInvalidBudgetPeriod      BudgetErrorCode = "BGT-010003"
	ErrCodeInvalidAlertThreshold    BudgetErrorCode = "BGT-010004"
	ErrCodeInvalidBudgetWindow      BudgetErrorCode = "BGT-010005"
	ErrCodeBudgetCategoryNotFound   BudgetErrorCode = "BGT-010006"
	ErrCodeBudgetCategoryNotOwned   BudgetErrorCode = "BGT-010007"
	ErrCodeBudgetCategoryNotExpense BudgetErrorCode = "BGT-010008"
	ErrCodeUnauthorizedBudgetAccess BudgetErrorCode = "BGT-010009"
	ErrCodeMissingBudgetFields      BudgetErrorCode = "BGT-010010"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{Code: code, Message: message, Err: err}
}
