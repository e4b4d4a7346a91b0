// Package error defines domain-specific errors for the Budget Tracker application.
package error

import "errors"

// Savings goal domain errors.
var (
	// ErrSavingsGoalNotFound is returned when a savings goal is not found in the system.
	ErrSavingsGoalNotFound = errors.New("savings goal not found")

	// ErrInvalidTargetAmount is returned when the target amount is zero or negative.
	ErrInvalidTargetAmount = errors.New("target amount must be greater than zero")

	// ErrInvalidContributionAmount is returned when a contribution is zero or negative.
	ErrInvalidContributionAmount = errors.New("contribution amount must be greater than zero")

	// ErrInvalidSavingsGoalStatus is returned when the status filter is unknown.
	ErrInvalidSavingsGoalStatus = errors.New("status must be: active, completed, or all")

	// ErrUnauthorizedSavingsGoalAccess is returned when user is not authorized to access a savings goal.
	ErrUnauthorizedSavingsGoalAccess = errors.New("unauthorized access to savings goal")
)

// SavingsGoalErrorCode defines error codes for savings goal errors.
// Format: SAV-XXYYYY where XX is category and YYYY is specific error.
type SavingsGoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeSavingsGoalNotFound           SavingsGoalErrorCode = "SAV-010001"
	ErrCodeInvalidTargetAmount           SavingsGoalErrorCode = "SAV-010002"
	ErrCodeInvalidContributionAmount     SavingsGoalErrorCode = "SAV-010003"
	ErrCodeInvalidSavingsGoalStatus      SavingsGoalErrorCode = "SAV-010004"
	ErrCodeUnauthorizedSavingsGoalAccess SavingsGoalErrorCode = "SAV-010005"
	ErrCodeMissingSavingsGoalFields      SavingsGoalErrorCode = "SAV-010006"
)

// SavingsGoalError represents a savings goal error with code and message.
type SavingsGoalError struct {
	Code    SavingsGoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SavingsGoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SavingsGoalError) Unwrap() error {
	return e.Err
}

// NewSavingsGoalError creates a new SavingsGoalError with the given code and message.
func NewSavingsGoalError(code SavingsGoalErrorCode, message string, err error) *SavingsGoalError {
	return &SavingsGoalError{Code: code, Message: message, Err: err}
}
