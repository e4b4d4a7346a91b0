// Package error defines domain-specific errors for the Budget Tracker application.
package error

import "errors"

// Alert delivery errors. None of them ever fail a transaction commit.
var (
	// ErrAlertDispatchFailed is returned when an alert could not be handed to a transport.
	ErrAlertDispatchFailed = errors.New("failed to dispatch budget alert")

	// ErrAlertTransportUnavailable is returned when the configured transport is not connected.
	ErrAlertTransportUnavailable = errors.New("alert transport unavailable")

	// ErrAlertEvaluationFailed is returned when budget thresholds could not be evaluated.
	ErrAlertEvaluationFailed = errors.New("failed to evaluate budget thresholds")
)

// AlertErrorCode defines error codes for alert errors.
// Format: ALR-XXYYYY where XX is category and YYYY is specific error.
type AlertErrorCode string

const (
	// Evaluation errors (01XXXX)
	ErrCodeAlertEvaluationFailed AlertErrorCode = "ALR-010001"

	// Dispatch errors (02XXXX)
	ErrCodeAlertDispatchFailed       AlertErrorCode = "ALR-020001"
	ErrCodeAlertTransportUnavailable AlertErrorCode = "ALR-020002"
)

// AlertError represents an alert error with code and message.
type AlertError struct {
	Code    AlertErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AlertError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AlertError) Unwrap() error {
	return e.Err
}

// NewAlertError creates a new AlertError with the given code and message.
func NewAlertError(code AlertErrorCode, message string, err error) *AlertError {
	return &AlertError{Code: code, Message: message, Err: err}
}
