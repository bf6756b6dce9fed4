// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense is not found in the system.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrNotAuthorizedToModifyExpense is returned when user is not authorized to modify an expense.
	ErrNotAuthorizedToModifyExpense = errors.New("not authorized to modify expense")

	// ErrInvalidExpenseAmount is returned when the expense amount is zero or negative.
	ErrInvalidExpenseAmount = errors.New("amount must be greater than 0")

	// ErrExpenseDateInFuture is returned when the expense date is after today.
	ErrExpenseDateInFuture = errors.New("expense date cannot be in the future")

	// ErrDescriptionRequired is returned when the expense description is empty.
	ErrDescriptionRequired = errors.New("description is required")

	// ErrDescriptionTooLong is returned when the expense description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrCategoryNotFoundForExpense is returned when the specified category is not found.
	ErrCategoryNotFoundForExpense = errors.New("category not found")

	// ErrCategoryNotOwnedByUser is returned when the category does not belong to the user.
	ErrCategoryNotOwnedByUser = errors.New("category does not belong to user")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpenseAmount ExpenseErrorCode = "EXP-010001"
	ErrCodeExpenseDateInFuture  ExpenseErrorCode = "EXP-010002"
	ErrCodeDescriptionRequired  ExpenseErrorCode = "EXP-010003"
	ErrCodeDescriptionTooLong   ExpenseErrorCode = "EXP-010004"
	ErrCodeExpenseNotFound      ExpenseErrorCode = "EXP-010005"
	ErrCodeNotAuthorizedExpense ExpenseErrorCode = "EXP-010006"
	ErrCodeExpCategoryNotFound  ExpenseErrorCode = "EXP-010007"
	ErrCodeExpCategoryNotOwned  ExpenseErrorCode = "EXP-010008"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
