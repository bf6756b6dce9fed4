// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrNotAuthorizedToModifyBudget is returned when user is not authorized to modify a budget.
	ErrNotAuthorizedToModifyBudget = errors.New("not authorized to modify budget")

	// ErrInvalidBudgetAmount is returned when the budget amount is zero or negative.
	ErrInvalidBudgetAmount = errors.New("budget amount must be positive")

	// ErrBudgetPeriodStartRequired is returned when the budget period start is missing.
	ErrBudgetPeriodStartRequired = errors.New("period start date is required")

	// ErrBudgetPeriodEndBeforeStart is returned when the period end precedes the period start.
	ErrBudgetPeriodEndBeforeStart = errors.New("period end cannot be before period start")

	// ErrBudgetAlreadyExists is returned when a budget already exists for the
	// same category and period start.
	ErrBudgetAlreadyExists = errors.New("a budget already exists for this category and period")

	// ErrCategoryNotFoundForBudget is returned when the budget's category is not found.
	ErrCategoryNotFoundForBudget = errors.New("category not found")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetAmount         BudgetErrorCode = "BDG-010001"
	ErrCodeBudgetPeriodStartRequired   BudgetErrorCode = "BDG-010002"
	ErrCodeBudgetPeriodEndBeforeStart  BudgetErrorCode = "BDG-010003"
	ErrCodeBudgetAlreadyExists         BudgetErrorCode = "BDG-010004"
	ErrCodeBudgetNotFound              BudgetErrorCode = "BDG-010005"
	ErrCodeNotAuthorizedBudget         BudgetErrorCode = "BDG-010006"
	ErrCodeBudgetCategoryNotFound      BudgetErrorCode = "BDG-010007"
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
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
