// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidDateRange is returned when the report start date is after the end date.
	ErrInvalidDateRange = errors.New("start date cannot be after end date")

	// ErrRangeTooLarge is returned when the report window exceeds 730 days.
	ErrRangeTooLarge = errors.New("date range cannot exceed 2 years")

	// ErrInvalidPeriod is returned when a period token is not recognized.
	// Callers are expected to fall back to the THIS_MONTH period rather than
	// fail the whole request.
	ErrInvalidPeriod = errors.New("unrecognized report period")

	// ErrInvalidReportDateFormat is returned when a report date parameter cannot be parsed.
	ErrInvalidReportDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidExportFormat is returned when an export format is not supported.
	ErrInvalidExportFormat = errors.New("unsupported export format")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidReportDateRange  ReportErrorCode = "RPT-010001"
	ErrCodeReportRangeTooLarge     ReportErrorCode = "RPT-010002"
	ErrCodeInvalidReportPeriod     ReportErrorCode = "RPT-010003"
	ErrCodeInvalidReportDateFormat ReportErrorCode = "RPT-010004"
	ErrCodeInvalidExportFormat     ReportErrorCode = "RPT-010005"

	// Internal errors (99XXXX)
	ErrCodeReportInternalError ReportErrorCode = "RPT-990001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
