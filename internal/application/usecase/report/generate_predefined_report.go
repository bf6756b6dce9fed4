package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GeneratePredefinedReportInput represents the input for a named period report.
type GeneratePredefinedReportInput struct {
	UserID     uuid.UUID
	Period     Period
	CategoryID *uuid.UUID // Optional category filter
}

// GeneratePredefinedReportUseCase generates a full report for one of the
// named periods (THIS_WEEK, LAST_MONTH, ...). An unrecognized period falls
// back to THIS_MONTH instead of failing the request.
type GeneratePredefinedReportUseCase struct {
	expenseSource  ExpenseSource
	categorySource CategorySource
	now            func() time.Time
}

// NewGeneratePredefinedReportUseCase creates a new GeneratePredefinedReportUseCase instance.
func NewGeneratePredefinedReportUseCase(
	expenseSource ExpenseSource,
	categorySource CategorySource,
) *GeneratePredefinedReportUseCase {
	return &GeneratePredefinedReportUseCase{
		expenseSource:  expenseSource,
		categorySource: categorySource,
		now:            time.Now,
	}
}

// Execute resolves the named period into a date window and aggregates the
// user's expenses over it.
func (uc *GeneratePredefinedReportUseCase) Execute(
	ctx context.Context,
	input GeneratePredefinedReportInput,
) (*ReportResult, error) {
	window := uc.resolveWindow(input.Period)

	categories, err := uc.categorySource.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	names := categoryNames(categories)

	expenses, err := uc.expenseSource.FindInRange(ctx, input.UserID, window.Start, window.End, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	result := buildReport(window, expenses, names)
	if input.CategoryID != nil {
		result.CategoryName = names[*input.CategoryID]
	}

	previous := PreviousWindow(window)
	prevExpenses, err := uc.expenseSource.FindInRange(ctx, input.UserID, previous.Start, previous.End, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous period expenses: %w", err)
	}
	result.Comparison = Compare(previous, result.TotalSpent, sumAmounts(prevExpenses))

	return result, nil
}

// resolveWindow maps the period to a window, falling back to THIS_MONTH when
// the token is unrecognized.
func (uc *GeneratePredefinedReportUseCase) resolveWindow(period Period) Window {
	window, err := ResolvePeriod(period, uc.now())
	if err == nil {
		return window
	}

	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		slog.Warn("unrecognized report period, falling back to THIS_MONTH",
			"period", string(period),
			"code", string(reportErr.Code))
	}

	fallback, _ := ResolvePeriod(PeriodThisMonth, uc.now())
	return fallback
}
