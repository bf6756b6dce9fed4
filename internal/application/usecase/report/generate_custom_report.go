// Package report contains the reporting and analytics use cases.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// MaxReportRangeDays is the maximum span of a report window. Windows of
// exactly this many days are accepted; anything longer is rejected.
const MaxReportRangeDays = 730

// TopExpenseLimit is the maximum number of entries in a report's top
// expense list.
const TopExpenseLimit = 10

// avgMonthDays is the fixed day count used for the per-month average. It is
// deliberately not calendar-accurate; downstream consumers rely on the
// constant for output compatibility.
const avgMonthDays = 30

// CategorySummary is one row of a report's category breakdown.
type CategorySummary struct {
	CategoryName     string          `json:"category_name"`
	Total            decimal.Decimal `json:"total"`
	PercentOfTotal   float64         `json:"percent_of_total"`
	TransactionCount int             `json:"transaction_count"`
}

// ExpenseDetail is one row of a report's top expense list.
type ExpenseDetail struct {
	ID             uuid.UUID       `json:"id"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	CategoryName   string          `json:"category_name"`
	PercentOfTotal float64         `json:"percent_of_total"`
}

// TrendPoint is a single labeled amount in a trend series. The label is a
// date (daily series) or a month identifier (monthly series).
type TrendPoint struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// ReportResult is the full output of a custom or predefined report.
type ReportResult struct {
	StartDate        time.Time                  `json:"start_date"`
	EndDate          time.Time                  `json:"end_date"`
	CategoryName     string                     `json:"category_name,omitempty"`
	TotalSpent       decimal.Decimal            `json:"total_spent"`
	TransactionCount int                        `json:"transaction_count"`
	AveragePerDay    decimal.Decimal            `json:"average_per_day"`
	AveragePerWeek   decimal.Decimal            `json:"average_per_week"`
	AveragePerMonth  decimal.Decimal            `json:"average_per_month"`
	CategoryBreakdown []CategorySummary         `json:"category_breakdown"`
	TopExpenses      []ExpenseDetail            `json:"top_expenses"`
	DailyTrend       []TrendPoint               `json:"daily_trend"`
	DayOfWeekTotals  map[string]decimal.Decimal `json:"day_of_week_totals"`
	Comparison       PeriodComparison           `json:"comparison"`
}

// GenerateCustomReportInput represents the input for a custom date range report.
type GenerateCustomReportInput struct {
	UserID     uuid.UUID
	StartDate  *time.Time // Defaults to the user's earliest expense date
	EndDate    *time.Time // Defaults to today
	CategoryID *uuid.UUID // Optional category filter
}

// GenerateCustomReportUseCase aggregates a user's expenses over an arbitrary
// date window into a full report.
type GenerateCustomReportUseCase struct {
	expenseSource  ExpenseSource
	categorySource CategorySource
	now            func() time.Time
}

// NewGenerateCustomReportUseCase creates a new GenerateCustomReportUseCase instance.
func NewGenerateCustomReportUseCase(
	expenseSource ExpenseSource,
	categorySource CategorySource,
) *GenerateCustomReportUseCase {
	return &GenerateCustomReportUseCase{
		expenseSource:  expenseSource,
		categorySource: categorySource,
		now:            time.Now,
	}
}

// Execute generates the report for the given window and optional category
// filter. The period comparison always covers the window of identical length
// immediately preceding the requested one, filtered the same way.
func (uc *GenerateCustomReportUseCase) Execute(
	ctx context.Context,
	input GenerateCustomReportInput,
) (*ReportResult, error) {
	window, err := uc.resolveWindow(ctx, input)
	if err != nil {
		return nil, err
	}

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

	// Previous window uses the same category filter so the comparison is
	// like-for-like.
	previous := PreviousWindow(window)
	prevExpenses, err := uc.expenseSource.FindInRange(ctx, input.UserID, previous.Start, previous.End, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous period expenses: %w", err)
	}
	result.Comparison = Compare(previous, result.TotalSpent, sumAmounts(prevExpenses))

	return result, nil
}

// resolveWindow applies the default rules for missing dates and validates
// the resulting window.
func (uc *GenerateCustomReportUseCase) resolveWindow(
	ctx context.Context,
	input GenerateCustomReportInput,
) (Window, error) {
	end := dateOnly(uc.now())
	if input.EndDate != nil {
		end = dateOnly(*input.EndDate)
	}

	var start time.Time
	switch {
	case input.StartDate != nil:
		start = dateOnly(*input.StartDate)
	default:
		earliest, err := uc.expenseSource.FindEarliestExpenseDate(ctx, input.UserID)
		if err != nil {
			return Window{}, fmt.Errorf("failed to look up earliest expense date: %w", err)
		}
		if earliest != nil {
			start = dateOnly(*earliest)
		} else {
			// User has no expenses at all: default to the start of the end
			// date's month, which yields a short but valid window.
			start = startOfMonth(end)
		}
	}

	return validateWindow(start, end)
}

// validateWindow enforces the ordering and 2-year size limits shared by all
// windowed report operations.
func validateWindow(start, end time.Time) (Window, error) {
	if start.After(end) {
		return Window{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportDateRange,
			"start date cannot be after end date",
			domainerror.ErrInvalidDateRange,
		)
	}
	if daysBetween(start, end) > MaxReportRangeDays {
		return Window{}, domainerror.NewReportError(
			domainerror.ErrCodeReportRangeTooLarge,
			"date range cannot exceed 2 years",
			domainerror.ErrRangeTooLarge,
		)
	}
	return Window{Start: start, End: end}, nil
}

// buildReport computes every window-local metric of a report: totals,
// averages, category breakdown, top expenses, the dense daily trend and the
// day-of-week distribution. The period comparison is attached by the caller.
func buildReport(window Window, expenses []*entity.Expense, names map[uuid.UUID]string) *ReportResult {
	totalSpent := sumAmounts(expenses)
	days := window.Days()

	avgDaily := decimal.Zero
	if days > 0 {
		avgDaily = totalSpent.Div(decimal.NewFromInt(int64(days))).Round(entity.MoneyScale)
	}

	return &ReportResult{
		StartDate:         window.Start,
		EndDate:           window.End,
		TotalSpent:        totalSpent,
		TransactionCount:  len(expenses),
		AveragePerDay:     avgDaily,
		AveragePerWeek:    avgDaily.Mul(decimal.NewFromInt(7)),
		AveragePerMonth:   avgDaily.Mul(decimal.NewFromInt(avgMonthDays)),
		CategoryBreakdown: categoryBreakdown(expenses, names, totalSpent),
		TopExpenses:       topExpenses(expenses, names, totalSpent),
		DailyTrend:        dailyTrend(window, expenses),
		DayOfWeekTotals:   dayOfWeekTotals(expenses),
	}
}

// sumAmounts adds up the amounts of the given expenses.
func sumAmounts(expenses []*entity.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// categoryBreakdown groups expenses by category name, sorted by descending
// total. Expenses whose category cannot be resolved fall under the
// Uncategorized sentinel instead of aborting the report.
func categoryBreakdown(
	expenses []*entity.Expense,
	names map[uuid.UUID]string,
	totalSpent decimal.Decimal,
) []CategorySummary {
	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, e := range expenses {
		name := categoryNameFor(e, names)
		totals[name] = totals[name].Add(e.Amount)
		counts[name]++
	}

	breakdown := make([]CategorySummary, 0, len(totals))
	for name, total := range totals {
		breakdown = append(breakdown, CategorySummary{
			CategoryName:     name,
			Total:            total,
			PercentOfTotal:   percentOfTotal(total, totalSpent),
			TransactionCount: counts[name],
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].Total.Equal(breakdown[j].Total) {
			return breakdown[i].Total.GreaterThan(breakdown[j].Total)
		}
		return breakdown[i].CategoryName < breakdown[j].CategoryName
	})

	return breakdown
}

// topExpenses returns up to TopExpenseLimit expenses ordered by descending
// amount. The sort is stable so ties keep their original order.
func topExpenses(
	expenses []*entity.Expense,
	names map[uuid.UUID]string,
	totalSpent decimal.Decimal,
) []ExpenseDetail {
	ranked := make([]*entity.Expense, len(expenses))
	copy(ranked, expenses)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})

	if len(ranked) > TopExpenseLimit {
		ranked = ranked[:TopExpenseLimit]
	}

	details := make([]ExpenseDetail, len(ranked))
	for i, e := range ranked {
		details[i] = ExpenseDetail{
			ID:             e.ID,
			Date:           e.Date,
			Description:    e.Description,
			Amount:         e.Amount,
			CategoryName:   categoryNameFor(e, names),
			PercentOfTotal: percentOfTotal(e.Amount, totalSpent),
		}
	}
	return details
}

// dailyTrend builds one point per calendar day in the window, zero-filled
// for days without spending. The series is always dense and ascending.
func dailyTrend(window Window, expenses []*entity.Expense) []TrendPoint {
	perDay := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		key := dateOnly(e.Date).Format("2006-01-02")
		perDay[key] = perDay[key].Add(e.Amount)
	}

	trend := make([]TrendPoint, 0, window.Days())
	for date := window.Start; !date.After(window.End); date = date.AddDate(0, 0, 1) {
		key := date.Format("2006-01-02")
		amount := decimal.Zero
		if v, ok := perDay[key]; ok {
			amount = v
		}
		trend = append(trend, TrendPoint{Label: key, Amount: amount})
	}
	return trend
}

// dayOfWeekTotals sums spending per weekday name. Only weekdays with at
// least one expense appear in the map.
func dayOfWeekTotals(expenses []*entity.Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		day := e.Date.Weekday().String()
		totals[day] = totals[day].Add(e.Amount)
	}
	return totals
}
