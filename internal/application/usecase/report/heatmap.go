package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// HeatmapMinYear is the earliest year the heatmap accepts. Out-of-range
// years are clamped to the current one rather than rejected.
const HeatmapMinYear = 2000

// ColorLevel buckets a day's spending relative to the month's daily average.
type ColorLevel string

const (
	ColorLevelNone     ColorLevel = "none"
	ColorLevelLow      ColorLevel = "low"
	ColorLevelMedium   ColorLevel = "medium"
	ColorLevelHigh     ColorLevel = "high"
	ColorLevelVeryHigh ColorLevel = "very-high"
)

// DaySpending is one cell of the calendar heatmap.
type DaySpending struct {
	Date             time.Time       `json:"date"`
	Amount           decimal.Decimal `json:"amount"`
	TransactionCount int             `json:"transaction_count"`
	ColorLevel       ColorLevel      `json:"color_level"`
}

// HeatmapResult is a dense month of DaySpending cells plus the month-level
// aggregates the coloring was derived from.
type HeatmapResult struct {
	Year         int                    `json:"year"`
	Month        time.Month             `json:"month"`
	Days         map[string]DaySpending `json:"days"` // keyed by "2006-01-02"
	MonthTotal   decimal.Decimal        `json:"month_total"`
	AverageDaily decimal.Decimal        `json:"average_daily"`
}

// GenerateHeatmapInput represents the input for a calendar heatmap.
type GenerateHeatmapInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// GenerateHeatmapUseCase buckets a month's per-day spending into a fixed
// color scale relative to the month's daily average.
type GenerateHeatmapUseCase struct {
	expenseSource ExpenseSource
	now           func() time.Time
}

// NewGenerateHeatmapUseCase creates a new GenerateHeatmapUseCase instance.
func NewGenerateHeatmapUseCase(expenseSource ExpenseSource) *GenerateHeatmapUseCase {
	return &GenerateHeatmapUseCase{
		expenseSource: expenseSource,
		now:           time.Now,
	}
}

// Execute builds the heatmap for the requested month. Out-of-range year or
// month values are clamped to the current ones, never rejected.
func (uc *GenerateHeatmapUseCase) Execute(
	ctx context.Context,
	input GenerateHeatmapInput,
) (*HeatmapResult, error) {
	today := dateOnly(uc.now())
	year, month := clampYearMonth(input.Year, input.Month, today)

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := endOfMonth(start)

	expenses, err := uc.expenseSource.FindInRange(ctx, input.UserID, start, end, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	return buildHeatmap(year, month, expenses), nil
}

// clampYearMonth applies the defensive bounds: year in [2000, currentYear+1]
// and month in [1, 12]. Anything outside collapses to today's year or month.
func clampYearMonth(year, month int, today time.Time) (int, time.Month) {
	if year < HeatmapMinYear || year > today.Year()+1 {
		year = today.Year()
	}
	if month < 1 || month > 12 {
		month = int(today.Month())
	}
	return year, time.Month(month)
}

// buildHeatmap is the pure computation behind Execute. The result always
// contains one cell per calendar day of the month.
func buildHeatmap(year int, month time.Month, expenses []*entity.Expense) *HeatmapResult {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := endOfMonth(start)
	daysInMonth := end.Day()

	amounts := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	total := decimal.Zero
	for _, e := range expenses {
		key := dateOnly(e.Date).Format("2006-01-02")
		amounts[key] = amounts[key].Add(e.Amount)
		counts[key]++
		total = total.Add(e.Amount)
	}

	// A month with no spending produces an all-none heatmap; the average
	// stays zero so no division happens below.
	avgDaily := decimal.Zero
	if total.GreaterThan(decimal.Zero) {
		avgDaily = total.Div(decimal.NewFromInt(int64(daysInMonth))).Round(entity.MoneyScale)
	}

	days := make(map[string]DaySpending, daysInMonth)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		key := date.Format("2006-01-02")
		amount := decimal.Zero
		if v, ok := amounts[key]; ok {
			amount = v
		}
		days[key] = DaySpending{
			Date:             date,
			Amount:           amount,
			TransactionCount: counts[key],
			ColorLevel:       colorLevel(amount, avgDaily),
		}
	}

	return &HeatmapResult{
		Year:         year,
		Month:        month,
		Days:         days,
		MonthTotal:   total,
		AverageDaily: avgDaily,
	}
}

// colorLevel maps a day's amount to its bucket relative to the month's daily
// average: none (zero), low (≤0.5x), medium (≤1.5x), high (≤3x), very-high.
func colorLevel(amount, avgDaily decimal.Decimal) ColorLevel {
	if amount.IsZero() {
		return ColorLevelNone
	}
	if avgDaily.IsZero() {
		return ColorLevelNone
	}

	switch {
	case amount.LessThanOrEqual(avgDaily.Mul(decimal.NewFromFloat(0.5))):
		return ColorLevelLow
	case amount.LessThanOrEqual(avgDaily.Mul(decimal.NewFromFloat(1.5))):
		return ColorLevelMedium
	case amount.LessThanOrEqual(avgDaily.Mul(decimal.NewFromInt(3))):
		return ColorLevelHigh
	default:
		return ColorLevelVeryHigh
	}
}
