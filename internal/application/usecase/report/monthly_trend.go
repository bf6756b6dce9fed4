package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// Month count bounds for the monthly trend. Out-of-range requests are
// clamped, matching the heatmap's defensive posture.
const (
	MinTrendMonths     = 3
	MaxTrendMonths     = 24
	DefaultTrendMonths = 12
)

// trendDirectionSwingPct is the minimum relative swing between the first
// and last thirds of a series before it counts as directional.
const trendDirectionSwingPct = 10.0

// TrendDirection is the coarse overall direction of a monthly series.
type TrendDirection string

const (
	TrendIncreasing       TrendDirection = "increasing"
	TrendDecreasing       TrendDirection = "decreasing"
	TrendStable           TrendDirection = "stable"
	TrendInsufficientData TrendDirection = "insufficient-data"
)

// MonthlyTrendPoint is one month of the sliding trend series. Change fields
// are nil for the first point, which has no predecessor to compare against.
type MonthlyTrendPoint struct {
	MonthLabel     string                     `json:"month_label"` // e.g. "Jan 2025"
	Total          decimal.Decimal            `json:"total"`
	CategoryTotals map[string]decimal.Decimal `json:"category_totals"`
	ChangeAmount   *decimal.Decimal           `json:"change_amount,omitempty"`
	ChangePercent  *float64                   `json:"change_percent,omitempty"`
}

// TrendStatistics summarizes a monthly series: extremes, overall average and
// coarse direction.
type TrendStatistics struct {
	AverageMonthly decimal.Decimal `json:"average_monthly"`
	HighestMonth   string          `json:"highest_month"`
	HighestAmount  decimal.Decimal `json:"highest_amount"`
	LowestMonth    string          `json:"lowest_month"`
	LowestAmount   decimal.Decimal `json:"lowest_amount"`
	Direction      TrendDirection  `json:"direction"`
}

// MonthlyTrendResult is the trend series with its derived statistics.
type MonthlyTrendResult struct {
	Months     []MonthlyTrendPoint `json:"months"`
	Statistics TrendStatistics     `json:"statistics"`
}

// GenerateMonthlyTrendInput represents the input for a monthly trend report.
type GenerateMonthlyTrendInput struct {
	UserID uuid.UUID
	Months int
}

// GenerateMonthlyTrendUseCase builds the per-month spending series for the N
// full calendar months ending with the month before the current one. The
// current partial month is excluded so it cannot skew the series.
type GenerateMonthlyTrendUseCase struct {
	expenseSource  ExpenseSource
	categorySource CategorySource
	now            func() time.Time
}

// NewGenerateMonthlyTrendUseCase creates a new GenerateMonthlyTrendUseCase instance.
func NewGenerateMonthlyTrendUseCase(
	expenseSource ExpenseSource,
	categorySource CategorySource,
) *GenerateMonthlyTrendUseCase {
	return &GenerateMonthlyTrendUseCase{
		expenseSource:  expenseSource,
		categorySource: categorySource,
		now:            time.Now,
	}
}

// Execute builds the trend over the requested number of months, clamped to
// [MinTrendMonths, MaxTrendMonths] with DefaultTrendMonths for zero.
func (uc *GenerateMonthlyTrendUseCase) Execute(
	ctx context.Context,
	input GenerateMonthlyTrendInput,
) (*MonthlyTrendResult, error) {
	months := clampTrendMonths(input.Months)

	today := dateOnly(uc.now())
	window := lastFullMonths(today, months)

	categories, err := uc.categorySource.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	names := categoryNames(categories)

	expenses, err := uc.expenseSource.FindInRange(ctx, input.UserID, window.Start, window.End, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	points := buildMonthlyTrend(window.Start, months, expenses, names)
	return &MonthlyTrendResult{
		Months:     points,
		Statistics: ComputeTrendStatistics(points),
	}, nil
}

func clampTrendMonths(months int) int {
	switch {
	case months == 0:
		return DefaultTrendMonths
	case months < MinTrendMonths:
		return MinTrendMonths
	case months > MaxTrendMonths:
		return MaxTrendMonths
	default:
		return months
	}
}

// buildMonthlyTrend is the pure computation behind Execute: one point per
// month from oldest to newest, with per-category totals and month-over-month
// change relative to the preceding point.
func buildMonthlyTrend(
	firstMonth time.Time,
	months int,
	expenses []*entity.Expense,
	names map[uuid.UUID]string,
) []MonthlyTrendPoint {
	totals := make(map[string]decimal.Decimal)
	perCategory := make(map[string]map[string]decimal.Decimal)
	for _, e := range expenses {
		key := monthLabel(e.Date)
		totals[key] = totals[key].Add(e.Amount)

		if perCategory[key] == nil {
			perCategory[key] = make(map[string]decimal.Decimal)
		}
		name := categoryNameFor(e, names)
		perCategory[key][name] = perCategory[key][name].Add(e.Amount)
	}

	points := make([]MonthlyTrendPoint, 0, months)
	for i := 0; i < months; i++ {
		month := firstMonth.AddDate(0, i, 0)
		label := monthLabel(month)

		total := decimal.Zero
		if v, ok := totals[label]; ok {
			total = v
		}
		categoryTotals := perCategory[label]
		if categoryTotals == nil {
			categoryTotals = make(map[string]decimal.Decimal)
		}

		point := MonthlyTrendPoint{
			MonthLabel:     label,
			Total:          total,
			CategoryTotals: categoryTotals,
		}
		if i > 0 {
			prev := points[i-1].Total
			change := total.Sub(prev)
			pct := percentChange(total, prev)
			point.ChangeAmount = &change
			point.ChangePercent = &pct
		}
		points = append(points, point)
	}
	return points
}

// ComputeTrendStatistics derives the extremes, overall average and coarse
// direction of a monthly series. The direction compares the average of the
// first three points against the last three; a swing over 10% in either
// direction counts as directional, anything less is stable. Series shorter
// than six points cannot support the comparison and report
// insufficient-data.
func ComputeTrendStatistics(points []MonthlyTrendPoint) TrendStatistics {
	stats := TrendStatistics{Direction: TrendInsufficientData}
	if len(points) == 0 {
		return stats
	}

	total := decimal.Zero
	highest, lowest := points[0], points[0]
	for _, p := range points {
		total = total.Add(p.Total)
		if p.Total.GreaterThan(highest.Total) {
			highest = p
		}
		if p.Total.LessThan(lowest.Total) {
			lowest = p
		}
	}

	stats.AverageMonthly = total.Div(decimal.NewFromInt(int64(len(points)))).Round(entity.MoneyScale)
	stats.HighestMonth = highest.MonthLabel
	stats.HighestAmount = highest.Total
	stats.LowestMonth = lowest.MonthLabel
	stats.LowestAmount = lowest.Total

	if len(points) >= 6 {
		stats.Direction = trendDirection(points)
	}
	return stats
}

func trendDirection(points []MonthlyTrendPoint) TrendDirection {
	first := averageOf(points[:3])
	last := averageOf(points[len(points)-3:])

	if first.IsZero() {
		if last.GreaterThan(decimal.Zero) {
			return TrendIncreasing
		}
		return TrendStable
	}

	swing := last.Sub(first).Mul(decimal.NewFromInt(100)).Div(first)
	threshold := decimal.NewFromFloat(trendDirectionSwingPct)
	switch {
	case swing.GreaterThan(threshold):
		return TrendIncreasing
	case swing.LessThan(threshold.Neg()):
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func averageOf(points []MonthlyTrendPoint) decimal.Decimal {
	if len(points) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.Total)
	}
	return total.Div(decimal.NewFromInt(int64(len(points))))
}
