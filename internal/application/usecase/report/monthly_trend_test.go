package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func TestGenerateMonthlyTrend(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	clock := fixedClock(date(2025, time.June, 18))

	food := testCategory(userID, "Food")
	categories := &stubCategorySource{categories: []*entity.Category{food}}

	t.Run("series covers full months ending last month", func(t *testing.T) {
		expenses := &stubExpenseSource{expenses: []*entity.Expense{
			testExpense(userID, "100.00", date(2025, time.March, 10), &food.ID),
			testExpense(userID, "200.00", date(2025, time.April, 10), &food.ID),
			testExpense(userID, "150.00", date(2025, time.May, 10), &food.ID),
			// Current partial month must be excluded.
			testExpense(userID, "999.00", date(2025, time.June, 10), &food.ID),
		}}

		uc := NewGenerateMonthlyTrendUseCase(expenses, categories)
		uc.now = clock

		result, err := uc.Execute(ctx, GenerateMonthlyTrendInput{UserID: userID, Months: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Months) != 3 {
			t.Fatalf("expected 3 points, got %d", len(result.Months))
		}
		if result.Months[0].MonthLabel != "Mar 2025" {
			t.Errorf("expected Mar 2025 first, got %s", result.Months[0].MonthLabel)
		}
		if result.Months[2].MonthLabel != "May 2025" {
			t.Errorf("expected May 2025 last, got %s", result.Months[2].MonthLabel)
		}
		if !result.Months[2].Total.Equal(decimal.RequireFromString("150.00")) {
			t.Errorf("expected May total 150.00, got %s", result.Months[2].Total)
		}
	})

	t.Run("change fields are nil for the first point only", func(t *testing.T) {
		expenses := &stubExpenseSource{expenses: []*entity.Expense{
			testExpense(userID, "100.00", date(2025, time.March, 10), &food.ID),
			testExpense(userID, "150.00", date(2025, time.April, 10), &food.ID),
		}}

		uc := NewGenerateMonthlyTrendUseCase(expenses, categories)
		uc.now = clock

		result, err := uc.Execute(ctx, GenerateMonthlyTrendInput{UserID: userID, Months: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		first := result.Months[0]
		if first.ChangeAmount != nil || first.ChangePercent != nil {
			t.Error("expected no change fields on the first point")
		}

		second := result.Months[1]
		if second.ChangeAmount == nil || second.ChangePercent == nil {
			t.Fatal("expected change fields on the second point")
		}
		if !second.ChangeAmount.Equal(decimal.RequireFromString("50.00")) {
			t.Errorf("expected change 50.00, got %s", second.ChangeAmount)
		}
		if *second.ChangePercent != 50.0 {
			t.Errorf("expected change 50%%, got %v", *second.ChangePercent)
		}

		// May had no spending: a full drop against April.
		third := result.Months[2]
		if third.ChangePercent == nil || *third.ChangePercent != -100.0 {
			t.Errorf("expected change -100%%, got %v", third.ChangePercent)
		}
	})

	t.Run("empty months are zero filled", func(t *testing.T) {
		uc := NewGenerateMonthlyTrendUseCase(&stubExpenseSource{}, categories)
		uc.now = clock

		result, err := uc.Execute(ctx, GenerateMonthlyTrendInput{UserID: userID, Months: 6})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Months) != 6 {
			t.Fatalf("expected 6 points, got %d", len(result.Months))
		}
		for _, point := range result.Months {
			if !point.Total.IsZero() {
				t.Errorf("expected zero total for %s, got %s", point.MonthLabel, point.Total)
			}
			if len(point.CategoryTotals) != 0 {
				t.Errorf("expected empty category totals for %s", point.MonthLabel)
			}
		}
	})

	t.Run("per month category totals group by name", func(t *testing.T) {
		expenses := &stubExpenseSource{expenses: []*entity.Expense{
			testExpense(userID, "30.00", date(2025, time.May, 2), &food.ID),
			testExpense(userID, "20.00", date(2025, time.May, 9), &food.ID),
			testExpense(userID, "10.00", date(2025, time.May, 10), nil),
		}}

		uc := NewGenerateMonthlyTrendUseCase(expenses, categories)
		uc.now = clock

		result, err := uc.Execute(ctx, GenerateMonthlyTrendInput{UserID: userID, Months: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		may := result.Months[2]
		if !may.CategoryTotals["Food"].Equal(decimal.RequireFromString("50.00")) {
			t.Errorf("expected Food 50.00 in May, got %s", may.CategoryTotals["Food"])
		}
		if !may.CategoryTotals[entity.UncategorizedName].Equal(decimal.RequireFromString("10.00")) {
			t.Errorf("expected Uncategorized 10.00 in May, got %s", may.CategoryTotals[entity.UncategorizedName])
		}
	})

	t.Run("month count is clamped", func(t *testing.T) {
		tests := []struct {
			name   string
			months int
			want   int
		}{
			{name: "zero defaults to twelve", months: 0, want: DefaultTrendMonths},
			{name: "below minimum", months: 1, want: MinTrendMonths},
			{name: "above maximum", months: 48, want: MaxTrendMonths},
			{name: "in range", months: 9, want: 9},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := NewGenerateMonthlyTrendUseCase(&stubExpenseSource{}, categories)
				uc.now = clock

				result, err := uc.Execute(ctx, GenerateMonthlyTrendInput{UserID: userID, Months: tt.months})
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(result.Months) != tt.want {
					t.Errorf("expected %d points, got %d", tt.want, len(result.Months))
				}
			})
		}
	})
}

func trendPoint(label string, total string) MonthlyTrendPoint {
	return MonthlyTrendPoint{
		MonthLabel: label,
		Total:      decimal.RequireFromString(total),
	}
}

func TestComputeTrendStatistics(t *testing.T) {
	t.Run("extremes and average", func(t *testing.T) {
		points := []MonthlyTrendPoint{
			trendPoint("Jan 2025", "100.00"),
			trendPoint("Feb 2025", "300.00"),
			trendPoint("Mar 2025", "200.00"),
		}

		stats := ComputeTrendStatistics(points)
		if stats.HighestMonth != "Feb 2025" || !stats.HighestAmount.Equal(decimal.RequireFromString("300.00")) {
			t.Errorf("expected highest Feb 2025 300.00, got %s %s", stats.HighestMonth, stats.HighestAmount)
		}
		if stats.LowestMonth != "Jan 2025" || !stats.LowestAmount.Equal(decimal.RequireFromString("100.00")) {
			t.Errorf("expected lowest Jan 2025 100.00, got %s %s", stats.LowestMonth, stats.LowestAmount)
		}
		if !stats.AverageMonthly.Equal(decimal.RequireFromString("200.00")) {
			t.Errorf("expected average 200.00, got %s", stats.AverageMonthly)
		}
	})

	t.Run("short series cannot report a direction", func(t *testing.T) {
		points := []MonthlyTrendPoint{
			trendPoint("Jan 2025", "100.00"),
			trendPoint("Feb 2025", "200.00"),
			trendPoint("Mar 2025", "300.00"),
		}

		stats := ComputeTrendStatistics(points)
		if stats.Direction != TrendInsufficientData {
			t.Errorf("expected insufficient-data, got %s", stats.Direction)
		}
	})

	t.Run("direction compares first and last thirds", func(t *testing.T) {
		tests := []struct {
			name   string
			totals []string
			want   TrendDirection
		}{
			{
				name:   "increasing",
				totals: []string{"100", "100", "100", "150", "150", "150"},
				want:   TrendIncreasing,
			},
			{
				name:   "decreasing",
				totals: []string{"150", "150", "150", "100", "100", "100"},
				want:   TrendDecreasing,
			},
			{
				name:   "stable within the ten percent band",
				totals: []string{"100", "100", "100", "105", "105", "105"},
				want:   TrendStable,
			},
			{
				name:   "spending appearing from nothing",
				totals: []string{"0", "0", "0", "50", "50", "50"},
				want:   TrendIncreasing,
			},
			{
				name:   "all zero",
				totals: []string{"0", "0", "0", "0", "0", "0"},
				want:   TrendStable,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				points := make([]MonthlyTrendPoint, len(tt.totals))
				for i, total := range tt.totals {
					points[i] = trendPoint("Month", total)
				}
				if got := ComputeTrendStatistics(points).Direction; got != tt.want {
					t.Errorf("expected %s, got %s", tt.want, got)
				}
			})
		}
	})

	t.Run("empty series", func(t *testing.T) {
		stats := ComputeTrendStatistics(nil)
		if stats.Direction != TrendInsufficientData {
			t.Errorf("expected insufficient-data, got %s", stats.Direction)
		}
		if !stats.AverageMonthly.IsZero() {
			t.Errorf("expected zero average, got %s", stats.AverageMonthly)
		}
	})
}
