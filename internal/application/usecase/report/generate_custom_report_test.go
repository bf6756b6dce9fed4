package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// stubExpenseSource serves a fixed expense list, filtered the way the real
// persistence layer would filter it.
type stubExpenseSource struct {
	expenses []*entity.Expense
}

func (s *stubExpenseSource) FindInRange(
	_ context.Context,
	userID uuid.UUID,
	start, end time.Time,
	categoryID *uuid.UUID,
) ([]*entity.Expense, error) {
	window := Window{Start: dateOnly(start), End: dateOnly(end)}

	var matched []*entity.Expense
	for _, e := range s.expenses {
		if e.UserID != userID || !window.Contains(e.Date) {
			continue
		}
		if categoryID != nil && (e.CategoryID == nil || *e.CategoryID != *categoryID) {
			continue
		}
		matched = append(matched, e)
	}
	return matched, nil
}

func (s *stubExpenseSource) FindEarliestExpenseDate(_ context.Context, userID uuid.UUID) (*time.Time, error) {
	var earliest *time.Time
	for _, e := range s.expenses {
		if e.UserID != userID {
			continue
		}
		d := dateOnly(e.Date)
		if earliest == nil || d.Before(*earliest) {
			earliest = &d
		}
	}
	return earliest, nil
}

type stubCategorySource struct {
	categories []*entity.Category
}

func (s *stubCategorySource) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var owned []*entity.Category
	for _, c := range s.categories {
		if c.UserID == userID {
			owned = append(owned, c)
		}
	}
	return owned, nil
}

type stubBudgetSource struct {
	budgets []*entity.Budget
}

func (s *stubBudgetSource) FindActiveByUser(_ context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var active []*entity.Budget
	for _, b := range s.budgets {
		if b.UserID == userID && b.Active {
			active = append(active, b)
		}
	}
	return active, nil
}

func testExpense(userID uuid.UUID, amount string, day time.Time, categoryID *uuid.UUID) *entity.Expense {
	return &entity.Expense{
		ID:         uuid.New(),
		UserID:     userID,
		Amount:     decimal.RequireFromString(amount),
		Date:       day,
		CategoryID: categoryID,
	}
}

func testCategory(userID uuid.UUID, name string) *entity.Category {
	return &entity.Category{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateCustomReport(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	catA := testCategory(userID, "Food")
	catB := testCategory(userID, "Transport")
	categories := &stubCategorySource{categories: []*entity.Category{catA, catB}}

	t.Run("aggregates totals, averages and breakdown", func(t *testing.T) {
		expenses := &stubExpenseSource{expenses: []*entity.Expense{
			testExpense(userID, "10.00", date(2024, time.January, 1), &catA.ID),
			testExpense(userID, "20.00", date(2024, time.January, 2), &catA.ID),
			testExpense(userID, "5.00", date(2024, time.January, 2), &catB.ID),
		}}

		uc := NewGenerateCustomReportUseCase(expenses, categories)
		result, err := uc.Execute(ctx, GenerateCustomReportInput{
			UserID:    userID,
			StartDate: timePtr(date(2024, time.January, 1)),
			EndDate:   timePtr(date(2024, time.January, 2)),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !result.TotalSpent.Equal(decimal.RequireFromString("35.00")) {
			t.Errorf("expected total 35.00, got %s", result.TotalSpent)
		}
		if result.TransactionCount != 3 {
			t.Errorf("expected 3 transactions, got %d", result.TransactionCount)
		}
		if !result.AveragePerDay.Equal(decimal.RequireFromString("17.50")) {
			t.Errorf("expected avg per day 17.50, got %s", result.AveragePerDay)
		}
		if !result.AveragePerWeek.Equal(decimal.RequireFromString("122.50")) {
			t.Errorf("expected avg per week 122.50, got %s", result.AveragePerWeek)
		}
		if !result.AveragePerMonth.Equal(decimal.RequireFromString("525.00")) {
			t.Errorf("expected avg per month 525.00, got %s", result.AveragePerMonth)
		}

		if len(result.CategoryBreakdown) != 2 {
			t.Fatalf("expected 2 breakdown rows, got %d", len(result.CategoryBreakdown))
		}
		food := result.CategoryBreakdown[0]
		if food.CategoryName != "Food" || !food.Total.Equal(decimal.RequireFromString("30.00")) {
			t.Errorf("expected Food 30.00 first, got %s %s", food.CategoryName, food.Total)
		}
		if food.PercentOfTotal != 85.71 {
			t.Errorf("expected Food at 85.71%%, got %v", food.PercentOfTotal)
		}
		if food.TransactionCount != 2 {
			t.Errorf("expected Food count 2, got %d", food.TransactionCount)
		}
		transport := result.CategoryBreakdown[1]
		if transport.PercentOfTotal != 14.29 {
			t.Errorf("expected Transport at 14.29%%, got %v", transport.PercentOfTotal)
		}
	})

	t.Run("breakdown totals conserve the grand total", func(t *testing.T) {
		expenses := &stubExpenseSource{expenses: []*entity.Expense{
			testExpense(userID, "12.34", date(2024, time.March, 1), &catA.ID),
			testExpense(userID, "56.78", date(2024, time.March, 5), &catB.ID),
			testExpense(userID, "9.01", date(2024, time.March, 9), nil),
		}}

		uc := NewGenerateCustomReportUseCase(expenses, categories)
		result, err := uc.Execute(ctx, GenerateCustomReportInput{
			UserID:    userID,
			StartDate: timePtr(date(2024, time.March, 1)),
			EndDate:   timePtr(date(2024, time.March, 31)),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		sum := decimal.Zero
		for _, row := range result.CategoryBreakdown {
			sum = sum.Add(row.Total)
		}
		if !sum.Equal(result.TotalSpent) {
			t.Errorf("breakdown sums to %s, total is %s", sum, result.TotalSpent)
		}
	})

	t.Run("daily trend is dense and zero filled", func(t *testing.T) {
		expenses := &stubExpenseSource{expenses: []*entity.Expense{
			testExpense(userID, "10.00", date(2024, time.January, 1), &catA.ID),
			testExpense(userID, "20.00", date(2024, time.January, 5), &catA.ID),
		}}

		uc := NewGenerateCustomReportUseCase(expenses, categories)
		result, err := uc.Execute(ctx, GenerateCustomReportInput{
			UserID:    userID,
			StartDate: timePtr(date(2024, time.January, 1)),
			EndDate:   timePtr(date(2024, time.January, 7)),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.DailyTrend) != 7 {
			t.Fatalf("expected 7 trend points, got %d", len(result.DailyTrend))
		}
		if result.DailyTrend[0].Label != "2024-01-01" {
			t.Errorf("expected first label 2024-01-01, got %s", result.DailyTrend[0].Label)
		}
		if !result.DailyTrend[1].Amount.IsZero() {
			t.Errorf("expected zero for empty day, got %s", result.DailyTrend[1].Amount)
		}
		if !result.DailyTrend[4].Amount.Equal(decimal.RequireFromString("20.00")) {
			t.Errorf("expected 20.00 on January 5th, got %s", result.DailyTrend[4].Amount)
		}
	})

	t.Run("top expenses are capped at ten and sorted descending", func(t *testing.T) {
		var all []*entity.Expense
		for i := 1; i <= 12; i++ {
			all = append(all, testExpense(userID, decimal.NewFromInt(int64(i)).StringFixed(2),
				date(2024, time.January, i), &catA.ID))
		}
		expenses := &stubExpenseSource{expenses: all}

		uc := NewGenerateCustomReportUseCase(expenses, categories)
		result, err := uc.Execute(ctx, GenerateCustomReportInput{
			UserID:    userID,
			StartDate: timePtr(date(2024, time.January, 1)),
			EndDate:   timePtr(date(2024, time.January, 31)),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.TopExpenses) != 10 {
			t.Fatalf("expected 10 top expenses, got %d", len(result.TopExpenses))
		}
		for i := 1; i < len(result.TopExpenses); i++ {
			if result.TopExpenses[i].Amount.GreaterThan(result.TopExpenses[i-1].Amount) {
				t.Errorf("top expenses not sorted descending at index %d", i)
			}
		}
		if !result.TopExpenses[0].Amount.Equal(decimal.RequireFromString("12.00")) {
			t.Errorf("expected largest expense 12.00, got %s", result.TopExpenses[0].Amount)
		}
	})

	t.Run("expenses without a category fall under Uncategorized", func(t *testing.T) {
		expenses := &stubExpenseSource{expenses: []*entity.Expense{
			testExpense(userID, "15.00", date(2024, time.January, 1), nil),
		}}

		uc := NewGenerateCustomReportUseCase(expenses, categories)
		result, err := uc.Execute(ctx, GenerateCustomReportInput{
			UserID:    userID,
			StartDate: timePtr(date(2024, time.January, 1)),
			EndDate:   timePtr(date(2024, time.January, 1)),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.CategoryBreakdown) != 1 {
			t.Fatalf("expected 1 breakdown row, got %d", len(result.CategoryBreakdown))
		}
		if result.CategoryBreakdown[0].CategoryName != entity.UncategorizedName {
			t.Errorf("expected %s, got %s", entity.UncategorizedName, result.CategoryBreakdown[0].CategoryName)
		}
	})

	t.Run("category filter restricts the report and names the filter", func(t *testing.T) {
		expenses := &stubExpenseSource{expenses: []*entity.Expense{
			testExpense(userID, "10.00", date(2024, time.January, 1), &catA.ID),
			testExpense(userID, "99.00", date(2024, time.January, 1), &catB.ID),
		}}

		uc := NewGenerateCustomReportUseCase(expenses, categories)
		result, err := uc.Execute(ctx, GenerateCustomReportInput{
			UserID:     userID,
			StartDate:  timePtr(date(2024, time.January, 1)),
			EndDate:    timePtr(date(2024, time.January, 2)),
			CategoryID: &catA.ID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.CategoryName != "Food" {
			t.Errorf("expected filter name Food, got %s", result.CategoryName)
		}
		if !result.TotalSpent.Equal(decimal.RequireFromString("10.00")) {
			t.Errorf("expected filtered total 10.00, got %s", result.TotalSpent)
		}
	})

	t.Run("comparison covers the preceding window of identical length", func(t *testing.T) {
		expenses := &stubExpenseSource{expenses: []*entity.Expense{
			testExpense(userID, "50.00", date(2024, time.January, 3), &catA.ID),
			testExpense(userID, "100.00", date(2024, time.January, 10), &catA.ID),
		}}

		uc := NewGenerateCustomReportUseCase(expenses, categories)
		result, err := uc.Execute(ctx, GenerateCustomReportInput{
			UserID:    userID,
			StartDate: timePtr(date(2024, time.January, 8)),
			EndDate:   timePtr(date(2024, time.January, 14)),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		comparison := result.Comparison
		if !comparison.PreviousStart.Equal(date(2024, time.January, 1)) {
			t.Errorf("expected previous start January 1st, got %v", comparison.PreviousStart)
		}
		if !comparison.PreviousEnd.Equal(date(2024, time.January, 7)) {
			t.Errorf("expected previous end January 7th, got %v", comparison.PreviousEnd)
		}
		if !comparison.PreviousTotal.Equal(decimal.RequireFromString("50.00")) {
			t.Errorf("expected previous total 50.00, got %s", comparison.PreviousTotal)
		}
		if comparison.PercentageChange != 100.0 {
			t.Errorf("expected 100%% change, got %v", comparison.PercentageChange)
		}
	})

	t.Run("empty window produces zeroes, not errors", func(t *testing.T) {
		expenses := &stubExpenseSource{}

		uc := NewGenerateCustomReportUseCase(expenses, categories)
		result, err := uc.Execute(ctx, GenerateCustomReportInput{
			UserID:    userID,
			StartDate: timePtr(date(2024, time.June, 1)),
			EndDate:   timePtr(date(2024, time.June, 30)),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !result.TotalSpent.IsZero() {
			t.Errorf("expected zero total, got %s", result.TotalSpent)
		}
		if !result.AveragePerDay.IsZero() {
			t.Errorf("expected zero average, got %s", result.AveragePerDay)
		}
		if result.Comparison.PercentageChange != 0.0 {
			t.Errorf("expected 0%% change for two empty windows, got %v", result.Comparison.PercentageChange)
		}
		if len(result.DailyTrend) != 30 {
			t.Errorf("expected dense 30 point trend, got %d", len(result.DailyTrend))
		}
	})

	t.Run("start after end is rejected", func(t *testing.T) {
		uc := NewGenerateCustomReportUseCase(&stubExpenseSource{}, categories)
		_, err := uc.Execute(ctx, GenerateCustomReportInput{
			UserID:    userID,
			StartDate: timePtr(date(2024, time.February, 1)),
			EndDate:   timePtr(date(2024, time.January, 1)),
		})
		if !errors.Is(err, domainerror.ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("window over 730 days is rejected", func(t *testing.T) {
		uc := NewGenerateCustomReportUseCase(&stubExpenseSource{}, categories)
		_, err := uc.Execute(ctx, GenerateCustomReportInput{
			UserID:    userID,
			StartDate: timePtr(date(2022, time.January, 1)),
			EndDate:   timePtr(date(2024, time.June, 1)),
		})
		if !errors.Is(err, domainerror.ErrRangeTooLarge) {
			t.Fatalf("expected ErrRangeTooLarge, got %v", err)
		}
	})

	t.Run("window of exactly 730 days is accepted", func(t *testing.T) {
		uc := NewGenerateCustomReportUseCase(&stubExpenseSource{}, categories)
		start := date(2024, time.June, 1)
		end := start.AddDate(0, 0, MaxReportRangeDays)
		_, err := uc.Execute(ctx, GenerateCustomReportInput{
			UserID:    userID,
			StartDate: timePtr(start),
			EndDate:   timePtr(end),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing start date defaults to the earliest expense", func(t *testing.T) {
		expenses := &stubExpenseSource{expenses: []*entity.Expense{
			testExpense(userID, "10.00", date(2024, time.April, 5), &catA.ID),
			testExpense(userID, "20.00", date(2024, time.May, 1), &catA.ID),
		}}

		uc := NewGenerateCustomReportUseCase(expenses, categories)
		uc.now = fixedClock(date(2024, time.May, 15))

		result, err := uc.Execute(ctx, GenerateCustomReportInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.StartDate.Equal(date(2024, time.April, 5)) {
			t.Errorf("expected start April 5th, got %v", result.StartDate)
		}
		if !result.EndDate.Equal(date(2024, time.May, 15)) {
			t.Errorf("expected end May 15th, got %v", result.EndDate)
		}
	})

	t.Run("missing start date without history falls back to first of month", func(t *testing.T) {
		uc := NewGenerateCustomReportUseCase(&stubExpenseSource{}, categories)
		uc.now = fixedClock(date(2024, time.May, 15))

		result, err := uc.Execute(ctx, GenerateCustomReportInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.StartDate.Equal(date(2024, time.May, 1)) {
			t.Errorf("expected start May 1st, got %v", result.StartDate)
		}
	})

	t.Run("day of week totals only include active days", func(t *testing.T) {
		// January 1st 2024 is a Monday.
		expenses := &stubExpenseSource{expenses: []*entity.Expense{
			testExpense(userID, "10.00", date(2024, time.January, 1), &catA.ID),
			testExpense(userID, "20.00", date(2024, time.January, 8), &catA.ID),
			testExpense(userID, "5.00", date(2024, time.January, 3), &catB.ID),
		}}

		uc := NewGenerateCustomReportUseCase(expenses, categories)
		result, err := uc.Execute(ctx, GenerateCustomReportInput{
			UserID:    userID,
			StartDate: timePtr(date(2024, time.January, 1)),
			EndDate:   timePtr(date(2024, time.January, 14)),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.DayOfWeekTotals) != 2 {
			t.Fatalf("expected 2 weekdays, got %d", len(result.DayOfWeekTotals))
		}
		if !result.DayOfWeekTotals["Monday"].Equal(decimal.RequireFromString("30.00")) {
			t.Errorf("expected Monday total 30.00, got %s", result.DayOfWeekTotals["Monday"])
		}
		if !result.DayOfWeekTotals["Wednesday"].Equal(decimal.RequireFromString("5.00")) {
			t.Errorf("expected Wednesday total 5.00, got %s", result.DayOfWeekTotals["Wednesday"])
		}
	})
}
