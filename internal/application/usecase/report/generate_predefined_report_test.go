package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func TestGeneratePredefinedReport(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	clock := fixedClock(date(2025, time.June, 18))

	food := testCategory(userID, "Food")
	categories := &stubCategorySource{categories: []*entity.Category{food}}

	expenses := &stubExpenseSource{expenses: []*entity.Expense{
		testExpense(userID, "50.00", date(2025, time.June, 2), &food.ID),
		testExpense(userID, "25.00", date(2025, time.May, 10), &food.ID),
	}}

	t.Run("this month resolves to the 1st through today", func(t *testing.T) {
		uc := NewGeneratePredefinedReportUseCase(expenses, categories)
		uc.now = clock

		result, err := uc.Execute(ctx, GeneratePredefinedReportInput{
			UserID: userID,
			Period: PeriodThisMonth,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !result.StartDate.Equal(date(2025, time.June, 1)) {
			t.Errorf("expected start June 1st, got %v", result.StartDate)
		}
		if !result.EndDate.Equal(date(2025, time.June, 18)) {
			t.Errorf("expected end June 18th, got %v", result.EndDate)
		}
		if !result.TotalSpent.Equal(decimal.RequireFromString("50.00")) {
			t.Errorf("expected total 50.00, got %s", result.TotalSpent)
		}
	})

	t.Run("last month covers the full prior month", func(t *testing.T) {
		uc := NewGeneratePredefinedReportUseCase(expenses, categories)
		uc.now = clock

		result, err := uc.Execute(ctx, GeneratePredefinedReportInput{
			UserID: userID,
			Period: PeriodLastMonth,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !result.StartDate.Equal(date(2025, time.May, 1)) || !result.EndDate.Equal(date(2025, time.May, 31)) {
			t.Errorf("expected full May, got %v..%v", result.StartDate, result.EndDate)
		}
		if !result.TotalSpent.Equal(decimal.RequireFromString("25.00")) {
			t.Errorf("expected total 25.00, got %s", result.TotalSpent)
		}
	})

	t.Run("unknown period falls back to this month", func(t *testing.T) {
		uc := NewGeneratePredefinedReportUseCase(expenses, categories)
		uc.now = clock

		result, err := uc.Execute(ctx, GeneratePredefinedReportInput{
			UserID: userID,
			Period: Period("FORTNIGHT"),
		})
		if err != nil {
			t.Fatalf("expected graceful fallback, got error: %v", err)
		}
		if !result.StartDate.Equal(date(2025, time.June, 1)) {
			t.Errorf("expected fallback to this month, got start %v", result.StartDate)
		}
	})
}
