package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func testBudget(userID, categoryID uuid.UUID, amount string) *entity.Budget {
	return &entity.Budget{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      decimal.RequireFromString(amount),
		PeriodStart: date(2025, time.June, 1),
		Recurring:   true,
		Active:      true,
	}
}

func performanceByName(t *testing.T, performances []CategoryPerformance, name string) CategoryPerformance {
	t.Helper()
	for _, p := range performances {
		if p.CategoryName == name {
			return p
		}
	}
	t.Fatalf("no performance entry for %s", name)
	return CategoryPerformance{}
}

func TestAnalyzeCategoryPerformance(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	food := testCategory(userID, "Food")
	transport := testCategory(userID, "Transport")
	hobbies := testCategory(userID, "Hobbies")
	categories := &stubCategorySource{categories: []*entity.Category{food, transport, hobbies}}

	// Current window is June 2025, previous window the preceding 18 days
	// (day-count predecessor of June 1st-18th).
	clock := fixedClock(date(2025, time.June, 18))

	expenses := &stubExpenseSource{expenses: []*entity.Expense{
		testExpense(userID, "90.00", date(2025, time.June, 5), &food.ID),
		testExpense(userID, "30.00", date(2025, time.June, 10), &food.ID),
		testExpense(userID, "40.00", date(2025, time.June, 12), &transport.ID),
		// Previous window spending.
		testExpense(userID, "60.00", date(2025, time.May, 20), &food.ID),
	}}

	budgets := &stubBudgetSource{budgets: []*entity.Budget{
		testBudget(userID, food.ID, "100.00"),     // 120 spent: over
		testBudget(userID, transport.ID, "45.00"), // 40 spent: near (88.89%)
	}}

	newUseCase := func() *AnalyzeCategoryPerformanceUseCase {
		uc := NewAnalyzeCategoryPerformanceUseCase(expenses, categories, budgets)
		uc.now = clock
		return uc
	}

	t.Run("every category gets an entry including inactive ones", func(t *testing.T) {
		performances, err := newUseCase().Execute(ctx, AnalyzeCategoryPerformanceInput{
			UserID: userID,
			Period: PeriodThisMonth,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(performances) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(performances))
		}

		idle := performanceByName(t, performances, "Hobbies")
		if !idle.CurrentTotal.IsZero() || idle.TransactionCount != 0 {
			t.Errorf("expected zero activity for Hobbies, got %s / %d", idle.CurrentTotal, idle.TransactionCount)
		}
		if idle.BudgetStatus != BudgetStatusNoBudget {
			t.Errorf("expected no-budget for Hobbies, got %s", idle.BudgetStatus)
		}
	})

	t.Run("computes spend, average and share per category", func(t *testing.T) {
		performances, err := newUseCase().Execute(ctx, AnalyzeCategoryPerformanceInput{
			UserID: userID,
			Period: PeriodThisMonth,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		foodPerf := performanceByName(t, performances, "Food")
		if !foodPerf.CurrentTotal.Equal(decimal.RequireFromString("120.00")) {
			t.Errorf("expected Food total 120.00, got %s", foodPerf.CurrentTotal)
		}
		if foodPerf.TransactionCount != 2 {
			t.Errorf("expected Food count 2, got %d", foodPerf.TransactionCount)
		}
		if !foodPerf.AverageTransaction.Equal(decimal.RequireFromString("60.00")) {
			t.Errorf("expected Food average 60.00, got %s", foodPerf.AverageTransaction)
		}
		if foodPerf.PercentOfTotal != 75.0 {
			t.Errorf("expected Food at 75%%, got %v", foodPerf.PercentOfTotal)
		}
		if !foodPerf.PreviousTotal.Equal(decimal.RequireFromString("60.00")) {
			t.Errorf("expected Food previous 60.00, got %s", foodPerf.PreviousTotal)
		}
		if foodPerf.PercentageChange != 100.0 {
			t.Errorf("expected Food change 100%%, got %v", foodPerf.PercentageChange)
		}
	})

	t.Run("classifies budget utilization", func(t *testing.T) {
		performances, err := newUseCase().Execute(ctx, AnalyzeCategoryPerformanceInput{
			UserID: userID,
			Period: PeriodThisMonth,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		foodPerf := performanceByName(t, performances, "Food")
		if foodPerf.BudgetStatus != BudgetStatusOver {
			t.Errorf("expected Food over budget, got %s", foodPerf.BudgetStatus)
		}
		if foodPerf.BudgetUsedPercent == nil || *foodPerf.BudgetUsedPercent != 120.0 {
			t.Errorf("expected Food at 120%% of budget, got %v", foodPerf.BudgetUsedPercent)
		}
		if !foodPerf.BudgetRemaining.Equal(decimal.RequireFromString("-20.00")) {
			t.Errorf("expected Food remaining -20.00, got %s", foodPerf.BudgetRemaining)
		}

		transportPerf := performanceByName(t, performances, "Transport")
		if transportPerf.BudgetStatus != BudgetStatusNear {
			t.Errorf("expected Transport near budget, got %s", transportPerf.BudgetStatus)
		}
	})

	t.Run("exact threshold boundaries", func(t *testing.T) {
		atLimit := testCategory(userID, "AtLimit")
		approaching := testCategory(userID, "Approaching")
		comfortable := testCategory(userID, "Comfortable")

		localCategories := &stubCategorySource{categories: []*entity.Category{atLimit, approaching, comfortable}}
		localExpenses := &stubExpenseSource{expenses: []*entity.Expense{
			testExpense(userID, "100.00", date(2025, time.June, 5), &atLimit.ID),
			testExpense(userID, "85.00", date(2025, time.June, 5), &approaching.ID),
			testExpense(userID, "84.99", date(2025, time.June, 5), &comfortable.ID),
		}}
		localBudgets := &stubBudgetSource{budgets: []*entity.Budget{
			testBudget(userID, atLimit.ID, "100.00"),
			testBudget(userID, approaching.ID, "100.00"),
			testBudget(userID, comfortable.ID, "100.00"),
		}}

		uc := NewAnalyzeCategoryPerformanceUseCase(localExpenses, localCategories, localBudgets)
		uc.now = clock

		performances, err := uc.Execute(ctx, AnalyzeCategoryPerformanceInput{
			UserID: userID,
			Period: PeriodThisMonth,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := performanceByName(t, performances, "AtLimit").BudgetStatus; got != BudgetStatusOver {
			t.Errorf("expected over at exactly 100%%, got %s", got)
		}
		if got := performanceByName(t, performances, "Approaching").BudgetStatus; got != BudgetStatusNear {
			t.Errorf("expected near at exactly 85%%, got %s", got)
		}
		if got := performanceByName(t, performances, "Comfortable").BudgetStatus; got != BudgetStatusUnder {
			t.Errorf("expected under just below 85%%, got %s", got)
		}
	})

	t.Run("budgeted category with no spending is under at zero percent", func(t *testing.T) {
		savings := testCategory(userID, "Savings")
		localCategories := &stubCategorySource{categories: []*entity.Category{savings}}
		localBudgets := &stubBudgetSource{budgets: []*entity.Budget{
			testBudget(userID, savings.ID, "200.00"),
		}}

		uc := NewAnalyzeCategoryPerformanceUseCase(&stubExpenseSource{}, localCategories, localBudgets)
		uc.now = clock

		performances, err := uc.Execute(ctx, AnalyzeCategoryPerformanceInput{
			UserID: userID,
			Period: PeriodThisMonth,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		idle := performanceByName(t, performances, "Savings")
		if idle.BudgetStatus != BudgetStatusUnder {
			t.Errorf("expected under with zero spend, got %s", idle.BudgetStatus)
		}
		if idle.BudgetUsedPercent == nil || *idle.BudgetUsedPercent != 0.0 {
			t.Errorf("expected 0%% of budget used, got %v", idle.BudgetUsedPercent)
		}
		if !idle.BudgetRemaining.Equal(decimal.RequireFromString("200.00")) {
			t.Errorf("expected full budget remaining, got %s", idle.BudgetRemaining)
		}
	})

	t.Run("uncategorized spending gets its own entry", func(t *testing.T) {
		localExpenses := &stubExpenseSource{expenses: []*entity.Expense{
			testExpense(userID, "25.00", date(2025, time.June, 5), nil),
		}}

		uc := NewAnalyzeCategoryPerformanceUseCase(localExpenses, categories, &stubBudgetSource{})
		uc.now = clock

		performances, err := uc.Execute(ctx, AnalyzeCategoryPerformanceInput{
			UserID: userID,
			Period: PeriodThisMonth,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uncategorized := performanceByName(t, performances, entity.UncategorizedName)
		if !uncategorized.CurrentTotal.Equal(decimal.RequireFromString("25.00")) {
			t.Errorf("expected 25.00, got %s", uncategorized.CurrentTotal)
		}
		if uncategorized.BudgetStatus != BudgetStatusNoBudget {
			t.Errorf("expected no-budget, got %s", uncategorized.BudgetStatus)
		}
	})

	t.Run("default sort is amount descending", func(t *testing.T) {
		performances, err := newUseCase().Execute(ctx, AnalyzeCategoryPerformanceInput{
			UserID: userID,
			Period: PeriodThisMonth,
			SortBy: ParseSortField(""),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if performances[0].CategoryName != "Food" {
			t.Errorf("expected Food first, got %s", performances[0].CategoryName)
		}
		if performances[1].CategoryName != "Transport" {
			t.Errorf("expected Transport second, got %s", performances[1].CategoryName)
		}
	})

	t.Run("sort by name", func(t *testing.T) {
		performances, err := newUseCase().Execute(ctx, AnalyzeCategoryPerformanceInput{
			UserID: userID,
			Period: PeriodThisMonth,
			SortBy: SortByName,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"Food", "Hobbies", "Transport"}
		for i, name := range want {
			if performances[i].CategoryName != name {
				t.Errorf("expected %s at index %d, got %s", name, i, performances[i].CategoryName)
			}
		}
	})

	t.Run("sort by budget puts unbudgeted categories last", func(t *testing.T) {
		performances, err := newUseCase().Execute(ctx, AnalyzeCategoryPerformanceInput{
			UserID: userID,
			Period: PeriodThisMonth,
			SortBy: SortByBudget,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if performances[0].CategoryName != "Food" {
			t.Errorf("expected Food (largest budget) first, got %s", performances[0].CategoryName)
		}
		last := performances[len(performances)-1]
		if last.BudgetAmount != nil {
			t.Errorf("expected unbudgeted category last, got %s", last.CategoryName)
		}
	})
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		raw  string
		want SortField
	}{
		{raw: "amount", want: SortByAmount},
		{raw: "name", want: SortByName},
		{raw: "budget", want: SortByBudget},
		{raw: "change", want: SortByChange},
		{raw: "CHANGE", want: SortByChange},
		{raw: "", want: SortByAmount},
		{raw: "bogus", want: SortByAmount},
	}

	for _, tt := range tests {
		if got := ParseSortField(tt.raw); got != tt.want {
			t.Errorf("ParseSortField(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}
