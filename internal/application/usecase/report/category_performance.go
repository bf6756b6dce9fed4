package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// BudgetStatus classifies a category's spend against its active budget.
type BudgetStatus string

const (
	BudgetStatusUnder    BudgetStatus = "under"
	BudgetStatusNear     BudgetStatus = "near"
	BudgetStatusOver     BudgetStatus = "over"
	BudgetStatusNoBudget BudgetStatus = "no-budget"
)

// Budget utilization thresholds, in percent.
const (
	budgetOverThreshold = 100.0
	budgetNearThreshold = 85.0
)

// CategoryPerformance describes one category's spending over a window,
// compared against the preceding window and the category's active budget.
type CategoryPerformance struct {
	CategoryName       string           `json:"category_name"`
	CurrentTotal       decimal.Decimal  `json:"total_spent"`
	TransactionCount   int              `json:"transaction_count"`
	AverageTransaction decimal.Decimal  `json:"average_transaction"`
	PreviousTotal      decimal.Decimal  `json:"previous_period_spent"`
	ChangeAmount       decimal.Decimal  `json:"change_amount"`
	PercentageChange   float64          `json:"change_percent"`
	PercentOfTotal     float64          `json:"percent_of_total"`
	BudgetAllocated    decimal.Decimal  `json:"budget_allocated"`
	BudgetRemaining    decimal.Decimal  `json:"budget_remaining"`
	BudgetUsedPercent  *float64         `json:"budget_used_percent,omitempty"`
	BudgetAmount       *decimal.Decimal `json:"-"`
	BudgetStatus       BudgetStatus     `json:"budget_status"`
}

// AnalyzeCategoryPerformanceInput represents the input for a category
// performance analysis.
type AnalyzeCategoryPerformanceInput struct {
	UserID    uuid.UUID
	Period    Period
	StartDate *time.Time // Used only when Period is CUSTOM
	EndDate   *time.Time // Used only when Period is CUSTOM
	SortBy    SortField
}

// AnalyzeCategoryPerformanceUseCase computes per-category spending, change
// versus the preceding window, and budget utilization. Every category the
// user owns gets an entry, including categories with no activity.
type AnalyzeCategoryPerformanceUseCase struct {
	expenseSource  ExpenseSource
	categorySource CategorySource
	budgetSource   BudgetSource
	now            func() time.Time
}

// NewAnalyzeCategoryPerformanceUseCase creates a new AnalyzeCategoryPerformanceUseCase instance.
func NewAnalyzeCategoryPerformanceUseCase(
	expenseSource ExpenseSource,
	categorySource CategorySource,
	budgetSource BudgetSource,
) *AnalyzeCategoryPerformanceUseCase {
	return &AnalyzeCategoryPerformanceUseCase{
		expenseSource:  expenseSource,
		categorySource: categorySource,
		budgetSource:   budgetSource,
		now:            time.Now,
	}
}

// Execute analyzes every category over the resolved window and orders the
// result by the requested sort field.
func (uc *AnalyzeCategoryPerformanceUseCase) Execute(
	ctx context.Context,
	input AnalyzeCategoryPerformanceInput,
) ([]CategoryPerformance, error) {
	window, err := uc.resolveWindow(input)
	if err != nil {
		return nil, err
	}

	categories, err := uc.categorySource.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	budgets, err := uc.budgetSource.FindActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	expenses, err := uc.expenseSource.FindInRange(ctx, input.UserID, window.Start, window.End, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	previous := PreviousWindow(window)
	prevExpenses, err := uc.expenseSource.FindInRange(ctx, input.UserID, previous.Start, previous.End, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous period expenses: %w", err)
	}

	performances := analyzeCategories(categories, budgets, expenses, prevExpenses)
	sortPerformances(performances, input.SortBy)
	return performances, nil
}

func (uc *AnalyzeCategoryPerformanceUseCase) resolveWindow(
	input AnalyzeCategoryPerformanceInput,
) (Window, error) {
	if input.Period == PeriodCustom {
		end := dateOnly(uc.now())
		if input.EndDate != nil {
			end = dateOnly(*input.EndDate)
		}
		start := startOfMonth(end)
		if input.StartDate != nil {
			start = dateOnly(*input.StartDate)
		}
		return validateWindow(start, end)
	}

	window, err := ResolvePeriod(input.Period, uc.now())
	if err != nil {
		// Unknown period tokens degrade to THIS_MONTH.
		window, _ = ResolvePeriod(PeriodThisMonth, uc.now())
	}
	return window, nil
}

// analyzeCategories is the pure computation behind Execute. One entry per
// category, plus an Uncategorized entry when unassigned spending exists in
// either window.
func analyzeCategories(
	categories []*entity.Category,
	budgets []*entity.Budget,
	expenses, prevExpenses []*entity.Expense,
) []CategoryPerformance {
	names := categoryNames(categories)
	current := groupByName(expenses, names)
	previous := groupByName(prevExpenses, names)
	budgetByCategory := indexBudgets(budgets)

	grandTotal := sumAmounts(expenses)

	performances := make([]CategoryPerformance, 0, len(categories)+1)
	for _, category := range categories {
		perf := buildPerformance(category.Name, current[category.Name], previous[category.Name], grandTotal)
		applyBudget(&perf, budgetByCategory[category.ID])
		performances = append(performances, perf)
	}

	// Spending that maps to no known category still has to show up somewhere.
	_, hasCurrent := current[entity.UncategorizedName]
	_, hasPrevious := previous[entity.UncategorizedName]
	if hasCurrent || hasPrevious {
		perf := buildPerformance(
			entity.UncategorizedName,
			current[entity.UncategorizedName],
			previous[entity.UncategorizedName],
			grandTotal,
		)
		perf.BudgetStatus = BudgetStatusNoBudget
		performances = append(performances, perf)
	}

	return performances
}

// categoryBucket accumulates spend and count for one category name.
type categoryBucket struct {
	total decimal.Decimal
	count int
}

func groupByName(expenses []*entity.Expense, names map[uuid.UUID]string) map[string]categoryBucket {
	buckets := make(map[string]categoryBucket)
	for _, e := range expenses {
		name := categoryNameFor(e, names)
		bucket := buckets[name]
		bucket.total = bucket.total.Add(e.Amount)
		bucket.count++
		buckets[name] = bucket
	}
	return buckets
}

// indexBudgets maps category ID to its active budget. When a category has
// more than one active budget the first one wins.
func indexBudgets(budgets []*entity.Budget) map[uuid.UUID]*entity.Budget {
	byCategory := make(map[uuid.UUID]*entity.Budget, len(budgets))
	for _, b := range budgets {
		if b == nil || !b.Active {
			continue
		}
		if _, exists := byCategory[b.CategoryID]; !exists {
			byCategory[b.CategoryID] = b
		}
	}
	return byCategory
}

func buildPerformance(name string, current, previous categoryBucket, grandTotal decimal.Decimal) CategoryPerformance {
	avg := decimal.Zero
	if current.count > 0 {
		avg = current.total.Div(decimal.NewFromInt(int64(current.count))).Round(entity.MoneyScale)
	}

	return CategoryPerformance{
		CategoryName:       name,
		CurrentTotal:       current.total,
		TransactionCount:   current.count,
		AverageTransaction: avg,
		PreviousTotal:      previous.total,
		ChangeAmount:       current.total.Sub(previous.total),
		PercentageChange:   percentChange(current.total, previous.total),
		PercentOfTotal:     percentOfTotal(current.total, grandTotal),
		BudgetStatus:       BudgetStatusNoBudget,
	}
}

// applyBudget fills in the budget fields of a performance entry. A nil or
// zero-amount budget degrades to no-budget instead of failing the report.
func applyBudget(perf *CategoryPerformance, budget *entity.Budget) {
	if budget == nil || budget.Amount.IsZero() {
		return
	}

	used := percentOfTotal(perf.CurrentTotal, budget.Amount)
	amount := budget.Amount
	perf.BudgetAllocated = budget.Amount
	perf.BudgetRemaining = budget.Amount.Sub(perf.CurrentTotal)
	perf.BudgetUsedPercent = &used
	perf.BudgetAmount = &amount

	switch {
	case used >= budgetOverThreshold:
		perf.BudgetStatus = BudgetStatusOver
	case used >= budgetNearThreshold:
		perf.BudgetStatus = BudgetStatusNear
	default:
		perf.BudgetStatus = BudgetStatusUnder
	}
}
