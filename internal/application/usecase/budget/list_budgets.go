// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID uuid.UUID
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*entity.BudgetWithUsage
}

// ListBudgetsUseCase lists a user's budgets enriched with current spending.
type ListBudgetsUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	expenseRepo  adapter.ExpenseRepository
	now          func() time.Time
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	expenseRepo adapter.ExpenseRepository,
) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		now:          time.Now,
	}
}

// Execute lists the user's budgets with their current usage. Usage is
// computed over each budget's effective window, so recurring budgets track
// the current calendar month.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	budgets, err := uc.budgetRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	today := uc.now().UTC()

	output := &ListBudgetsOutput{
		Budgets: make([]*entity.BudgetWithUsage, len(budgets)),
	}
	for i, b := range budgets {
		withUsage := &entity.BudgetWithUsage{
			Budget:       b,
			CategoryName: names[b.CategoryID],
		}

		start, end := b.EffectiveWindow(today)
		spent, err := uc.expenseRepo.SumByCategory(ctx, input.UserID, b.CategoryID, start, end)
		if err == nil {
			withUsage.SpentAmount = decimal.NewFromFloat(spent).Round(entity.MoneyScale)
			if !b.Amount.IsZero() {
				pct, _ := withUsage.SpentAmount.
					Mul(hundred).
					Div(b.Amount).
					Round(2).
					Float64()
				if pct > 100 {
					pct = 100
				}
				withUsage.PercentageUsed = pct
			}
		}

		output.Budgets[i] = withUsage
	}

	return output, nil
}
