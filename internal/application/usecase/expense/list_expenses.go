// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// Pagination bounds for expense listing.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ListExpensesInput represents the input for listing expenses.
type ListExpensesInput struct {
	UserID     uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	Search     string
	Page       int
	Limit      int
}

// ExpenseOutput represents a single expense in the output.
type ExpenseOutput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID
	Category    *CategoryOutput
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryOutput represents category information in expense output.
type CategoryOutput struct {
	ID        uuid.UUID
	Name      string
	IsDefault bool
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses   []*ExpenseOutput
	Pagination PaginationOutput
}

// ListExpensesUseCase handles listing expenses logic.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute performs the expense listing.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	filter := adapter.ExpenseFilter{
		UserID:     input.UserID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		CategoryID: input.CategoryID,
		Search:     input.Search,
	}

	result, err := uc.expenseRepo.FindByFilter(ctx, filter, adapter.ExpensePagination{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	output := &ListExpensesOutput{
		Expenses: make([]*ExpenseOutput, len(result.Expenses)),
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
	for i, withCategory := range result.Expenses {
		output.Expenses[i] = buildExpenseOutput(withCategory.Expense, withCategory.Category)
	}
	return output, nil
}

// buildExpenseOutput assembles the output representation shared by the
// expense use cases.
func buildExpenseOutput(expense *entity.Expense, category *entity.Category) *ExpenseOutput {
	out := &ExpenseOutput{
		ID:          expense.ID,
		UserID:      expense.UserID,
		Date:        expense.Date,
		Description: expense.Description,
		Amount:      expense.Amount,
		CategoryID:  expense.CategoryID,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
	if category != nil {
		out.Category = &CategoryOutput{
			ID:        category.ID,
			Name:      category.Name,
			IsDefault: category.IsDefault,
		}
	}
	return out
}
