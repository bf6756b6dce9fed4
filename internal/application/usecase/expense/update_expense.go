// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// UpdateExpenseInput represents the input for expense update.
type UpdateExpenseInput struct {
	ExpenseID     uuid.UUID
	UserID        uuid.UUID
	Date          *time.Time
	Description   *string
	Amount        *decimal.Decimal
	CategoryID    *uuid.UUID
	ClearCategory bool // Set to true to remove the category
}

// UpdateExpenseOutput represents the output of expense update.
type UpdateExpenseOutput struct {
	Expense *ExpenseOutput
}

// UpdateExpenseUseCase handles expense update logic.
type UpdateExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	now          func() time.Time
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

// Execute performs the expense update.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	expense, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpenseNotFound,
				"expense not found",
				domainerror.ErrExpenseNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	if expense.UserID != input.UserID {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeNotAuthorizedExpense,
			"not authorized to update this expense",
			domainerror.ErrNotAuthorizedToModifyExpense,
		)
	}

	if input.Date != nil {
		expense.Date = *input.Date
	}
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Amount != nil {
		expense.Amount = input.Amount.Round(entity.MoneyScale)
	}

	// The full field set is revalidated so a partial update cannot sneak an
	// invalid combination past the create-time checks.
	if err := validateExpenseFields(expense.Description, expense.Amount, expense.Date, uc.now()); err != nil {
		return nil, err
	}

	var category *entity.Category
	switch {
	case input.ClearCategory:
		expense.CategoryID = nil
	case input.CategoryID != nil:
		cat, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForExpense,
			)
		}
		if cat.UserID != input.UserID {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpCategoryNotOwned,
				"category does not belong to user",
				domainerror.ErrCategoryNotOwnedByUser,
			)
		}
		expense.CategoryID = input.CategoryID
		category = cat
	case expense.CategoryID != nil:
		// Load the existing category for the response.
		if cat, err := uc.categoryRepo.FindByID(ctx, *expense.CategoryID); err == nil {
			category = cat
		}
	}

	expense.UpdatedAt = uc.now().UTC()

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return &UpdateExpenseOutput{
		Expense: buildExpenseOutput(expense, category),
	}, nil
}
