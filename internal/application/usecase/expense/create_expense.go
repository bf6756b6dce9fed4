// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for expense descriptions.
const MaxDescriptionLength = 255

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *ExpenseOutput
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	now          func() time.Time
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

// Execute performs the expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	if err := validateExpenseFields(input.Description, input.Amount, input.Date, uc.now()); err != nil {
		return nil, err
	}

	// Validate category ownership if provided
	var category *entity.Category
	if input.CategoryID != nil {
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
		category = cat
	}

	expense := entity.NewExpense(
		input.UserID,
		input.Description,
		input.Amount,
		input.CategoryID,
		input.Date,
	)

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return &CreateExpenseOutput{
		Expense: buildExpenseOutput(expense, category),
	}, nil
}

// validateExpenseFields checks the shared invariants of expense creation and
// update: a positive amount, a non-empty bounded description, and a date not
// in the future.
func validateExpenseFields(description string, amount decimal.Decimal, date, now time.Time) error {
	if description == "" {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeDescriptionRequired,
			"description is required",
			domainerror.ErrDescriptionRequired,
		)
	}
	if len(description) > MaxDescriptionLength {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	if !amount.GreaterThan(decimal.Zero) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must be greater than 0",
			domainerror.ErrInvalidExpenseAmount,
		)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	expenseDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if expenseDay.After(today) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeExpenseDateInFuture,
			"expense date cannot be in the future",
			domainerror.ErrExpenseDateInFuture,
		)
	}
	return nil
}
