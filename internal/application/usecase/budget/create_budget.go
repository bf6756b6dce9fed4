// Package budget contains budget-related use cases.
package budget

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

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Amount      decimal.Decimal
	PeriodStart time.Time
	PeriodEnd   *time.Time
	Recurring   bool
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *entity.Budget
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the budget creation. One active budget is allowed per
// category.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	if err := validateBudgetFields(input.Amount, input.PeriodStart, input.PeriodEnd); err != nil {
		return nil, err
	}

	// The category must exist and belong to the user.
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil || category.UserID != input.UserID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForBudget,
		)
	}

	exists, err := uc.budgetRepo.ExistsActiveByUserAndCategory(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check budget existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetAlreadyExists,
			"an active budget already exists for this category",
			domainerror.ErrBudgetAlreadyExists,
		)
	}

	budget := entity.NewBudget(
		input.UserID,
		input.CategoryID,
		input.Amount,
		input.PeriodStart,
		input.PeriodEnd,
		input.Recurring,
	)

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &CreateBudgetOutput{Budget: budget}, nil
}

// validateBudgetFields checks the shared invariants of budget creation and
// update.
func validateBudgetFields(amount decimal.Decimal, periodStart time.Time, periodEnd *time.Time) error {
	if !amount.GreaterThan(decimal.Zero) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must be positive",
			domainerror.ErrInvalidBudgetAmount,
		)
	}
	if periodStart.IsZero() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetPeriodStartRequired,
			"period start date is required",
			domainerror.ErrBudgetPeriodStartRequired,
		)
	}
	if periodEnd != nil && periodEnd.Before(periodStart) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetPeriodEndBeforeStart,
			"period end cannot be before period start",
			domainerror.ErrBudgetPeriodEndBeforeStart,
		)
	}
	return nil
}
