// Package budget contains budget-related use cases.
package budget

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

// UpdateBudgetInput represents the input for budget update.
type UpdateBudgetInput struct {
	BudgetID    uuid.UUID
	UserID      uuid.UUID
	Amount      *decimal.Decimal
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	ClearEnd    bool // Set to true to make the budget open-ended
	Recurring   *bool
	Active      *bool
}

// UpdateBudgetOutput represents the output of budget update.
type UpdateBudgetOutput struct {
	Budget *entity.Budget
}

// UpdateBudgetUseCase handles budget update logic.
type UpdateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	if budget.UserID != input.UserID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeNotAuthorizedBudget,
			"not authorized to modify this budget",
			domainerror.ErrNotAuthorizedToModifyBudget,
		)
	}

	if input.Amount != nil {
		budget.Amount = input.Amount.Round(entity.MoneyScale)
	}
	if input.PeriodStart != nil {
		budget.PeriodStart = *input.PeriodStart
	}
	if input.ClearEnd {
		budget.PeriodEnd = nil
	} else if input.PeriodEnd != nil {
		budget.PeriodEnd = input.PeriodEnd
	}
	if input.Recurring != nil {
		budget.Recurring = *input.Recurring
	}
	if input.Active != nil {
		budget.Active = *input.Active
	}

	if err := validateBudgetFields(budget.Amount, budget.PeriodStart, budget.PeriodEnd); err != nil {
		return nil, err
	}

	budget.UpdatedAt = time.Now().UTC()

	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return &UpdateBudgetOutput{Budget: budget}, nil
}
