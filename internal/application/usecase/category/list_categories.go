// Package category contains category-related use cases.
package category

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID    uuid.UUID
	StartDate *time.Time // Optional start date for usage statistics
	EndDate   *time.Time // Optional end date for usage statistics
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	ID          uuid.UUID
	Name        string
	IsDefault   bool
	PeriodTotal float64 // Spend within the requested window, 0 when no window given
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListCategoriesUseCase handles listing categories logic.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
	expenseRepo  adapter.ExpenseRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(
	categoryRepo adapter.CategoryRepository,
	expenseRepo adapter.ExpenseRepository,
) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
	}
}

// Execute performs the category listing, optionally enriched with per-window
// spend statistics.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	withStats := input.StartDate != nil && input.EndDate != nil

	output := &ListCategoriesOutput{
		Categories: make([]*CategoryOutput, len(categories)),
	}
	for i, cat := range categories {
		categoryOutput := &CategoryOutput{
			ID:        cat.ID,
			Name:      cat.Name,
			IsDefault: cat.IsDefault,
			CreatedAt: cat.CreatedAt,
			UpdatedAt: cat.UpdatedAt,
		}

		if withStats {
			total, err := uc.expenseRepo.SumByCategory(ctx, input.UserID, cat.ID, *input.StartDate, *input.EndDate)
			if err == nil {
				// Statistics are best-effort; a failed sum leaves the zero value.
				categoryOutput.PeriodTotal = total
			}
		}

		output.Categories[i] = categoryOutput
	}

	return output, nil
}
