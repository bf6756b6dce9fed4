// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Success bool
	// DetachedExpenses is the number of expenses left uncategorized by
	// the deletion.
	DetachedExpenses int64
}

// DeleteCategoryUseCase handles category deletion logic. Deleting a category
// never deletes its expenses; they become uncategorized instead.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	expenseRepo  adapter.ExpenseRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	expenseRepo adapter.ExpenseRepository,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if category.UserID != input.UserID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"not authorized to delete this category",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	// The seeded default set stays intact for every user.
	if category.IsDefault {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeDefaultCategoryProtected,
			"default categories cannot be deleted",
			domainerror.ErrDefaultCategoryProtected,
		)
	}

	detached, err := uc.expenseRepo.ClearCategory(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to detach expenses from category: %w", err)
	}
	if detached > 0 {
		slog.Info("detached expenses from deleted category",
			"categoryID", input.CategoryID,
			"count", detached)
	}

	if err := uc.categoryRepo.Delete(ctx, input.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	return &DeleteCategoryOutput{
		Success:          true,
		DetachedExpenses: detached,
	}, nil
}
