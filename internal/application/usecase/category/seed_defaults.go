// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// SeedDefaultCategoriesUseCase creates the default category set for a
// freshly registered user.
type SeedDefaultCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewSeedDefaultCategoriesUseCase creates a new SeedDefaultCategoriesUseCase instance.
func NewSeedDefaultCategoriesUseCase(categoryRepo adapter.CategoryRepository) *SeedDefaultCategoriesUseCase {
	return &SeedDefaultCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute seeds the default categories for the user.
func (uc *SeedDefaultCategoriesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	categories := make([]*entity.Category, len(entity.DefaultCategoryNames))
	for i, name := range entity.DefaultCategoryNames {
		categories[i] = entity.NewCategory(userID, name, true)
	}

	if err := uc.categoryRepo.CreateBatch(ctx, categories); err != nil {
		return nil, fmt.Errorf("failed to seed default categories: %w", err)
	}
	return categories, nil
}
