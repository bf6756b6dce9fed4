package category

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func TestListCategories(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	food := entity.NewCategory(userID, "Food", true)
	travel := entity.NewCategory(userID, "Travel", false)
	foreign := entity.NewCategory(uuid.New(), "Food", true)

	t.Run("lists only the user's categories", func(t *testing.T) {
		uc := NewListCategoriesUseCase(newStubCategoryRepo(food, travel, foreign), newStubExpenseRepo())

		output, err := uc.Execute(ctx, ListCategoriesInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(output.Categories))
		}
		for _, c := range output.Categories {
			if c.PeriodTotal != 0 {
				t.Errorf("expected zero period total without a window, got %v", c.PeriodTotal)
			}
		}
	})

	t.Run("includes spend totals when a window is given", func(t *testing.T) {
		expenses := newStubExpenseRepo()
		expenses.sums[food.ID] = 123.45

		uc := NewListCategoriesUseCase(newStubCategoryRepo(food, travel), expenses)

		start := time.Now().UTC().AddDate(0, -1, 0)
		end := time.Now().UTC()
		output, err := uc.Execute(ctx, ListCategoriesInput{UserID: userID, StartDate: &start, EndDate: &end})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		totals := make(map[string]float64)
		for _, c := range output.Categories {
			totals[c.Name] = c.PeriodTotal
		}
		if totals["Food"] != 123.45 {
			t.Errorf("expected Food total 123.45, got %v", totals["Food"])
		}
		if totals["Travel"] != 0 {
			t.Errorf("expected Travel total 0, got %v", totals["Travel"])
		}
	})
}

func TestSeedDefaultCategories(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := newStubCategoryRepo()
	uc := NewSeedDefaultCategoriesUseCase(repo)

	categories, err := uc.Execute(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != len(entity.DefaultCategoryNames) {
		t.Fatalf("expected %d categories, got %d", len(entity.DefaultCategoryNames), len(categories))
	}
	for _, c := range categories {
		if !c.IsDefault {
			t.Errorf("expected %q to be a default category", c.Name)
		}
		if c.UserID != userID {
			t.Errorf("expected %q to belong to the user", c.Name)
		}
	}
	if len(repo.categories) != len(entity.DefaultCategoryNames) {
		t.Error("expected the seeded categories to be persisted")
	}
}
