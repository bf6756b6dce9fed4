package category

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// stubCategoryRepo keeps categories in memory.
type stubCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newStubCategoryRepo(categories ...*entity.Category) *stubCategoryRepo {
	repo := &stubCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *stubCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *stubCategoryRepo) CreateBatch(ctx context.Context, categories []*entity.Category) error {
	for _, c := range categories {
		if err := r.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return category, nil
}

func (r *stubCategoryRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var owned []*entity.Category
	for _, c := range r.categories {
		if c.UserID == userID {
			owned = append(owned, c)
		}
	}
	return owned, nil
}

func (r *stubCategoryRepo) FindByNameAndUser(_ context.Context, name string, userID uuid.UUID) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.UserID == userID && c.Name == name {
			return c, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *stubCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) ExistsByNameAndUser(_ context.Context, name string, userID uuid.UUID) (bool, error) {
	for _, c := range r.categories {
		if c.UserID == userID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// stubExpenseRepo serves per-category spend sums and counts detachments.
type stubExpenseRepo struct {
	sums     map[uuid.UUID]float64
	detached int64
}

func newStubExpenseRepo() *stubExpenseRepo {
	return &stubExpenseRepo{sums: make(map[uuid.UUID]float64)}
}

func (r *stubExpenseRepo) Create(_ context.Context, _ *entity.Expense) error { return nil }

func (r *stubExpenseRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.Expense, error) {
	return nil, domainerror.ErrExpenseNotFound
}

func (r *stubExpenseRepo) FindByIDWithCategory(_ context.Context, _ uuid.UUID) (*entity.ExpenseWithCategory, error) {
	return nil, domainerror.ErrExpenseNotFound
}

func (r *stubExpenseRepo) FindByFilter(_ context.Context, _ adapter.ExpenseFilter, _ adapter.ExpensePagination) (*entity.ExpenseListResult, error) {
	return &entity.ExpenseListResult{}, nil
}

func (r *stubExpenseRepo) FindInRange(_ context.Context, _ uuid.UUID, _, _ time.Time, _ *uuid.UUID) ([]*entity.Expense, error) {
	return nil, nil
}

func (r *stubExpenseRepo) FindEarliestExpenseDate(_ context.Context, _ uuid.UUID) (*time.Time, error) {
	return nil, nil
}

func (r *stubExpenseRepo) SumByCategory(_ context.Context, _, categoryID uuid.UUID, _, _ time.Time) (float64, error) {
	return r.sums[categoryID], nil
}

func (r *stubExpenseRepo) CountByCategory(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *stubExpenseRepo) ClearCategory(_ context.Context, _, _ uuid.UUID) (int64, error) {
	return r.detached, nil
}

func (r *stubExpenseRepo) Update(_ context.Context, _ *entity.Expense) error { return nil }

func (r *stubExpenseRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (r *stubExpenseRepo) ExistsByIDAndUser(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates a category", func(t *testing.T) {
		repo := newStubCategoryRepo()
		uc := NewCreateCategoryUseCase(repo)

		output, err := uc.Execute(ctx, CreateCategoryInput{UserID: userID, Name: "  Subscriptions  "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Category.Name != "Subscriptions" {
			t.Errorf("expected trimmed name, got %q", output.Category.Name)
		}
		if output.Category.IsDefault {
			t.Error("user-created categories must not be default")
		}
		if len(repo.categories) != 1 {
			t.Error("expected the category to be persisted")
		}
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(newStubCategoryRepo())
		_, err := uc.Execute(ctx, CreateCategoryInput{UserID: userID, Name: "   "})
		if !errors.Is(err, domainerror.ErrCategoryNameRequired) {
			t.Fatalf("expected ErrCategoryNameRequired, got %v", err)
		}
	})

	t.Run("rejects a name over the limit", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(newStubCategoryRepo())
		_, err := uc.Execute(ctx, CreateCategoryInput{
			UserID: userID,
			Name:   strings.Repeat("x", entity.MaxCategoryNameLength+1),
		})
		if !errors.Is(err, domainerror.ErrCategoryNameTooLong) {
			t.Fatalf("expected ErrCategoryNameTooLong, got %v", err)
		}
	})

	t.Run("rejects a duplicate name for the same user", func(t *testing.T) {
		existing := entity.NewCategory(userID, "Food", false)
		uc := NewCreateCategoryUseCase(newStubCategoryRepo(existing))

		_, err := uc.Execute(ctx, CreateCategoryInput{UserID: userID, Name: "Food"})
		if !errors.Is(err, domainerror.ErrCategoryNameExists) {
			t.Fatalf("expected ErrCategoryNameExists, got %v", err)
		}
	})

	t.Run("allows the same name for different users", func(t *testing.T) {
		existing := entity.NewCategory(uuid.New(), "Food", false)
		uc := NewCreateCategoryUseCase(newStubCategoryRepo(existing))

		_, err := uc.Execute(ctx, CreateCategoryInput{UserID: userID, Name: "Food"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
