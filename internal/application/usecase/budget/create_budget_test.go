package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type stubBudgetRepo struct {
	budgets map[uuid.UUID]*entity.Budget
}

func newStubBudgetRepo() *stubBudgetRepo {
	return &stubBudgetRepo{budgets: make(map[uuid.UUID]*entity.Budget)}
}

func (r *stubBudgetRepo) Create(_ context.Context, b *entity.Budget) error {
	r.budgets[b.ID] = b
	return nil
}

func (r *stubBudgetRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Budget, error) {
	b, ok := r.budgets[id]
	if !ok || b.DeletedAt != nil {
		return nil, domainerror.ErrBudgetNotFound
	}
	return b, nil
}

func (r *stubBudgetRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, b := range r.budgets {
		if b.UserID == userID && b.DeletedAt == nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBudgetRepo) FindActiveByUser(_ context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, b := range r.budgets {
		if b.UserID == userID && b.Active && b.DeletedAt == nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBudgetRepo) FindActiveByUserAndCategory(_ context.Context, userID, categoryID uuid.UUID) (*entity.Budget, error) {
	for _, b := range r.budgets {
		if b.UserID == userID && b.CategoryID == categoryID && b.Active && b.DeletedAt == nil {
			return b, nil
		}
	}
	return nil, nil
}

func (r *stubBudgetRepo) Update(_ context.Context, b *entity.Budget) error {
	r.budgets[b.ID] = b
	return nil
}

func (r *stubBudgetRepo) Delete(_ context.Context, id uuid.UUID) error {
	if b, ok := r.budgets[id]; ok {
		now := time.Now().UTC()
		b.DeletedAt = &now
	}
	return nil
}

func (r *stubBudgetRepo) ExistsActiveByUserAndCategory(_ context.Context, userID, categoryID uuid.UUID) (bool, error) {
	b, _ := r.FindActiveByUserAndCategory(context.Background(), userID, categoryID)
	return b != nil, nil
}

type stubCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newStubCategoryRepo(cats ...*entity.Category) *stubCategoryRepo {
	r := &stubCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
	for _, c := range cats {
		r.categories[c.ID] = c
	}
	return r
}

func (r *stubCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) CreateBatch(_ context.Context, cats []*entity.Category) error {
	for _, c := range cats {
		r.categories[c.ID] = c
	}
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) FindByNameAndUser(_ context.Context, name string, userID uuid.UUID) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.UserID == userID && c.Name == name {
			return c, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *stubCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) ExistsByNameAndUser(_ context.Context, name string, userID uuid.UUID) (bool, error) {
	c, err := r.FindByNameAndUser(context.Background(), name, userID)
	return err == nil && c != nil, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time { return &t }

func TestCreateBudget(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	category := entity.NewCategory(userID, "Food", false)

	t.Run("creates a budget for an owned category", func(t *testing.T) {
		budgetRepo := newStubBudgetRepo()
		uc := NewCreateBudgetUseCase(budgetRepo, newStubCategoryRepo(category))

		out, err := uc.Execute(ctx, CreateBudgetInput{
			UserID:      userID,
			CategoryID:  category.ID,
			Amount:      decimal.RequireFromString("500.005"),
			PeriodStart: date(2025, time.June, 1),
			PeriodEnd:   timePtr(date(2025, time.June, 30)),
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !out.Budget.Amount.Equal(decimal.RequireFromString("500.01")) {
			t.Errorf("Amount = %s, want 500.01", out.Budget.Amount)
		}
		if !out.Budget.Active {
			t.Error("new budget should be active")
		}
		if len(budgetRepo.budgets) != 1 {
			t.Errorf("stored budgets = %d, want 1", len(budgetRepo.budgets))
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			input   CreateBudgetInput
			wantErr error
		}{
			{
				name: "zero amount",
				input: CreateBudgetInput{
					UserID: userID, CategoryID: category.ID,
					Amount:      decimal.Zero,
					PeriodStart: date(2025, time.June, 1),
				},
				wantErr: domainerror.ErrInvalidBudgetAmount,
			},
			{
				name: "negative amount",
				input: CreateBudgetInput{
					UserID: userID, CategoryID: category.ID,
					Amount:      decimal.RequireFromString("-10"),
					PeriodStart: date(2025, time.June, 1),
				},
				wantErr: domainerror.ErrInvalidBudgetAmount,
			},
			{
				name: "missing period start",
				input: CreateBudgetInput{
					UserID: userID, CategoryID: category.ID,
					Amount: decimal.RequireFromString("100"),
				},
				wantErr: domainerror.ErrBudgetPeriodStartRequired,
			},
			{
				name: "period end before start",
				input: CreateBudgetInput{
					UserID: userID, CategoryID: category.ID,
					Amount:      decimal.RequireFromString("100"),
					PeriodStart: date(2025, time.June, 10),
					PeriodEnd:   timePtr(date(2025, time.June, 9)),
				},
				wantErr: domainerror.ErrBudgetPeriodEndBeforeStart,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := NewCreateBudgetUseCase(newStubBudgetRepo(), newStubCategoryRepo(category))
				_, err := uc.Execute(ctx, tt.input)
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
				}
			})
		}
	})

	t.Run("rejects another user's category", func(t *testing.T) {
		foreign := entity.NewCategory(uuid.New(), "Travel", false)
		uc := NewCreateBudgetUseCase(newStubBudgetRepo(), newStubCategoryRepo(foreign))

		_, err := uc.Execute(ctx, CreateBudgetInput{
			UserID:      userID,
			CategoryID:  foreign.ID,
			Amount:      decimal.RequireFromString("100"),
			PeriodStart: date(2025, time.June, 1),
		})
		if !errors.Is(err, domainerror.ErrCategoryNotFoundForBudget) {
			t.Errorf("Execute() error = %v, want ErrCategoryNotFoundForBudget", err)
		}
	})

	t.Run("rejects a second active budget for the same category", func(t *testing.T) {
		budgetRepo := newStubBudgetRepo()
		uc := NewCreateBudgetUseCase(budgetRepo, newStubCategoryRepo(category))

		input := CreateBudgetInput{
			UserID:      userID,
			CategoryID:  category.ID,
			Amount:      decimal.RequireFromString("100"),
			PeriodStart: date(2025, time.June, 1),
		}
		if _, err := uc.Execute(ctx, input); err != nil {
			t.Fatalf("first Execute() error = %v", err)
		}
		_, err := uc.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrBudgetAlreadyExists) {
			t.Errorf("second Execute() error = %v, want ErrBudgetAlreadyExists", err)
		}
	})
}

func TestUpdateBudget(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	seed := func() (*stubBudgetRepo, *entity.Budget) {
		repo := newStubBudgetRepo()
		b := entity.NewBudget(
			userID,
			uuid.New(),
			decimal.RequireFromString("200"),
			date(2025, time.June, 1),
			nil,
			false,
		)
		repo.budgets[b.ID] = b
		return repo, b
	}

	t.Run("updates amount and recurring flag", func(t *testing.T) {
		repo, b := seed()
		uc := NewUpdateBudgetUseCase(repo)

		amount := decimal.RequireFromString("350.50")
		recurring := true
		out, err := uc.Execute(ctx, UpdateBudgetInput{
			BudgetID:  b.ID,
			UserID:    userID,
			Amount:    &amount,
			Recurring: &recurring,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !out.Budget.Amount.Equal(amount) {
			t.Errorf("Amount = %s, want %s", out.Budget.Amount, amount)
		}
		if !out.Budget.Recurring {
			t.Error("Recurring = false, want true")
		}
	})

	t.Run("clears the period end", func(t *testing.T) {
		repo, b := seed()
		end := date(2025, time.June, 30)
		b.PeriodEnd = &end
		uc := NewUpdateBudgetUseCase(repo)

		out, err := uc.Execute(ctx, UpdateBudgetInput{
			BudgetID: b.ID,
			UserID:   userID,
			ClearEnd: true,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if out.Budget.PeriodEnd != nil {
			t.Errorf("PeriodEnd = %v, want nil", out.Budget.PeriodEnd)
		}
	})

	t.Run("rejects an invalid resulting state", func(t *testing.T) {
		repo, b := seed()
		uc := NewUpdateBudgetUseCase(repo)

		end := date(2025, time.May, 1)
		_, err := uc.Execute(ctx, UpdateBudgetInput{
			BudgetID:  b.ID,
			UserID:    userID,
			PeriodEnd: &end,
		})
		if !errors.Is(err, domainerror.ErrBudgetPeriodEndBeforeStart) {
			t.Errorf("Execute() error = %v, want ErrBudgetPeriodEndBeforeStart", err)
		}
	})

	t.Run("rejects another user", func(t *testing.T) {
		repo, b := seed()
		uc := NewUpdateBudgetUseCase(repo)

		amount := decimal.RequireFromString("1")
		_, err := uc.Execute(ctx, UpdateBudgetInput{
			BudgetID: b.ID,
			UserID:   uuid.New(),
			Amount:   &amount,
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyBudget) {
			t.Errorf("Execute() error = %v, want ErrNotAuthorizedToModifyBudget", err)
		}
	})

	t.Run("missing budget", func(t *testing.T) {
		repo, _ := seed()
		uc := NewUpdateBudgetUseCase(repo)

		_, err := uc.Execute(ctx, UpdateBudgetInput{
			BudgetID: uuid.New(),
			UserID:   userID,
		})
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			t.Errorf("Execute() error = %v, want ErrBudgetNotFound", err)
		}
	})
}

func TestDeleteBudget(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := newStubBudgetRepo()
	b := entity.NewBudget(
		userID,
		uuid.New(),
		decimal.RequireFromString("200"),
		date(2025, time.June, 1),
		nil,
		false,
	)
	repo.budgets[b.ID] = b
	uc := NewDeleteBudgetUseCase(repo)

	t.Run("rejects another user", func(t *testing.T) {
		_, err := uc.Execute(ctx, DeleteBudgetInput{BudgetID: b.ID, UserID: uuid.New()})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyBudget) {
			t.Errorf("Execute() error = %v, want ErrNotAuthorizedToModifyBudget", err)
		}
	})

	t.Run("soft deletes the budget", func(t *testing.T) {
		out, err := uc.Execute(ctx, DeleteBudgetInput{BudgetID: b.ID, UserID: userID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !out.Success {
			t.Error("Success = false, want true")
		}
		if b.DeletedAt == nil {
			t.Error("DeletedAt = nil, want set")
		}
	})

	t.Run("deleted budget is gone", func(t *testing.T) {
		_, err := uc.Execute(ctx, DeleteBudgetInput{BudgetID: b.ID, UserID: userID})
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			t.Errorf("Execute() error = %v, want ErrBudgetNotFound", err)
		}
	})
}
