// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseFilter defines filter options for listing expenses.
type ExpenseFilter struct {
	UserID     uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	Search     string // Case-insensitive description match
}

// ExpensePagination defines pagination options.
type ExpensePagination struct {
	Page  int
	Limit int
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create creates a new expense in the database.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindByIDWithCategory retrieves an expense with its category by ID.
	FindByIDWithCategory(ctx context.Context, id uuid.UUID) (*entity.ExpenseWithCategory, error)

	// FindByFilter retrieves expenses based on filter criteria with pagination,
	// ordered by date descending.
	FindByFilter(ctx context.Context, filter ExpenseFilter, pagination ExpensePagination) (*entity.ExpenseListResult, error)

	// FindInRange retrieves all expenses for a user with dates in [start, end],
	// optionally restricted to a single category. Used by the report engine.
	FindInRange(ctx context.Context, userID uuid.UUID, start, end time.Time, categoryID *uuid.UUID) ([]*entity.Expense, error)

	// FindEarliestExpenseDate returns the date of the user's first expense,
	// or nil when the user has none.
	FindEarliestExpenseDate(ctx context.Context, userID uuid.UUID) (*time.Time, error)

	// SumByCategory sums expense amounts for a category within a date range.
	SumByCategory(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (float64, error)

	// CountByCategory counts the expenses assigned to a category.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// ClearCategory detaches all of a user's expenses from a category,
	// leaving them uncategorized.
	ClearCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error)

	// Update updates an existing expense in the database.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete soft-deletes an expense from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByIDAndUser checks if an expense exists for a given ID and user.
	ExistsByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error)
}
