// Package report contains the reporting and analytics use cases.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseSource provides the expense data the report engine aggregates.
// Implementations must scope every query to the given user; the engine
// performs no authorization of its own.
type ExpenseSource interface {
	// FindInRange returns the user's expenses with dates in [start, end],
	// optionally restricted to a single category.
	FindInRange(
		ctx context.Context,
		userID uuid.UUID,
		start, end time.Time,
		categoryID *uuid.UUID,
	) ([]*entity.Expense, error)

	// FindEarliestExpenseDate returns the date of the user's first expense,
	// or nil when the user has none. Used only to default an unset custom
	// report start date.
	FindEarliestExpenseDate(ctx context.Context, userID uuid.UUID) (*time.Time, error)
}

// CategorySource provides the user's categories for name resolution.
type CategorySource interface {
	// FindByUser returns all categories belonging to the user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)
}

// BudgetSource provides the user's active budgets for utilization analysis.
type BudgetSource interface {
	// FindActiveByUser returns all currently active budgets for the user.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)
}

// categoryNames builds a lookup from category ID to display name.
func categoryNames(categories []*entity.Category) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

// categoryNameFor resolves the display name for an expense's category,
// degrading to the Uncategorized sentinel when the expense has no category
// or references one missing from the lookup.
func categoryNameFor(e *entity.Expense, names map[uuid.UUID]string) string {
	if e.CategoryID == nil {
		return entity.UncategorizedName
	}
	if name, ok := names[*e.CategoryID]; ok {
		return name
	}
	return entity.UncategorizedName
}
