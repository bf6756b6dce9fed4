// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByUserID retrieves all budgets for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)

	// FindActiveByUser retrieves all currently active budgets for the user.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)

	// FindActiveByUserAndCategory retrieves the active budget for a user and
	// category, or nil when none exists.
	FindActiveByUserAndCategory(ctx context.Context, userID, categoryID uuid.UUID) (*entity.Budget, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete removes a budget from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsActiveByUserAndCategory checks if an active budget exists for the
	// given user and category.
	ExistsActiveByUserAndCategory(ctx context.Context, userID, categoryID uuid.UUID) (bool, error)
}
