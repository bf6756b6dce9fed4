// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places every monetary amount is stored with.
const MoneyScale = 2

// Expense represents a single spending record in the Expense Tracker system.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal // Always positive, rounded half-up to 2 decimal places
	CategoryID  *uuid.UUID      // Optional, can be uncategorized
	Date        time.Time       // Calendar date of the expense, never in the future
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewExpense creates a new Expense entity. The amount is normalized to the
// canonical 2-decimal-place scale using half-up rounding.
func NewExpense(
	userID uuid.UUID,
	description string,
	amount decimal.Decimal,
	categoryID *uuid.UUID,
	date time.Time,
) *Expense {
	now := time.Now().UTC()

	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		Amount:      amount.Round(MoneyScale),
		CategoryID:  categoryID,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ExpenseWithCategory represents an expense with its associated category.
type ExpenseWithCategory struct {
	Expense  *Expense
	Category *Category
}

// ExpenseListResult represents the result of listing expenses.
type ExpenseListResult struct {
	Expenses   []*ExpenseWithCategory
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
