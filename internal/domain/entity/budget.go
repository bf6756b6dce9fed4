// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a spending limit for a category over a period.
// A nil PeriodEnd means the budget is open-ended. Recurring budgets apply to
// the current calendar month regardless of when they were created.
type Budget struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Amount      decimal.Decimal // Always positive
	PeriodStart time.Time
	PeriodEnd   *time.Time
	Recurring   bool
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewBudget creates a new Budget entity.
func NewBudget(
	userID uuid.UUID,
	categoryID uuid.UUID,
	amount decimal.Decimal,
	periodStart time.Time,
	periodEnd *time.Time,
	recurring bool,
) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount.Round(MoneyScale),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Recurring:   recurring,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// EffectiveWindow returns the date window the budget currently applies to.
// Recurring budgets track the current calendar month; fixed budgets run from
// their period start until the period end or today, whichever is known.
func (b *Budget) EffectiveWindow(today time.Time) (start, end time.Time) {
	if b.Recurring {
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		end = start.AddDate(0, 1, -1)
		return start, end
	}

	start = b.PeriodStart
	end = today
	if b.PeriodEnd != nil && b.PeriodEnd.Before(today) {
		end = *b.PeriodEnd
	}
	return start, end
}

// BudgetWithUsage represents a budget enriched with spending statistics.
type BudgetWithUsage struct {
	Budget         *Budget
	CategoryName   string
	SpentAmount    decimal.Decimal
	PercentageUsed float64 // Capped at 100 for display purposes
}
