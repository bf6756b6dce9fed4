package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	CategoryID  string          `json:"category_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PeriodStart string          `json:"period_start" binding:"required"`
	PeriodEnd   *string         `json:"period_end"`
	Recurring   bool            `json:"recurring"`
}

// UpdateBudgetRequest represents the request body for budget updates.
// Only the provided fields are changed.
type UpdateBudgetRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	PeriodStart *string          `json:"period_start"`
	PeriodEnd   *string          `json:"period_end"`
	ClearEnd    bool             `json:"clear_end"`
	Recurring   *bool            `json:"recurring"`
	Active      *bool            `json:"active"`
}

// BudgetResponse represents the budget data in API responses.
type BudgetResponse struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   *string         `json:"period_end"`
	Recurring   bool            `json:"recurring"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BudgetWithUsageResponse represents a budget with spending statistics.
type BudgetWithUsageResponse struct {
	BudgetResponse
	CategoryName   string          `json:"category_name"`
	SpentAmount    decimal.Decimal `json:"spent_amount"`
	PercentageUsed float64         `json:"percentage_used"`
}

// BudgetListResponse represents a list of budgets with usage statistics.
type BudgetListResponse struct {
	Budgets []BudgetWithUsageResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	resp := BudgetResponse{
		ID:          b.ID.String(),
		CategoryID:  b.CategoryID.String(),
		Amount:      b.Amount,
		PeriodStart: b.PeriodStart.Format("2006-01-02"),
		Recurring:   b.Recurring,
		Active:      b.Active,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	if b.PeriodEnd != nil {
		end := b.PeriodEnd.Format("2006-01-02")
		resp.PeriodEnd = &end
	}

	return resp
}

// ToBudgetListResponse converts budgets with usage to a list response.
func ToBudgetListResponse(budgets []*entity.BudgetWithUsage) BudgetListResponse {
	items := make([]BudgetWithUsageResponse, 0, len(budgets))
	for _, b := range budgets {
		items = append(items, BudgetWithUsageResponse{
			BudgetResponse: ToBudgetResponse(b.Budget),
			CategoryName:   b.CategoryName,
			SpentAmount:    b.SpentAmount,
			PercentageUsed: b.PercentageUsed,
		})
	}
	return BudgetListResponse{Budgets: items}
}
