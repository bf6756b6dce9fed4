package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
)

// CreateExpenseRequest represents the request body for expense creation.
type CreateExpenseRequest struct {
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	CategoryID  *string         `json:"category_id"`
}

// UpdateExpenseRequest represents the request body for expense updates.
// Only the provided fields are changed.
type UpdateExpenseRequest struct {
	Date          *string          `json:"date"`
	Description   *string          `json:"description"`
	Amount        *decimal.Decimal `json:"amount"`
	CategoryID    *string          `json:"category_id"`
	ClearCategory bool             `json:"clear_category"`
}

// ExpenseCategoryResponse represents the embedded category in an expense.
type ExpenseCategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

// ExpenseResponse represents the expense data in API responses.
type ExpenseResponse struct {
	ID          string                   `json:"id"`
	Date        string                   `json:"date"`
	Description string                   `json:"description"`
	Amount      decimal.Decimal          `json:"amount"`
	CategoryID  *string                  `json:"category_id"`
	Category    *ExpenseCategoryResponse `json:"category,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// PaginationResponse represents pagination metadata.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ExpenseListResponse represents a paginated list of expenses.
type ExpenseListResponse struct {
	Expenses   []ExpenseResponse  `json:"expenses"`
	Pagination PaginationResponse `json:"pagination"`
}

// ToExpenseResponse converts an expense use case output to an ExpenseResponse DTO.
func ToExpenseResponse(e *expense.ExpenseOutput) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          e.ID.String(),
		Date:        e.Date.Format("2006-01-02"),
		Description: e.Description,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	if e.CategoryID != nil {
		id := e.CategoryID.String()
		resp.CategoryID = &id
	}
	if e.Category != nil {
		resp.Category = &ExpenseCategoryResponse{
			ID:        e.Category.ID.String(),
			Name:      e.Category.Name,
			IsDefault: e.Category.IsDefault,
		}
	}

	return resp
}

// ToExpenseListResponse converts a list use case output to an ExpenseListResponse DTO.
func ToExpenseListResponse(output *expense.ListExpensesOutput) ExpenseListResponse {
	items := make([]ExpenseResponse, 0, len(output.Expenses))
	for _, e := range output.Expenses {
		items = append(items, ToExpenseResponse(e))
	}

	return ExpenseListResponse{
		Expenses: items,
		Pagination: PaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
}
