// Package export contains expense export use cases.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Format identifies an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat parses a format query value. Empty input defaults to CSV.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", domainerror.NewReportError(
			domainerror.ErrCodeInvalidExportFormat,
			fmt.Sprintf("unsupported export format %q", raw),
			domainerror.ErrInvalidExportFormat,
		)
	}
}

// ExportExpensesInput represents the input for an expense export.
type ExportExpensesInput struct {
	UserID     uuid.UUID
	Format     Format
	StartDate  time.Time
	EndDate    time.Time
	CategoryID *uuid.UUID
}

// ExportExpensesOutput carries the generated file.
type ExportExpensesOutput struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportExpensesUseCase renders a user's expenses to CSV or XLSX.
type ExportExpensesUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	budgetRepo   adapter.BudgetRepository
}

// NewExportExpensesUseCase creates a new ExportExpensesUseCase instance.
func NewExportExpensesUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	budgetRepo adapter.BudgetRepository,
) *ExportExpensesUseCase {
	return &ExportExpensesUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		budgetRepo:   budgetRepo,
	}
}

// exportRow is a fully resolved line of the export file.
type exportRow struct {
	Date            time.Time
	Description     string
	CategoryName    string
	Amount          decimal.Decimal
	BudgetRemaining *decimal.Decimal // nil when the category has no active budget
}

// Execute generates the export file.
func (uc *ExportExpensesUseCase) Execute(ctx context.Context, input ExportExpensesInput) (*ExportExpensesOutput, error) {
	if input.EndDate.Before(input.StartDate) {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportDateRange,
			"start date must not be after end date",
			domainerror.ErrInvalidDateRange,
		)
	}

	expenses, err := uc.expenseRepo.FindInRange(ctx, input.UserID, input.StartDate, input.EndDate, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	budgets, err := uc.budgetRepo.FindActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	rows := buildRows(expenses, names, budgets)

	switch input.Format {
	case FormatXLSX:
		data, err := renderXLSX(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to render xlsx: %w", err)
		}
		return &ExportExpensesOutput{
			FileName:    exportFileName(input, "xlsx"),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		return &ExportExpensesOutput{
			FileName:    exportFileName(input, "csv"),
			ContentType: "text/csv; charset=utf-8",
			Data:        renderCSV(rows),
		}, nil
	}
}

func exportFileName(input ExportExpensesInput, ext string) string {
	return fmt.Sprintf("expenses_%s_%s.%s",
		input.StartDate.Format("2006-01-02"),
		input.EndDate.Format("2006-01-02"),
		ext,
	)
}

// buildRows resolves category names and tracks a per-category monthly running
// budget balance. The balance resets each calendar month, matching the
// recurring budget window.
func buildRows(expenses []*entity.Expense, names map[uuid.UUID]string, budgets []*entity.Budget) []exportRow {
	budgetAmounts := make(map[uuid.UUID]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		if _, ok := budgetAmounts[b.CategoryID]; !ok {
			budgetAmounts[b.CategoryID] = b.Amount
		}
	}

	sorted := make([]*entity.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	type monthKey struct {
		category uuid.UUID
		year     int
		month    time.Month
	}
	running := make(map[monthKey]decimal.Decimal)

	rows := make([]exportRow, len(sorted))
	for i, e := range sorted {
		row := exportRow{
			Date:         e.Date,
			Description:  e.Description,
			CategoryName: entity.UncategorizedName,
			Amount:       e.Amount,
		}

		if e.CategoryID != nil {
			if name, ok := names[*e.CategoryID]; ok {
				row.CategoryName = name
			}
			if budgetAmount, ok := budgetAmounts[*e.CategoryID]; ok {
				key := monthKey{*e.CategoryID, e.Date.Year(), e.Date.Month()}
				spent := running[key].Add(e.Amount)
				running[key] = spent
				remaining := budgetAmount.Sub(spent)
				row.BudgetRemaining = &remaining
			}
		}

		rows[i] = row
	}
	return rows
}

var exportHeader = []string{"Date", "Description", "Category", "Amount", "Budget Remaining"}

// renderCSV writes the rows as UTF-8 CSV with a byte order mark so
// spreadsheet applications detect the encoding.
func renderCSV(rows []exportRow) []byte {
	var buf bytes.Buffer
	buf.WriteString("\xEF\xBB\xBF")

	w := csv.NewWriter(&buf)
	_ = w.Write(exportHeader)
	for _, row := range rows {
		record := []string{
			row.Date.Format("2006-01-02"),
			row.Description,
			row.CategoryName,
			row.Amount.StringFixed(entity.MoneyScale),
			"",
		}
		if row.BudgetRemaining != nil {
			record[4] = row.BudgetRemaining.StringFixed(entity.MoneyScale)
		}
		_ = w.Write(record)
	}
	w.Flush()
	return buf.Bytes()
}

const exportSheet = "Expenses"

func renderXLSX(rows []exportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, heading := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheet, cell, heading); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		amount, _ := row.Amount.Float64()
		values := []interface{}{
			row.Date.Format("2006-01-02"),
			row.Description,
			row.CategoryName,
			amount,
			nil,
		}
		if row.BudgetRemaining != nil {
			remaining, _ := row.BudgetRemaining.Float64()
			values[4] = remaining
		}
		for col, value := range values {
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
