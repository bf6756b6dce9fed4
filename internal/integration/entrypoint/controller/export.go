// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/export"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// ExportController handles expense export endpoints.
type ExportController struct {
	exportUseCase *export.ExportExpensesUseCase
}

// NewExportController creates a new export controller instance.
func NewExportController(exportUseCase *export.ExportExpensesUseCase) *ExportController {
	return &ExportController{
		exportUseCase: exportUseCase,
	}
}

// Export handles GET /export requests. The response is a file download in
// the requested format, CSV by default.
func (c *ExportController) Export(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	format, err := export.ParseFormat(ctx.Query("format"))
	if err != nil {
		c.handleExportError(ctx, err)
		return
	}

	startDate, endDate, ok := c.parseExportRange(ctx)
	if !ok {
		return
	}

	input := export.ExportExpensesInput{
		UserID:    userID,
		Format:    format,
		StartDate: startDate,
		EndDate:   endDate,
	}

	if categoryIDStr := ctx.Query("category_id"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category_id format",
			})
			return
		}
		input.CategoryID = &categoryID
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleExportError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.FileName))
	ctx.Data(http.StatusOK, output.ContentType, output.Data)
}

// parseExportRange reads the export date range. Missing bounds default to
// the current calendar month.
func (c *ExportController) parseExportRange(ctx *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	startDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, -1)

	if startDateStr := ctx.Query("start_date"); startDateStr != "" {
		parsed, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start_date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidReportDateFormat),
			})
			return time.Time{}, time.Time{}, false
		}
		startDate = parsed
	}
	if endDateStr := ctx.Query("end_date"); endDateStr != "" {
		parsed, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end_date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidReportDateFormat),
			})
			return time.Time{}, time.Time{}, false
		}
		endDate = parsed
	}

	return startDate, endDate, true
}

// handleExportError handles export errors and returns appropriate HTTP responses.
func (c *ExportController) handleExportError(ctx *gin.Context, err error) {
	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		statusCode := http.StatusInternalServerError
		switch reportErr.Code {
		case domainerror.ErrCodeInvalidExportFormat,
			domainerror.ErrCodeInvalidReportDateRange,
			domainerror.ErrCodeInvalidReportDateFormat:
			statusCode = http.StatusBadRequest
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Failed to export expenses",
	})
}
