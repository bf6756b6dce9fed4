// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/report"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles reporting and analytics endpoints.
type ReportController struct {
	predefinedUseCase  *report.GeneratePredefinedReportUseCase
	customUseCase      *report.GenerateCustomReportUseCase
	performanceUseCase *report.AnalyzeCategoryPerformanceUseCase
	heatmapUseCase     *report.GenerateHeatmapUseCase
	trendUseCase       *report.GenerateMonthlyTrendUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	predefinedUseCase *report.GeneratePredefinedReportUseCase,
	customUseCase *report.GenerateCustomReportUseCase,
	performanceUseCase *report.AnalyzeCategoryPerformanceUseCase,
	heatmapUseCase *report.GenerateHeatmapUseCase,
	trendUseCase *report.GenerateMonthlyTrendUseCase,
) *ReportController {
	return &ReportController{
		predefinedUseCase:  predefinedUseCase,
		customUseCase:      customUseCase,
		performanceUseCase: performanceUseCase,
		heatmapUseCase:     heatmapUseCase,
		trendUseCase:       trendUseCase,
	}
}

// Generate handles GET /reports requests. A "period" query selects a
// predefined window; "start_date"/"end_date" select a custom one. When both
// are present the explicit dates win.
func (c *ReportController) Generate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var categoryID *uuid.UUID
	if categoryIDStr := ctx.Query("category_id"); categoryIDStr != "" {
		id, err := uuid.Parse(categoryIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category_id format",
			})
			return
		}
		categoryID = &id
	}

	startDate, endDate, ok := c.parseDateRange(ctx)
	if !ok {
		return
	}

	periodStr := ctx.Query("period")
	if startDate == nil && endDate == nil && periodStr != "" && report.Period(periodStr) != report.PeriodCustom {
		result, err := c.predefinedUseCase.Execute(ctx.Request.Context(), report.GeneratePredefinedReportInput{
			UserID:     userID,
			Period:     report.Period(periodStr),
			CategoryID: categoryID,
		})
		if err != nil {
			c.handleReportError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, result)
		return
	}

	result, err := c.customUseCase.Execute(ctx.Request.Context(), report.GenerateCustomReportInput{
		UserID:     userID,
		StartDate:  startDate,
		EndDate:    endDate,
		CategoryID: categoryID,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// CategoryPerformance handles GET /reports/performance requests.
func (c *ReportController) CategoryPerformance(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := report.AnalyzeCategoryPerformanceInput{
		UserID: userID,
		Period: report.PeriodThisMonth,
		SortBy: report.ParseSortField(ctx.Query("sort_by")),
	}

	if periodStr := ctx.Query("period"); periodStr != "" {
		input.Period = report.Period(periodStr)
	}

	startDate, endDate, ok := c.parseDateRange(ctx)
	if !ok {
		return
	}
	if startDate != nil || endDate != nil {
		input.Period = report.PeriodCustom
		input.StartDate = startDate
		input.EndDate = endDate
	}

	performances, err := c.performanceUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": performances})
}

// Heatmap handles GET /reports/heatmap requests. Year and month default to
// the current calendar month when absent.
func (c *ReportController) Heatmap(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := report.GenerateHeatmapInput{UserID: userID}

	if yearStr := ctx.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid year value",
			})
			return
		}
		input.Year = year
	}
	if monthStr := ctx.Query("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid month value",
			})
			return
		}
		input.Month = month
	}

	result, err := c.heatmapUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// MonthlyTrend handles GET /reports/trends requests.
func (c *ReportController) MonthlyTrend(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := report.GenerateMonthlyTrendInput{UserID: userID}

	if monthsStr := ctx.Query("months"); monthsStr != "" {
		months, err := strconv.Atoi(monthsStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid months value",
			})
			return
		}
		input.Months = months
	}

	result, err := c.trendUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Insights handles GET /reports/insights requests. Insights are derived from
// the current month's report and category performances.
func (c *ReportController) Insights(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	period := report.PeriodThisMonth
	if periodStr := ctx.Query("period"); periodStr != "" {
		period = report.Period(periodStr)
	}

	reportResult, err := c.predefinedUseCase.Execute(ctx.Request.Context(), report.GeneratePredefinedReportInput{
		UserID: userID,
		Period: period,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	performances, err := c.performanceUseCase.Execute(ctx.Request.Context(), report.AnalyzeCategoryPerformanceInput{
		UserID: userID,
		Period: period,
		SortBy: report.SortByAmount,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	insights := report.GenerateInsights(reportResult, performances)

	ctx.JSON(http.StatusOK, gin.H{"insights": insights})
}

// parseDateRange reads the optional start_date/end_date query parameters.
// It writes an error response and returns false on malformed input.
func (c *ReportController) parseDateRange(ctx *gin.Context) (*time.Time, *time.Time, bool) {
	var startDate, endDate *time.Time

	if startDateStr := ctx.Query("start_date"); startDateStr != "" {
		parsed, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start_date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidReportDateFormat),
			})
			return nil, nil, false
		}
		startDate = &parsed
	}
	if endDateStr := ctx.Query("end_date"); endDateStr != "" {
		parsed, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end_date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidReportDateFormat),
			})
			return nil, nil, false
		}
		endDate = &parsed
	}

	return startDate, endDate, true
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		statusCode := c.getStatusCodeForReportError(reportErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForReportError maps report error codes to HTTP status codes.
func (c *ReportController) getStatusCodeForReportError(code domainerror.ReportErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidReportDateRange,
		domainerror.ErrCodeReportRangeTooLarge,
		domainerror.ErrCodeInvalidReportPeriod,
		domainerror.ErrCodeInvalidReportDateFormat,
		domainerror.ErrCodeInvalidExportFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
