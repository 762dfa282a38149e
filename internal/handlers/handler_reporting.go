package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ratbook/ratbook_backend/internal/core/ports/services"
	"github.com/ratbook/ratbook_backend/internal/dto"
	"github.com/ratbook/ratbook_backend/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	rg.GET("/reports/all", h.financialReport)
	rg.GET("/dashboard-stats", h.dashboardStats)
}

// financialReport godoc
// @Summary Full financial report
// @Description Builds the general ledger, AP/AR sub-ledgers, summary totals and the monthly income/expense chart. The period filter applies only when both start and end are given; balance-sheet totals always cover everything up to end.
// @Tags reports
// @Produce json
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.FinancialReportResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build report"
// @Security BearerAuth
// @Router /reports/all [get]
func (h *reportingHandler) financialReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	var start, end *time.Time
	if params.StartDate != "" {
		d, err := time.Parse(dateLayout, params.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid start date, expected YYYY-MM-DD"})
			return
		}
		start = &d
	}
	if params.EndDate != "" {
		d, err := time.Parse(dateLayout, params.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid end date, expected YYYY-MM-DD"})
			return
		}
		end = &d
	}

	report, err := h.reportingService.FinancialReport(c.Request.Context(), start, end)
	if err != nil {
		logger.Error("Failed to build financial report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialReportResponse(report))
}

// dashboardStats godoc
// @Summary Dashboard stats
// @Description Aggregates net income, expense, COGS and net profit over the window, plus the oldest overdue transactions. Missing dates default to the current month.
// @Tags reports
// @Produce json
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.DashboardStatsResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build dashboard stats"
// @Security BearerAuth
// @Router /dashboard-stats [get]
func (h *reportingHandler) dashboardStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	today := time.Now().Truncate(24 * time.Hour)
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := today

	if params.StartDate != "" {
		d, err := time.Parse(dateLayout, params.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid start date, expected YYYY-MM-DD"})
			return
		}
		start = d
	}
	if params.EndDate != "" {
		d, err := time.Parse(dateLayout, params.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid end date, expected YYYY-MM-DD"})
			return
		}
		end = d
	}

	stats, err := h.reportingService.DashboardStats(c.Request.Context(), start, end)
	if err != nil {
		logger.Error("Failed to build dashboard stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardStatsResponse(stats, today))
}
