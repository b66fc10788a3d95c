package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fintrackr/personal_finance_app/internal/core/ports/services"
	"github.com/fintrackr/personal_finance_app/internal/dto"
	"github.com/fintrackr/personal_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for aggregate statistics.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("/stats/summary", h.getTransactionSummary)
	}
}

// getTransactionSummary godoc
// @Summary Transaction summary statistics
// @Description Aggregates income and expense totals and per-category breakdowns over an optional date range.
// @Tags reporting
// @Produce  json
// @Param   startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param   endDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} dto.TransactionSummaryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Security BearerAuth
// @Router /transactions/stats/summary [get]
func (h *reportingHandler) getTransactionSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.TransactionStatsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getTransactionSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.reportingService.GetTransactionSummary(c.Request.Context(), userID, params.StartDate, params.EndDate)
	if err != nil {
		logger.Error("Failed to compute summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionSummaryResponse(summary))
}
