package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fintrackr/personal_finance_app/internal/apperrors"
	portssvc "github.com/fintrackr/personal_finance_app/internal/core/ports/services"
	"github.com/fintrackr/personal_finance_app/internal/dto"
	"github.com/fintrackr/personal_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetHandler handles HTTP requests related to budgets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// newBudgetHandler creates a new budgetHandler.
func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{
		budgetService: bs,
	}
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("/alerts", h.getBudgetAlerts)
		budgets.GET("/:id", h.getBudget)
		budgets.GET("", h.listBudgets)
		budgets.PUT("/:id", h.updateBudget)
		budgets.DELETE("/:id", h.deleteBudget)
	}
}

// createBudget godoc
// @Summary Create a budget
// @Description Creates a budget for an expense category. Spent is seeded from expenses already inside the window.
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create budget"
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), userID, req)
	if err != nil {
		h.respondBudgetError(c, err, "Failed to create budget")
		return
	}

	logger.Info("Budget created",
		slog.String("budget_id", budget.BudgetID),
		slog.String("category", string(budget.Category)))
	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

// getBudget godoc
// @Summary Get a budget by ID
// @Description Retrieves a budget with its derived status fields.
// @Tags budgets
// @Produce  json
// @Param   id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to retrieve budget"
// @Security BearerAuth
// @Router /budgets/{id} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.GetBudgetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondBudgetError(c, err, "Failed to retrieve budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// listBudgets godoc
// @Summary List budgets
// @Description Lists the user's budgets with optional isActive and category filters.
// @Tags budgets
// @Produce  json
// @Param   isActive query bool false "Filter by active flag"
// @Param   category query string false "Filter by expense category"
// @Success 200 {object} dto.ListBudgetsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list budgets"
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListBudgetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listBudgets", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), userID, params)
	if err != nil {
		h.respondBudgetError(c, err, "Failed to list budgets")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBudgetsResponse(budgets))
}

// updateBudget godoc
// @Summary Update a budget
// @Description Updates budget settings. Spent is ledger-maintained and cannot be edited here.
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   id path string true "Budget ID"
// @Param   budget body dto.UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to update budget"
// @Security BearerAuth
// @Router /budgets/{id} [put]
func (h *budgetHandler) updateBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.respondBudgetError(c, err, "Failed to update budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// deleteBudget godoc
// @Summary Delete a budget
// @Description Deletes a budget. Transactions that matched it are unaffected.
// @Tags budgets
// @Produce  json
// @Param   id path string true "Budget ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to delete budget"
// @Security BearerAuth
// @Router /budgets/{id} [delete]
func (h *budgetHandler) deleteBudget(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondBudgetError(c, err, "Failed to delete budget")
		return
	}

	c.Status(http.StatusNoContent)
}

// getBudgetAlerts godoc
// @Summary Triggered budget alerts
// @Description Lists alerts for active budgets at or over their alert threshold.
// @Tags budgets
// @Produce  json
// @Success 200 {object} dto.BudgetAlertsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute alerts"
// @Security BearerAuth
// @Router /budgets/alerts [get]
func (h *budgetHandler) getBudgetAlerts(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	alerts, err := h.budgetService.GetBudgetAlerts(c.Request.Context(), userID)
	if err != nil {
		h.respondBudgetError(c, err, "Failed to compute alerts")
		return
	}

	c.JSON(http.StatusOK, dto.BudgetAlertsResponse{Count: len(alerts), Alerts: alerts})
}

// respondBudgetError maps service errors to HTTP responses.
func (h *budgetHandler) respondBudgetError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Budget does not belong to the authenticated user"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
