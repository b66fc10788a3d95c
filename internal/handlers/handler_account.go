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

// accountHandler handles HTTP requests related to bank accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to bank accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("", h.listAccounts)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deactivateAccount)
		accounts.GET("/stats/total-balance", h.getTotalBalance)
	}
}

// createAccount godoc
// @Summary Create a new bank account
// @Description Creates a bank account for the logged-in user. The account number is encrypted at rest and returned masked.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateBankAccountRequest true "Account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, req)
	if err != nil {
		h.respondAccountError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// getAccount godoc
// @Summary Get a bank account by ID
// @Description Retrieves a single bank account owned by the logged-in user.
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondAccountError(c, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// listAccounts godoc
// @Summary List bank accounts
// @Description Lists all bank accounts owned by the logged-in user, newest first.
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.ListBankAccountsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		h.respondAccountError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBankAccountsResponse(accounts))
}

// updateAccount godoc
// @Summary Update a bank account
// @Description Updates account details. The balance is ledger-maintained and cannot be edited here.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateBankAccountRequest true "Fields to update"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.respondAccountError(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate a bank account
// @Description Soft-deletes a bank account. Its transactions remain.
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to deactivate account"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondAccountError(c, err, "Failed to deactivate account")
		return
	}

	c.Status(http.StatusNoContent)
}

// getTotalBalance godoc
// @Summary Total balance across active accounts
// @Description Returns the sum of balances over the user's active accounts.
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.TotalBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute total balance"
// @Security BearerAuth
// @Router /accounts/stats/total-balance [get]
func (h *accountHandler) getTotalBalance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	res, err := h.accountService.GetTotalBalance(c.Request.Context(), userID)
	if err != nil {
		h.respondAccountError(c, err, "Failed to compute total balance")
		return
	}

	c.JSON(http.StatusOK, res)
}

// respondAccountError maps service errors to HTTP responses.
func (h *accountHandler) respondAccountError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account does not belong to the authenticated user"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrEncryptionConfig):
		logger.Error("Encryption failure", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process account data. Please check encryption key configuration."})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
