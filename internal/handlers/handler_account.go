package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_books_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_books_app/internal/dto"
	"github.com/SscSPs/ledger_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for a company's chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers account routes under a company group.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", h.createAccount)
		accounts.GET("/:account_id", h.getAccount)
		accounts.PUT("/:account_id/balance", h.updateAccountBalance)
	}
}

// listAccounts godoc
// @Summary List accounts of a company
// @Description Returns every account of the company ordered by code.
// @Tags accounts
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /companies/{company_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accounts, err := h.accountService.GetAccountsByCompany(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// createAccount godoc
// @Summary Create an account
// @Description Adds an account with a zero balance to the company's chart of accounts.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Account code already in use"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /companies/{company_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID))
	account, err := h.accountService.CreateAccount(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /companies/{company_id}/accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), companyID, accountID, userID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("account_id", accountID)), err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccountBalance godoc
// @Summary Overwrite an account balance
// @Description Sets the balance directly, rounded to 2 decimal places. Requires the ADMIN role.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   account_id path string true "Account ID"
// @Param   balance body dto.UpdateAccountBalanceRequest true "New balance"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update balance"
// @Security BearerAuth
// @Router /companies/{company_id}/accounts/{account_id}/balance [put]
func (h *accountHandler) updateAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	accountID := c.Param("account_id")

	var req dto.UpdateAccountBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("account_id", accountID))
	account, err := h.accountService.UpdateAccountBalance(c.Request.Context(), companyID, accountID, *req.Balance, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update balance")
		return
	}

	logger.Info("Account balance overwritten", slog.String("balance", account.Balance.StringFixed(2)))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
