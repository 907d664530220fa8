package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_books_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_books_app/internal/dto"
	"github.com/SscSPs/ledger_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// companyHandler handles HTTP requests related to companies.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: cs}
}

// registerCompanyRoutes registers company routes and nests the per-company resources under /companies/:company_id.
func registerCompanyRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newCompanyHandler(services.Company)

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("", h.listUserCompanies)
	}

	company := rg.Group("/companies/:company_id", canonicalIDParams)
	{
		company.POST("/users", h.addUserToCompany)

		registerAccountRoutes(company, services.Account)
		registerJournalRoutes(company, services.Journal)
		registerMetricsRoutes(company, services.Metrics)
	}
}

// createCompany godoc
// @Summary Create a new company
// @Description Creates a company and makes the caller its ADMIN.
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create company"
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req.Name, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create company")
		return
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// listUserCompanies godoc
// @Summary List companies for current user
// @Tags companies
// @Produce  json
// @Success 200 {object} dto.ListCompaniesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list companies"
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listUserCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	companies, err := h.companyService.ListUserCompanies(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list companies")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCompanyResponse(companies))
}

// addUserToCompany godoc
// @Summary Add a user to a company
// @Description Grants a user a role in the company. The caller must be an ADMIN.
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   member body dto.AddCompanyUserRequest true "User and role"
// @Success 204 "User added"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to add user"
// @Security BearerAuth
// @Router /companies/{company_id}/users [post]
func (h *companyHandler) addUserToCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.AddCompanyUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("target_user_id", req.UserID))
	if err := h.companyService.AddUserToCompany(c.Request.Context(), addingUserID, req.UserID, companyID, req.Role); err != nil {
		respondWithError(c, logger, err, "Failed to add user to company")
		return
	}

	logger.Info("User added to company", slog.String("role", string(req.Role)))
	c.Status(http.StatusNoContent)
}
