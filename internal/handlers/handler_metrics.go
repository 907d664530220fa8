package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ledger_books_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_books_app/internal/dto"
	"github.com/SscSPs/ledger_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type metricsHandler struct {
	metricsService portssvc.MetricsSvc
}

func registerMetricsRoutes(rg *gin.RouterGroup, metricsService portssvc.MetricsSvc) {
	h := &metricsHandler{metricsService: metricsService}
	rg.GET("/metrics", h.getFinancialMetrics)
}

// getFinancialMetrics godoc
// @Summary Get financial metrics
// @Description Revenue, expenses, net profit and cash balance computed from current account balances.
// @Tags metrics
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.FinancialMetricsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to compute metrics"
// @Security BearerAuth
// @Router /companies/{company_id}/metrics [get]
func (h *metricsHandler) getFinancialMetrics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	metrics, err := h.metricsService.GetFinancialMetrics(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute metrics")
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialMetricsResponse(*metrics))
}
