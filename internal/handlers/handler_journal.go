package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_books_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_books_app/internal/dto"
	"github.com/SscSPs/ledger_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers journal entry routes under a company group.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createJournalEntry)
		entries.GET("", h.listJournalEntries)
		entries.GET("/:entry_id", h.getJournalEntry)
		entries.POST("/:entry_id/reverse", h.reverseJournalEntry)
	}
}

// createJournalEntry godoc
// @Summary Post a journal entry
// @Description Validates a balanced set of lines, assigns the next entry number and updates account balances atomically.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Entry number conflict"
// @Failure 422 {object} map[string]string "Debits and credits differ"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /companies/{company_id}/journal-entries [post]
func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateJournalEntryRequest
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
	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first with their lines, using token-based pagination.
// @Tags journal-entries
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   limit query int false "Page size" default(50) maximum(200)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]interface{} "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /companies/{company_id}/journal-entries [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.journalService.GetJournalEntriesByCompany(c.Request.Context(), companyID, userID, params)
	if err != nil {
		respondWithError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Tags journal-entries
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /companies/{company_id}/journal-entries/{entry_id} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), companyID, entryID, userID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("journal_entry_id", entryID)), err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseJournalEntry godoc
// @Summary Reverse a journal entry
// @Description Posts a mirror entry dated today and marks the original as REVERSED.
// @Tags journal-entries
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Journal entry ID"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]interface{} "Entry is not posted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to reverse journal entry"
// @Security BearerAuth
// @Router /companies/{company_id}/journal-entries/{entry_id}/reverse [post]
func (h *journalHandler) reverseJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("journal_entry_id", entryID))
	reversal, err := h.journalService.ReverseJournalEntry(c.Request.Context(), companyID, entryID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reverse journal entry")
		return
	}

	logger.Info("Journal entry reversed", slog.String("reversal_entry_number", reversal.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}
