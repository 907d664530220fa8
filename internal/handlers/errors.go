package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/ledger_books_app/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondWithError maps a service error onto the HTTP status table and writes the body.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": apperrors.FieldErrors(err)})
	case errors.Is(err, apperrors.ErrUnbalanced):
		logger.Warn("Unbalanced journal entry", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Access forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// respondWithBindError reports a request that failed to bind. Validator failures
// become field errors; malformed JSON is a plain 400.
func respondWithBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fields})
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid request format",
			"fields": []apperrors.FieldError{{Field: typeErr.Field, Message: "has the wrong type"}},
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
}

// fieldPath drops the struct name from the validator namespace, leaving e.g. "lines[0].accountID".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + fe.Param()
	case accountTypeTag:
		return "must be one of ASSET LIABILITY EQUITY REVENUE EXPENSE"
	}
	return "failed the " + fe.Tag() + " check"
}
