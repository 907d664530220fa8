package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_books_app/internal/apperrors"
	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_books_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_books_app/internal/middleware"
	"github.com/SscSPs/ledger_books_app/internal/utils/ids"
)

// BaseService provides common functionality for all services
type BaseService struct {
	CompanyAuthorizer portssvc.CompanyAuthorizerSvc
}

// GetLogger gets the request-scoped logger from context
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks if a user has the required role for a company
func (s *BaseService) AuthorizeUser(ctx context.Context, userID, companyID string, requiredRole domain.CompanyRole) error {
	if s.CompanyAuthorizer != nil {
		return s.CompanyAuthorizer.AuthorizeUserAction(ctx, userID, companyID, requiredRole)
	}
	s.LogWarn(ctx, "No company authorizer configured, access granted",
		slog.String("user_id", userID),
		slog.String("company_id", companyID),
		slog.String("required_role", string(requiredRole)))
	return nil
}

// canonicalRefs rewrites each identifier in place to its canonical UUID form.
// A malformed identifier cannot name a stored record and yields ErrNotFound.
func canonicalRefs(refs ...*string) error {
	for _, ref := range refs {
		id, ok := ids.Canonical(*ref)
		if !ok {
			return fmt.Errorf("%w: %q is not a valid identifier", apperrors.ErrNotFound, *ref)
		}
		*ref = id
	}
	return nil
}
