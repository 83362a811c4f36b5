package services

import (
	"context"
	"log/slog"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	ShareAuthorizer portssvc.ShareAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
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

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeAccess checks that requester may act on the owner's dashboard
// data at the required permission level. Self-access always passes. Without a
// wired authorizer cross-user access is denied, so a wiring mistake can only
// over-restrict.
func (s *BaseService) AuthorizeAccess(ctx context.Context, ownerUserID, requesterUserID string, required domain.SharePermission) error {
	if ownerUserID == requesterUserID {
		return nil
	}
	if s.ShareAuthorizer == nil {
		s.LogDebug(ctx, "No share authorizer provided, cross-user access denied",
			slog.String("owner_user_id", ownerUserID),
			slog.String("requester_user_id", requesterUserID),
			slog.String("required_permission", string(required)))
		return apperrors.ErrForbidden
	}
	return s.ShareAuthorizer.AuthorizeAccess(ctx, ownerUserID, requesterUserID, required)
}
