package services

import (
	"context"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	"github.com/giantprolu/gestiondecompte/internal/dto"
)

// ShareAuthorizerSvc gates cross-user access to dashboard data. It is the one
// interface other services depend on, so they never see share storage.
type ShareAuthorizerSvc interface {
	// AuthorizeAccess returns nil when requester is the owner or holds a share
	// from the owner satisfying the required permission; otherwise
	// apperrors.ErrForbidden (or ErrNotFound if no share edge exists).
	AuthorizeAccess(ctx context.Context, ownerUserID string, requesterUserID string, required domain.SharePermission) error
}

// ShareManagerSvc manages the share edges themselves.
type ShareManagerSvc interface {
	// CreateShare grants a user (looked up by email) access to the owner's dashboard.
	CreateShare(ctx context.Context, req dto.CreateShareRequest, ownerUserID string) (*domain.DashboardShare, error)

	// UpdateShare changes a share's permission level.
	UpdateShare(ctx context.Context, shareID string, req dto.UpdateShareRequest, ownerUserID string) (*domain.DashboardShare, error)

	// ListSharesByOwner lists the shares the user has granted.
	ListSharesByOwner(ctx context.Context, ownerUserID string) ([]domain.DashboardShare, error)

	// ListSharesWithUser lists the dashboards shared with the user.
	ListSharesWithUser(ctx context.Context, userID string) ([]domain.DashboardShare, error)

	// RevokeShare deletes a share the user granted.
	RevokeShare(ctx context.Context, shareID string, ownerUserID string) error
}

// ShareSvcFacade combines all share-related service interfaces.
type ShareSvcFacade interface {
	ShareAuthorizerSvc
	ShareManagerSvc
}
