package repositories

import (
	"context"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
)

// ShareReader defines read operations for dashboard shares
type ShareReader interface {
	// FindShareByID retrieves a share by its unique identifier.
	FindShareByID(ctx context.Context, shareID string) (*domain.DashboardShare, error)

	// FindShare retrieves the share edge between an owner and a grantee, if any.
	FindShare(ctx context.Context, ownerUserID string, sharedWithUserID string) (*domain.DashboardShare, error)

	// ListSharesByOwner retrieves all shares granted by a user.
	ListSharesByOwner(ctx context.Context, ownerUserID string) ([]domain.DashboardShare, error)

	// ListSharesWithUser retrieves all shares granted to a user.
	ListSharesWithUser(ctx context.Context, sharedWithUserID string) ([]domain.DashboardShare, error)
}

// ShareWriter defines write operations for dashboard shares
type ShareWriter interface {
	// SaveShare persists a new share edge.
	SaveShare(ctx context.Context, share domain.DashboardShare) error

	// UpdateShare rewrites a share's permission.
	UpdateShare(ctx context.Context, share domain.DashboardShare) error

	// DeleteShare removes a share edge.
	DeleteShare(ctx context.Context, shareID string) error
}

// ShareRepositoryFacade combines all share-related repository interfaces.
type ShareRepositoryFacade interface {
	ShareReader
	ShareWriter
}
