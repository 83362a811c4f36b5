package repositories

import (
	"context"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
)

// ClosureReader defines read operations for month closure records.
// Closures are only ever written through ArchiveSupport.ArchivePeriod, so no
// writer interface exists: there is no unarchive path.
type ClosureReader interface {
	// FindClosure retrieves the closure for a given user and monthYear key.
	FindClosure(ctx context.Context, userID string, monthYear string) (*domain.MonthClosure, error)

	// ListClosures retrieves all of a user's closures ordered by period.
	ListClosures(ctx context.Context, userID string) ([]domain.MonthClosure, error)
}

// ClosureRepositoryFacade combines all closure-related repository interfaces.
type ClosureRepositoryFacade interface {
	ClosureReader
}
