package services

import (
	"context"
	"time"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
)

// ClosureSvcFacade archives past transactions and records the covered period.
type ClosureSvcFacade interface {
	// CloseMonth archives all of the user's unarchived transactions dated
	// strictly before now and upserts the closure derived from the earliest
	// one. Returns apperrors.ErrNothingToArchive when no row is eligible,
	// leaving all state untouched. The int is the number of rows archived.
	CloseMonth(ctx context.Context, userID string, now time.Time) (*domain.MonthClosure, int, error)

	// ListClosures retrieves the user's closures ordered by period.
	ListClosures(ctx context.Context, userID string) ([]domain.MonthClosure, error)
}
