package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portsrepo "github.com/giantprolu/gestiondecompte/internal/core/ports/repositories"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
)

// closureService is the month archiver. Archiving is monotonic: there is no
// unarchive path, and a closure's date range bounds exactly the transactions
// it covered when written.
type closureService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	closureRepo portsrepo.ClosureRepositoryFacade
}

// NewClosureService creates a new closure service.
func NewClosureService(txnRepo portsrepo.TransactionRepositoryFacade, closureRepo portsrepo.ClosureRepositoryFacade) portssvc.ClosureSvcFacade {
	return &closureService{txnRepo: txnRepo, closureRepo: closureRepo}
}

var _ portssvc.ClosureSvcFacade = (*closureService)(nil)

// CloseMonth archives every unarchived transaction dated strictly before now.
// The closure key is derived from the earliest selected transaction, upserted
// by (user, monthYear); closure write and batch archive commit together.
// Returns ErrNothingToArchive, leaving all state untouched, when nothing is
// eligible.
func (s *closureService) CloseMonth(ctx context.Context, userID string, now time.Time) (*domain.MonthClosure, int, error) {
	eligible, err := s.txnRepo.FindUnarchived(ctx, userID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to select transactions for archiving", slog.String("user_id", userID))
		return nil, 0, err
	}
	if len(eligible) == 0 {
		return nil, 0, apperrors.ErrNothingToArchive
	}

	// FindUnarchived orders by date ascending.
	earliest := eligible[0].Date
	latest := eligible[len(eligible)-1].Date

	creationTime := time.Now()
	closure := domain.MonthClosure{
		ClosureID: uuid.NewString(),
		UserID:    userID,
		MonthYear: earliest.Format(domain.MonthYearLayout),
		StartDate: earliest,
		EndDate:   latest,
		AuditFields: domain.AuditFields{
			CreatedAt:     creationTime,
			CreatedBy:     userID,
			LastUpdatedAt: creationTime,
			LastUpdatedBy: userID,
		},
	}

	ids := make([]string, len(eligible))
	for i := range eligible {
		ids[i] = eligible[i].TransactionID
	}

	if err := s.txnRepo.ArchivePeriod(ctx, closure, ids); err != nil {
		s.LogError(ctx, err, "Failed to archive period",
			slog.String("user_id", userID),
			slog.String("month_year", closure.MonthYear))
		return nil, 0, err
	}

	s.LogInfo(ctx, "Month closed",
		slog.String("user_id", userID),
		slog.String("month_year", closure.MonthYear),
		slog.Int("archived_count", len(ids)))
	return &closure, len(ids), nil
}

func (s *closureService) ListClosures(ctx context.Context, userID string) ([]domain.MonthClosure, error) {
	return s.closureRepo.ListClosures(ctx, userID)
}
