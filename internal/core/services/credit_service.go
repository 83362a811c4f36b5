package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portsrepo "github.com/giantprolu/gestiondecompte/internal/core/ports/repositories"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/dto"
)

// creditService implements loan CRUD. Outstanding is a scalar of record:
// repayment transactions move it through the transaction repository, and
// direct edits overwrite it without re-deriving from history.
type creditService struct {
	BaseService
	creditRepo  portsrepo.CreditRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewCreditService creates a new credit service.
func NewCreditService(creditRepo portsrepo.CreditRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.CreditSvcFacade {
	return &creditService{creditRepo: creditRepo, accountRepo: accountRepo}
}

var _ portssvc.CreditSvcFacade = (*creditService)(nil)

func (s *creditService) CreateCredit(ctx context.Context, req dto.CreateCreditRequest, userID string) (*domain.Credit, error) {
	if req.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: principal must be positive", apperrors.ErrValidation)
	}
	if req.DueDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: due date precedes start date", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrForbidden
	}

	outstanding := req.Principal
	if req.Outstanding != nil {
		outstanding = *req.Outstanding
	}

	now := time.Now()
	credit := domain.Credit{
		CreditID:    uuid.NewString(),
		UserID:      userID,
		AccountID:   req.AccountID,
		Title:       req.Title,
		Principal:   req.Principal,
		Outstanding: outstanding,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Frequency:   req.Frequency,
		IsClosed:    outstanding.LessThanOrEqual(decimal.Zero),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.creditRepo.SaveCredit(ctx, credit); err != nil {
		s.LogError(ctx, err, "Failed to save credit", slog.String("credit_id", credit.CreditID))
		return nil, err
	}

	s.LogInfo(ctx, "Credit created",
		slog.String("credit_id", credit.CreditID),
		slog.String("account_id", credit.AccountID))
	return &credit, nil
}

func (s *creditService) GetCreditByID(ctx context.Context, creditID string, userID string) (*domain.Credit, error) {
	credit, err := s.creditRepo.FindCreditByID(ctx, creditID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find credit", slog.String("credit_id", creditID))
		}
		return nil, err
	}
	if err := s.AuthorizeAccess(ctx, credit.UserID, userID, domain.PermissionView); err != nil {
		return nil, err
	}
	return credit, nil
}

func (s *creditService) ListCredits(ctx context.Context, userID string, limit int, offset int) ([]domain.Credit, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.creditRepo.ListCredits(ctx, userID, limit, offset)
}

// UpdateCredit applies a direct patch. Outstanding and isClosed are editable
// as-is; no consistency check against repayment history is performed.
func (s *creditService) UpdateCredit(ctx context.Context, creditID string, req dto.UpdateCreditRequest, userID string) (*domain.Credit, error) {
	credit, err := s.creditRepo.FindCreditByID(ctx, creditID)
	if err != nil {
		return nil, err
	}
	if credit.UserID != userID {
		return nil, apperrors.ErrForbidden
	}

	if req.Title != nil {
		credit.Title = *req.Title
	}
	if req.StartDate != nil {
		credit.StartDate = *req.StartDate
	}
	if req.DueDate != nil {
		credit.DueDate = *req.DueDate
	}
	if req.Outstanding != nil {
		credit.Outstanding = *req.Outstanding
	}
	if req.Frequency != nil {
		credit.Frequency = *req.Frequency
	}
	if req.IsClosed != nil {
		credit.IsClosed = *req.IsClosed
	}
	credit.LastUpdatedAt = time.Now()
	credit.LastUpdatedBy = userID

	if err := s.creditRepo.UpdateCredit(ctx, *credit); err != nil {
		s.LogError(ctx, err, "Failed to update credit", slog.String("credit_id", creditID))
		return nil, err
	}
	return credit, nil
}

func (s *creditService) DeleteCredit(ctx context.Context, creditID string, userID string) error {
	credit, err := s.creditRepo.FindCreditByID(ctx, creditID)
	if err != nil {
		return err
	}
	if credit.UserID != userID {
		return apperrors.ErrForbidden
	}

	if err := s.creditRepo.DeleteCredit(ctx, creditID); err != nil {
		s.LogError(ctx, err, "Failed to delete credit", slog.String("credit_id", creditID))
		return err
	}
	s.LogInfo(ctx, "Credit deleted", slog.String("credit_id", creditID))
	return nil
}
