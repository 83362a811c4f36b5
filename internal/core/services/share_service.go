package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portsrepo "github.com/giantprolu/gestiondecompte/internal/core/ports/repositories"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/dto"
)

// shareService manages dashboard share edges and answers authorization
// questions for the other services.
type shareService struct {
	BaseService
	shareRepo portsrepo.ShareRepositoryFacade
	userRepo  portsrepo.UserReader
}

// NewShareService creates a new share service.
func NewShareService(shareRepo portsrepo.ShareRepositoryFacade, userRepo portsrepo.UserReader) portssvc.ShareSvcFacade {
	return &shareService{
		shareRepo: shareRepo,
		userRepo:  userRepo,
	}
}

var _ portssvc.ShareSvcFacade = (*shareService)(nil)

// AuthorizeAccess returns nil when the requester is the owner or holds a
// share from the owner satisfying the required permission.
func (s *shareService) AuthorizeAccess(ctx context.Context, ownerUserID, requesterUserID string, required domain.SharePermission) error {
	if ownerUserID == requesterUserID {
		return nil
	}

	share, err := s.shareRepo.FindShare(ctx, ownerUserID, requesterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to look up share for authorization",
			slog.String("owner_user_id", ownerUserID),
			slog.String("requester_user_id", requesterUserID))
		return err
	}

	if !share.Permission.Allows(required) {
		s.LogDebug(ctx, "Share permission insufficient",
			slog.String("owner_user_id", ownerUserID),
			slog.String("requester_user_id", requesterUserID),
			slog.String("held", string(share.Permission)),
			slog.String("required", string(required)))
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *shareService) CreateShare(ctx context.Context, req dto.CreateShareRequest, ownerUserID string) (*domain.DashboardShare, error) {
	grantee, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve grantee email", slog.String("email", req.Email))
		}
		return nil, err
	}

	if grantee.UserID == ownerUserID {
		return nil, apperrors.ErrValidation
	}

	now := time.Now()
	share := domain.DashboardShare{
		ShareID:          uuid.NewString(),
		OwnerUserID:      ownerUserID,
		SharedWithUserID: grantee.UserID,
		Permission:       req.Permission,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerUserID,
		},
	}

	if err := s.shareRepo.SaveShare(ctx, share); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save share", slog.String("share_id", share.ShareID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Dashboard share created",
		slog.String("share_id", share.ShareID),
		slog.String("shared_with", grantee.UserID),
		slog.String("permission", string(share.Permission)))
	return &share, nil
}

func (s *shareService) UpdateShare(ctx context.Context, shareID string, req dto.UpdateShareRequest, ownerUserID string) (*domain.DashboardShare, error) {
	share, err := s.shareRepo.FindShareByID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if share.OwnerUserID != ownerUserID {
		return nil, apperrors.ErrForbidden
	}

	share.Permission = req.Permission
	share.LastUpdatedAt = time.Now()
	share.LastUpdatedBy = ownerUserID

	if err := s.shareRepo.UpdateShare(ctx, *share); err != nil {
		s.LogError(ctx, err, "Failed to update share", slog.String("share_id", shareID))
		return nil, err
	}
	return share, nil
}

func (s *shareService) ListSharesByOwner(ctx context.Context, ownerUserID string) ([]domain.DashboardShare, error) {
	return s.shareRepo.ListSharesByOwner(ctx, ownerUserID)
}

func (s *shareService) ListSharesWithUser(ctx context.Context, userID string) ([]domain.DashboardShare, error) {
	return s.shareRepo.ListSharesWithUser(ctx, userID)
}

func (s *shareService) RevokeShare(ctx context.Context, shareID string, ownerUserID string) error {
	share, err := s.shareRepo.FindShareByID(ctx, shareID)
	if err != nil {
		return err
	}
	if share.OwnerUserID != ownerUserID {
		return apperrors.ErrForbidden
	}

	if err := s.shareRepo.DeleteShare(ctx, shareID); err != nil {
		s.LogError(ctx, err, "Failed to delete share", slog.String("share_id", shareID))
		return err
	}
	s.LogInfo(ctx, "Dashboard share revoked", slog.String("share_id", shareID))
	return nil
}
