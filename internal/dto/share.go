package dto

import (
	"time"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
)

// CreateShareRequest grants another user access to the caller's dashboard.
// The grantee is looked up by email.
type CreateShareRequest struct {
	Email      string                 `json:"email" binding:"required,email"`
	Permission domain.SharePermission `json:"permission" binding:"required,oneof=VIEW EDIT"`
}

// UpdateShareRequest changes an existing share's permission.
type UpdateShareRequest struct {
	Permission domain.SharePermission `json:"permission" binding:"required,oneof=VIEW EDIT"`
}

// ShareResponse defines the data returned for a dashboard share.
type ShareResponse struct {
	ShareID          string                 `json:"shareID"`
	OwnerUserID      string                 `json:"ownerUserID"`
	SharedWithUserID string                 `json:"sharedWithUserID"`
	Permission       domain.SharePermission `json:"permission"`
	CreatedAt        time.Time              `json:"createdAt"`
}

// ToShareResponse converts a domain.DashboardShare to its response DTO.
func ToShareResponse(s *domain.DashboardShare) ShareResponse {
	return ShareResponse{
		ShareID:          s.ShareID,
		OwnerUserID:      s.OwnerUserID,
		SharedWithUserID: s.SharedWithUserID,
		Permission:       s.Permission,
		CreatedAt:        s.CreatedAt,
	}
}

// ListSharesResponse wraps a list of shares.
type ListSharesResponse struct {
	Shares []ShareResponse `json:"shares"`
}

// ToListSharesResponse converts domain shares to the list DTO.
func ToListSharesResponse(shares []domain.DashboardShare) ListSharesResponse {
	res := make([]ShareResponse, len(shares))
	for i := range shares {
		res[i] = ToShareResponse(&shares[i])
	}
	return ListSharesResponse{Shares: res}
}
