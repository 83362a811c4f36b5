package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portsrepo "github.com/giantprolu/gestiondecompte/internal/core/ports/repositories"
)

type PgxShareRepository struct {
	BaseRepository
}

// newPgxShareRepository creates a new repository for dashboard share data.
func newPgxShareRepository(pool *pgxpool.Pool) *PgxShareRepository {
	return &PgxShareRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxShareRepository implements portsrepo.ShareRepositoryFacade
var _ portsrepo.ShareRepositoryFacade = (*PgxShareRepository)(nil)

const shareColumns = `share_id, owner_user_id, shared_with_user_id, permission, created_at, created_by, last_updated_at, last_updated_by`

func scanShare(row pgx.Row) (domain.DashboardShare, error) {
	var s domain.DashboardShare
	err := row.Scan(
		&s.ShareID,
		&s.OwnerUserID,
		&s.SharedWithUserID,
		&s.Permission,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

// SaveShare persists a new share edge. At most one edge exists per
// (owner, grantee) pair.
func (r *PgxShareRepository) SaveShare(ctx context.Context, share domain.DashboardShare) error {
	query := `
		INSERT INTO dashboard_shares (` + shareColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		share.ShareID,
		share.OwnerUserID,
		share.SharedWithUserID,
		share.Permission,
		share.CreatedAt,
		share.CreatedBy,
		share.LastUpdatedAt,
		share.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: dashboard already shared with this user", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save share %s: %w", share.ShareID, err)
	}
	return nil
}

// FindShareByID retrieves a share by its unique identifier.
func (r *PgxShareRepository) FindShareByID(ctx context.Context, shareID string) (*domain.DashboardShare, error) {
	query := `SELECT ` + shareColumns + ` FROM dashboard_shares WHERE share_id = $1;`

	share, err := scanShare(r.Pool.QueryRow(ctx, query, shareID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: share %s", apperrors.ErrNotFound, shareID)
		}
		return nil, fmt.Errorf("failed to find share %s: %w", shareID, err)
	}
	return &share, nil
}

// FindShare retrieves the share edge between an owner and a grantee, if any.
func (r *PgxShareRepository) FindShare(ctx context.Context, ownerUserID string, sharedWithUserID string) (*domain.DashboardShare, error) {
	query := `SELECT ` + shareColumns + ` FROM dashboard_shares WHERE owner_user_id = $1 AND shared_with_user_id = $2;`

	share, err := scanShare(r.Pool.QueryRow(ctx, query, ownerUserID, sharedWithUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no share from %s to %s", apperrors.ErrNotFound, ownerUserID, sharedWithUserID)
		}
		return nil, fmt.Errorf("failed to find share: %w", err)
	}
	return &share, nil
}

// ListSharesByOwner retrieves all shares granted by a user.
func (r *PgxShareRepository) ListSharesByOwner(ctx context.Context, ownerUserID string) ([]domain.DashboardShare, error) {
	query := `SELECT ` + shareColumns + ` FROM dashboard_shares WHERE owner_user_id = $1 ORDER BY created_at ASC;`
	return r.queryShares(ctx, query, ownerUserID)
}

// ListSharesWithUser retrieves all shares granted to a user.
func (r *PgxShareRepository) ListSharesWithUser(ctx context.Context, sharedWithUserID string) ([]domain.DashboardShare, error) {
	query := `SELECT ` + shareColumns + ` FROM dashboard_shares WHERE shared_with_user_id = $1 ORDER BY created_at ASC;`
	return r.queryShares(ctx, query, sharedWithUserID)
}

func (r *PgxShareRepository) queryShares(ctx context.Context, query string, args ...any) ([]domain.DashboardShare, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shares: %w", err)
	}
	defer rows.Close()

	shares := make([]domain.DashboardShare, 0)
	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share row: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating share rows: %w", err)
	}
	return shares, nil
}

// UpdateShare rewrites a share's permission.
func (r *PgxShareRepository) UpdateShare(ctx context.Context, share domain.DashboardShare) error {
	query := `
		UPDATE dashboard_shares
		SET permission = $2, last_updated_at = $3, last_updated_by = $4
		WHERE share_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query, share.ShareID, share.Permission, share.LastUpdatedAt, share.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update share %s: %w", share.ShareID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: share %s", apperrors.ErrNotFound, share.ShareID)
	}
	return nil
}

// DeleteShare removes a share edge.
func (r *PgxShareRepository) DeleteShare(ctx context.Context, shareID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM dashboard_shares WHERE share_id = $1;`, shareID)
	if err != nil {
		return fmt.Errorf("failed to delete share %s: %w", shareID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: share %s", apperrors.ErrNotFound, shareID)
	}
	return nil
}
