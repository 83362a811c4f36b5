package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portsrepo "github.com/giantprolu/gestiondecompte/internal/core/ports/repositories"
)

// PgxClosureRepository reads month closure records. Writes go through the
// transaction repository's ArchivePeriod so the closure row and the archived
// flags always land together.
type PgxClosureRepository struct {
	BaseRepository
}

func newPgxClosureRepository(pool *pgxpool.Pool) *PgxClosureRepository {
	return &PgxClosureRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClosureRepositoryFacade = (*PgxClosureRepository)(nil)

const closureColumns = `closure_id, user_id, month_year, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by`

func scanClosure(row pgx.Row) (domain.MonthClosure, error) {
	var c domain.MonthClosure
	err := row.Scan(
		&c.ClosureID,
		&c.UserID,
		&c.MonthYear,
		&c.StartDate,
		&c.EndDate,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// FindClosure retrieves the closure for a given user and monthYear key.
func (r *PgxClosureRepository) FindClosure(ctx context.Context, userID string, monthYear string) (*domain.MonthClosure, error) {
	query := `SELECT ` + closureColumns + ` FROM month_closures WHERE user_id = $1 AND month_year = $2;`

	closure, err := scanClosure(r.Pool.QueryRow(ctx, query, userID, monthYear))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: closure %s for user %s", apperrors.ErrNotFound, monthYear, userID)
		}
		return nil, fmt.Errorf("failed to find closure %s: %w", monthYear, err)
	}
	return &closure, nil
}

// ListClosures retrieves all of a user's closures ordered by period.
func (r *PgxClosureRepository) ListClosures(ctx context.Context, userID string) ([]domain.MonthClosure, error) {
	query := `
		SELECT ` + closureColumns + `
		FROM month_closures
		WHERE user_id = $1
		ORDER BY month_year ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list closures for user %s: %w", userID, err)
	}
	defer rows.Close()

	closures := make([]domain.MonthClosure, 0)
	for rows.Next() {
		closure, err := scanClosure(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan closure row: %w", err)
		}
		closures = append(closures, closure)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating closure rows: %w", err)
	}
	return closures, nil
}
