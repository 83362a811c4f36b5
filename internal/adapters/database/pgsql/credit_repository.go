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

type PgxCreditRepository struct {
	BaseRepository
}

// newPgxCreditRepository creates a new repository for credit (loan) data.
func newPgxCreditRepository(pool *pgxpool.Pool) *PgxCreditRepository {
	return &PgxCreditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCreditRepository implements portsrepo.CreditRepositoryFacade
var _ portsrepo.CreditRepositoryFacade = (*PgxCreditRepository)(nil)

const creditColumns = `credit_id, user_id, account_id, title, principal, outstanding, start_date, due_date, frequency, is_closed, created_at, created_by, last_updated_at, last_updated_by`

func scanCredit(row pgx.Row) (domain.Credit, error) {
	var c domain.Credit
	err := row.Scan(
		&c.CreditID,
		&c.UserID,
		&c.AccountID,
		&c.Title,
		&c.Principal,
		&c.Outstanding,
		&c.StartDate,
		&c.DueDate,
		&c.Frequency,
		&c.IsClosed,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// SaveCredit persists a new credit.
func (r *PgxCreditRepository) SaveCredit(ctx context.Context, credit domain.Credit) error {
	query := `
		INSERT INTO credits (` + creditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		credit.CreditID,
		credit.UserID,
		credit.AccountID,
		credit.Title,
		credit.Principal,
		credit.Outstanding,
		credit.StartDate,
		credit.DueDate,
		credit.Frequency,
		credit.IsClosed,
		credit.CreatedAt,
		credit.CreatedBy,
		credit.LastUpdatedAt,
		credit.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: credit with ID %s already exists", apperrors.ErrDuplicate, credit.CreditID)
		}
		return fmt.Errorf("failed to save credit %s: %w", credit.CreditID, err)
	}
	return nil
}

// FindCreditByID retrieves a specific credit by its unique identifier.
func (r *PgxCreditRepository) FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE credit_id = $1;`

	credit, err := scanCredit(r.Pool.QueryRow(ctx, query, creditID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: credit %s", apperrors.ErrNotFound, creditID)
		}
		return nil, fmt.Errorf("failed to find credit %s: %w", creditID, err)
	}
	return &credit, nil
}

// ListCredits retrieves a paginated list of a user's credits.
func (r *PgxCreditRepository) ListCredits(ctx context.Context, userID string, limit int, offset int) ([]domain.Credit, error) {
	query := `
		SELECT ` + creditColumns + `
		FROM credits
		WHERE user_id = $1
		ORDER BY start_date ASC, created_at ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list credits for user %s: %w", userID, err)
	}
	defer rows.Close()

	credits := make([]domain.Credit, 0)
	for rows.Next() {
		credit, err := scanCredit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit row: %w", err)
		}
		credits = append(credits, credit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit rows: %w", err)
	}
	return credits, nil
}

// UpdateCredit rewrites an existing credit's mutable fields.
func (r *PgxCreditRepository) UpdateCredit(ctx context.Context, credit domain.Credit) error {
	query := `
		UPDATE credits
		SET title = $2, principal = $3, outstanding = $4, start_date = $5, due_date = $6,
			frequency = $7, is_closed = $8, last_updated_at = $9, last_updated_by = $10
		WHERE credit_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		credit.CreditID,
		credit.Title,
		credit.Principal,
		credit.Outstanding,
		credit.StartDate,
		credit.DueDate,
		credit.Frequency,
		credit.IsClosed,
		credit.LastUpdatedAt,
		credit.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update credit %s: %w", credit.CreditID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: credit %s", apperrors.ErrNotFound, credit.CreditID)
	}
	return nil
}

// DeleteCredit removes a credit. Linked transactions keep their creditID for
// history; the reference simply stops resolving.
func (r *PgxCreditRepository) DeleteCredit(ctx context.Context, creditID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM credits WHERE credit_id = $1;`, creditID)
	if err != nil {
		return fmt.Errorf("failed to delete credit %s: %w", creditID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: credit %s", apperrors.ErrNotFound, creditID)
	}
	return nil
}
