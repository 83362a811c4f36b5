package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portsrepo "github.com/giantprolu/gestiondecompte/internal/core/ports/repositories"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
// It shares the account repository so balance increments run through a single
// implementation.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, account_id, user_id, category_id, amount, type, date, note, is_recurring, recurrence_frequency, recurrence_day, is_active, archived, last_processed_date, credit_id, transfer_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.AccountID,
		&t.UserID,
		&t.CategoryID,
		&t.Amount,
		&t.Type,
		&t.Date,
		&t.Note,
		&t.IsRecurring,
		&t.RecurrenceFrequency,
		&t.RecurrenceDay,
		&t.IsActive,
		&t.Archived,
		&t.LastProcessedDate,
		&t.CreditID,
		&t.TransferID,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

func insertTransactionInTx(ctx context.Context, tx pgx.Tx, t domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := tx.Exec(ctx, query,
		t.TransactionID,
		t.AccountID,
		t.UserID,
		t.CategoryID,
		t.Amount,
		t.Type,
		t.Date,
		t.Note,
		t.IsRecurring,
		t.RecurrenceFrequency,
		t.RecurrenceDay,
		t.IsActive,
		t.Archived,
		t.LastProcessedDate,
		t.CreditID,
		t.TransferID,
		t.CreatedAt,
		t.CreatedBy,
		t.LastUpdatedAt,
		t.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, t.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", t.TransactionID, err)
	}
	return nil
}

// applyCreditAdjustmentInTx moves a credit's outstanding balance under a row
// lock. The domain rule decides when the credit closes or reopens.
func applyCreditAdjustmentInTx(ctx context.Context, tx pgx.Tx, adj *portsrepo.CreditAdjustment, userID string, now time.Time) error {
	if adj == nil {
		return nil
	}

	var credit domain.Credit
	err := tx.QueryRow(ctx,
		`SELECT outstanding, is_closed FROM credits WHERE credit_id = $1 FOR UPDATE;`,
		adj.CreditID,
	).Scan(&credit.Outstanding, &credit.IsClosed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: credit %s", apperrors.ErrNotFound, adj.CreditID)
		}
		return fmt.Errorf("failed to lock credit %s: %w", adj.CreditID, err)
	}

	credit.ApplyAdjustment(adj.Amount)

	_, err = tx.Exec(ctx,
		`UPDATE credits SET outstanding = $2, is_closed = $3, last_updated_at = $4, last_updated_by = $5 WHERE credit_id = $1;`,
		adj.CreditID, credit.Outstanding, credit.IsClosed, now, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust credit %s: %w", adj.CreditID, err)
	}
	return nil
}

func balanceAccountIDs(balanceChanges map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		ids = append(ids, id)
	}
	return ids
}

// SaveTransaction inserts a transaction, applies its balance effect and, when
// credit is non-nil, applies the repayment to the linked credit. Everything
// happens in one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, credit *portsrepo.CreditAdjustment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := txn.CreatedAt
	userID := txn.CreatedBy

	if err := r.accountRepo.LockAccountsForUpdate(ctx, tx, balanceAccountIDs(balanceChanges)); err != nil {
		return err
	}
	if err := insertTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return err
	}
	if err := applyCreditAdjustmentInTx(ctx, tx, credit, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveTransfer inserts both legs of a transfer and applies both deltas.
func (r *PgxTransactionRepository) SaveTransfer(ctx context.Context, out domain.Transaction, in domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := out.CreatedAt
	userID := out.CreatedBy

	if err := r.accountRepo.LockAccountsForUpdate(ctx, tx, balanceAccountIDs(balanceChanges)); err != nil {
		return err
	}
	if err := insertTransactionInTx(ctx, tx, out); err != nil {
		return err
	}
	if err := insertTransactionInTx(ctx, tx, in); err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction rewrites a transaction row, applies the edit deltas and,
// when credit is non-nil, moves the linked credit's outstanding by the amount
// difference.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, credit *portsrepo.CreditAdjustment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := txn.LastUpdatedAt
	userID := txn.LastUpdatedBy

	if err := r.accountRepo.LockAccountsForUpdate(ctx, tx, balanceAccountIDs(balanceChanges)); err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET account_id = $2, category_id = $3, amount = $4, type = $5, date = $6, note = $7,
			is_recurring = $8, recurrence_frequency = $9, recurrence_day = $10, is_active = $11,
			last_updated_at = $12, last_updated_by = $13
		WHERE transaction_id = $1;
	`
	ct, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.AccountID,
		txn.CategoryID,
		txn.Amount,
		txn.Type,
		txn.Date,
		txn.Note,
		txn.IsRecurring,
		txn.RecurrenceFrequency,
		txn.RecurrenceDay,
		txn.IsActive,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return err
	}
	if err := applyCreditAdjustmentInTx(ctx, tx, credit, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes a transaction, reverses its balance effect and,
// when credit is non-nil, runs the repayment reversal on the linked credit.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, credit *portsrepo.CreditAdjustment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()

	var userID string
	err = tx.QueryRow(ctx, `SELECT user_id FROM transactions WHERE transaction_id = $1 FOR UPDATE;`, transactionID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return fmt.Errorf("failed to lock transaction %s: %w", transactionID, err)
	}

	if err := r.accountRepo.LockAccountsForUpdate(ctx, tx, balanceAccountIDs(balanceChanges)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return err
	}
	if err := applyCreditAdjustmentInTx(ctx, tx, credit, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransfer removes both legs of a transfer and reverses both deltas.
func (r *PgxTransactionRepository) DeleteTransfer(ctx context.Context, transferID string, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()

	var userID string
	err = tx.QueryRow(ctx, `SELECT user_id FROM transactions WHERE transfer_id = $1 LIMIT 1 FOR UPDATE;`, transferID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: transfer %s", apperrors.ErrNotFound, transferID)
		}
		return fmt.Errorf("failed to lock transfer %s: %w", transferID, err)
	}

	if err := r.accountRepo.LockAccountsForUpdate(ctx, tx, balanceAccountIDs(balanceChanges)); err != nil {
		return err
	}
	ct, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transfer_id = $1;`, transferID)
	if err != nil {
		return fmt.Errorf("failed to delete transfer %s: %w", transferID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: transfer %s", apperrors.ErrNotFound, transferID)
	}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a specific transaction by its unique identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// FindTransactionsByTransferID retrieves both legs of a transfer.
func (r *PgxTransactionRepository) FindTransactionsByTransferID(ctx context.Context, transferID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transfer_id = $1 ORDER BY type DESC;`

	txns, err := r.queryTransactions(ctx, query, transferID)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, fmt.Errorf("%w: transfer %s", apperrors.ErrNotFound, transferID)
	}
	return txns, nil
}

// ListTransactions retrieves a paginated list of a user's transactions,
// optionally filtered by account. Archived rows are included.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, accountID string, limit int, offset int) ([]domain.Transaction, error) {
	if accountID != "" {
		query := `
			SELECT ` + transactionColumns + `
			FROM transactions
			WHERE user_id = $1 AND account_id = $2
			ORDER BY date DESC, created_at DESC
			LIMIT $3 OFFSET $4;
		`
		return r.queryTransactions(ctx, query, userID, accountID, limit, offset)
	}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	return r.queryTransactions(ctx, query, userID, limit, offset)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// FindDueTemplates retrieves active, unarchived recurring templates whose
// date is on or before asOf, ordered by date.
func (r *PgxTransactionRepository) FindDueTemplates(ctx context.Context, userID string, asOf time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND is_recurring AND is_active AND NOT archived AND date <= $2
		ORDER BY date ASC;
	`
	return r.queryTransactions(ctx, query, userID, asOf)
}

// HasPostedCopy reports whether a non-recurring historical copy already
// exists for the same account, category, amount and calendar date.
func (r *PgxTransactionRepository) HasPostedCopy(ctx context.Context, userID string, accountID string, categoryID string, amount decimal.Decimal, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE user_id = $1 AND account_id = $2 AND category_id = $3
				AND amount = $4 AND date::date = $5::date AND NOT is_recurring
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, userID, accountID, categoryID, amount, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for posted copy: %w", err)
	}
	return exists, nil
}

// PostOccurrence inserts the realized copy, applies its balance effect,
// applies the credit adjustment when the template is a repayment and advances
// the template to nextDate, all in one database transaction.
func (r *PgxTransactionRepository) PostOccurrence(ctx context.Context, copy domain.Transaction, templateID string, nextDate time.Time, processedDate time.Time, balanceChanges map[string]decimal.Decimal, credit *portsrepo.CreditAdjustment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := copy.CreatedAt
	userID := copy.CreatedBy

	if err := r.accountRepo.LockAccountsForUpdate(ctx, tx, balanceAccountIDs(balanceChanges)); err != nil {
		return err
	}
	if err := insertTransactionInTx(ctx, tx, copy); err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return err
	}
	if err := applyCreditAdjustmentInTx(ctx, tx, credit, userID, now); err != nil {
		return err
	}
	if err := advanceTemplateInTx(ctx, tx, templateID, nextDate, processedDate, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// AdvanceTemplate rolls a template forward without posting, used when the
// duplicate guard found an existing copy for the due date.
func (r *PgxTransactionRepository) AdvanceTemplate(ctx context.Context, templateID string, nextDate time.Time, processedDate time.Time, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := advanceTemplateInTx(ctx, tx, templateID, nextDate, processedDate, updatedBy, time.Now().UTC()); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func advanceTemplateInTx(ctx context.Context, tx pgx.Tx, templateID string, nextDate time.Time, processedDate time.Time, updatedBy string, now time.Time) error {
	query := `
		UPDATE transactions
		SET date = $2, last_processed_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND is_recurring;
	`
	ct, err := tx.Exec(ctx, query, templateID, nextDate, processedDate, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to advance template %s: %w", templateID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: recurring template %s", apperrors.ErrNotFound, templateID)
	}
	return nil
}

// FindUnarchived retrieves a user's unarchived historical transactions dated
// strictly before the given instant, ordered by date ascending. Recurring
// templates are never archived and so never appear here.
func (r *PgxTransactionRepository) FindUnarchived(ctx context.Context, userID string, before time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND NOT archived AND NOT is_recurring AND date < $2
		ORDER BY date ASC, created_at ASC;
	`
	return r.queryTransactions(ctx, query, userID, before)
}

// ArchivePeriod upserts the closure by (userID, monthYear) and marks all
// listed transactions archived in one database transaction.
func (r *PgxTransactionRepository) ArchivePeriod(ctx context.Context, closure domain.MonthClosure, transactionIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	closureQuery := `
		INSERT INTO month_closures (closure_id, user_id, month_year, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, month_year) DO UPDATE
		SET start_date = LEAST(month_closures.start_date, EXCLUDED.start_date),
			end_date = GREATEST(month_closures.end_date, EXCLUDED.end_date),
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, closureQuery,
		closure.ClosureID,
		closure.UserID,
		closure.MonthYear,
		closure.StartDate,
		closure.EndDate,
		closure.CreatedAt,
		closure.CreatedBy,
		closure.LastUpdatedAt,
		closure.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert closure %s for user %s: %w", closure.MonthYear, closure.UserID, err)
	}

	archiveQuery := `
		UPDATE transactions
		SET archived = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = ANY($1);
	`
	ct, err := tx.Exec(ctx, archiveQuery, transactionIDs, closure.LastUpdatedAt, closure.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to archive transactions for closure %s: %w", closure.MonthYear, err)
	}
	if ct.RowsAffected() != int64(len(transactionIDs)) {
		return fmt.Errorf("%w: expected to archive %d transactions, archived %d", apperrors.ErrNotFound, len(transactionIDs), ct.RowsAffected())
	}

	return r.Commit(ctx, tx)
}
