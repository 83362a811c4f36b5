package repositories

import (
	"context"
	"time"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditAdjustment instructs the repository to move a credit's outstanding
// balance in the same database transaction as the row mutation. Amount is
// signed: negative when a repayment is applied (create, or the new amount of
// an edit), positive when one is reversed (delete, or the old amount of an
// edit). The repository closes the credit when outstanding drops to zero or
// below, and reopens it when a reversal pushes it back above zero.
type CreditAdjustment struct {
	CreditID string
	Amount   decimal.Decimal
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByTransferID retrieves both legs of a transfer.
	FindTransactionsByTransferID(ctx context.Context, transferID string) ([]domain.Transaction, error)

	// ListTransactions retrieves a paginated list of a user's transactions,
	// optionally filtered by account. Archived rows are included.
	ListTransactions(ctx context.Context, userID string, accountID string, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data. Every
// method that carries a balanceChanges map applies those account deltas as
// atomic SQL increments inside the same database transaction as the row
// mutation, so a crash can never leave the row written but the balance stale.
type TransactionWriter interface {
	// SaveTransaction inserts a transaction, applies its balance effect and,
	// when credit is non-nil, applies the repayment to the linked credit.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, credit *CreditAdjustment) error

	// SaveTransfer inserts both legs of a transfer and applies both deltas.
	SaveTransfer(ctx context.Context, out domain.Transaction, in domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// UpdateTransaction rewrites a transaction row, applies the edit deltas
	// and, when credit is non-nil, moves the linked credit's outstanding by
	// the amount difference.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, credit *CreditAdjustment) error

	// DeleteTransaction removes a transaction, reverses its balance effect and,
	// when credit is non-nil, runs the repayment reversal on the linked credit.
	DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, credit *CreditAdjustment) error

	// DeleteTransfer removes both legs of a transfer and reverses both deltas.
	DeleteTransfer(ctx context.Context, transferID string, balanceChanges map[string]decimal.Decimal) error
}

// RecurringSupport defines the storage operations of the recurring processor.
type RecurringSupport interface {
	// FindDueTemplates retrieves active, unarchived recurring templates whose
	// date is on or before asOf, ordered by date.
	FindDueTemplates(ctx context.Context, userID string, asOf time.Time) ([]domain.Transaction, error)

	// HasPostedCopy reports whether a non-recurring historical copy already
	// exists for the same account, category, amount and date.
	HasPostedCopy(ctx context.Context, userID string, accountID string, categoryID string, amount decimal.Decimal, date time.Time) (bool, error)

	// PostOccurrence inserts the realized copy, applies its balance effect,
	// applies the credit adjustment when the template is a repayment and
	// advances the template to nextDate, all in one database transaction.
	PostOccurrence(ctx context.Context, copy domain.Transaction, templateID string, nextDate time.Time, processedDate time.Time, balanceChanges map[string]decimal.Decimal, credit *CreditAdjustment) error

	// AdvanceTemplate rolls a template forward without posting, used when the
	// duplicate guard found an existing copy for the due date.
	AdvanceTemplate(ctx context.Context, templateID string, nextDate time.Time, processedDate time.Time, updatedBy string) error
}

// ArchiveSupport defines the storage operations of the month archiver.
type ArchiveSupport interface {
	// FindUnarchived retrieves a user's unarchived transactions dated strictly
	// before the given instant, ordered by date ascending.
	FindUnarchived(ctx context.Context, userID string, before time.Time) ([]domain.Transaction, error)

	// ArchivePeriod upserts the closure by (userID, monthYear) and marks all
	// listed transactions archived in one database transaction.
	ArchivePeriod(ctx context.Context, closure domain.MonthClosure, transactionIDs []string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	RecurringSupport
	ArchiveSupport
}
