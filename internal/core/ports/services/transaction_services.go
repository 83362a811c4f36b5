package services

import (
	"context"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	"github.com/giantprolu/gestiondecompte/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction the requester may read.
	GetTransactionByID(ctx context.Context, transactionID string, requesterUserID string) (*domain.Transaction, error)

	// ListTransactions retrieves a user's transactions, optionally by account.
	ListTransactions(ctx context.Context, userID string, accountID string, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines the ledger mutations. Every operation computes
// the signed balance delta for the affected account(s) and hands it to the
// repository together with the row change, so the two are committed atomically.
// Effects only apply when the transaction's date is on or before "now".
type TransactionWriterSvc interface {
	// CreateTransaction inserts a transaction and applies its effect.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, requesterUserID string) (*domain.Transaction, error)

	// UpdateTransaction applies a patch; the delta is the new effect minus the
	// old effect, split per account when the account changes.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requesterUserID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction, reversing its effect and, for
	// repayments, restoring the linked credit's outstanding balance.
	DeleteTransaction(ctx context.Context, transactionID string, requesterUserID string) error

	// CreateTransfer debits the source and credits the destination account.
	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, requesterUserID string) ([]domain.Transaction, error)

	// DeleteTransfer removes both legs and reverses both sides.
	DeleteTransfer(ctx context.Context, transferID string, requesterUserID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
