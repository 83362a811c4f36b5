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

// transactionService is the balance ledger: every mutation computes the
// signed delta(s) for the affected account(s) and hands them to the
// repository alongside the row change, so both commit in one database
// transaction. A transaction only affects a balance once its date is due.
type transactionService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountReader
	creditRepo  portsrepo.CreditReader
	now         func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionShareAuthorizer sets the authorizer used for cross-user access.
func WithTransactionShareAuthorizer(authorizer portssvc.ShareAuthorizerSvc) TransactionServiceOption {
	return func(s *transactionService) {
		s.ShareAuthorizer = authorizer
	}
}

// WithTransactionClock overrides the time source, used by tests for
// deterministic due-date decisions.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountReader, creditRepo portsrepo.CreditReader, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	s := &transactionService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		creditRepo:  creditRepo,
		now:         time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, requesterUserID string) (*domain.Transaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.IsRecurring && !req.RecurrenceFrequency.Valid() {
		return nil, fmt.Errorf("%w: recurring transaction requires a valid frequency", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeAccess(ctx, account.UserID, requesterUserID, domain.PermissionEdit); err != nil {
		return nil, err
	}

	var creditAdj *portsrepo.CreditAdjustment
	if req.CreditID != "" {
		credit, err := s.creditRepo.FindCreditByID(ctx, req.CreditID)
		if err != nil {
			return nil, err
		}
		if credit.UserID != account.UserID {
			return nil, apperrors.ErrForbidden
		}
		if credit.AccountID != req.AccountID {
			return nil, fmt.Errorf("%w: repayment must be posted on the credit's account", apperrors.ErrValidation)
		}
		// A template records the repayment obligation only; the
		// processor-posted copies carry the outstanding adjustments.
		if !req.IsRecurring {
			creditAdj = &portsrepo.CreditAdjustment{CreditID: credit.CreditID, Amount: req.Amount.Neg()}
		}
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionID:       uuid.NewString(),
		AccountID:           req.AccountID,
		UserID:              account.UserID,
		CategoryID:          req.CategoryID,
		Amount:              req.Amount,
		Type:                req.Type,
		Date:                req.Date,
		Note:                req.Note,
		IsRecurring:         req.IsRecurring,
		RecurrenceFrequency: req.RecurrenceFrequency,
		RecurrenceDay:       req.RecurrenceDay,
		IsActive:            true,
		CreditID:            req.CreditID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterUserID,
		},
	}

	// Templates carry no direct ledger effect: the recurring processor
	// realizes them as historical copies, and the copy posts the effect.
	balanceChanges := map[string]decimal.Decimal{}
	if !txn.IsRecurring {
		if effect := txn.EffectOn(now); !effect.IsZero() {
			balanceChanges[txn.AccountID] = effect
		}
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, balanceChanges, creditAdj); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.String("type", string(txn.Type)))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string, requesterUserID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if err := s.AuthorizeAccess(ctx, txn.UserID, requesterUserID, domain.PermissionView); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, accountID string, limit int, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.txnRepo.ListTransactions(ctx, userID, accountID, limit, offset)
}

// UpdateTransaction applies a patch to a transaction. The balance delta is the
// new effect minus the old effect, both judged against the same "now"; when
// the account changes, the old account receives only the old reversal and the
// new account only the new effect.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requesterUserID string) (*domain.Transaction, error) {
	old, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeAccess(ctx, old.UserID, requesterUserID, domain.PermissionEdit); err != nil {
		return nil, err
	}
	if old.TransferID != "" {
		return nil, fmt.Errorf("%w: transfer legs cannot be edited, delete the transfer instead", apperrors.ErrValidation)
	}

	updated := *old
	if req.AccountID != nil && *req.AccountID != old.AccountID {
		if old.IsRepayment() {
			return nil, fmt.Errorf("%w: a repayment stays on the credit's account", apperrors.ErrValidation)
		}
		newAccount, err := s.accountRepo.FindAccountByID(ctx, *req.AccountID)
		if err != nil {
			return nil, err
		}
		if newAccount.UserID != old.UserID {
			return nil, fmt.Errorf("%w: target account belongs to a different dashboard", apperrors.ErrValidation)
		}
		updated.AccountID = *req.AccountID
	}
	if req.CategoryID != nil {
		updated.CategoryID = *req.CategoryID
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		updated.Amount = *req.Amount
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.Date != nil {
		updated.Date = *req.Date
	}
	if req.Note != nil {
		updated.Note = *req.Note
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}
	if req.RecurrenceFrequency != nil {
		updated.RecurrenceFrequency = *req.RecurrenceFrequency
	}
	if req.RecurrenceDay != nil {
		updated.RecurrenceDay = *req.RecurrenceDay
	}
	if updated.IsRecurring && !updated.RecurrenceFrequency.Valid() {
		return nil, fmt.Errorf("%w: recurring transaction requires a valid frequency", apperrors.ErrValidation)
	}

	now := s.now()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = requesterUserID

	balanceChanges := map[string]decimal.Decimal{}
	if !old.IsRecurring {
		oldEffect := old.EffectOn(now)
		newEffect := updated.EffectOn(now)
		if updated.AccountID != old.AccountID {
			if !oldEffect.IsZero() {
				balanceChanges[old.AccountID] = oldEffect.Neg()
			}
			if !newEffect.IsZero() {
				balanceChanges[updated.AccountID] = newEffect
			}
		} else if delta := newEffect.Sub(oldEffect); !delta.IsZero() {
			balanceChanges[updated.AccountID] = delta
		}
	}

	var creditAdj *portsrepo.CreditAdjustment
	if !old.IsRecurring && old.IsRepayment() && !updated.Amount.Equal(old.Amount) {
		creditAdj = &portsrepo.CreditAdjustment{
			CreditID: old.CreditID,
			Amount:   old.Amount.Sub(updated.Amount),
		}
	}

	if err := s.txnRepo.UpdateTransaction(ctx, updated, balanceChanges, creditAdj); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

// DeleteTransaction removes a transaction and reverses its effect. Deleting a
// transfer leg removes the whole transfer. Deleting a repayment restores the
// linked credit's outstanding balance in the same database transaction.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, requesterUserID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeAccess(ctx, txn.UserID, requesterUserID, domain.PermissionEdit); err != nil {
		return err
	}

	if txn.TransferID != "" {
		return s.deleteTransfer(ctx, txn.TransferID)
	}

	now := s.now()
	balanceChanges := map[string]decimal.Decimal{}
	if !txn.IsRecurring {
		if effect := txn.EffectOn(now); !effect.IsZero() {
			balanceChanges[txn.AccountID] = effect.Neg()
		}
	}

	var creditAdj *portsrepo.CreditAdjustment
	if !txn.IsRecurring && txn.IsRepayment() {
		creditAdj = &portsrepo.CreditAdjustment{CreditID: txn.CreditID, Amount: txn.Amount}
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, balanceChanges, creditAdj); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, requesterUserID string) ([]domain.Transaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	}

	from, err := s.accountRepo.FindAccountByID(ctx, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := s.accountRepo.FindAccountByID(ctx, req.ToAccountID)
	if err != nil {
		return nil, err
	}
	if from.UserID != to.UserID {
		return nil, fmt.Errorf("%w: transfer accounts must belong to the same dashboard", apperrors.ErrValidation)
	}
	if err := s.AuthorizeAccess(ctx, from.UserID, requesterUserID, domain.PermissionEdit); err != nil {
		return nil, err
	}

	now := s.now()
	transferID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     requesterUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: requesterUserID,
	}
	out := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     from.AccountID,
		UserID:        from.UserID,
		Amount:        req.Amount,
		Type:          domain.Expense,
		Date:          req.Date,
		Note:          req.Note,
		IsActive:      true,
		TransferID:    transferID,
		AuditFields:   audit,
	}
	in := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     to.AccountID,
		UserID:        to.UserID,
		Amount:        req.Amount,
		Type:          domain.Income,
		Date:          req.Date,
		Note:          req.Note,
		IsActive:      true,
		TransferID:    transferID,
		AuditFields:   audit,
	}

	balanceChanges := map[string]decimal.Decimal{}
	if outEffect := out.EffectOn(now); !outEffect.IsZero() {
		balanceChanges[out.AccountID] = outEffect
		balanceChanges[in.AccountID] = in.EffectOn(now)
	}

	if err := s.txnRepo.SaveTransfer(ctx, out, in, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to save transfer", slog.String("transfer_id", transferID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer created",
		slog.String("transfer_id", transferID),
		slog.String("from_account_id", from.AccountID),
		slog.String("to_account_id", to.AccountID))
	return []domain.Transaction{out, in}, nil
}

func (s *transactionService) DeleteTransfer(ctx context.Context, transferID string, requesterUserID string) error {
	legs, err := s.txnRepo.FindTransactionsByTransferID(ctx, transferID)
	if err != nil {
		return err
	}
	if len(legs) == 0 {
		return apperrors.ErrNotFound
	}
	if err := s.AuthorizeAccess(ctx, legs[0].UserID, requesterUserID, domain.PermissionEdit); err != nil {
		return err
	}
	return s.deleteTransfer(ctx, transferID)
}

// deleteTransfer removes both legs and reverses both deltas. The caller has
// already authorized the requester.
func (s *transactionService) deleteTransfer(ctx context.Context, transferID string) error {
	legs, err := s.txnRepo.FindTransactionsByTransferID(ctx, transferID)
	if err != nil {
		return err
	}
	if len(legs) == 0 {
		return apperrors.ErrNotFound
	}

	now := s.now()
	balanceChanges := map[string]decimal.Decimal{}
	for _, leg := range legs {
		if effect := leg.EffectOn(now); !effect.IsZero() {
			balanceChanges[leg.AccountID] = balanceChanges[leg.AccountID].Add(effect.Neg())
		}
	}

	if err := s.txnRepo.DeleteTransfer(ctx, transferID, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to delete transfer", slog.String("transfer_id", transferID))
		return err
	}

	s.LogInfo(ctx, "Transfer deleted", slog.String("transfer_id", transferID))
	return nil
}
