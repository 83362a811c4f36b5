package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portsrepo "github.com/giantprolu/gestiondecompte/internal/core/ports/repositories"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/core/services"
	"github.com/giantprolu/gestiondecompte/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	mockCreditRepo  *MockCreditRepository
	service         portssvc.TransactionSvcFacade

	now       time.Time
	yesterday time.Time
	tomorrow  time.Time
	userID    string
	account   domain.Account
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.mockTxnRepo = new(MockTransactionRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockCreditRepo = new(MockCreditRepository)

	s.now = time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	s.yesterday = s.now.AddDate(0, 0, -1)
	s.tomorrow = s.now.AddDate(0, 0, 1)

	s.service = services.NewTransactionService(
		s.mockTxnRepo,
		s.mockAccountRepo,
		s.mockCreditRepo,
		services.WithTransactionClock(func() time.Time { return s.now }),
	)

	s.userID = uuid.NewString()
	s.account = domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         s.userID,
		Name:           "Compte courant",
		AccountType:    domain.OneOff,
		InitialBalance: decimal.NewFromInt(100),
	}
}

func (s *TransactionServiceTestSuite) expenseOf(amount int64, date time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     s.account.AccountID,
		UserID:        s.userID,
		Amount:        decimal.NewFromInt(amount),
		Type:          domain.Expense,
		Date:          date,
		IsActive:      true,
	}
}

func (s *TransactionServiceTestSuite) TestCreatePastExpenseAppliesNegativeDelta() {
	ctx := context.Background()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.account.AccountID).Return(&s.account, nil).Once()
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 1 && changes[s.account.AccountID].Equal(decimal.NewFromInt(-30))
		}), (*portsrepo.CreditAdjustment)(nil)).Return(nil).Once()

	txn, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		AccountID: s.account.AccountID,
		Amount:    decimal.NewFromInt(30),
		Type:      domain.Expense,
		Date:      s.yesterday,
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Expense, txn.Type)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateFutureTransactionHasNoEffect() {
	ctx := context.Background()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.account.AccountID).Return(&s.account, nil).Once()
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 0
		}), (*portsrepo.CreditAdjustment)(nil)).Return(nil).Once()

	_, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		AccountID: s.account.AccountID,
		Amount:    decimal.NewFromInt(30),
		Type:      domain.Expense,
		Date:      s.tomorrow,
	}, s.userID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateRecurringTemplateHasNoEffect() {
	ctx := context.Background()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.account.AccountID).Return(&s.account, nil).Once()
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 0
		}), (*portsrepo.CreditAdjustment)(nil)).Return(nil).Once()

	txn, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		AccountID:           s.account.AccountID,
		Amount:              decimal.NewFromInt(30),
		Type:                domain.Expense,
		Date:                s.yesterday,
		IsRecurring:         true,
		RecurrenceFrequency: domain.Monthly,
	}, s.userID)

	s.Require().NoError(err)
	s.True(txn.IsRecurring)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateRecurringWithoutFrequencyRejected() {
	ctx := context.Background()

	_, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		AccountID:   s.account.AccountID,
		Amount:      decimal.NewFromInt(30),
		Type:        domain.Expense,
		Date:        s.yesterday,
		IsRecurring: true,
	}, s.userID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateNonPositiveAmountRejected() {
	ctx := context.Background()

	_, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		AccountID: s.account.AccountID,
		Amount:    decimal.Zero,
		Type:      domain.Expense,
		Date:      s.yesterday,
	}, s.userID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceTestSuite) TestCreateOnForeignAccountForbiddenWithoutShare() {
	ctx := context.Background()
	foreign := s.account
	foreign.UserID = uuid.NewString()
	s.mockAccountRepo.On("FindAccountByID", ctx, foreign.AccountID).Return(&foreign, nil).Once()

	shareRepo := new(MockShareRepository)
	shareRepo.On("FindShare", ctx, foreign.UserID, s.userID).Return(nil, apperrors.ErrNotFound).Once()
	svc := services.NewTransactionService(
		s.mockTxnRepo, s.mockAccountRepo, s.mockCreditRepo,
		services.WithTransactionClock(func() time.Time { return s.now }),
		services.WithTransactionShareAuthorizer(services.NewShareService(shareRepo, new(MockUserRepository))),
	)

	_, err := svc.CreateTransaction(ctx, dto.CreateTransactionRequest{
		AccountID: foreign.AccountID,
		Amount:    decimal.NewFromInt(30),
		Type:      domain.Expense,
		Date:      s.yesterday,
	}, s.userID)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Pins the balance walk: balance 100, expense 30 posted yesterday leaves 70,
// editing it to 50 leaves 50, deleting it restores 100. Expressed through the
// deltas handed to the repository: -30, then -20, then +50.
func (s *TransactionServiceTestSuite) TestEditAmountAppliesDifference() {
	ctx := context.Background()
	existing := s.expenseOf(30, s.yesterday)
	newAmount := decimal.NewFromInt(50)

	s.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()
	s.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			// new effect (-50) minus old effect (-30)
			return len(changes) == 1 && changes[s.account.AccountID].Equal(decimal.NewFromInt(-20))
		}), (*portsrepo.CreditAdjustment)(nil)).Return(nil).Once()

	updated, err := s.service.UpdateTransaction(ctx, existing.TransactionID, dto.UpdateTransactionRequest{
		Amount: &newAmount,
	}, s.userID)

	s.Require().NoError(err)
	s.True(updated.Amount.Equal(newAmount))
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestDeletePastExpenseRestoresBalance() {
	ctx := context.Background()
	existing := s.expenseOf(30, s.yesterday)

	s.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()
	s.mockTxnRepo.On("DeleteTransaction", ctx, existing.TransactionID,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 1 && changes[s.account.AccountID].Equal(decimal.NewFromInt(30))
		}), (*portsrepo.CreditAdjustment)(nil)).Return(nil).Once()

	err := s.service.DeleteTransaction(ctx, existing.TransactionID, s.userID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestEditDatePastToFutureRemovesEffect() {
	ctx := context.Background()
	existing := s.expenseOf(30, s.yesterday)

	s.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()
	s.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			// old effect -30 reversed, new effect zero
			return len(changes) == 1 && changes[s.account.AccountID].Equal(decimal.NewFromInt(30))
		}), (*portsrepo.CreditAdjustment)(nil)).Return(nil).Once()

	_, err := s.service.UpdateTransaction(ctx, existing.TransactionID, dto.UpdateTransactionRequest{
		Date: &s.tomorrow,
	}, s.userID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestEditDateFutureToPastAddsEffect() {
	ctx := context.Background()
	existing := s.expenseOf(30, s.tomorrow)

	s.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()
	s.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 1 && changes[s.account.AccountID].Equal(decimal.NewFromInt(-30))
		}), (*portsrepo.CreditAdjustment)(nil)).Return(nil).Once()

	_, err := s.service.UpdateTransaction(ctx, existing.TransactionID, dto.UpdateTransactionRequest{
		Date: &s.yesterday,
	}, s.userID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

// When both the account and the date change, the old account receives exactly
// the old reversal and the new account exactly the new effect; the two
// adjustments are never combined onto one account.
func (s *TransactionServiceTestSuite) TestEditAccountAndDateSplitsAdjustments() {
	ctx := context.Background()
	existing := s.expenseOf(30, s.yesterday)
	other := domain.Account{AccountID: uuid.NewString(), UserID: s.userID, Name: "Livret"}
	newAmount := decimal.NewFromInt(50)

	s.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, other.AccountID).Return(&other, nil).Once()
	s.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 2 &&
				changes[s.account.AccountID].Equal(decimal.NewFromInt(30)) &&
				changes[other.AccountID].Equal(decimal.NewFromInt(-50))
		}), (*portsrepo.CreditAdjustment)(nil)).Return(nil).Once()

	_, err := s.service.UpdateTransaction(ctx, existing.TransactionID, dto.UpdateTransactionRequest{
		AccountID: &other.AccountID,
		Amount:    &newAmount,
	}, s.userID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestEditAccountToFutureDateOnlyReversesOld() {
	ctx := context.Background()
	existing := s.expenseOf(30, s.yesterday)
	other := domain.Account{AccountID: uuid.NewString(), UserID: s.userID}

	s.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, other.AccountID).Return(&other, nil).Once()
	s.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			// new account untouched: the moved transaction is not yet due
			return len(changes) == 1 && changes[s.account.AccountID].Equal(decimal.NewFromInt(30))
		}), (*portsrepo.CreditAdjustment)(nil)).Return(nil).Once()

	_, err := s.service.UpdateTransaction(ctx, existing.TransactionID, dto.UpdateTransactionRequest{
		AccountID: &other.AccountID,
		Date:      &s.tomorrow,
	}, s.userID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestDeleteRepaymentRestoresCreditOutstanding() {
	ctx := context.Background()
	existing := s.expenseOf(200, s.yesterday)
	existing.CreditID = uuid.NewString()

	s.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()
	s.mockTxnRepo.On("DeleteTransaction", ctx, existing.TransactionID,
		mock.AnythingOfType("map[string]decimal.Decimal"),
		mock.MatchedBy(func(adj *portsrepo.CreditAdjustment) bool {
			return adj != nil && adj.CreditID == existing.CreditID && adj.Amount.Equal(decimal.NewFromInt(200))
		})).Return(nil).Once()

	err := s.service.DeleteTransaction(ctx, existing.TransactionID, s.userID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateRepaymentAppliesCreditAdjustment() {
	ctx := context.Background()
	credit := domain.Credit{
		CreditID:    uuid.NewString(),
		UserID:      s.userID,
		AccountID:   s.account.AccountID,
		Principal:   decimal.NewFromInt(1000),
		Outstanding: decimal.NewFromInt(1000),
	}

	s.mockAccountRepo.On("FindAccountByID", ctx, s.account.AccountID).Return(&s.account, nil).Once()
	s.mockCreditRepo.On("FindCreditByID", ctx, credit.CreditID).Return(&credit, nil).Once()
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.AnythingOfType("map[string]decimal.Decimal"),
		mock.MatchedBy(func(adj *portsrepo.CreditAdjustment) bool {
			return adj != nil && adj.CreditID == credit.CreditID && adj.Amount.Equal(decimal.NewFromInt(-200))
		})).Return(nil).Once()

	_, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		AccountID: s.account.AccountID,
		Amount:    decimal.NewFromInt(200),
		Type:      domain.Expense,
		Date:      s.yesterday,
		CreditID:  credit.CreditID,
	}, s.userID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

// A recurring repayment template records the obligation only: the outstanding
// adjustment belongs to the processor-posted copies, so creating the template
// must not touch the credit (the first occurrence would otherwise be counted
// twice).
func (s *TransactionServiceTestSuite) TestCreateRecurringRepaymentTemplateLeavesCredit() {
	ctx := context.Background()
	credit := domain.Credit{
		CreditID:    uuid.NewString(),
		UserID:      s.userID,
		AccountID:   s.account.AccountID,
		Principal:   decimal.NewFromInt(1000),
		Outstanding: decimal.NewFromInt(1000),
	}

	s.mockAccountRepo.On("FindAccountByID", ctx, s.account.AccountID).Return(&s.account, nil).Once()
	s.mockCreditRepo.On("FindCreditByID", ctx, credit.CreditID).Return(&credit, nil).Once()
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 0
		}), (*portsrepo.CreditAdjustment)(nil)).Return(nil).Once()

	txn, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		AccountID:           s.account.AccountID,
		Amount:              decimal.NewFromInt(200),
		Type:                domain.Expense,
		Date:                s.yesterday,
		CreditID:            credit.CreditID,
		IsRecurring:         true,
		RecurrenceFrequency: domain.Monthly,
	}, s.userID)

	s.Require().NoError(err)
	s.True(txn.IsRecurring)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestEditRecurringRepaymentTemplateLeavesCredit() {
	ctx := context.Background()
	template := s.expenseOf(200, s.tomorrow)
	template.CreditID = uuid.NewString()
	template.IsRecurring = true
	template.RecurrenceFrequency = domain.Monthly
	newAmount := decimal.NewFromInt(250)

	s.mockTxnRepo.On("FindTransactionByID", ctx, template.TransactionID).Return(&template, nil).Once()
	s.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 0
		}), (*portsrepo.CreditAdjustment)(nil)).Return(nil).Once()

	_, err := s.service.UpdateTransaction(ctx, template.TransactionID, dto.UpdateTransactionRequest{
		Amount: &newAmount,
	}, s.userID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestDeleteRecurringRepaymentTemplateLeavesCredit() {
	ctx := context.Background()
	template := s.expenseOf(200, s.yesterday)
	template.CreditID = uuid.NewString()
	template.IsRecurring = true
	template.RecurrenceFrequency = domain.Monthly

	s.mockTxnRepo.On("FindTransactionByID", ctx, template.TransactionID).Return(&template, nil).Once()
	s.mockTxnRepo.On("DeleteTransaction", ctx, template.TransactionID,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 0
		}), (*portsrepo.CreditAdjustment)(nil)).Return(nil).Once()

	err := s.service.DeleteTransaction(ctx, template.TransactionID, s.userID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

// A repayment lives on its credit's account, so an account deletion purges
// the credit and its repayment history together.
func (s *TransactionServiceTestSuite) TestCreateRepaymentOnOtherAccountRejected() {
	ctx := context.Background()
	credit := domain.Credit{
		CreditID:    uuid.NewString(),
		UserID:      s.userID,
		AccountID:   uuid.NewString(),
		Principal:   decimal.NewFromInt(1000),
		Outstanding: decimal.NewFromInt(1000),
	}

	s.mockAccountRepo.On("FindAccountByID", ctx, s.account.AccountID).Return(&s.account, nil).Once()
	s.mockCreditRepo.On("FindCreditByID", ctx, credit.CreditID).Return(&credit, nil).Once()

	_, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		AccountID: s.account.AccountID,
		Amount:    decimal.NewFromInt(200),
		Type:      domain.Expense,
		Date:      s.yesterday,
		CreditID:  credit.CreditID,
	}, s.userID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestEditRepaymentToOtherAccountRejected() {
	ctx := context.Background()
	existing := s.expenseOf(200, s.yesterday)
	existing.CreditID = uuid.NewString()
	otherAccountID := uuid.NewString()

	s.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()

	_, err := s.service.UpdateTransaction(ctx, existing.TransactionID, dto.UpdateTransactionRequest{
		AccountID: &otherAccountID,
	}, s.userID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockTxnRepo.AssertNotCalled(s.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestTransferMovesBothBalances() {
	ctx := context.Background()
	dest := domain.Account{AccountID: uuid.NewString(), UserID: s.userID, Name: "Épargne"}

	s.mockAccountRepo.On("FindAccountByID", ctx, s.account.AccountID).Return(&s.account, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, dest.AccountID).Return(&dest, nil).Once()
	s.mockTxnRepo.On("SaveTransfer", ctx,
		mock.MatchedBy(func(out domain.Transaction) bool {
			return out.Type == domain.Expense && out.AccountID == s.account.AccountID && out.TransferID != ""
		}),
		mock.MatchedBy(func(in domain.Transaction) bool {
			return in.Type == domain.Income && in.AccountID == dest.AccountID && in.TransferID != ""
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[s.account.AccountID].Equal(decimal.NewFromInt(-40)) &&
				changes[dest.AccountID].Equal(decimal.NewFromInt(40))
		})).Return(nil).Once()

	legs, err := s.service.CreateTransfer(ctx, dto.CreateTransferRequest{
		FromAccountID: s.account.AccountID,
		ToAccountID:   dest.AccountID,
		Amount:        decimal.NewFromInt(40),
		Date:          s.yesterday,
	}, s.userID)

	s.Require().NoError(err)
	s.Len(legs, 2)
	s.Equal(legs[0].TransferID, legs[1].TransferID)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestTransferToSameAccountRejected() {
	ctx := context.Background()

	_, err := s.service.CreateTransfer(ctx, dto.CreateTransferRequest{
		FromAccountID: s.account.AccountID,
		ToAccountID:   s.account.AccountID,
		Amount:        decimal.NewFromInt(40),
		Date:          s.yesterday,
	}, s.userID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceTestSuite) TestDeleteTransferLegRemovesWholeTransfer() {
	ctx := context.Background()
	transferID := uuid.NewString()
	out := s.expenseOf(40, s.yesterday)
	out.TransferID = transferID
	in := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     uuid.NewString(),
		UserID:        s.userID,
		Amount:        decimal.NewFromInt(40),
		Type:          domain.Income,
		Date:          s.yesterday,
		TransferID:    transferID,
	}

	s.mockTxnRepo.On("FindTransactionByID", ctx, out.TransactionID).Return(&out, nil).Once()
	s.mockTxnRepo.On("FindTransactionsByTransferID", ctx, transferID).Return([]domain.Transaction{out, in}, nil).Once()
	s.mockTxnRepo.On("DeleteTransfer", ctx, transferID,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[out.AccountID].Equal(decimal.NewFromInt(40)) &&
				changes[in.AccountID].Equal(decimal.NewFromInt(-40))
		})).Return(nil).Once()

	err := s.service.DeleteTransaction(ctx, out.TransactionID, s.userID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestGetTransactionNotFound() {
	ctx := context.Background()
	id := uuid.NewString()
	s.mockTxnRepo.On("FindTransactionByID", ctx, id).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.GetTransactionByID(ctx, id, s.userID)

	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *TransactionServiceTestSuite) TestSaveFailurePropagated() {
	ctx := context.Background()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.account.AccountID).Return(&s.account, nil).Once()
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	_, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		AccountID: s.account.AccountID,
		Amount:    decimal.NewFromInt(30),
		Type:      domain.Expense,
		Date:      s.yesterday,
	}, s.userID)

	s.Require().ErrorIs(err, assert.AnError)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
