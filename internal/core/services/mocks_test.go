package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portsrepo "github.com/giantprolu/gestiondecompte/internal/core/ports/repositories"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/dto"
)

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByTransferID(ctx context.Context, transferID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, accountID string, limit int, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, credit *portsrepo.CreditAdjustment) error {
	args := m.Called(ctx, txn, balanceChanges, credit)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransfer(ctx context.Context, out domain.Transaction, in domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, out, in, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, credit *portsrepo.CreditAdjustment) error {
	args := m.Called(ctx, txn, balanceChanges, credit)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, credit *portsrepo.CreditAdjustment) error {
	args := m.Called(ctx, transactionID, balanceChanges, credit)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransfer(ctx context.Context, transferID string, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, transferID, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindDueTemplates(ctx context.Context, userID string, asOf time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) HasPostedCopy(ctx context.Context, userID string, accountID string, categoryID string, amount decimal.Decimal, date time.Time) (bool, error) {
	args := m.Called(ctx, userID, accountID, categoryID, amount, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) PostOccurrence(ctx context.Context, copy domain.Transaction, templateID string, nextDate time.Time, processedDate time.Time, balanceChanges map[string]decimal.Decimal, credit *portsrepo.CreditAdjustment) error {
	args := m.Called(ctx, copy, templateID, nextDate, processedDate, balanceChanges, credit)
	return args.Error(0)
}

func (m *MockTransactionRepository) AdvanceTemplate(ctx context.Context, templateID string, nextDate time.Time, processedDate time.Time, updatedBy string) error {
	args := m.Called(ctx, templateID, nextDate, processedDate, updatedBy)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindUnarchived(ctx context.Context, userID string, before time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ArchivePeriod(ctx context.Context, closure domain.MonthClosure, transactionIDs []string) error {
	args := m.Called(ctx, closure, transactionIDs)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock CreditRepository ---

type MockCreditRepository struct {
	mock.Mock
}

var _ portsrepo.CreditRepositoryFacade = (*MockCreditRepository)(nil)

func (m *MockCreditRepository) FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) ListCredits(ctx context.Context, userID string, limit int, offset int) ([]domain.Credit, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) SaveCredit(ctx context.Context, credit domain.Credit) error {
	args := m.Called(ctx, credit)
	return args.Error(0)
}

func (m *MockCreditRepository) UpdateCredit(ctx context.Context, credit domain.Credit) error {
	args := m.Called(ctx, credit)
	return args.Error(0)
}

func (m *MockCreditRepository) DeleteCredit(ctx context.Context, creditID string) error {
	args := m.Called(ctx, creditID)
	return args.Error(0)
}

// --- Mock ClosureRepository ---

type MockClosureRepository struct {
	mock.Mock
}

var _ portsrepo.ClosureRepositoryFacade = (*MockClosureRepository)(nil)

func (m *MockClosureRepository) FindClosure(ctx context.Context, userID string, monthYear string) (*domain.MonthClosure, error) {
	args := m.Called(ctx, userID, monthYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthClosure), args.Error(1)
}

func (m *MockClosureRepository) ListClosures(ctx context.Context, userID string) ([]domain.MonthClosure, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthClosure), args.Error(1)
}

// --- Mock ShareRepository ---

type MockShareRepository struct {
	mock.Mock
}

var _ portsrepo.ShareRepositoryFacade = (*MockShareRepository)(nil)

func (m *MockShareRepository) FindShareByID(ctx context.Context, shareID string) (*domain.DashboardShare, error) {
	args := m.Called(ctx, shareID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardShare), args.Error(1)
}

func (m *MockShareRepository) FindShare(ctx context.Context, ownerUserID string, sharedWithUserID string) (*domain.DashboardShare, error) {
	args := m.Called(ctx, ownerUserID, sharedWithUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardShare), args.Error(1)
}

func (m *MockShareRepository) ListSharesByOwner(ctx context.Context, ownerUserID string) ([]domain.DashboardShare, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DashboardShare), args.Error(1)
}

func (m *MockShareRepository) ListSharesWithUser(ctx context.Context, sharedWithUserID string) ([]domain.DashboardShare, error) {
	args := m.Called(ctx, sharedWithUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DashboardShare), args.Error(1)
}

func (m *MockShareRepository) SaveShare(ctx context.Context, share domain.DashboardShare) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockShareRepository) UpdateShare(ctx context.Context, share domain.DashboardShare) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockShareRepository) DeleteShare(ctx context.Context, shareID string) error {
	args := m.Called(ctx, shareID)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) PurgeUserData(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock NotificationRepository ---

type MockNotificationRepository struct {
	mock.Mock
}

var _ portsrepo.NotificationRepositoryFacade = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) SaveSubscription(ctx context.Context, sub domain.PushSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PushSubscription), args.Error(1)
}

func (m *MockNotificationRepository) DeleteSubscription(ctx context.Context, subscriptionID string) error {
	args := m.Called(ctx, subscriptionID)
	return args.Error(0)
}

// --- Mock PushDeliverer ---

type MockPushDeliverer struct {
	mock.Mock
}

var _ portssvc.PushDeliverer = (*MockPushDeliverer)(nil)

func (m *MockPushDeliverer) Deliver(ctx context.Context, sub domain.PushSubscription, payload []byte) error {
	args := m.Called(ctx, sub, payload)
	return args.Error(0)
}

// --- Mock NotificationSvc ---

type MockNotificationSvc struct {
	mock.Mock
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationSvc)(nil)

func (m *MockNotificationSvc) Subscribe(ctx context.Context, req dto.SubscribeRequest, userID string) (*domain.PushSubscription, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PushSubscription), args.Error(1)
}

func (m *MockNotificationSvc) Notify(ctx context.Context, userID string, title string, body string) error {
	args := m.Called(ctx, userID, title, body)
	return args.Error(0)
}
