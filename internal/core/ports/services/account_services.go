package services

import (
	"context"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	"github.com/giantprolu/gestiondecompte/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account the requester may read (owner, or
	// grantee of at least a VIEW share from the owner).
	GetAccountByID(ctx context.Context, accountID string, requesterUserID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of the user's own accounts.
	ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account for the user.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount applies a patch to an existing account.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account and its transactions.
	DeleteAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
