package repositories

import (
	"context"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
)

// CreditReader defines read operations for credit (loan) data
type CreditReader interface {
	// FindCreditByID retrieves a specific credit by its unique identifier.
	FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error)

	// ListCredits retrieves a paginated list of a user's credits.
	ListCredits(ctx context.Context, userID string, limit int, offset int) ([]domain.Credit, error)
}

// CreditWriter defines write operations for credit data
type CreditWriter interface {
	// SaveCredit persists a new credit.
	SaveCredit(ctx context.Context, credit domain.Credit) error

	// UpdateCredit rewrites an existing credit's mutable fields.
	UpdateCredit(ctx context.Context, credit domain.Credit) error

	// DeleteCredit removes a credit. Linked transactions keep their creditID
	// reference for history but no longer resolve.
	DeleteCredit(ctx context.Context, creditID string) error
}

// CreditRepositoryFacade combines all credit-related repository interfaces.
type CreditRepositoryFacade interface {
	CreditReader
	CreditWriter
}
