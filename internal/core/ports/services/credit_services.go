package services

import (
	"context"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	"github.com/giantprolu/gestiondecompte/internal/dto"
)

// CreditReaderSvc defines read operations for credits (loans)
type CreditReaderSvc interface {
	// GetCreditByID retrieves one of the user's credits.
	GetCreditByID(ctx context.Context, creditID string, userID string) (*domain.Credit, error)

	// ListCredits retrieves a paginated list of the user's credits.
	ListCredits(ctx context.Context, userID string, limit int, offset int) ([]domain.Credit, error)
}

// CreditWriterSvc defines write operations for credits
type CreditWriterSvc interface {
	// CreateCredit persists a new credit; outstanding defaults to principal.
	CreateCredit(ctx context.Context, req dto.CreateCreditRequest, userID string) (*domain.Credit, error)

	// UpdateCredit applies a patch to an existing credit.
	UpdateCredit(ctx context.Context, creditID string, req dto.UpdateCreditRequest, userID string) (*domain.Credit, error)

	// DeleteCredit removes a credit.
	DeleteCredit(ctx context.Context, creditID string, userID string) error
}

// CreditSvcFacade combines all credit-related service interfaces.
type CreditSvcFacade interface {
	CreditReaderSvc
	CreditWriterSvc
}
