package services

import (
	"context"
	"time"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	"github.com/giantprolu/gestiondecompte/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by their unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a local user with a bcrypt-hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// AuthenticateUser verifies local credentials and returns the user.
	AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves a Google identity to a local user row,
	// creating one on first sign-in. providerToken, when non-empty, is stored
	// for revocation during account deletion; the ID-token flow passes "".
	FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo, providerToken string) (*domain.User, error)

	// UpdateUser applies a profile patch.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// StoreRefreshToken persists the hash of a rotated refresh token.
	StoreRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error

	// ClearRefreshToken invalidates the stored refresh token (logout).
	ClearRefreshToken(ctx context.Context, userID string) error

	// DeleteUserAccount runs the destructive delete-account flow: the internal
	// store is purged first; identity-provider cleanup afterwards is best
	// effort and its failure is reported as a degraded (non-fatal) outcome.
	DeleteUserAccount(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
