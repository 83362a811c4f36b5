package repositories

import (
	"context"
	"time"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByProviderID retrieves a user by identity-provider subject.
	FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser rewrites a user's mutable profile fields.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores the hash and expiry of a rotated refresh
	// token; both nil/empty clears it.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry *time.Time) error

	// PurgeUserData deletes every row owned by the user (transactions,
	// credits, closures, shares, push subscriptions, accounts) and the user
	// row itself in one database transaction. First step of the delete-account
	// flow: the internal store is purged before the identity provider record.
	PurgeUserData(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
