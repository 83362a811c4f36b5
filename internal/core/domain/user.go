package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string       `json:"userID"` // Primary Key (UUID)
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	PasswordHash string       `json:"-"` // Empty for provider-backed users
	AuthProvider AuthProvider `json:"authProvider"`
	// ProviderUserID is the identity provider's subject for this user
	// (Google "sub" claim); empty for local accounts.
	ProviderUserID string `json:"-"`
	// ProviderToken is the provider-issued token kept for later revocation
	// during account deletion. Empty for local accounts and for ID-token
	// sign-ins, where no revocable token is handed to the server.
	ProviderToken string `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete

	// Refresh token rotation state. Only the SHA256 hash is stored.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo is the subset of the Google userinfo payload the app consumes.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
