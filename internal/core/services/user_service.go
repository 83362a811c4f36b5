package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portsrepo "github.com/giantprolu/gestiondecompte/internal/core/ports/repositories"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/dto"
	"github.com/giantprolu/gestiondecompte/internal/utils"
)

// userService implements user registration, authentication and the
// delete-account flow.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	oauth    portssvc.GoogleOAuthHandlerSvcFacade
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

// WithOAuthHandler wires the identity-provider client used for best-effort
// token revocation during account deletion.
func WithOAuthHandler(oauth portssvc.GoogleOAuthHandlerSvcFacade) UserServiceOption {
	return func(s *userService) {
		s.oauth = oauth
	}
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	s := &userService{userRepo: userRepo}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// AuthenticateUser verifies local credentials. Invalid email and invalid
// password both come back as ErrUnauthorized; the two are never distinguished
// to the caller.
func (s *userService) AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if user.AuthProvider != domain.ProviderLocal || user.PasswordHash == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo, providerToken string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderID(ctx, domain.ProviderGoogle, info.ID)
	if err == nil {
		if providerToken != "" && providerToken != user.ProviderToken {
			user.ProviderToken = providerToken
			user.LastUpdatedAt = time.Now()
			if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
				s.LogError(ctx, err, "Failed to store provider token", slog.String("user_id", user.UserID))
			}
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	newUser := domain.User{
		UserID:         uuid.NewString(),
		Email:          info.Email,
		Name:           info.Name,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: info.ID,
		ProviderToken:  providerToken,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to save google user", slog.String("user_id", newUser.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User created from google sign-in", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, email)
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) StoreRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, tokenHash, &expiry)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, "", nil)
}

// DeleteUserAccount purges everything the user owns from the store in one
// database transaction, then attempts identity-provider cleanup. Provider
// failure after a successful purge is logged and swallowed: the account is
// gone, the dangling provider grant needs manual follow-up.
func (s *userService) DeleteUserAccount(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.PurgeUserData(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to purge user data", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User data purged", slog.String("user_id", userID))

	if user.AuthProvider == domain.ProviderGoogle && s.oauth != nil && user.ProviderToken != "" {
		if err := s.oauth.RevokeToken(ctx, user.ProviderToken); err != nil {
			s.LogError(ctx, err, "Identity provider revocation failed after purge, manual follow-up needed",
				slog.String("user_id", userID))
		}
	}
	return nil
}
