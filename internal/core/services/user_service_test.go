package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/giantprolu/gestiondecompte/internal/apperrors"
	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/core/services"
	"github.com/giantprolu/gestiondecompte/internal/dto"
	"github.com/giantprolu/gestiondecompte/internal/utils"
)

// --- Mock GoogleOAuthHandler ---

type MockGoogleOAuthHandler struct {
	mock.Mock
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthHandler)(nil)

func (m *MockGoogleOAuthHandler) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGoogleOAuthHandler) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}

func (m *MockGoogleOAuthHandler) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockGoogleOAuthHandler) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}

func (m *MockGoogleOAuthHandler) ValidateGoogleIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

func (m *MockGoogleOAuthHandler) RevokeToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockOAuth    *MockGoogleOAuthHandler
	service      portssvc.UserSvcFacade
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.mockOAuth = new(MockGoogleOAuthHandler)
	s.service = services.NewUserService(s.mockUserRepo, services.WithOAuthHandler(s.mockOAuth))
}

func (s *UserServiceTestSuite) TestRegisterHashesPassword() {
	ctx := context.Background()
	s.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.AuthProvider == domain.ProviderLocal &&
			u.PasswordHash != "" && u.PasswordHash != "motdepasse123" &&
			utils.CheckPasswordHash("motdepasse123", u.PasswordHash)
	})).Return(nil).Once()

	user, err := s.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Email:    "nouveau@example.com",
		Name:     "Nouveau",
		Password: "motdepasse123",
	})

	s.Require().NoError(err)
	s.NotEmpty(user.UserID)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestRegisterDuplicateEmail() {
	ctx := context.Background()
	s.mockUserRepo.On("SaveUser", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Email:    "pris@example.com",
		Name:     "Doublon",
		Password: "motdepasse123",
	})

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserServiceTestSuite) TestAuthenticateWrongPasswordUnauthorized() {
	ctx := context.Background()
	hash, err := utils.HashPassword("bonmotdepasse")
	s.Require().NoError(err)
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "qqn@example.com",
		AuthProvider: domain.ProviderLocal,
		PasswordHash: hash,
	}
	s.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	_, err = s.service.AuthenticateUser(ctx, user.Email, "mauvais")

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestAuthenticateUnknownEmailUnauthorized() {
	ctx := context.Background()
	s.mockUserRepo.On("FindUserByEmail", ctx, "inconnu@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.AuthenticateUser(ctx, "inconnu@example.com", "peu importe")

	// Unknown email and wrong password are indistinguishable to the caller.
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestAuthenticateProviderUserHasNoPassword() {
	ctx := context.Background()
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "google@example.com",
		AuthProvider: domain.ProviderGoogle,
	}
	s.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	_, err := s.service.AuthenticateUser(ctx, user.Email, "nimporte")

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUserCreatesOnFirstSignIn() {
	ctx := context.Background()
	info := &domain.GoogleUserInfo{ID: "google-sub-1", Email: "g@example.com", Name: "G"}
	s.mockUserRepo.On("FindUserByProviderID", ctx, domain.ProviderGoogle, info.ID).Return(nil, apperrors.ErrNotFound).Once()
	s.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.AuthProvider == domain.ProviderGoogle && u.ProviderUserID == info.ID && u.ProviderToken == "tok"
	})).Return(nil).Once()

	user, err := s.service.FindOrCreateGoogleUser(ctx, info, "tok")

	s.Require().NoError(err)
	s.Equal(info.Email, user.Email)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUserReturnsExisting() {
	ctx := context.Background()
	info := &domain.GoogleUserInfo{ID: "google-sub-2", Email: "g2@example.com"}
	existing := &domain.User{UserID: uuid.NewString(), AuthProvider: domain.ProviderGoogle, ProviderUserID: info.ID}
	s.mockUserRepo.On("FindUserByProviderID", ctx, domain.ProviderGoogle, info.ID).Return(existing, nil).Once()

	user, err := s.service.FindOrCreateGoogleUser(ctx, info, "")

	s.Require().NoError(err)
	s.Equal(existing.UserID, user.UserID)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

// The store purge must succeed for deletion to succeed; identity-provider
// revocation failing afterwards degrades the outcome but never fails it.
func (s *UserServiceTestSuite) TestDeleteAccountPurgesThenRevokesBestEffort() {
	ctx := context.Background()
	user := &domain.User{
		UserID:        uuid.NewString(),
		AuthProvider:  domain.ProviderGoogle,
		ProviderToken: "provider-token",
	}
	s.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	s.mockUserRepo.On("PurgeUserData", ctx, user.UserID).Return(nil).Once()
	s.mockOAuth.On("RevokeToken", ctx, "provider-token").Return(assert.AnError).Once()

	err := s.service.DeleteUserAccount(ctx, user.UserID)

	s.Require().NoError(err)
	s.mockOAuth.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestDeleteAccountPurgeFailureAborts() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), AuthProvider: domain.ProviderGoogle, ProviderToken: "t"}
	s.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	s.mockUserRepo.On("PurgeUserData", ctx, user.UserID).Return(assert.AnError).Once()

	err := s.service.DeleteUserAccount(ctx, user.UserID)

	s.Require().ErrorIs(err, assert.AnError)
	s.mockOAuth.AssertNotCalled(s.T(), "RevokeToken", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestDeleteLocalAccountSkipsRevocation() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), AuthProvider: domain.ProviderLocal}
	s.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	s.mockUserRepo.On("PurgeUserData", ctx, user.UserID).Return(nil).Once()

	err := s.service.DeleteUserAccount(ctx, user.UserID)

	s.Require().NoError(err)
	s.mockOAuth.AssertNotCalled(s.T(), "RevokeToken", mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
