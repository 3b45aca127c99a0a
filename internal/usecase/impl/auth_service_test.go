package impl

import (
	"context"
	"testing"

	"lessonboard/internal/domain/entity"
	domainerrors "lessonboard/internal/domain/errors"
	"lessonboard/internal/domain/repository"
	mockRepo "lessonboard/internal/mocks/repository"
	mockSvc "lessonboard/internal/mocks/service"
	"lessonboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authServiceFixtures struct {
	service  usecase.AuthUsecase
	userRepo *mockRepo.MockUserRepository
	hasher   *mockSvc.MockPasswordHasher
	tokenSvc *mockSvc.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenSvc := mockSvc.NewMockTokenService(t)

	service := NewAuthService(AuthServiceParams{
		UserRepo: userRepo,
		Hasher:   hasher,
		TokenSvc: tokenSvc,
		Logger:   newDiscardLogger(),
	})

	return authServiceFixtures{
		service:  service,
		userRepo: userRepo,
		hasher:   hasher,
		tokenSvc: tokenSvc,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "a@b.com", PasswordHash: "$2a$hash"}

	fx.userRepo.On("FindByEmail", ctx, "a@b.com").Return(user, nil)
	fx.hasher.On("Check", "secret123", "$2a$hash").Return(true)
	fx.tokenSvc.On("GenerateTokens", userID).Return("access-token", "refresh-token", nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: " A@B.com ", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Equal(t, user, output.User)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "ghost@b.com").Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "ghost@b.com", Password: "whatever"})

	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: "$2a$hash"}

	fx.userRepo.On("FindByEmail", ctx, "a@b.com").Return(user, nil)
	fx.hasher.On("Check", "wrong", "$2a$hash").Return(false)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "a@b.com", Password: "wrong"})

	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	fx.tokenSvc.AssertNotCalled(t, "GenerateTokens", user.ID)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokenSvc.On("ParseRefreshToken", "refresh-token").Return(userID, nil)
	fx.userRepo.On("FindByID", ctx, userID).Return(&entity.User{ID: userID}, nil)
	fx.tokenSvc.On("GenerateTokens", userID).Return("new-access", "unused-refresh", nil)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh-token"})

	require.NoError(t, err)
	assert.Equal(t, "new-access", output.AccessToken)
}

func TestAuthService_RefreshToken_InvalidToken(t *testing.T) {
	fx := createTestAuthService(t)

	fx.tokenSvc.On("ParseRefreshToken", "garbage").Return(uuid.Nil, errors.New("signature mismatch"))

	_, err := fx.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{RefreshToken: "garbage"})

	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_RefreshToken_UserDeleted(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokenSvc.On("ParseRefreshToken", "refresh-token").Return(userID, nil)
	fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh-token"})

	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	fx.tokenSvc.AssertNotCalled(t, "GenerateTokens", userID)
}
