package impl

import (
	"context"
	"testing"
	"time"

	"lessonboard/internal/domain/entity"
	domainerrors "lessonboard/internal/domain/errors"
	"lessonboard/internal/domain/repository"
	mockRepo "lessonboard/internal/mocks/repository"
	mockSvc "lessonboard/internal/mocks/service"
	"lessonboard/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// signupServiceFixtures holds all test dependencies for signup service tests.
type signupServiceFixtures struct {
	service     usecase.SignupUsecase
	txManager   *mockRepo.MockTransactionManager
	userRepo    *mockRepo.MockUserRepository
	signupStore *mockRepo.MockSignupSessionStore
	hasher      *mockSvc.MockPasswordHasher
}

func createTestSignupService(t *testing.T) signupServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	signupStore := mockRepo.NewMockSignupSessionStore(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	service := NewSignupService(SignupServiceParams{
		TxManager:   txManager,
		UserRepo:    userRepo,
		SignupStore: signupStore,
		Hasher:      hasher,
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})

	return signupServiceFixtures{
		service:     service,
		txManager:   txManager,
		userRepo:    userRepo,
		signupStore: signupStore,
		hasher:      hasher,
	}
}

func appError(t *testing.T, err error) domainerrors.AppError {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)

	return appErr
}

func TestSignupService_SubmitEmail_Success(t *testing.T) {
	fx := createTestSignupService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "a@b.com").Return(nil, repository.ErrUserNotFound)

	var saved *entity.PendingSignup
	fx.signupStore.On("Save", ctx, "sess-1", mock.AnythingOfType("*entity.PendingSignup")).
		Run(func(args mock.Arguments) {
			saved = args.Get(2).(*entity.PendingSignup)
		}).
		Return(nil)

	output, err := fx.service.SubmitEmail(ctx, &usecase.SubmitEmailInput{SessionID: "sess-1", Email: "  A@B.com "})

	require.NoError(t, err)
	assert.Equal(t, entity.SignupAwaitingPassword, output.State)
	require.NotNil(t, saved)
	assert.Equal(t, "a@b.com", saved.Email)
	assert.Empty(t, saved.PasswordHash)
	assert.True(t, saved.ExpiresAt.After(time.Now()))
}

func TestSignupService_SubmitEmail_Malformed(t *testing.T) {
	fx := createTestSignupService(t)

	for _, email := range []string{"", "   ", "nodomain", "two words@x.com", "a@b"} {
		_, err := fx.service.SubmitEmail(context.Background(), &usecase.SubmitEmailInput{SessionID: "s", Email: email})

		require.Error(t, err, "email %q", email)
		assert.Equal(t, "VALIDATION_FAILED", appError(t, err).ErrorCode())
	}
}

func TestSignupService_SubmitEmail_AlreadyRegistered(t *testing.T) {
	fx := createTestSignupService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "taken@b.com").Return(&entity.User{Email: "taken@b.com"}, nil)

	_, err := fx.service.SubmitEmail(ctx, &usecase.SubmitEmailInput{SessionID: "s", Email: "taken@b.com"})

	require.ErrorIs(t, err, domainerrors.ErrEmailTaken)
	fx.signupStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignupService_SubmitPassword_WithoutEmailStep(t *testing.T) {
	fx := createTestSignupService(t)
	ctx := context.Background()

	fx.signupStore.On("Get", ctx, "s").Return(nil, repository.ErrSignupSessionNotFound)

	_, err := fx.service.SubmitPassword(ctx, &usecase.SubmitPasswordInput{SessionID: "s", Password: "secret1"})

	require.Error(t, err)
	assert.Equal(t, "SIGNUP_STEP_MISSING", appError(t, err).ErrorCode())
}

func TestSignupService_SubmitPassword_TooShort(t *testing.T) {
	fx := createTestSignupService(t)
	ctx := context.Background()

	fx.signupStore.On("Get", ctx, "s").Return(&entity.PendingSignup{
		State:     entity.SignupAwaitingPassword,
		Email:     "a@b.com",
		ExpiresAt: time.Now().Add(time.Minute),
	}, nil)

	_, err := fx.service.SubmitPassword(ctx, &usecase.SubmitPasswordInput{SessionID: "s", Password: "short"})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", appError(t, err).ErrorCode())
	// Pending signup unchanged: no save, no hash computed.
	fx.signupStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestSignupService_SubmitPassword_HashesImmediately(t *testing.T) {
	fx := createTestSignupService(t)
	ctx := context.Background()

	fx.signupStore.On("Get", ctx, "s").Return(&entity.PendingSignup{
		State:     entity.SignupAwaitingPassword,
		Email:     "a@b.com",
		ExpiresAt: time.Now().Add(time.Minute),
	}, nil)
	fx.hasher.On("Hash", "secret123").Return("$2a$hash", nil)

	var saved *entity.PendingSignup
	fx.signupStore.On("Save", ctx, "s", mock.AnythingOfType("*entity.PendingSignup")).
		Run(func(args mock.Arguments) {
			saved = args.Get(2).(*entity.PendingSignup)
		}).
		Return(nil)

	output, err := fx.service.SubmitPassword(ctx, &usecase.SubmitPasswordInput{SessionID: "s", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, entity.SignupAwaitingProfile, output.State)
	require.NotNil(t, saved)
	assert.Equal(t, "$2a$hash", saved.PasswordHash)
	assert.Equal(t, "a@b.com", saved.Email)
	assert.NotContains(t, saved.PasswordHash, "secret123")
}

func TestSignupService_SubmitPassword_ExpiredSession(t *testing.T) {
	fx := createTestSignupService(t)
	ctx := context.Background()

	fx.signupStore.On("Get", ctx, "s").Return(&entity.PendingSignup{
		State:     entity.SignupAwaitingPassword,
		Email:     "a@b.com",
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil)

	_, err := fx.service.SubmitPassword(ctx, &usecase.SubmitPasswordInput{SessionID: "s", Password: "secret123"})

	require.Error(t, err)
	assert.Equal(t, "SIGNUP_STEP_MISSING", appError(t, err).ErrorCode())
}

func TestSignupService_SubmitProfile_WithoutPasswordStep(t *testing.T) {
	fx := createTestSignupService(t)
	ctx := context.Background()

	fx.signupStore.On("Get", ctx, "s").Return(&entity.PendingSignup{
		State:     entity.SignupAwaitingPassword,
		Email:     "a@b.com",
		ExpiresAt: time.Now().Add(time.Minute),
	}, nil)

	_, err := fx.service.SubmitProfile(ctx, &usecase.SubmitProfileInput{
		SessionID:   "s",
		DisplayName: "Ada Lovelace",
		Username:    "ada",
	})

	require.Error(t, err)
	assert.Equal(t, "SIGNUP_STEP_MISSING", appError(t, err).ErrorCode())
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestSignupService_SubmitProfile_EmptyFields(t *testing.T) {
	fx := createTestSignupService(t)
	ctx := context.Background()

	fx.signupStore.On("Get", ctx, "s").Return(&entity.PendingSignup{
		State:        entity.SignupAwaitingProfile,
		Email:        "a@b.com",
		PasswordHash: "$2a$hash",
		ExpiresAt:    time.Now().Add(time.Minute),
	}, nil)

	_, err := fx.service.SubmitProfile(ctx, &usecase.SubmitProfileInput{SessionID: "s", DisplayName: " ", Username: "ada"})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", appError(t, err).ErrorCode())
}

func TestSignupService_SubmitProfile_UsernameTaken(t *testing.T) {
	fx := createTestSignupService(t)
	ctx := context.Background()

	fx.signupStore.On("Get", ctx, "s").Return(&entity.PendingSignup{
		State:        entity.SignupAwaitingProfile,
		Email:        "a@b.com",
		PasswordHash: "$2a$hash",
		ExpiresAt:    time.Now().Add(time.Minute),
	}, nil)
	fx.userRepo.On("FindByUsername", ctx, "ada").Return(&entity.User{Username: "ada"}, nil)

	_, err := fx.service.SubmitProfile(ctx, &usecase.SubmitProfileInput{
		SessionID:   "s",
		DisplayName: "Ada Lovelace",
		Username:    "ada",
	})

	require.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestSignupService_SubmitProfile_CommitsAndClearsSession(t *testing.T) {
	fx := createTestSignupService(t)
	ctx := context.Background()

	fx.signupStore.On("Get", ctx, "s").Return(&entity.PendingSignup{
		State:        entity.SignupAwaitingProfile,
		Email:        "a@b.com",
		PasswordHash: "$2a$hash",
		ExpiresAt:    time.Now().Add(time.Minute),
	}, nil)
	fx.userRepo.On("FindByUsername", ctx, "ada").Return(nil, repository.ErrUserNotFound)

	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(repository.RepositoryFactory) error)

			txUserRepo := mockRepo.NewMockUserRepository(t)
			txSignupStore := mockRepo.NewMockSignupSessionStore(t)
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.On("UserRepo").Return(txUserRepo)
			factory.On("SignupStore").Return(txSignupStore)

			txUserRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
				Run(func(args mock.Arguments) {
					user := args.Get(1).(*entity.User)
					assert.Equal(t, "a@b.com", user.Email)
					assert.Equal(t, "ada", user.Username)
					assert.Equal(t, "Ada Lovelace", user.DisplayName)
					assert.Equal(t, "$2a$hash", user.PasswordHash)
				}).
				Return(nil)
			txSignupStore.On("Clear", ctx, "s").Return(nil)

			require.NoError(t, fn(factory))
		}).
		Return(nil)

	output, err := fx.service.SubmitProfile(ctx, &usecase.SubmitProfileInput{
		SessionID:   "s",
		DisplayName: "Ada Lovelace",
		Username:    " ada ",
	})

	require.NoError(t, err)
	require.NotNil(t, output.User)
	assert.Equal(t, "a@b.com", output.User.Email)
}

func TestSignupService_SubmitProfile_CommitRaceLosesToConstraint(t *testing.T) {
	fx := createTestSignupService(t)
	ctx := context.Background()

	fx.signupStore.On("Get", ctx, "s").Return(&entity.PendingSignup{
		State:        entity.SignupAwaitingProfile,
		Email:        "a@b.com",
		PasswordHash: "$2a$hash",
		ExpiresAt:    time.Now().Add(time.Minute),
	}, nil)
	fx.userRepo.On("FindByUsername", ctx, "ada").Return(nil, repository.ErrUserNotFound)

	// Another session committed the same email between the pre-check and
	// this commit; the unique constraint reports the conflict.
	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(errors.Wrap(domainerrors.ErrEmailTaken, "failed to create user during signup commit"))

	_, err := fx.service.SubmitProfile(ctx, &usecase.SubmitProfileInput{
		SessionID:   "s",
		DisplayName: "Ada Lovelace",
		Username:    "ada",
	})

	require.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}
