// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"lessonboard/config"
	deliverycontext "lessonboard/internal/delivery/context"
	"lessonboard/internal/domain/entity"
	domainerrors "lessonboard/internal/domain/errors"
	"lessonboard/internal/domain/repository"
	"lessonboard/internal/domain/service"
	"lessonboard/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const minPasswordLength = 6

// emailPattern accepts the usual local@domain shape; anything stricter is
// the mail system's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// signupService implements the SignupUsecase interface. It is stateless
// between calls: all wizard progress lives in the session-scoped signup
// store, and the service only pattern-matches on the stored state.
type signupService struct {
	txManager   repository.TransactionManager
	userRepo    repository.UserRepository
	signupStore repository.SignupSessionStore
	hasher      service.PasswordHasher
	sessionTTL  time.Duration
	logger      *slog.Logger
}

// SignupServiceParams holds dependencies for signupService, injected by Fx.
type SignupServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	SignupStore repository.SignupSessionStore
	Hasher      service.PasswordHasher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewSignupService is the constructor for signupService.
func NewSignupService(params SignupServiceParams) usecase.SignupUsecase {
	sessionTTL := config.DefaultSignupSessionTTL
	if params.Config != nil && params.Config.Signup != nil && params.Config.Signup.SessionTTL > 0 {
		sessionTTL = params.Config.Signup.SessionTTL
	}

	return &signupService{
		txManager:   params.TxManager,
		userRepo:    params.UserRepo,
		signupStore: params.SignupStore,
		hasher:      params.Hasher,
		sessionTTL:  sessionTTL,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back
// to the service's logger.
func (srv *signupService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitEmail handles step 1 of the wizard. On success it overwrites any
// previous pending signup for the session with a fresh one holding only
// the email; nothing durable is written.
func (srv *signupService) SubmitEmail(ctx context.Context, input *usecase.SubmitEmailInput) (*usecase.SignupProgressOutput, error) {
	email := NormalizeEmail(input.Email)
	if email == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email is not well-formed")
	}

	// Pre-check against committed users. This is advisory; the unique
	// constraint at commit time is the actual guarantee against races.
	if _, err := srv.userRepo.FindByEmail(ctx, email); err == nil {
		srv.log(ctx).Warn("Signup email already registered", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrEmailTaken, "signup step 1 rejected")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email availability")
	}

	pending := &entity.PendingSignup{
		State:     entity.SignupAwaitingPassword,
		Email:     email,
		ExpiresAt: time.Now().Add(srv.sessionTTL),
	}
	if err := srv.signupStore.Save(ctx, input.SessionID, pending); err != nil {
		return nil, errors.Wrap(err, "failed to save pending signup")
	}

	srv.log(ctx).Debug("Signup email accepted", slog.String("email", email))

	return &usecase.SignupProgressOutput{State: pending.State}, nil
}

// SubmitPassword handles step 2 of the wizard. The password is hashed
// immediately and only the hash is kept; the plaintext never outlives
// this call.
func (srv *signupService) SubmitPassword(ctx context.Context, input *usecase.SubmitPasswordInput) (*usecase.SignupProgressOutput, error) {
	pending, err := srv.loadPending(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if !pending.HasEmail() {
		return nil, domainerrors.ErrSignupStepMissing.WithDetails("submit an email first")
	}

	if len(strings.TrimSpace(input.Password)) < minPasswordLength {
		return nil, domainerrors.ErrValidationFailed.WithDetails("password must be at least 6 characters")
	}

	hash, err := srv.hasher.Hash(strings.TrimSpace(input.Password))
	if err != nil {
		srv.log(ctx).Error("Failed to hash signup password", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "signup step 2 failed")
	}

	// Re-submitting the step overwrites the hash without touching any
	// later-step fields already collected.
	pending.PasswordHash = hash
	pending.State = entity.SignupAwaitingProfile
	pending.ExpiresAt = time.Now().Add(srv.sessionTTL)
	if err := srv.signupStore.Save(ctx, input.SessionID, pending); err != nil {
		return nil, errors.Wrap(err, "failed to save pending signup")
	}

	return &usecase.SignupProgressOutput{State: pending.State}, nil
}

// SubmitProfile handles the final step: it validates the profile fields
// and commits the full pending signup as one user row, clearing the
// pending state in the same transaction.
func (srv *signupService) SubmitProfile(ctx context.Context, input *usecase.SubmitProfileInput) (*usecase.SignupCommitOutput, error) {
	pending, err := srv.loadPending(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if !pending.HasPasswordHash() {
		return nil, domainerrors.ErrSignupStepMissing.WithDetails("choose a password first")
	}

	displayName := strings.TrimSpace(input.DisplayName)
	username := strings.TrimSpace(input.Username)
	if displayName == "" || username == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("full name and username are required")
	}

	// Advisory pre-check; the unique index settles concurrent commits.
	if _, err := srv.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, errors.Wrap(domainerrors.ErrUsernameTaken, "signup step 3 rejected")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check username availability")
	}

	newUser := &entity.User{
		Email:        pending.Email,
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: pending.PasswordHash,
	}

	// Commit the user and discard the pending signup atomically. Two
	// sessions racing on the same email both reach this point; the unique
	// constraint lets exactly one insert succeed.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during signup commit")
		}

		return repoFactory.SignupStore().Clear(ctx, input.SessionID)
	})
	if err != nil {
		srv.log(ctx).Warn("Signup commit failed", slog.String("email", pending.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Signup committed", slog.Any("userID", newUser.ID), slog.String("username", username))

	return &usecase.SignupCommitOutput{User: newUser}, nil
}

// loadPending fetches the session's pending signup, translating an absent
// or expired entry into the step-precondition error that sends the caller
// back to step 1.
func (srv *signupService) loadPending(ctx context.Context, sessionID string) (*entity.PendingSignup, error) {
	pending, err := srv.signupStore.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSignupSessionNotFound) {
			return nil, domainerrors.ErrSignupStepMissing.WithDetails("start over with your email")
		}

		return nil, errors.Wrap(err, "failed to load pending signup")
	}
	if pending.Expired(time.Now()) {
		return nil, domainerrors.ErrSignupStepMissing.WithDetails("signup session expired, start over")
	}

	return pending, nil
}

// NormalizeEmail lowercases and trims an address so lookups and the
// unique constraint agree on a canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
