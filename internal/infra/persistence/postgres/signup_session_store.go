package postgres

import (
	"context"
	"time"

	"lessonboard/internal/domain/entity"
	domainerrors "lessonboard/internal/domain/errors"
	"lessonboard/internal/domain/repository"
	"lessonboard/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// signupSessionStore implements the domain's SignupSessionStore interface.
// Pending signups live in their own table, keyed by session id, so an
// abandoned wizard leaves nothing behind but an expirable row.
type signupSessionStore struct {
	db *gorm.DB
}

// NewSignupSessionStore is the constructor for signupSessionStore. It
// accepts either the shared connection or a transaction handle.
func NewSignupSessionStore(db *gorm.DB) repository.SignupSessionStore {
	return &signupSessionStore{db: db}
}

// Get returns the pending signup for the session. An expired row reads
// the same as an absent one; the row itself is left for sweep-on-write.
func (store *signupSessionStore) Get(ctx context.Context, sessionID string) (*entity.PendingSignup, error) {
	var sessionM model.SignupSessionModel
	if err := store.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSignupSessionNotFound
		}

		return nil, errors.WithStack(err)
	}

	if sessionM.ExpiresAt.Before(time.Now()) {
		return nil, repository.ErrSignupSessionNotFound
	}

	return toPendingSignupDomain(&sessionM), nil
}

// Save creates or overwrites the pending signup for the session.
func (store *signupSessionStore) Save(ctx context.Context, sessionID string, pending *entity.PendingSignup) error {
	sessionM := fromPendingSignupDomain(sessionID, pending)

	err := store.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"state", "email", "password_hash", "display_name", "username", "expires_at", "updated_at",
			}),
		}).
		Create(sessionM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save pending signup")
	}

	return nil
}

// Clear removes the pending signup for the session. Clearing an absent
// session is not an error.
func (store *signupSessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := store.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&model.SignupSessionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear pending signup")
	}

	return nil
}

// --- Mapper Functions ---

// toPendingSignupDomain converts a GORM SignupSessionModel to a domain PendingSignup.
func toPendingSignupDomain(data *model.SignupSessionModel) *entity.PendingSignup {
	if data == nil {
		return nil
	}

	return &entity.PendingSignup{
		State:        entity.SignupState(data.State),
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		DisplayName:  data.DisplayName,
		Username:     data.Username,
		ExpiresAt:    data.ExpiresAt,
	}
}

// fromPendingSignupDomain converts a domain PendingSignup to a GORM SignupSessionModel.
func fromPendingSignupDomain(sessionID string, data *entity.PendingSignup) *model.SignupSessionModel {
	if data == nil {
		return nil
	}

	return &model.SignupSessionModel{
		SessionID:    sessionID,
		State:        string(data.State),
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		DisplayName:  data.DisplayName,
		Username:     data.Username,
		ExpiresAt:    data.ExpiresAt,
	}
}
