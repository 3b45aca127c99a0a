package repository

import (
	"context"
	"errors"

	"lessonboard/internal/domain/entity"
)

// ErrSignupSessionNotFound is returned when a session has no pending
// signup, or the pending signup outlived its TTL. Both read the same to
// the wizard: the caller restarts at step 1.
var ErrSignupSessionNotFound = errors.New("signup session not found")

// SignupSessionStore is the session-scoped transient storage for
// in-progress signups. One pending signup per session id; the lifetime is
// bounded by the session TTL, outside the wizard's control. Only the
// session that owns an entry ever touches it, so no locking is required
// here.
type SignupSessionStore interface {
	// Get returns the pending signup for the session, or
	// ErrSignupSessionNotFound when absent or expired.
	Get(ctx context.Context, sessionID string) (*entity.PendingSignup, error)

	// Save creates or overwrites the pending signup for the session and
	// refreshes its expiry.
	Save(ctx context.Context, sessionID string, pending *entity.PendingSignup) error

	// Clear removes the pending signup for the session. Clearing an
	// absent session is not an error.
	Clear(ctx context.Context, sessionID string) error
}
