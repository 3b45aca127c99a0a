package entity

import "time"

// SignupState is the explicit position of an in-progress signup inside
// the three-step wizard. Carrying it as a tagged value avoids inferring
// the step from which fields happen to be populated.
type SignupState string

const (
	// SignupAwaitingEmail is the implicit state of a session with no
	// pending signup at all.
	SignupAwaitingEmail SignupState = "awaiting_email"

	// SignupAwaitingPassword means the email was accepted.
	SignupAwaitingPassword SignupState = "awaiting_password"

	// SignupAwaitingProfile means the password hash is recorded.
	SignupAwaitingProfile SignupState = "awaiting_profile"
)

// PendingSignup is the transient, session-scoped state of one signup
// wizard run. It lives only in the signup session store and is discarded
// when the final step commits a User. It never holds a plaintext
// password; step 2 hashes before storing.
type PendingSignup struct {
	State        SignupState
	Email        string
	PasswordHash string
	DisplayName  string
	Username     string
	ExpiresAt    time.Time
}

// HasEmail reports whether step 1 completed for this signup.
func (p *PendingSignup) HasEmail() bool {
	return p != nil && p.Email != ""
}

// HasPasswordHash reports whether step 2 completed for this signup.
func (p *PendingSignup) HasPasswordHash() bool {
	return p != nil && p.PasswordHash != ""
}

// Expired reports whether the signup session outlived its TTL.
func (p *PendingSignup) Expired(now time.Time) bool {
	return p != nil && !p.ExpiresAt.IsZero() && p.ExpiresAt.Before(now)
}
