// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"lessonboard/internal/domain/entity"
)

// --- Input DTOs ---

// SubmitEmailInput carries step 1 of the signup wizard.
type SubmitEmailInput struct {
	SessionID string
	Email     string
}

// SubmitPasswordInput carries step 2 of the signup wizard.
type SubmitPasswordInput struct {
	SessionID string
	Password  string
}

// SubmitProfileInput carries step 3 of the signup wizard.
type SubmitProfileInput struct {
	SessionID   string
	DisplayName string
	Username    string
}

// --- Output DTOs ---

// SignupProgressOutput reports the wizard state after a non-final step.
type SignupProgressOutput struct {
	State entity.SignupState
}

// SignupCommitOutput returns the committed user after the final step.
type SignupCommitOutput struct {
	User *entity.User
}

// SignupUsecase drives the three-step registration state machine. Steps
// are strictly sequential; an out-of-order call fails with the signup
// precondition error and redirects the caller to the earliest unmet step.
// Re-submitting a completed step overwrites that step's field without
// invalidating later ones.
type SignupUsecase interface {
	SubmitEmail(ctx context.Context, input *SubmitEmailInput) (*SignupProgressOutput, error)
	SubmitPassword(ctx context.Context, input *SubmitPasswordInput) (*SignupProgressOutput, error)
	SubmitProfile(ctx context.Context, input *SubmitProfileInput) (*SignupCommitOutput, error)
}
