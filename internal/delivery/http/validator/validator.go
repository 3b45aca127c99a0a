// Package validator adapts go-playground/validator to Echo's Validator
// interface.
package validator

import (
	validatorlib "github.com/go-playground/validator/v10"

	domainerrors "lessonboard/internal/domain/errors"
)

// EchoValidator wraps a validator instance for Echo.
type EchoValidator struct {
	validate *validatorlib.Validate
}

// New creates the validator used by the Echo server.
func New() *EchoValidator {
	return &EchoValidator{validate: validatorlib.New()}
}

// Validate checks struct tags on a bound request and converts violations
// into the application's validation error.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
