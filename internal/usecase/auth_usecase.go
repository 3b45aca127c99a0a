package usecase

import (
	"context"

	"lessonboard/internal/domain/entity"
)

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshTokenInput carries a refresh token to exchange for a new access token.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenOutput returns the newly issued access token.
type RefreshTokenOutput struct {
	AccessToken string
}

// AuthUsecase defines login and token refresh for committed users.
type AuthUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)
}
