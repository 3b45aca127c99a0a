package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenService defines the interface for issuing and validating the JWTs
// that carry an authenticated user identity between requests.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a
	// given user.
	GenerateTokens(userID uuid.UUID) (accessToken string, refreshToken string, err error)

	// ParseAccessToken validates an access token and returns the user id
	// it was issued to.
	ParseAccessToken(tokenString string) (uuid.UUID, error)

	// ParseRefreshToken validates a refresh token and returns the user id
	// it was issued to.
	ParseRefreshToken(tokenString string) (uuid.UUID, error)

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration
}
