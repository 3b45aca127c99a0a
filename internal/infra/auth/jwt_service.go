// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"lessonboard/config"
	"lessonboard/internal/domain/service"
)

const (
	defaultAccessTTL  = time.Minute * 15
	defaultRefreshTTL = time.Hour * 24 * 7

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	accessTTL := defaultAccessTTL
	refreshTTL := defaultRefreshTTL
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// GenerateTokens creates a new access token and refresh token for a given user.
func (s *jwtService) GenerateTokens(userID uuid.UUID) (accessToken string, refreshToken string, err error) {
	accessToken, err = s.generateToken(userID, s.accessTTL, s.accessSecret, tokenTypeAccess)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = s.generateToken(userID, s.refreshTTL, s.refreshSecret, tokenTypeRefresh)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ParseAccessToken validates an access token and returns the subject user ID.
func (s *jwtService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	return s.parseToken(tokenString, s.accessSecret, tokenTypeAccess)
}

// ParseRefreshToken validates a refresh token and returns the subject user ID.
func (s *jwtService) ParseRefreshToken(tokenString string) (uuid.UUID, error) {
	return s.parseToken(tokenString, s.refreshSecret, tokenTypeRefresh)
}

// AccessTokenDuration returns the configured lifetime for access tokens.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}

// generateToken is a private helper to create a JWT with specific claims.
func (s *jwtService) generateToken(userID uuid.UUID, ttl time.Duration, secret, tokenType string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
		"type": tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// parseToken validates a token's signature, expiry and type claim against
// the given secret, and extracts the subject.
func (s *jwtService) parseToken(tokenString, secret, wantType string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse token structure")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token claims")
	}

	if tokenType, _ := claims["type"].(string); tokenType != wantType {
		return uuid.Nil, errors.Errorf("unexpected token type %q", claims["type"])
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "token subject missing")
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "token subject is not a user id")
	}

	return userID, nil
}
