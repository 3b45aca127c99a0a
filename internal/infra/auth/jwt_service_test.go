package auth

import (
	"testing"
	"time"

	"lessonboard/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndParseTokens(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := uuid.New()

	accessToken, refreshToken, err := jwtService.GenerateTokens(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Parse access token
	parsedID, err := jwtService.ParseAccessToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, userID, parsedID)

	// Parse refresh token
	parsedID, err = jwtService.ParseRefreshToken(refreshToken)
	assert.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestJWTService_TokenTypeMismatch(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)

	accessToken, refreshToken, err := jwtService.GenerateTokens(uuid.New())
	assert.NoError(t, err)

	// A refresh token must not pass as an access token and vice versa:
	// they are signed with different secrets.
	_, err = jwtService.ParseAccessToken(refreshToken)
	assert.Error(t, err)

	_, err = jwtService.ParseRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)

	invalidToken := "clearly-not-a-jwt-token-format"
	_, err = jwtService.ParseAccessToken(invalidToken)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse token structure")
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTService_AccessTokenDuration(t *testing.T) {
	cfg := newTestConfig()
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: time.Minute * 30}

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)
	assert.Equal(t, time.Minute*30, jwtService.AccessTokenDuration())
}

func TestJWTService_DefaultDurations(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)
	assert.Equal(t, time.Minute*15, jwtService.AccessTokenDuration())
}
