// Package service provides testify mocks for the domain service
// interfaces, used by the use case tests.
package service

import (
	"context"
	"io"
	"testing"
	"time"

	"lessonboard/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock bound to the test's lifecycle.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock bound to the test's lifecycle.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateTokens(userID uuid.UUID) (string, string, error) {
	args := m.Called(userID)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	args := m.Called(tokenString)
	id, _ := args.Get(0).(uuid.UUID)

	return id, args.Error(1)
}

func (m *MockTokenService) ParseRefreshToken(tokenString string) (uuid.UUID, error) {
	args := m.Called(tokenString)
	id, _ := args.Get(0).(uuid.UUID)

	return id, args.Error(1)
}

func (m *MockTokenService) AccessTokenDuration() time.Duration {
	args := m.Called()
	d, _ := args.Get(0).(time.Duration)

	return d
}

// MockMediaStore mocks service.MediaStore.
type MockMediaStore struct {
	mock.Mock
}

// NewMockMediaStore creates a mock bound to the test's lifecycle.
func NewMockMediaStore(t *testing.T) *MockMediaStore {
	m := &MockMediaStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMediaStore) Put(ctx context.Context, body io.Reader, contentType string) (entity.MediaRef, error) {
	args := m.Called(ctx, body, contentType)
	ref, _ := args.Get(0).(entity.MediaRef)

	return ref, args.Error(1)
}

func (m *MockMediaStore) Delete(ctx context.Context, ref entity.MediaRef) error {
	return m.Called(ctx, ref).Error(0)
}
