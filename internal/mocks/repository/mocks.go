// Package repository provides testify mocks for the domain repository
// interfaces, used by the use case tests.
package repository

import (
	"context"
	"testing"

	"lessonboard/internal/domain/entity"
	"lessonboard/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock bound to the test's lifecycle.
func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

// MockLessonRepository mocks repository.LessonRepository.
type MockLessonRepository struct {
	mock.Mock
}

// NewMockLessonRepository creates a mock bound to the test's lifecycle.
func NewMockLessonRepository(t *testing.T) *MockLessonRepository {
	m := &MockLessonRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockLessonRepository) Create(ctx context.Context, lesson *entity.Lesson) error {
	return m.Called(ctx, lesson).Error(0)
}

func (m *MockLessonRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lesson, error) {
	args := m.Called(ctx, id)
	lesson, _ := args.Get(0).(*entity.Lesson)

	return lesson, args.Error(1)
}

func (m *MockLessonRepository) List(ctx context.Context) ([]*entity.Lesson, error) {
	args := m.Called(ctx)
	lessons, _ := args.Get(0).([]*entity.Lesson)

	return lessons, args.Error(1)
}

func (m *MockLessonRepository) Update(ctx context.Context, lesson *entity.Lesson) error {
	return m.Called(ctx, lesson).Error(0)
}

func (m *MockLessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLessonRepository) ClearMedia(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockSignupSessionStore mocks repository.SignupSessionStore.
type MockSignupSessionStore struct {
	mock.Mock
}

// NewMockSignupSessionStore creates a mock bound to the test's lifecycle.
func NewMockSignupSessionStore(t *testing.T) *MockSignupSessionStore {
	m := &MockSignupSessionStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSignupSessionStore) Get(ctx context.Context, sessionID string) (*entity.PendingSignup, error) {
	args := m.Called(ctx, sessionID)
	pending, _ := args.Get(0).(*entity.PendingSignup)

	return pending, args.Error(1)
}

func (m *MockSignupSessionStore) Save(ctx context.Context, sessionID string, pending *entity.PendingSignup) error {
	return m.Called(ctx, sessionID, pending).Error(0)
}

func (m *MockSignupSessionStore) Clear(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

// MockTransactionManager mocks repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a mock bound to the test's lifecycle.
func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return m.Called(ctx, fn).Error(0)
}

// MockRepositoryFactory mocks repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates a mock bound to the test's lifecycle.
func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) UserRepo() repository.UserRepository {
	args := m.Called()
	repo, _ := args.Get(0).(repository.UserRepository)

	return repo
}

func (m *MockRepositoryFactory) SignupStore() repository.SignupSessionStore {
	args := m.Called()
	store, _ := args.Get(0).(repository.SignupSessionStore)

	return store
}
