package repository

import "context"

// TransactionManager defines the interface for managing database
// transactions. This lets the use case layer group writes atomically
// without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction. If the
	// function returns an error, the transaction is rolled back;
	// otherwise it is committed. All repository operations obtained from
	// the factory share the same transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// SignupStore returns a SignupSessionStore bound to the current
	// transaction.
	SignupStore() SignupSessionStore
}
