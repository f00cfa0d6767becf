package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request or sweep item.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes so their
// domain events can be published once the transaction commits.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and publishes the events of
	// tracked aggregates. Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// TransitionRepository returns a TransitionRepository bound to the current transaction.
	TransitionRepository() TransitionRepository

	// FailureRepository returns a FailureRepository bound to the current transaction.
	FailureRepository() FailureRepository

	// DishRepository returns a DishRepository bound to the current transaction.
	DishRepository() DishRepository
}
