// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"foodorder/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Every order is read, changed and written inside one unit of work; no
// command spans more than one order.
type (
	// TxManager handles transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order store within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TransitionRepoFactory provides access to the transition queue within a transaction.
	TransitionRepoFactory interface {
		TransitionRepository() ports.TransitionRepository
	}

	// FailureRepoFactory provides access to the failure log within a transaction.
	FailureRepoFactory interface {
		FailureRepository() ports.FailureRepository
	}

	// DishRepoFactory provides access to the menu within a transaction.
	DishRepoFactory interface {
		DishRepository() ports.DishRepository
	}

	// LifecycleUoW manages transactions that move existing orders through
	// their lifecycle: cancellation and both scheduler sweeps.
	LifecycleUoW interface {
		TxManager
		OrderRepoFactory
		TransitionRepoFactory
		FailureRepoFactory
	}

	// LifecycleUoWFactory creates new lifecycle unit of work instances.
	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}

	// UoW manages transactions that create orders and therefore also resolve dishes.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   dish, err := uow.DishRepository().Get(ctx, dishID)
	//   // ... build the order
	//   err = uow.OrderRepository().Add(ctx, o)
	//   err = uow.TransitionRepository().Add(ctx, first)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		LifecycleUoW
		DishRepoFactory
	}

	// UoWFactory creates new unit of work instances for order creation.
	UoWFactory interface {
		Create() UoW
	}
)
