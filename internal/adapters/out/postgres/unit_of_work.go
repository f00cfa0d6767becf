// Package postgres provides the GORM-based unit of work and schema migration.
//
// A unit of work wraps one database transaction. Repositories obtained from
// it run inside that transaction once Begin was called, and against the
// plain connection otherwise. Aggregates added or updated through the
// order repository are tracked; their domain events are handed to the
// event publisher after a successful Commit and dropped on Rollback.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.TransitionRepository().Add(ctx, first); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - GetForUpdate takes row locks; lock the order row before its transitions
package postgres

import (
	"context"
	"log/slog"

	"foodorder/internal/adapters/out/events"
	"foodorder/internal/adapters/out/postgres/dishrepo"
	"foodorder/internal/adapters/out/postgres/failurerepo"
	"foodorder/internal/adapters/out/postgres/orderrepo"
	"foodorder/internal/adapters/out/postgres/transitionrepo"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based units of work.
// publisher may be nil, in which case domain events are discarded.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.OrderEventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger,
	}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates it touched.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.OrderEventPublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and publishes the events of tracked aggregates.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	aggregates := make([]any, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		aggregates = append(aggregates, tracked.Aggregate)
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]

	events.DispatchTracked(ctx, uow.publisher, uow.logger, aggregates)
	return nil
}

// Rollback discards the transaction and the tracked aggregates.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository provides order persistence bound to the current transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TransitionRepository provides the transition queue bound to the current transaction.
func (uow *GormUnitOfWork) TransitionRepository() ports.TransitionRepository {
	return transitionrepo.NewGormTransitionRepository(uow.conn())
}

// FailureRepository provides the failure log bound to the current transaction.
func (uow *GormUnitOfWork) FailureRepository() ports.FailureRepository {
	return failurerepo.NewGormFailureRepository(uow.conn())
}

// DishRepository provides the menu bound to the current transaction.
func (uow *GormUnitOfWork) DishRepository() ports.DishRepository {
	return dishrepo.NewGormDishRepository(uow.conn())
}

// TrackAggregate registers an aggregate modified within this unit of work.
// Called by repository implementations on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
