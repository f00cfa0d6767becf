package memory

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"

	"foodorder/internal/adapters/out/events"
	"foodorder/internal/core/domain/model/dish"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"

	"github.com/google/uuid"
)

// ErrNoTransaction is returned by Commit and Rollback outside a transaction.
var ErrNoTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
}

// NewUnitOfWorkFactory creates a factory. publisher may be nil.
func NewUnitOfWorkFactory(store *Store, publisher ports.OrderEventPublisher, logger *slog.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store, publisher: publisher, logger: logger}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store, publisher: f.publisher, logger: f.logger}
}

// UnitOfWork stages writes and applies them atomically on Commit.
type UnitOfWork struct {
	store     *Store
	publisher ports.OrderEventPublisher
	logger    *slog.Logger

	changes *changeSet
	tracked []any
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.changes != nil {
		return nil
	}
	u.store.txMu.Lock()
	u.changes = newChangeSet()
	u.tracked = nil
	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.changes == nil {
		return ErrNoTransaction
	}

	u.store.apply(u.changes)
	u.changes = nil
	u.store.txMu.Unlock()

	tracked := u.tracked
	u.tracked = nil
	events.DispatchTracked(ctx, u.publisher, u.logger, tracked)
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.changes == nil {
		return ErrNoTransaction
	}

	u.changes = nil
	u.tracked = nil
	u.store.txMu.Unlock()
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: u}
}

func (u *UnitOfWork) TransitionRepository() ports.TransitionRepository {
	return &TransitionRepository{uow: u}
}

func (u *UnitOfWork) FailureRepository() ports.FailureRepository {
	return &FailureRepository{uow: u}
}

func (u *UnitOfWork) DishRepository() ports.DishRepository {
	return &DishRepository{uow: u}
}

// TrackAggregate registers an aggregate whose events are published after Commit.
func (u *UnitOfWork) TrackAggregate(_ kernel.UUID, aggregate any) {
	u.tracked = append(u.tracked, aggregate)
}

func (u *UnitOfWork) inTx() bool {
	return u.changes != nil
}

// write stages fn inside a transaction or applies it immediately outside one.
func (u *UnitOfWork) write(fn func(cs *changeSet)) {
	if u.inTx() {
		fn(u.changes)
		return
	}
	cs := newChangeSet()
	fn(cs)
	u.store.apply(cs)
}

func (u *UnitOfWork) lookupOrder(id uuid.UUID) (orderRow, bool) {
	if u.inTx() {
		if row, ok := u.changes.orders[id]; ok {
			return row, true
		}
	}
	u.store.dataMu.RLock()
	defer u.store.dataMu.RUnlock()
	row, ok := u.store.orders[id]
	return row, ok
}

func (u *UnitOfWork) allOrders() []orderRow {
	u.store.dataMu.RLock()
	merged := maps.Clone(u.store.orders)
	u.store.dataMu.RUnlock()

	if u.inTx() {
		maps.Copy(merged, u.changes.orders)
	}
	return slices.Collect(maps.Values(merged))
}

func (u *UnitOfWork) lookupTransition(id uuid.UUID) (transitionRow, bool) {
	if u.inTx() {
		if row, ok := u.changes.transitions[id]; ok {
			return row, true
		}
	}
	u.store.dataMu.RLock()
	defer u.store.dataMu.RUnlock()
	row, ok := u.store.transitions[id]
	return row, ok
}

func (u *UnitOfWork) allTransitions() []transitionRow {
	u.store.dataMu.RLock()
	merged := maps.Clone(u.store.transitions)
	u.store.dataMu.RUnlock()

	if u.inTx() {
		maps.Copy(merged, u.changes.transitions)
	}
	return slices.Collect(maps.Values(merged))
}

func (u *UnitOfWork) lookupDish(id uuid.UUID) (*dish.Dish, bool) {
	if u.inTx() {
		if d, ok := u.changes.dishes[id]; ok {
			return d, true
		}
	}
	u.store.dataMu.RLock()
	defer u.store.dataMu.RUnlock()
	d, ok := u.store.dishes[id]
	return d, ok
}
