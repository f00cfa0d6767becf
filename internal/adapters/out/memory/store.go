// Package memory provides an in-process implementation of the unit of work
// and repositories. It backs the "memory" storage driver and the lifecycle
// tests that run without a database.
//
// Transactions are serialized: Begin takes a store-wide lock that is held
// until Commit or Rollback, which gives GetForUpdate the same guarantee a
// row lock gives on Postgres. Writes are staged in the unit of work and
// applied at Commit. Readers outside a transaction see committed data only.
package memory

import (
	"sync"
	"sync/atomic"
	"time"

	"foodorder/internal/core/domain/model/dish"
	"foodorder/internal/core/domain/model/failure"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/transition"

	"github.com/google/uuid"
)

type orderRow struct {
	id           kernel.UUID
	createdBy    kernel.UUID
	status       order.Status
	active       bool
	createdAt    time.Time
	scheduledFor *time.Time
	lines        []order.Line
}

type transitionRow struct {
	id         kernel.UUID
	orderID    kernel.UUID
	fromStatus order.Status
	target     order.Status
	dueAt      time.Time
	processed  bool
	createdAt  time.Time
	seq        int64
}

// Store holds the committed state.
type Store struct {
	txMu   sync.Mutex
	dataMu sync.RWMutex
	seq    atomic.Int64

	orders      map[uuid.UUID]orderRow
	transitions map[uuid.UUID]transitionRow
	failures    []*failure.Record
	dishes      map[uuid.UUID]*dish.Dish
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		orders:      make(map[uuid.UUID]orderRow),
		transitions: make(map[uuid.UUID]transitionRow),
		dishes:      make(map[uuid.UUID]*dish.Dish),
	}
}

// Failures returns a snapshot of the failure log.
func (s *Store) Failures() []*failure.Record {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	out := make([]*failure.Record, len(s.failures))
	copy(out, s.failures)
	return out
}

func (s *Store) apply(cs *changeSet) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	for id, row := range cs.orders {
		s.orders[id] = row
	}
	for id, row := range cs.transitions {
		s.transitions[id] = row
	}
	for id, d := range cs.dishes {
		s.dishes[id] = d
	}
	s.failures = append(s.failures, cs.failures...)
}

type changeSet struct {
	orders      map[uuid.UUID]orderRow
	transitions map[uuid.UUID]transitionRow
	dishes      map[uuid.UUID]*dish.Dish
	failures    []*failure.Record
}

func newChangeSet() *changeSet {
	return &changeSet{
		orders:      make(map[uuid.UUID]orderRow),
		transitions: make(map[uuid.UUID]transitionRow),
		dishes:      make(map[uuid.UUID]*dish.Dish),
	}
}

func orderRowFromDomain(o *order.Order) orderRow {
	return orderRow{
		id:           o.ID(),
		createdBy:    o.CreatedBy(),
		status:       o.Status(),
		active:       o.IsActive(),
		createdAt:    o.CreatedAt(),
		scheduledFor: o.ScheduledFor(),
		lines:        o.Lines(),
	}
}

func (r orderRow) toDomain() (*order.Order, error) {
	return order.RestoreOrder(r.id, r.createdBy, r.status, r.active, r.createdAt, r.scheduledFor, r.lines)
}

func transitionRowFromDomain(t *transition.PendingTransition, seq int64) transitionRow {
	return transitionRow{
		id:         t.ID(),
		orderID:    t.OrderID(),
		fromStatus: t.FromStatus(),
		target:     t.Target(),
		dueAt:      t.DueAt(),
		processed:  t.IsProcessed(),
		createdAt:  t.CreatedAt(),
		seq:        seq,
	}
}

func (r transitionRow) toDomain() (*transition.PendingTransition, error) {
	return transition.RestorePendingTransition(r.id, r.orderID, r.fromStatus, r.target, r.dueAt, r.processed, r.createdAt)
}
