package transition

import (
	"errors"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
)

var (
	// ErrPendingTransitionIsNotConstructed is returned for values that skipped the constructors.
	ErrPendingTransitionIsNotConstructed = errors.New("PendingTransition must be created via NewPendingTransition constructor")

	// ErrNoNextStatus is returned by ScheduleNext for orders in a terminal status.
	ErrNoNextStatus = errors.New("order has no timed successor status")
)

// PendingTransition is one entry of the transition queue.
type PendingTransition struct {
	id         kernel.UUID
	orderID    kernel.UUID
	fromStatus order.Status
	target     order.Status
	dueAt      time.Time
	processed  bool
	createdAt  time.Time

	isConstructed bool
}

// NewPendingTransition creates an unprocessed queue entry. target must be
// the timed successor of from.
func NewPendingTransition(
	id, orderID kernel.UUID,
	from, target order.Status,
	dueAt, createdAt time.Time,
) (*PendingTransition, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), validatePair(from, target)); err != nil {
		return nil, err
	}

	return &PendingTransition{
		id:            id,
		orderID:       orderID,
		fromStatus:    from,
		target:        target,
		dueAt:         dueAt,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// ScheduleNext enqueues the successor of the order's current status, due
// the status delay after now.
func ScheduleNext(id kernel.UUID, o *order.Order, now time.Time) (*PendingTransition, error) {
	next, delay, ok := o.Status().Next()
	if !ok {
		return nil, fmt.Errorf("%w: order %s is %s", ErrNoNextStatus, o.ID(), o.Status())
	}
	return NewPendingTransition(id, o.ID(), o.Status(), next, now.Add(delay), now)
}

// RestorePendingTransition rebuilds a queue entry from persisted state.
func RestorePendingTransition(
	id, orderID kernel.UUID,
	from, target order.Status,
	dueAt time.Time,
	processed bool,
	createdAt time.Time,
) (*PendingTransition, error) {
	t, err := NewPendingTransition(id, orderID, from, target, dueAt, createdAt)
	if err != nil {
		return nil, err
	}
	t.processed = processed
	return t, nil
}

func validatePair(from, target order.Status) error {
	next, _, ok := from.Next()
	if !ok || next != target {
		return errs.NewValueIsInvalidErrorWithCause(
			"target status",
			fmt.Errorf("%s -> %s is not a timed transition", from, target),
		)
	}
	return nil
}

// Validate ensures the entry was created through a constructor.
func (t *PendingTransition) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrPendingTransitionIsNotConstructed
	}
	return nil
}

// ID returns the queue entry identifier.
func (t *PendingTransition) ID() kernel.UUID {
	return t.id
}

// OrderID returns the order the transition applies to.
func (t *PendingTransition) OrderID() kernel.UUID {
	return t.orderID
}

// FromStatus is the status the order must still be in when the entry is applied.
func (t *PendingTransition) FromStatus() order.Status {
	return t.fromStatus
}

// Target is the status the order moves to.
func (t *PendingTransition) Target() order.Status {
	return t.target
}

// DueAt is the earliest time the sweep may apply the entry.
func (t *PendingTransition) DueAt() time.Time {
	return t.dueAt
}

// IsProcessed reports whether the entry was applied or discarded.
func (t *PendingTransition) IsProcessed() bool {
	return t.processed
}

// CreatedAt returns the enqueue time.
func (t *PendingTransition) CreatedAt() time.Time {
	return t.createdAt
}

// IsDue reports whether the entry is unprocessed and its due time has passed.
func (t *PendingTransition) IsDue(now time.Time) bool {
	return !t.processed && !t.dueAt.After(now)
}

// MarkProcessed flips the processed flag. The flag never goes back to false.
func (t *PendingTransition) MarkProcessed() {
	t.processed = true
}
