package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/user"
	"foodorder/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder, NewScheduledOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrScheduleTimeNotInFuture is returned when a deferred order is not due strictly after now.
	ErrScheduleTimeNotInFuture = errors.New("scheduled time must be in the future")

	// ErrOrderCannotBeCanceled is returned when canceling an order that already left Ordered.
	ErrOrderCannotBeCanceled = errors.New("order cannot be canceled")

	// ErrAccessDenied is returned when a non-privileged actor touches an order of another user.
	ErrAccessDenied = errors.New("order belongs to another user")

	// ErrStaleTransition is returned by Advance when the order is no longer in
	// the status the transition was enqueued for.
	ErrStaleTransition = errors.New("order is no longer in the expected status")

	// ErrOrderIsNotScheduled is returned by Activate for orders that are not waiting for activation.
	ErrOrderIsNotScheduled = errors.New("order is not waiting for activation")
)

// Order is the aggregate root of the ordering domain. It owns its lines,
// its lifecycle status and the activity flag that decides whether it counts
// toward the simultaneous order limit.
//
// Order follows these invariants:
//   - Has at least one line, and every line price is frozen at creation
//   - scheduledFor is set only while a deferred order waits for activation
//   - A waiting deferred order is Ordered and inactive
//   - Status changes follow Status.Next, except Ordered -> Canceled by a user
//   - Can only be created through NewOrder, NewScheduledOrder or RestoreOrder
type Order struct {
	id           kernel.UUID
	createdBy    kernel.UUID
	status       Status
	active       bool
	createdAt    time.Time
	scheduledFor *time.Time
	lines        []Line

	domainEvents []DomainEvent

	isConstructed bool
}

// NewOrder creates an order placed for immediate processing: Ordered and active.
//
// Parameters:
//   - id: identifier of the new order
//   - createdBy: identifier of the placing user
//   - lines: at least one line with frozen prices
//   - now: creation time
//
// Returns:
//   - *Order: the created order, carrying a StatusChanged event into Ordered
//   - error: joined validation errors of every invalid argument
func NewOrder(id, createdBy kernel.UUID, lines []Line, now time.Time) (*Order, error) {
	o := &Order{
		status:        Ordered,
		active:        true,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCreatedBy(createdBy),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.raise(Unknown, Ordered, now)
	return o, nil
}

// NewScheduledOrder creates a deferred order: Ordered, inactive and waiting
// until scheduledFor. scheduledFor must be strictly after now, otherwise
// ErrScheduleTimeNotInFuture is returned.
//
// Example:
//
//	o, err := order.NewScheduledOrder(kernel.NewUUID(), actor.ID(), lines, now.Add(time.Hour), now)
//	if errors.Is(err, order.ErrScheduleTimeNotInFuture) {
//	    // reject the request
//	}
func NewScheduledOrder(id, createdBy kernel.UUID, lines []Line, scheduledFor, now time.Time) (*Order, error) {
	if !scheduledFor.After(now) {
		return nil, ErrScheduleTimeNotInFuture
	}

	o := &Order{
		status:        Ordered,
		active:        false,
		createdAt:     now,
		scheduledFor:  &scheduledFor,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCreatedBy(createdBy),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.raise(Unknown, Ordered, now)
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. No events are raised.
func RestoreOrder(
	id, createdBy kernel.UUID,
	status Status,
	active bool,
	createdAt time.Time,
	scheduledFor *time.Time,
	lines []Line,
) (*Order, error) {
	o := &Order{
		active:        active,
		createdAt:     createdAt,
		isConstructed: true,
	}
	if scheduledFor != nil {
		at := *scheduledFor
		o.scheduledFor = &at
	}

	if err := errors.Join(
		o.setID(id),
		o.setCreatedBy(createdBy),
		o.setStatus(status),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CreatedBy returns the identifier of the user who placed the order.
func (o *Order) CreatedBy() kernel.UUID {
	return o.createdBy
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// IsActive reports whether the order takes part in processing. Deferred
// orders stay inactive until activated, canceled orders become inactive.
func (o *Order) IsActive() bool {
	return o.active
}

// CreatedAt returns the time the order was placed or scheduled.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ScheduledFor returns the activation time of a waiting deferred order, or nil.
func (o *Order) ScheduledFor() *time.Time {
	if o.scheduledFor == nil {
		return nil
	}
	at := *o.scheduledFor
	return &at
}

// Lines returns a copy of the order lines in their original order.
func (o *Order) Lines() []Line {
	return slices.Clone(o.lines)
}

// Total is the sum of all line subtotals.
func (o *Order) Total() kernel.Money {
	total := kernel.ZeroMoney()
	for _, l := range o.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// OccupiesCapacity reports whether the order counts toward the simultaneous order limit.
func (o *Order) OccupiesCapacity() bool {
	return o.active && o.status.CountsInSimultaneousLimit()
}

// IsDueForActivation reports whether a deferred order waits and its time has come.
func (o *Order) IsDueForActivation(now time.Time) bool {
	return o.status == Ordered && !o.active && o.scheduledFor != nil && !o.scheduledFor.After(now)
}

// AccessibleBy reports whether actor may read or change the order:
// the owner or a privileged actor.
func (o *Order) AccessibleBy(actor user.Actor) bool {
	return actor.IsPrivileged() || o.createdBy.IsEqual(actor.ID())
}

// Activate starts a waiting deferred order: it becomes active and loses its
// scheduled time. The status stays Ordered, so the caller enqueues the first
// timed transition from now.
func (o *Order) Activate(now time.Time) error {
	if !o.IsDueForActivation(now) {
		return fmt.Errorf("%w: %s is %s, active=%t", ErrOrderIsNotScheduled, o.id, o.status, o.active)
	}

	o.active = true
	o.scheduledFor = nil
	return nil
}

// Advance applies a timed transition enqueued while the order was in from.
// It returns ErrStaleTransition when the order has moved on since (for
// example it was canceled), and a validation error when to is not the
// successor of from.
func (o *Order) Advance(from, to Status, now time.Time) error {
	next, _, ok := from.Next()
	if !ok || next != to {
		return errs.NewValueIsInvalidErrorWithCause(
			"transition",
			fmt.Errorf("%s -> %s is not a timed transition", from, to),
		)
	}

	if o.status != from || !o.active {
		return fmt.Errorf("%w: expected %s, order %s is %s", ErrStaleTransition, from, o.id, o.status)
	}

	o.status = to
	o.raise(from, to, now)
	return nil
}

// Cancel moves an Ordered order to Canceled and deactivates it.
// Ownership is checked first, so a foreign actor never learns the status.
func (o *Order) Cancel(actor user.Actor, now time.Time) error {
	if !o.AccessibleBy(actor) {
		return ErrAccessDenied
	}

	if !o.status.CanBeCanceled() {
		return fmt.Errorf("%w: order %s is %s", ErrOrderCannotBeCanceled, o.id, o.status)
	}

	from := o.status
	o.status = Canceled
	o.active = false
	o.scheduledFor = nil
	o.raise(from, Canceled, now)
	return nil
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (o *Order) DomainEvents() []DomainEvent {
	return slices.Clone(o.domainEvents)
}

// ClearDomainEvents drops the raised events once they were published.
func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) raise(from, to Status, at time.Time) {
	o.domainEvents = append(o.domainEvents, StatusChanged{
		OrderID:    o.id,
		UserID:     o.createdBy,
		From:       from,
		To:         to,
		OccurredAt: at,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("createdBy", err)
	}
	o.createdBy = createdBy
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setLines requires at least one constructed line and copies the slice.
func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	o.lines = slices.Clone(lines)
	return nil
}
