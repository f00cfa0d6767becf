package failure

import (
	"errors"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

// Operation names the lifecycle step that failed.
type Operation string

const (
	PlaceOrder          Operation = "PLACE_ORDER"
	ScheduledActivation Operation = "AUTO_CREATE_SCHEDULED"
	CancelOrder         Operation = "CANCEL_ORDER"
	StatusTransition    Operation = "STATUS_TRANSITION"
)

// ErrRecordIsNotConstructed is returned for records that skipped the constructors.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Record is one entry of the failure log.
type Record struct {
	id        kernel.UUID
	operation Operation
	orderID   *kernel.UUID
	userID    kernel.UUID
	message   string
	timestamp time.Time

	isConstructed bool
}

// NewRecord validates and creates a failure record. orderID is nil when the
// failing operation never produced an order.
func NewRecord(
	id kernel.UUID,
	operation Operation,
	orderID *kernel.UUID,
	userID kernel.UUID,
	message string,
	timestamp time.Time,
) (*Record, error) {
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		validateOperation(operation),
		validateMessage(message),
		validateOrderID(orderID),
	); err != nil {
		return nil, err
	}

	r := &Record{
		id:            id,
		operation:     operation,
		userID:        userID,
		message:       message,
		timestamp:     timestamp,
		isConstructed: true,
	}
	if orderID != nil {
		oid := *orderID
		r.orderID = &oid
	}
	return r, nil
}

// ForPlacement records a refused immediate placement. No order exists yet.
func ForPlacement(userID kernel.UUID, message string, at time.Time) (*Record, error) {
	return NewRecord(kernel.NewUUID(), PlaceOrder, nil, userID, message, at)
}

// ForScheduledActivation records a deferred order that could not be activated.
func ForScheduledActivation(orderID, userID kernel.UUID, message string, at time.Time) (*Record, error) {
	return NewRecord(kernel.NewUUID(), ScheduledActivation, &orderID, userID, message, at)
}

// ForCancellation records a refused cancellation.
func ForCancellation(orderID, userID kernel.UUID, message string, at time.Time) (*Record, error) {
	return NewRecord(kernel.NewUUID(), CancelOrder, &orderID, userID, message, at)
}

// ForStatusTransition records a timed transition that failed to apply.
func ForStatusTransition(orderID, userID kernel.UUID, message string, at time.Time) (*Record, error) {
	return NewRecord(kernel.NewUUID(), StatusTransition, &orderID, userID, message, at)
}

func validateOperation(op Operation) error {
	switch op {
	case PlaceOrder, ScheduledActivation, CancelOrder, StatusTransition:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("operation", fmt.Errorf("%q is not a known operation", op))
}

func validateMessage(message string) error {
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	return nil
}

func validateOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	return orderID.Validate()
}

// Validate ensures the record was created through a constructor.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record identifier.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// Operation returns the operation that failed.
func (r *Record) Operation() Operation {
	return r.operation
}

// OrderID returns the affected order, or nil for refused placements.
func (r *Record) OrderID() *kernel.UUID {
	if r.orderID == nil {
		return nil
	}
	id := *r.orderID
	return &id
}

// UserID returns the user the failure is charged to.
func (r *Record) UserID() kernel.UUID {
	return r.userID
}

// Message returns the human readable failure reason.
func (r *Record) Message() string {
	return r.message
}

// Timestamp returns when the failure happened.
func (r *Record) Timestamp() time.Time {
	return r.timestamp
}
