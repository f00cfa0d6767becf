package order

import (
	"fmt"
	"time"

	"foodorder/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	ORDERED ──10s──> PREPARING ──15s──> IN_DELIVERY ──20s──> DELIVERED
//	   │
//	   └──(user cancels)──> CANCELED
//
// Timed transitions are driven by the transition sweep. The delay of each
// arrow is measured from the moment the order entered the source status.
// DELIVERED and CANCELED are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Ordered is the initial status of every order, immediate or scheduled.
	Ordered

	// Preparing means the kitchen works on the order. It occupies capacity.
	Preparing

	// InDelivery means the order is on its way. It occupies capacity.
	InDelivery

	// Delivered is the terminal success status.
	Delivered

	// Canceled is the terminal status reachable only from Ordered.
	Canceled
)

// Delays between entering a status and the timed move to its successor.
const (
	PreparingDelay  = 10 * time.Second
	InDeliveryDelay = 15 * time.Second
	DeliveredDelay  = 20 * time.Second
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Ordered:    "ORDERED",
		Preparing:  "PREPARING",
		InDelivery: "IN_DELIVERY",
		Delivered:  "DELIVERED",
		Canceled:   "CANCELED",
	}
}

// ParseStatus converts the wire name of a status ("IN_DELIVERY") into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Ordered, Preparing, InDelivery, Delivered, Canceled}
}

// OccupyingStatuses returns the statuses that count toward the simultaneous
// order limit when the order is active.
func OccupyingStatuses() []Status {
	return []Status{Preparing, InDelivery}
}

// Validate returns an error for Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Canceled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Next returns the timed successor of s and the delay after entering s at
// which the move becomes due. ok is false for terminal statuses.
func (s Status) Next() (next Status, delay time.Duration, ok bool) {
	switch s {
	case Ordered:
		return Preparing, PreparingDelay, true
	case Preparing:
		return InDelivery, InDeliveryDelay, true
	case InDelivery:
		return Delivered, DeliveredDelay, true
	case Delivered, Canceled, Unknown:
		return Unknown, 0, false
	}
	return Unknown, 0, false
}

// CanBeCanceled reports whether a user may still cancel an order in status s.
func (s Status) CanBeCanceled() bool {
	return s == Ordered
}

// CountsInSimultaneousLimit reports whether an active order in status s
// occupies one of the capacity slots.
func (s Status) CountsInSimultaneousLimit() bool {
	return s == Preparing || s == InDelivery
}

// IsFinished reports whether s is terminal.
func (s Status) IsFinished() bool {
	return s == Delivered || s == Canceled
}
