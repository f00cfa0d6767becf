package order

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
)

// DomainEvent is implemented by every event raised by the Order aggregate.
type DomainEvent interface {
	EventName() string
}

// StatusChanged is raised whenever an order enters a status, including
// Ordered on creation (From is Unknown then).
type StatusChanged struct {
	OrderID    kernel.UUID
	UserID     kernel.UUID
	From       Status
	To         Status
	OccurredAt time.Time
}

func (StatusChanged) EventName() string {
	return "order.status_changed"
}
