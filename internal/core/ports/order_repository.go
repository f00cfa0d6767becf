// Package ports defines the contracts between the ordering core and its
// infrastructure: persistence, event publishing and time.
// These interfaces establish dependency inversion so the core can be
// exercised against Postgres or the in-memory store alike.
package ports

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderFilter narrows SearchOrders. Zero fields do not filter.
type OrderFilter struct {
	// Statuses keeps orders in any of the listed statuses.
	Statuses []order.Status

	// CreatedFrom and CreatedTo bound createdAt, both inclusive.
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// CreatedBy keeps orders placed by one user.
	CreatedBy *kernel.UUID
}

// OrderReader is the read side of the order store used by queries.
type OrderReader interface {
	// Get retrieves an order by ID. Returns *errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Search returns orders matching filter, newest first.
	Search(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// CountActiveByStatusIn counts active orders whose status is in statuses.
	CountActiveByStatusIn(ctx context.Context, statuses []order.Status) (int64, error)
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	OrderReader

	// Add persists a new order aggregate with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, activity and schedule changes of an existing order.
	// Lines are immutable and never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetForUpdate retrieves an order and locks it until the surrounding
	// unit of work ends. Concurrent sweeps serialize on this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetDueScheduled returns deferred orders that are Ordered, inactive and
	// whose scheduled time is at or before now, oldest schedule first.
	GetDueScheduled(ctx context.Context, now time.Time) ([]*order.Order, error)
}
