package ports

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/transition"
)

// TransitionRepository is the durable queue of timed status changes.
// Entries are never deleted; processing flips their processed flag.
type TransitionRepository interface {
	// Add enqueues a new pending transition.
	Add(ctx context.Context, t *transition.PendingTransition) error

	// Update persists the processed flag of an existing entry.
	Update(ctx context.Context, t *transition.PendingTransition) error

	// GetForUpdate retrieves an entry by ID and locks it for the surrounding unit of work.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*transition.PendingTransition, error)

	// GetDueUnprocessed returns unprocessed entries with dueAt at or before now,
	// ordered by dueAt then by insertion.
	GetDueUnprocessed(ctx context.Context, now time.Time) ([]*transition.PendingTransition, error)

	// GetUnprocessedByOrder returns the unprocessed entries of one order.
	GetUnprocessedByOrder(ctx context.Context, orderID kernel.UUID) ([]*transition.PendingTransition, error)
}
