package events

import (
	"context"
	"log/slog"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// Source is an aggregate that buffers domain events until they are published.
type Source interface {
	DomainEvents() []order.DomainEvent
	ClearDomainEvents()
}

// DispatchTracked publishes the buffered events of every aggregate that
// implements Source and clears them. Publishing is best effort: the
// transaction is already committed, so failures are logged and dropped.
// A nil publisher only clears the buffers.
func DispatchTracked(ctx context.Context, publisher ports.OrderEventPublisher, logger *slog.Logger, aggregates []any) {
	for _, aggregate := range aggregates {
		src, ok := aggregate.(Source)
		if !ok {
			continue
		}

		evs := src.DomainEvents()
		src.ClearDomainEvents()
		if len(evs) == 0 || publisher == nil {
			continue
		}

		if err := publisher.Publish(ctx, evs...); err != nil && logger != nil {
			logger.WarnContext(ctx, "failed to publish domain events", "count", len(evs), "error", err)
		}
	}
}
