package ports

import (
	"context"

	"foodorder/internal/core/domain/model/order"
)

// OrderEventPublisher delivers order domain events to interested parties
// outside the service. Publishing happens after commit and is best effort.
type OrderEventPublisher interface {
	Publish(ctx context.Context, events ...order.DomainEvent) error
}
