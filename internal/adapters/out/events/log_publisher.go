package events

import (
	"context"
	"log/slog"

	"foodorder/internal/core/domain/model/order"
)

// LogPublisher writes events to the log instead of a broker.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher writing events to logger.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "event-log")}
}

// Publish logs each event at info level. It never fails.
func (p *LogPublisher) Publish(ctx context.Context, evs ...order.DomainEvent) error {
	for _, ev := range evs {
		if sc, ok := ev.(order.StatusChanged); ok {
			p.logger.InfoContext(ctx, sc.EventName(),
				"order_id", sc.OrderID.String(),
				"from", sc.From.String(),
				"to", sc.To.String())
			continue
		}
		p.logger.InfoContext(ctx, ev.EventName())
	}
	return nil
}
