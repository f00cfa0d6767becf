package events

import (
	"encoding/json"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/order"
)

// StatusChangedMessage is the wire form of order.StatusChanged.
type StatusChangedMessage struct {
	Event      string    `json:"event"`
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Encode returns the message key (the order ID, so one order's events stay
// ordered on a partition) and the JSON body of an event.
func Encode(ev order.DomainEvent) (key []byte, body []byte, err error) {
	switch e := ev.(type) {
	case order.StatusChanged:
		msg := StatusChangedMessage{
			Event:      e.EventName(),
			OrderID:    e.OrderID.String(),
			UserID:     e.UserID.String(),
			To:         e.To.String(),
			OccurredAt: e.OccurredAt.UTC(),
		}
		if e.From != order.Unknown {
			msg.From = e.From.String()
		}

		body, err = json.Marshal(msg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal %s: %w", e.EventName(), err)
		}
		return []byte(msg.OrderID), body, nil
	default:
		return nil, nil, fmt.Errorf("unsupported event %T", ev)
	}
}
