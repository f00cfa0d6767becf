// Package queries contains read operations of the CQRS architecture.
// Queries never change state; they read through ports.OrderReader.
package queries

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderLineResponse is one order line with its frozen price.
type OrderLineResponse struct {
	DishID    kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
	Subtotal  kernel.Money
}

// OrderResponse is the read model of an order.
type OrderResponse struct {
	ID           kernel.UUID
	CreatedBy    kernel.UUID
	Status       order.Status
	Active       bool
	CreatedAt    time.Time
	ScheduledFor *time.Time
	Lines        []OrderLineResponse
	Total        kernel.Money
}

func newOrderResponse(o *order.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, OrderLineResponse{
			DishID:    l.DishID(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice(),
			Subtotal:  l.Subtotal(),
		})
	}

	return OrderResponse{
		ID:           o.ID(),
		CreatedBy:    o.CreatedBy(),
		Status:       o.Status(),
		Active:       o.IsActive(),
		CreatedAt:    o.CreatedAt(),
		ScheduledFor: o.ScheduledFor(),
		Lines:        lines,
		Total:        o.Total(),
	}
}
