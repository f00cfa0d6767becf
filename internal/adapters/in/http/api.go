package http

import (
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// OrderLineRequest is one requested dish.
type OrderLineRequest struct {
	DishID   uuid.UUID `json:"dishId"`
	Quantity int       `json:"quantity"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	Lines []OrderLineRequest `json:"lines"`
}

// ScheduleOrderRequest is the body of POST /api/v1/orders/schedule.
type ScheduleOrderRequest struct {
	Lines        []OrderLineRequest `json:"lines"`
	ScheduledFor time.Time          `json:"scheduledFor"`
}

// SearchOrdersParams are the query parameters of GET /api/v1/orders.
type SearchOrdersParams struct {
	Status   *[]string
	DateFrom *time.Time
	DateTo   *time.Time
	UserID   *uuid.UUID
}

type OrderCreated struct {
	ID uuid.UUID `json:"id"`
}

type OrderLine struct {
	DishID    uuid.UUID `json:"dishId"`
	Quantity  int       `json:"quantity"`
	UnitPrice string    `json:"unitPrice"`
	Subtotal  string    `json:"subtotal"`
}

type Order struct {
	ID           uuid.UUID   `json:"id"`
	CreatedBy    uuid.UUID   `json:"createdBy"`
	Status       string      `json:"status"`
	Active       bool        `json:"active"`
	CreatedAt    time.Time   `json:"createdAt"`
	ScheduledFor *time.Time  `json:"scheduledFor,omitempty"`
	Lines        []OrderLine `json:"lines"`
	Total        string      `json:"total"`
}

type Capacity struct {
	Occupied int64 `json:"occupied"`
	Capacity int64 `json:"capacity"`
	CanAdmit bool  `json:"canAdmit"`
}

func toLineRequests(lines []OrderLineRequest) ([]commands.LineRequest, error) {
	out := make([]commands.LineRequest, 0, len(lines))
	for _, l := range lines {
		dishID, err := kernel.UUIDFromBytes(l.DishID[:])
		if err != nil {
			return nil, err
		}
		out = append(out, commands.LineRequest{DishID: dishID, Quantity: l.Quantity})
	}
	return out, nil
}

func toOrder(resp queries.OrderResponse) Order {
	lines := make([]OrderLine, 0, len(resp.Lines))
	for _, l := range resp.Lines {
		lines = append(lines, OrderLine{
			DishID:    l.DishID.Bytes(),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.String(),
			Subtotal:  l.Subtotal.String(),
		})
	}

	var scheduledFor *time.Time
	if resp.ScheduledFor != nil {
		t := resp.ScheduledFor.UTC()
		scheduledFor = &t
	}

	return Order{
		ID:           resp.ID.Bytes(),
		CreatedBy:    resp.CreatedBy.Bytes(),
		Status:       resp.Status.String(),
		Active:       resp.Active,
		CreatedAt:    resp.CreatedAt.UTC(),
		ScheduledFor: scheduledFor,
		Lines:        lines,
		Total:        resp.Total.String(),
	}
}
