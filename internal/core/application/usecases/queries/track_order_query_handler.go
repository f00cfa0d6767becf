package queries

import (
	"context"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// TrackOrderQueryHandler loads an order and enforces "owner or privileged".
type TrackOrderQueryHandler struct {
	reader ports.OrderReader
}

// NewTrackOrderQueryHandler creates a handler for single order lookups.
func NewTrackOrderQueryHandler(reader ports.OrderReader) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{reader: reader}
}

// Handle returns *errs.ObjectNotFoundError for unknown orders and
// order.ErrAccessDenied for orders of other users.
func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}

	if !o.AccessibleBy(query.Actor()) {
		return OrderResponse{}, order.ErrAccessDenied
	}

	return newOrderResponse(o), nil
}
