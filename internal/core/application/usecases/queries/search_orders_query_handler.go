package queries

import (
	"context"

	"foodorder/internal/core/ports"
)

// SearchOrdersQueryHandler runs order searches, newest first.
type SearchOrdersQueryHandler struct {
	reader ports.OrderReader
}

// NewSearchOrdersQueryHandler creates a handler for filtered order listings.
func NewSearchOrdersQueryHandler(reader ports.OrderReader) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{reader: reader}
}

// Handle returns matching orders, newest first. Non-privileged actors only
// ever see their own orders.
func (h SearchOrdersQueryHandler) Handle(ctx context.Context, query SearchOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := ports.OrderFilter{
		Statuses:    query.statuses,
		CreatedFrom: query.createdFrom,
		CreatedTo:   query.createdTo,
		CreatedBy:   query.userID,
	}

	if !query.actor.IsPrivileged() {
		own := query.actor.ID()
		filter.CreatedBy = &own
	}

	orders, err := h.reader.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, newOrderResponse(o))
	}
	return responses, nil
}
