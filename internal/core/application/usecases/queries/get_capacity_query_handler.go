package queries

import (
	"context"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
)

// GetCapacityQueryHandler exposes the admission decision as a read model.
type GetCapacityQueryHandler struct {
	reader    ports.OrderReader
	admission services.AdmissionController
}

// NewGetCapacityQueryHandler creates a handler reporting current occupancy.
func NewGetCapacityQueryHandler(reader ports.OrderReader, admission services.AdmissionController) GetCapacityQueryHandler {
	return GetCapacityQueryHandler{reader: reader, admission: admission}
}

// Handle counts occupying orders and compares them with the limit.
func (h GetCapacityQueryHandler) Handle(ctx context.Context, query GetCapacityQuery) (GetCapacityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCapacityQueryResponse{}, err
	}

	occupied, err := h.reader.CountActiveByStatusIn(ctx, order.OccupyingStatuses())
	if err != nil {
		return GetCapacityQueryResponse{}, err
	}

	return GetCapacityQueryResponse{
		Occupied: occupied,
		Capacity: h.admission.Capacity(),
		CanAdmit: h.admission.Admits(occupied),
	}, nil
}
