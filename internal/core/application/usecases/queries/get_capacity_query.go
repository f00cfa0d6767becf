package queries

import (
	"errors"

	"foodorder/internal/pkg/guard"
)

var ErrGetCapacityQueryIsNotConstructed = errors.New(
	"GetCapacityQuery must be created via NewGetCapacityQuery constructor",
)

// GetCapacityQuery reads the current occupancy of the simultaneous order capacity.
type GetCapacityQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCapacityQuery creates the capacity query.
func NewGetCapacityQuery() GetCapacityQuery {
	return GetCapacityQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCapacityQuery) Validate() error {
	return q.guard.Validate(ErrGetCapacityQueryIsNotConstructed)
}

// GetCapacityQueryResponse tells whether a new order would be admitted right now.
type GetCapacityQueryResponse struct {
	Occupied int64
	Capacity int64
	CanAdmit bool
}
