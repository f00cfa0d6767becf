package services

import (
	"context"
	"fmt"

	"foodorder/internal/core/domain/model/order"
)

// DefaultCapacity is the number of orders that may be prepared or delivered at the same time.
const DefaultCapacity = 3

// OccupancyCounter counts active orders in the given statuses.
// ports.OrderRepository satisfies it.
type OccupancyCounter interface {
	CountActiveByStatusIn(ctx context.Context, statuses []order.Status) (int64, error)
}

// AdmissionController decides whether a new order may become active now.
//
// The decision is a read-and-compare against the store: it counts active
// orders occupying capacity (PREPARING, IN_DELIVERY) and admits while that
// count is below the capacity. The check holds no lock, so concurrent
// admissions can overshoot the cap by the number of racing checks.
//
// Example usage:
//
//	admission := services.NewAdmissionController()
//	ok, err := admission.CanAdmit(ctx, uow.OrderRepository())
//	if err != nil {
//	    return err
//	}
//	if !ok {
//	    // record the rejection and refuse the order
//	}
type AdmissionController struct {
	capacity int64
}

// NewAdmissionController returns a controller with DefaultCapacity.
func NewAdmissionController() AdmissionController {
	return AdmissionController{capacity: DefaultCapacity}
}

// Capacity returns the simultaneous order limit.
func (a AdmissionController) Capacity() int64 {
	return a.capacity
}

// CanAdmit counts occupying orders through counter and compares the count to the capacity.
func (a AdmissionController) CanAdmit(ctx context.Context, counter OccupancyCounter) (bool, error) {
	count, err := counter.CountActiveByStatusIn(ctx, order.OccupyingStatuses())
	if err != nil {
		return false, fmt.Errorf("count occupying orders: %w", err)
	}
	return a.Admits(count), nil
}

// Admits reports whether an occupancy of count still leaves room for one more order.
func (a AdmissionController) Admits(count int64) bool {
	return count < a.capacity
}
