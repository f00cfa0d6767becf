package commands

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/failure"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/transition"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
)

// PlaceOrderCommandHandler creates immediately active orders.
//
// Capacity is checked before anything else. A rejection is written to the
// failure log and returned as ErrCapacityExceeded. An admitted order is
// stored as ORDERED together with its first timed transition to PREPARING.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	admission  services.AdmissionController
	clock      ports.Clock
}

// NewPlaceOrderCommandHandler creates a handler for immediate orders.
func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	admission services.AdmissionController,
	clock ports.Clock,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		admission:  admission,
		clock:      clock,
	}
}

// Handle places the order or rejects it with ErrCapacityExceeded.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	admitted, err := h.admission.CanAdmit(ctx, uow.OrderRepository())
	if err != nil {
		return err
	}

	if !admitted {
		return h.reject(ctx, uow, cmd, now)
	}

	lines, err := resolveLines(ctx, uow.DishRepository(), cmd.Lines())
	if err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Actor().ID(), lines, now)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	first, err := transition.ScheduleNext(kernel.NewUUID(), o, now)
	if err != nil {
		return err
	}

	if err = uow.TransitionRepository().Add(ctx, first); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h PlaceOrderCommandHandler) reject(ctx context.Context, uow UoW, cmd PlaceOrderCommand, now time.Time) error {
	record, err := failure.ForPlacement(cmd.Actor().ID(), CapacityExceededMessage, now)
	if err != nil {
		return err
	}

	if err = uow.FailureRepository().Add(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return ErrCapacityExceeded
}
