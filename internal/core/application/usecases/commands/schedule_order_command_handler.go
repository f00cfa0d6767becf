package commands

import (
	"context"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// ScheduleOrderCommandHandler stores deferred orders. No capacity check and
// no transition happen here; the activation sweep starts the order once due.
type ScheduleOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

// NewScheduleOrderCommandHandler creates a handler for deferred orders.
func NewScheduleOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) ScheduleOrderCommandHandler {
	return ScheduleOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns order.ErrScheduleTimeNotInFuture when scheduledFor is not
// strictly after now. That rejection is not written to the failure log.
func (h ScheduleOrderCommandHandler) Handle(ctx context.Context, cmd ScheduleOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock.Now()
	if !cmd.ScheduledFor().After(now) {
		return order.ErrScheduleTimeNotInFuture
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lines, err := resolveLines(ctx, uow.DishRepository(), cmd.Lines())
	if err != nil {
		return err
	}

	o, err := order.NewScheduledOrder(cmd.OrderID(), cmd.Actor().ID(), lines, cmd.ScheduledFor(), now)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
