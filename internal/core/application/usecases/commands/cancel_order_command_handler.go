package commands

import (
	"context"
	"errors"
	"time"

	"foodorder/internal/core/domain/model/failure"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// CancelOrderCommandHandler cancels ORDERED orders.
//
// The order row is locked for the duration of the cancellation. Besides
// flipping the order to CANCELED, every unprocessed transition of the order
// is marked processed so no sweep picks it up afterwards. Foreign actors are
// denied before the status is looked at. An authorized cancellation refused
// because the order already started is written to the failure log.
type CancelOrderCommandHandler struct {
	uowFactory LifecycleUoWFactory
	clock      ports.Clock
}

// NewCancelOrderCommandHandler creates a handler whose unit of work reaches
// both orders and their pending transitions.
func NewCancelOrderCommandHandler(uowFactory LifecycleUoWFactory, clock ports.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns *errs.ObjectNotFoundError, order.ErrOrderCannotBeCanceled
// or order.ErrAccessDenied on refusal.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Cancel(cmd.Actor(), now); err != nil {
		if errors.Is(err, order.ErrOrderCannotBeCanceled) {
			return h.recordRefusal(ctx, uow, o, cmd, err, now)
		}
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	pending, err := uow.TransitionRepository().GetUnprocessedByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	for _, pt := range pending {
		pt.MarkProcessed()
		if err = uow.TransitionRepository().Update(ctx, pt); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h CancelOrderCommandHandler) recordRefusal(
	ctx context.Context,
	uow LifecycleUoW,
	o *order.Order,
	cmd CancelOrderCommand,
	cause error,
	now time.Time,
) error {
	record, err := failure.ForCancellation(o.ID(), cmd.Actor().ID(), cause.Error(), now)
	if err != nil {
		return errors.Join(cause, err)
	}

	if err = uow.FailureRepository().Add(ctx, record); err != nil {
		return errors.Join(cause, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errors.Join(cause, err)
	}

	return cause
}
