package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/failure"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/transition"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

type activationOutcome int

const (
	activationActivated activationOutcome = iota
	activationRejected
	activationSkipped
)

// ActivateScheduledOrdersCommandHandler starts deferred orders whose time has come.
//
// Each due order is handled in its own unit of work: the order is re-read
// with a lock, re-checked for being due, and only then admitted. A capacity
// rejection leaves the order untouched and writes an AUTO_CREATE_SCHEDULED
// failure record, so a blocked order is retried and recorded on every tick.
// An unexpected error on one order is recorded and logged without stopping
// the sweep.
type ActivateScheduledOrdersCommandHandler struct {
	uowFactory LifecycleUoWFactory
	admission  services.AdmissionController
	clock      ports.Clock
	logger     *slog.Logger
}

// NewActivateScheduledOrdersCommandHandler creates the activation sweep handler.
func NewActivateScheduledOrdersCommandHandler(
	uowFactory LifecycleUoWFactory,
	admission services.AdmissionController,
	clock ports.Clock,
	logger *slog.Logger,
) ActivateScheduledOrdersCommandHandler {
	return ActivateScheduledOrdersCommandHandler{
		uowFactory: uowFactory,
		admission:  admission,
		clock:      clock,
		logger:     logger.With("component", "activation-sweep"),
	}
}

// Handle runs one sweep. Only a failure to list due orders is returned as an error.
func (h ActivateScheduledOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd ActivateScheduledOrdersCommand,
) (ActivationReport, error) {
	if err := cmd.Validate(); err != nil {
		return ActivationReport{}, err
	}

	now := h.clock.Now()

	due, err := h.uowFactory.Create().OrderRepository().GetDueScheduled(ctx, now)
	if err != nil {
		return ActivationReport{}, err
	}

	report := ActivationReport{Due: len(due)}
	for _, o := range due {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		outcome, activateErr := h.activate(ctx, o.ID(), now)
		if activateErr != nil {
			report.Failed++
			h.logger.ErrorContext(ctx, "failed to activate scheduled order",
				"order_id", o.ID().String(), "error", activateErr)
			h.recordFailure(ctx, o, activateErr.Error(), now)
			continue
		}

		switch outcome {
		case activationActivated:
			report.Activated++
			h.logger.InfoContext(ctx, "scheduled order activated", "order_id", o.ID().String())
		case activationRejected:
			report.Rejected++
			h.logger.WarnContext(ctx, "scheduled order blocked by capacity", "order_id", o.ID().String())
		case activationSkipped:
			report.Skipped++
		}
	}

	return report, nil
}

func (h ActivateScheduledOrdersCommandHandler) activate(
	ctx context.Context,
	orderID kernel.UUID,
	now time.Time,
) (activationOutcome, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return activationSkipped, nil
	}
	if err != nil {
		return 0, err
	}

	if !o.IsDueForActivation(now) {
		return activationSkipped, nil
	}

	admitted, err := h.admission.CanAdmit(ctx, uow.OrderRepository())
	if err != nil {
		return 0, err
	}

	if !admitted {
		record, recErr := failure.ForScheduledActivation(o.ID(), o.CreatedBy(), CapacityExceededMessage, now)
		if recErr != nil {
			return 0, recErr
		}
		if err = uow.FailureRepository().Add(ctx, record); err != nil {
			return 0, err
		}
		return activationRejected, uow.Commit(ctx)
	}

	if err = o.Activate(now); err != nil {
		return 0, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return 0, err
	}

	first, err := transition.ScheduleNext(kernel.NewUUID(), o, now)
	if err != nil {
		return 0, err
	}

	if err = uow.TransitionRepository().Add(ctx, first); err != nil {
		return 0, err
	}

	return activationActivated, uow.Commit(ctx)
}

// recordFailure writes the failure in a fresh unit of work, since the one
// of the failed item was rolled back.
func (h ActivateScheduledOrdersCommandHandler) recordFailure(
	ctx context.Context,
	o *order.Order,
	message string,
	now time.Time,
) {
	record, err := failure.ForScheduledActivation(o.ID(), o.CreatedBy(), message, now)
	if err == nil {
		err = addFailure(ctx, h.uowFactory, record)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to record activation failure",
			"order_id", o.ID().String(), "error", err)
	}
}

func addFailure(ctx context.Context, factory LifecycleUoWFactory, record *failure.Record) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.FailureRepository().Add(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
