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
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

type transitionOutcome int

const (
	transitionApplied transitionOutcome = iota
	transitionStale
	transitionOrphaned
	transitionSkipped
)

// ApplyDueTransitionsCommandHandler moves orders along the state machine.
//
// Due transitions are handled oldest first, each in its own unit of work.
// The order row is locked before the queue entry, matching the lock order
// of cancellation. A transition whose order is gone, or whose order is no
// longer in the status it was enqueued for, is marked processed without
// side effects. An applied transition enqueues the successor of the new
// status, due after that status' delay.
type ApplyDueTransitionsCommandHandler struct {
	uowFactory LifecycleUoWFactory
	clock      ports.Clock
	logger     *slog.Logger
}

// NewApplyDueTransitionsCommandHandler creates the transition sweep handler.
// The logger receives failures that cannot be written to the failure log.
func NewApplyDueTransitionsCommandHandler(
	uowFactory LifecycleUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) ApplyDueTransitionsCommandHandler {
	return ApplyDueTransitionsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "transition-sweep"),
	}
}

// Handle runs one sweep. Only a failure to list due transitions is returned as an error.
func (h ApplyDueTransitionsCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyDueTransitionsCommand,
) (TransitionReport, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionReport{}, err
	}

	now := h.clock.Now()

	due, err := h.uowFactory.Create().TransitionRepository().GetDueUnprocessed(ctx, now)
	if err != nil {
		return TransitionReport{}, err
	}

	report := TransitionReport{Due: len(due)}
	for _, pt := range due {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		outcome, applyErr := h.apply(ctx, pt.ID(), pt.OrderID(), now)
		if applyErr != nil {
			report.Failed++
			h.logger.ErrorContext(ctx, "failed to apply status transition",
				"transition_id", pt.ID().String(),
				"order_id", pt.OrderID().String(),
				"target", pt.Target().String(),
				"error", applyErr)
			h.recordFailure(ctx, pt, applyErr.Error(), now)
			continue
		}

		switch outcome {
		case transitionApplied:
			report.Applied++
			h.logger.InfoContext(ctx, "order status changed",
				"order_id", pt.OrderID().String(), "from", pt.FromStatus().String(), "to", pt.Target().String())
		case transitionStale:
			report.Stale++
			h.logger.InfoContext(ctx, "discarded stale transition",
				"transition_id", pt.ID().String(), "order_id", pt.OrderID().String())
		case transitionOrphaned:
			report.Orphaned++
			h.logger.WarnContext(ctx, "discarded transition of missing order",
				"transition_id", pt.ID().String(), "order_id", pt.OrderID().String())
		case transitionSkipped:
			report.Skipped++
		}
	}

	return report, nil
}

func (h ApplyDueTransitionsCommandHandler) apply(
	ctx context.Context,
	transitionID, orderID kernel.UUID,
	now time.Time,
) (transitionOutcome, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return 0, err
	}

	pt, ptErr := uow.TransitionRepository().GetForUpdate(ctx, transitionID)
	if ptErr != nil {
		return 0, ptErr
	}

	if pt.IsProcessed() {
		return transitionSkipped, nil
	}

	if o == nil {
		return transitionOrphaned, h.discard(ctx, uow, pt)
	}

	err = o.Advance(pt.FromStatus(), pt.Target(), now)
	if errors.Is(err, order.ErrStaleTransition) {
		return transitionStale, h.discard(ctx, uow, pt)
	}
	if err != nil {
		return 0, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return 0, err
	}

	pt.MarkProcessed()
	if err = uow.TransitionRepository().Update(ctx, pt); err != nil {
		return 0, err
	}

	if _, _, hasNext := o.Status().Next(); hasNext {
		next, nextErr := transition.ScheduleNext(kernel.NewUUID(), o, now)
		if nextErr != nil {
			return 0, nextErr
		}
		if err = uow.TransitionRepository().Add(ctx, next); err != nil {
			return 0, err
		}
	}

	return transitionApplied, uow.Commit(ctx)
}

func (h ApplyDueTransitionsCommandHandler) discard(
	ctx context.Context,
	uow LifecycleUoW,
	pt *transition.PendingTransition,
) error {
	pt.MarkProcessed()
	if err := uow.TransitionRepository().Update(ctx, pt); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// recordFailure writes a STATUS_TRANSITION record when the owner of the
// order can still be resolved. Without an owner the failure is only logged.
func (h ApplyDueTransitionsCommandHandler) recordFailure(
	ctx context.Context,
	pt *transition.PendingTransition,
	message string,
	now time.Time,
) {
	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, pt.OrderID())
	if err != nil {
		h.logger.WarnContext(ctx, "transition failure not recorded, order owner unknown",
			"order_id", pt.OrderID().String(), "error", err)
		return
	}

	record, err := failure.ForStatusTransition(o.ID(), o.CreatedBy(), message, now)
	if err == nil {
		err = addFailure(ctx, h.uowFactory, record)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to record transition failure",
			"order_id", pt.OrderID().String(), "error", err)
	}
}
