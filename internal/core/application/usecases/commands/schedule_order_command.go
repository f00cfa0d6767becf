package commands

import (
	"errors"
	"slices"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/user"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrScheduleOrderCommandIsNotConstructed = errors.New(
	"ScheduleOrderCommand must be created via NewScheduleOrderCommand constructor",
)

// ScheduleOrderCommand requests an order that starts processing at scheduledFor.
// Whether scheduledFor lies in the future is decided by the handler against its clock.
type ScheduleOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actor        user.Actor
	lines        []LineRequest
	scheduledFor time.Time

	guard guard.ConstructorGuard
}

// NewScheduleOrderCommand validates the request. Whether scheduledFor lies in
// the future is decided by the handler against its clock.
func NewScheduleOrderCommand(
	orderID kernel.UUID,
	actor user.Actor,
	lines []LineRequest,
	scheduledFor time.Time,
) (ScheduleOrderCommand, error) {
	cmd := ScheduleOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setLines(lines),
		cmd.setScheduledFor(scheduledFor),
	); err != nil {
		return ScheduleOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ScheduleOrderCommand) Validate() error {
	return c.guard.Validate(ErrScheduleOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c ScheduleOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the scheduling user.
func (c ScheduleOrderCommand) Actor() user.Actor {
	return c.actor
}

// Lines returns a copy of the requested lines.
func (c ScheduleOrderCommand) Lines() []LineRequest {
	return slices.Clone(c.lines)
}

// ScheduledFor returns the requested activation time.
func (c ScheduleOrderCommand) ScheduledFor() time.Time {
	return c.scheduledFor
}

func (c *ScheduleOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ScheduleOrderCommand) setActor(actor user.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *ScheduleOrderCommand) setLines(lines []LineRequest) error {
	if err := validateLineRequests(lines); err != nil {
		return err
	}
	c.lines = slices.Clone(lines)
	return nil
}

func (c *ScheduleOrderCommand) setScheduledFor(scheduledFor time.Time) error {
	if scheduledFor.IsZero() {
		return errs.NewValueIsRequiredError("scheduledFor")
	}
	c.scheduledFor = scheduledFor
	return nil
}
