package commands

import (
	"errors"

	"foodorder/internal/pkg/guard"
)

var ErrActivateScheduledOrdersCommandIsNotConstructed = errors.New(
	"ActivateScheduledOrdersCommand must be created via NewActivateScheduledOrdersCommand constructor",
)

// ActivateScheduledOrdersCommand runs one activation sweep over deferred orders that became due.
type ActivateScheduledOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewActivateScheduledOrdersCommand creates the command for one activation sweep.
func NewActivateScheduledOrdersCommand() ActivateScheduledOrdersCommand {
	return ActivateScheduledOrdersCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ActivateScheduledOrdersCommand) Validate() error {
	return c.guard.Validate(ErrActivateScheduledOrdersCommandIsNotConstructed)
}

// ActivationReport summarises one activation sweep.
type ActivationReport struct {
	// Due is the number of deferred orders found due.
	Due int
	// Activated orders became active and got their first transition.
	Activated int
	// Rejected orders stayed waiting because capacity was exhausted.
	Rejected int
	// Skipped orders were activated or canceled by someone else meanwhile.
	Skipped int
	// Failed orders hit an unexpected error.
	Failed int
}
