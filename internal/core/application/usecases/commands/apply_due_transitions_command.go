package commands

import (
	"errors"

	"foodorder/internal/pkg/guard"
)

var ErrApplyDueTransitionsCommandIsNotConstructed = errors.New(
	"ApplyDueTransitionsCommand must be created via NewApplyDueTransitionsCommand constructor",
)

// ApplyDueTransitionsCommand runs one transition sweep over the queue.
type ApplyDueTransitionsCommand struct {
	guard guard.ConstructorGuard
}

// NewApplyDueTransitionsCommand creates the command for one transition sweep.
func NewApplyDueTransitionsCommand() ApplyDueTransitionsCommand {
	return ApplyDueTransitionsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ApplyDueTransitionsCommand) Validate() error {
	return c.guard.Validate(ErrApplyDueTransitionsCommandIsNotConstructed)
}

// TransitionReport summarises one transition sweep.
type TransitionReport struct {
	// Due is the number of unprocessed transitions found due.
	Due int
	// Applied transitions changed their order's status.
	Applied int
	// Stale transitions found their order in another status and were discarded.
	Stale int
	// Orphaned transitions referenced a missing order and were discarded.
	Orphaned int
	// Skipped transitions were already processed by a concurrent sweep.
	Skipped int
	// Failed transitions hit an unexpected error and stay queued.
	Failed int
}
