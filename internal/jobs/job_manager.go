package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Schedules holds the cron specs of both sweeps.
type Schedules struct {
	Activation string
	Transition string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	activationJob *ScheduledActivationJob
	transitionJob *StatusTransitionJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	activationHandler ActivationSweeper,
	transitionHandler TransitionSweeper,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		activationJob: NewScheduledActivationJob(activationHandler, schedules.Activation, logger),
		transitionJob: NewStatusTransitionJob(transitionHandler, schedules.Transition, logger),
	}
}

// StartAll starts all scheduled jobs. Their ticks run under ctx.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll(ctx context.Context) error {
	if err := jm.transitionJob.Start(ctx); err != nil {
		return fmt.Errorf("failed to start status transition job: %w", err)
	}

	if err := jm.activationJob.Start(ctx); err != nil {
		// Stop already started jobs if this one fails
		jm.transitionJob.Stop()
		return fmt.Errorf("failed to start scheduled activation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.activationJob.Stop()
	jm.transitionJob.Stop()
}

// newCron builds a scheduler that accepts both 5-field specs and descriptors
// like "@every 5s", skips overlapping ticks and logs through slog.
func newCron(logger *slog.Logger) *cron.Cron {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))
	return cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
}
