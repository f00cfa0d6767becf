package jobs

import (
	"context"
	"log/slog"

	"foodorder/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ActivationSweeper runs one activation sweep.
type ActivationSweeper interface {
	Handle(ctx context.Context, cmd commands.ActivateScheduledOrdersCommand) (commands.ActivationReport, error)
}

// ScheduledActivationJob periodically starts deferred orders whose time has come.
// A tick that is still running when the next one fires makes the next one skip.
type ScheduledActivationJob struct {
	handler  ActivationSweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduledActivationJob creates the job. schedule is any robfig/cron spec,
// for example "@every 60s".
func NewScheduledActivationJob(handler ActivationSweeper, schedule string, logger *slog.Logger) *ScheduledActivationJob {
	logger = logger.With("component", "scheduled_activation_job")
	ctx, cancel := context.WithCancel(context.Background())
	return &ScheduledActivationJob{
		handler:  handler,
		schedule: schedule,
		cron:     newCron(logger),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start registers the sweep and starts scheduling it. Ticks run with a
// context derived from ctx, so canceling ctx interrupts a running sweep.
func (j *ScheduledActivationJob) Start(ctx context.Context) error {
	if _, err := j.cron.AddFunc(j.schedule, j.tick); err != nil {
		return err
	}

	j.cancel()
	j.ctx, j.cancel = context.WithCancel(ctx)
	j.cron.Start()
	j.logger.InfoContext(ctx, "Scheduled activation job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling, cancels a running tick and waits for it to return.
func (j *ScheduledActivationJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Scheduled activation job stopped")
}

func (j *ScheduledActivationJob) tick() {
	ctx := j.ctx

	report, err := j.handler.Handle(ctx, commands.NewActivateScheduledOrdersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Scheduled activation sweep failed", "error", err)
		return
	}

	if report.Due == 0 {
		return
	}

	j.logger.InfoContext(ctx, "Scheduled activation sweep finished",
		"due", report.Due,
		"activated", report.Activated,
		"rejected", report.Rejected,
		"skipped", report.Skipped,
		"failed", report.Failed)
}
