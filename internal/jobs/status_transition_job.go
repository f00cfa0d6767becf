package jobs

import (
	"context"
	"log/slog"

	"foodorder/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// TransitionSweeper runs one transition sweep.
type TransitionSweeper interface {
	Handle(ctx context.Context, cmd commands.ApplyDueTransitionsCommand) (commands.TransitionReport, error)
}

// StatusTransitionJob periodically applies due status transitions.
type StatusTransitionJob struct {
	handler  TransitionSweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewStatusTransitionJob creates the job. schedule is any robfig/cron spec,
// for example "@every 5s".
func NewStatusTransitionJob(handler TransitionSweeper, schedule string, logger *slog.Logger) *StatusTransitionJob {
	logger = logger.With("component", "status_transition_job")
	ctx, cancel := context.WithCancel(context.Background())
	return &StatusTransitionJob{
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
func (j *StatusTransitionJob) Start(ctx context.Context) error {
	if _, err := j.cron.AddFunc(j.schedule, j.tick); err != nil {
		return err
	}

	j.cancel()
	j.ctx, j.cancel = context.WithCancel(ctx)
	j.cron.Start()
	j.logger.InfoContext(ctx, "Status transition job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling, cancels a running tick and waits for it to return.
func (j *StatusTransitionJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Status transition job stopped")
}

func (j *StatusTransitionJob) tick() {
	ctx := j.ctx

	report, err := j.handler.Handle(ctx, commands.NewApplyDueTransitionsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Status transition sweep failed", "error", err)
		return
	}

	if report.Due == 0 {
		return
	}

	level := slog.LevelInfo
	if report.Failed > 0 {
		level = slog.LevelWarn
	}

	j.logger.Log(ctx, level, "Status transition sweep finished",
		"due", report.Due,
		"applied", report.Applied,
		"stale", report.Stale,
		"orphaned", report.Orphaned,
		"skipped", report.Skipped,
		"failed", report.Failed)
}
