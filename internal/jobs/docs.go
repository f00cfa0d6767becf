// Package jobs provides scheduled background tasks for the ordering service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to drive the order lifecycle forward without a request.
//
// # Available Jobs
//
// 1. ScheduledActivationJob - activates deferred orders whose scheduled time has passed (default "@every 60s")
// 2. StatusTransitionJob - applies due status transitions PREPARING, IN_DELIVERY and DELIVERED (default "@every 5s")
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(activationHandler, transitionHandler, jobs.Schedules{
//		Activation: "@every 60s",
//		Transition: "@every 5s",
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Specs use the standard five-field syntax or robfig descriptors. A tick
// that is still running when the next one fires causes the next one to be
// skipped, so sweeps of the same kind never overlap inside one process.
// Sweeps in different processes are serialized by the store's row locks.
//
// # Error Handling
//
// Per-item failures are recorded by the sweep handlers and never stop a
// sweep. Only a failure to list due work is logged as an error here.
package jobs
