// Package jobs provides scheduled background tasks for the parcel tracker.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. TrackingRefreshJob - Polls the carrier tracking feed for every
// non-terminal parcel and stamps the returned status and timestamp.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(refreshTrackingHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed lookup for one parcel is logged and skipped inside the handler;
// only transaction-level failures surface as job errors, and those are
// logged and retried on the next tick.
package jobs
