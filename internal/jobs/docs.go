// Package jobs provides scheduled background tasks for the tableside system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping the request path cannot do.
//
// # Available Jobs
//
// 1. AbandonEmptySessionsJob - Runs every minute to close ACTIVE sessions
// that never received an order and have outlived the configured threshold.
// Such sessions appear when a placement opens a session and then fails, and
// they block the table because only one session per table may be active.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(abandonEmptySessionsHandler, 30*time.Minute, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep logs failures and the count of abandoned sessions; a failing
// sweep run never affects request handling and is retried on the next tick.
package jobs
