// Package jobs provides scheduled background tasks for the forwarding
// engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. QuoteExpiryJob - Runs every minute to expire stale shipment quotes
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireQuotesHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The expiry sweep logs failures and keeps running; quote expiry is also
// enforced synchronously at payment time, so a missed sweep never lets an
// expired quote be paid.
package jobs
