// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are cron based (github.com/robfig/cron/v3, six field expressions with
// seconds) and call the same use case handlers as the HTTP API.
//
// # Available Jobs
//
// 1. CouponExpiryJob - deactivates coupons whose expiry has passed (default every 15 minutes)
// 2. PendingRefundsJob - logs prepaid cancellations still waiting for a refund (default hourly)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(expiryHandler, pendingRefundsHandler, jobs.Schedules{
//		CouponExpiry: cfg.CouponExpirySchedule,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		return fmt.Errorf("start jobs: %w", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the next tick tries again. Failed job starts stop
// any already running jobs.
package jobs
