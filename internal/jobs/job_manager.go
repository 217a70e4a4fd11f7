package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions of the scheduled jobs. Empty values
// use the job defaults.
type Schedules struct {
	CouponExpiry   string
	PendingRefunds string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	couponExpiryJob   *CouponExpiryJob
	pendingRefundsJob *PendingRefundsJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	couponExpiryHandler CouponExpiryHandler,
	pendingRefundsHandler PendingRefundsHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		couponExpiryJob:   NewCouponExpiryJob(couponExpiryHandler, schedules.CouponExpiry, logger),
		pendingRefundsJob: NewPendingRefundsJob(pendingRefundsHandler, schedules.PendingRefunds, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.couponExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start coupon expiry job: %w", err)
	}

	if err := jm.pendingRefundsJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.couponExpiryJob.Stop()
		return fmt.Errorf("failed to start pending refunds job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pendingRefundsJob.Stop()
	jm.couponExpiryJob.Stop()
}
