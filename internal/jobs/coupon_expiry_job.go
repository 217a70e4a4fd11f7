package jobs

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultCouponExpirySchedule runs the sweep every fifteen minutes.
const DefaultCouponExpirySchedule = "0 */15 * * * *"

type CouponExpiryHandler interface {
	Handle(ctx context.Context, cmd commands.DeactivateExpiredCouponsCommand) (int, error)
}

// CouponExpiryJob switches off coupons whose expiry has passed.
type CouponExpiryJob struct {
	handler  CouponExpiryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCouponExpiryJob creates the sweep. An empty schedule falls back to
// DefaultCouponExpirySchedule. Schedules use the six field cron format with seconds.
func NewCouponExpiryJob(handler CouponExpiryHandler, schedule string, logger *slog.Logger) *CouponExpiryJob {
	if schedule == "" {
		schedule = DefaultCouponExpirySchedule
	}
	return &CouponExpiryJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "coupon_expiry_job"),
	}
}

// Start registers the sweep and starts the scheduler.
func (j *CouponExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Coupon expiry job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *CouponExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Coupon expiry job stopped")
}

func (j *CouponExpiryJob) run() {
	ctx := context.Background()

	deactivated, err := j.handler.Handle(ctx, commands.NewDeactivateExpiredCouponsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Coupon expiry job failed", "error", err)
		return
	}

	if deactivated > 0 {
		j.logger.InfoContext(ctx, "Expired coupons deactivated", "count", deactivated)
	}
}
