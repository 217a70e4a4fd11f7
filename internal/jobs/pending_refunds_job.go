package jobs

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// DefaultPendingRefundsSchedule reports once an hour.
const DefaultPendingRefundsSchedule = "0 0 * * * *"

type PendingRefundsHandler interface {
	Handle(ctx context.Context, query queries.ListPendingRefundsQuery) ([]queries.ListPendingRefundsQueryResponse, error)
}

// PendingRefundsJob logs the refund queue so operators notice prepaid
// cancellations that still wait for money to be returned.
type PendingRefundsJob struct {
	handler  PendingRefundsHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewPendingRefundsJob(handler PendingRefundsHandler, schedule string, logger *slog.Logger) *PendingRefundsJob {
	if schedule == "" {
		schedule = DefaultPendingRefundsSchedule
	}
	return &PendingRefundsJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pending_refunds_job"),
	}
}

// Start registers the report and starts the scheduler.
func (j *PendingRefundsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending refunds job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *PendingRefundsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pending refunds job stopped")
}

func (j *PendingRefundsJob) run() {
	ctx := context.Background()

	pending, err := j.handler.Handle(ctx, queries.NewListPendingRefundsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending refunds job failed", "error", err)
		return
	}

	if len(pending) == 0 {
		return
	}

	var total kernel.Money
	for _, p := range pending {
		total = total.Add(p.TotalPrice)
	}

	j.logger.WarnContext(ctx, "Refunds awaiting completion",
		"count", len(pending),
		"total", total.String(),
		"oldest_order_code", pending[0].Code,
		"oldest_cancelled_at", pending[0].CancelledAt,
	)
}
