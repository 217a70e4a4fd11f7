package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// CompleteRefundCommandHandler completes a pending refund. A second attempt
// fails with errs.RefundNotApplicableError; two concurrent attempts are
// serialized by the order version check.
type CompleteRefundCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      ports.Clock
	logger     *slog.Logger
}

func NewCompleteRefundCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clock ports.Clock,
	logger *slog.Logger,
) CompleteRefundCommandHandler {
	return CompleteRefundCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		logger:     logger.With("component", "complete_refund_handler"),
	}
}

func (h CompleteRefundCommandHandler) Handle(ctx context.Context, cmd CompleteRefundCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := ports.FindOrder(ctx, orderRepo, cmd.Ref())
	if err != nil {
		return nil, err
	}

	if err = o.CompleteRefund(cmd.Actor(), cmd.RefundUTR(), now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Refund completed", "order_code", o.Code().String())
	publishAfterCommit(ctx, h.publisher, h.logger, ports.NewOrderEvent(ports.OrderRefundCompleted, o, now))

	return o, nil
}
