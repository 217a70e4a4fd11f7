package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies a status transition under
// compare-and-set: the repository update fails with errs.VersionIsInvalidError
// if another transition committed after the order was read, and the whole
// request is rejected with nothing written.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      ports.Clock
	logger     *slog.Logger
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clock ports.Clock,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		logger:     logger.With("component", "change_order_status_handler"),
	}
}

// Handle returns the updated order.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
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

	from := o.Status()
	if err = o.ChangeStatus(cmd.Actor(), cmd.Change(), now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Order status changed",
		"order_code", o.Code().String(),
		"from", from.String(),
		"to", o.Status().String(),
		"actor_role", cmd.Actor().Role().String(),
	)
	publishAfterCommit(ctx, h.publisher, h.logger, ports.NewOrderEvent(ports.OrderStatusChanged, o, now))

	return o, nil
}
