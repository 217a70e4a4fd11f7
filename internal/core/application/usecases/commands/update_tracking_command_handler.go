package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// UpdateTrackingCommandHandler edits tracking data on an existing order.
type UpdateTrackingCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateTrackingCommandHandler(uowFactory OrderUoWFactory) UpdateTrackingCommandHandler {
	return UpdateTrackingCommandHandler{uowFactory: uowFactory}
}

func (h UpdateTrackingCommandHandler) Handle(ctx context.Context, cmd UpdateTrackingCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

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

	if err = o.UpdateTracking(cmd.Actor(), cmd.TrackingID(), cmd.DeliveryPartner()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
