package queries

import (
	"context"

	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// TrackOrderQueryHandler loads the order and passes it through the visibility gate.
type TrackOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	gate       services.VisibilityGate
}

func NewTrackOrderQueryHandler(uowFactory ports.UnitOfWorkFactory, gate services.VisibilityGate) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{uowFactory: uowFactory, gate: gate}
}

func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (services.TrackedOrder, error) {
	if err := query.Validate(); err != nil {
		return services.TrackedOrder{}, err
	}

	o, err := ports.FindOrder(ctx, h.uowFactory.Create().OrderRepository(), query.ref)
	if err != nil {
		return services.TrackedOrder{}, err
	}

	return h.gate.Reveal(o, query.viewer)
}
