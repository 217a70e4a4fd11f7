package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrUpdateTrackingCommandIsNotConstructed = errors.New(
		"UpdateTrackingCommand must be created via NewUpdateTrackingCommand constructor",
	)
)

// UpdateTrackingCommand edits tracking id and delivery partner without a
// status change. Empty fields keep their current value.
type UpdateTrackingCommand struct { //nolint:recvcheck //using for validation
	actor           kernel.Actor
	ref             order.Reference
	trackingID      string
	deliveryPartner string

	guard guard.ConstructorGuard
}

func NewUpdateTrackingCommand(
	actor kernel.Actor,
	ref order.Reference,
	trackingID, deliveryPartner string,
) (UpdateTrackingCommand, error) {
	if err := errors.Join(requireAdmin(actor), requireRef(ref)); err != nil {
		return UpdateTrackingCommand{}, err
	}

	return UpdateTrackingCommand{
		actor:           actor,
		ref:             ref,
		trackingID:      trackingID,
		deliveryPartner: deliveryPartner,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateTrackingCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTrackingCommandIsNotConstructed)
}

func (c UpdateTrackingCommand) Actor() kernel.Actor     { return c.actor }
func (c UpdateTrackingCommand) Ref() order.Reference    { return c.ref }
func (c UpdateTrackingCommand) TrackingID() string      { return c.trackingID }
func (c UpdateTrackingCommand) DeliveryPartner() string { return c.deliveryPartner }

func requireRef(ref order.Reference) error {
	if ref.IsZero() {
		return errs.NewValueIsRequiredError("orderId")
	}
	return nil
}
