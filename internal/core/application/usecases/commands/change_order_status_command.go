package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand asks the order state machine for one transition.
//
// Example:
//
//	ref, _ := order.ParseReference("UK-2602-0001")
//	cmd, err := NewChangeOrderStatusCommand(actor, ref, order.StatusChange{
//	    To:              order.Processing,
//	    TrackingID:      "TRK123",
//	    DeliveryPartner: "BlueDart",
//	})
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	actor  kernel.Actor
	ref    order.Reference
	change order.StatusChange

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	actor kernel.Actor,
	ref order.Reference,
	change order.StatusChange,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		actor:  actor,
		change: change,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireSignedIn(actor),
		cmd.setRef(ref),
		change.To.Validate(),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) Actor() kernel.Actor        { return c.actor }
func (c ChangeOrderStatusCommand) Ref() order.Reference       { return c.ref }
func (c ChangeOrderStatusCommand) Change() order.StatusChange { return c.change }

func (c *ChangeOrderStatusCommand) setRef(ref order.Reference) error {
	if ref.IsZero() {
		return errs.NewValueIsRequiredError("orderId")
	}
	c.ref = ref
	return nil
}

func requireSignedIn(actor kernel.Actor) error {
	if actor.IsAnonymous() {
		return errs.NewAccessDeniedError("sign in required")
	}
	return nil
}

func requireAdmin(actor kernel.Actor) error {
	if !actor.IsAdmin() {
		return errs.NewAccessDeniedError("admin role required")
	}
	return nil
}
