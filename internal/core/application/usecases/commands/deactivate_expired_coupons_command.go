package commands

import (
	"errors"

	"ordering/internal/pkg/guard"
)

// DeactivateExpiredCouponsCommand triggers the coupon expiry sweep.
//
// Example:
//
//	cmd := NewDeactivateExpiredCouponsCommand()
//	handler := NewDeactivateExpiredCouponsCommandHandler(uowFactory, clock)
//
//	// Run from the scheduler
//	n, err := handler.Handle(ctx, cmd)
type DeactivateExpiredCouponsCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrDeactivateExpiredCouponsCommandIsNotConstructed = errors.New(
		"DeactivateExpiredCouponsCommand must be created via NewDeactivateExpiredCouponsCommand constructor",
	)
)

// NewDeactivateExpiredCouponsCommand creates a parameterless sweep command.
func NewDeactivateExpiredCouponsCommand() DeactivateExpiredCouponsCommand {
	return DeactivateExpiredCouponsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *DeactivateExpiredCouponsCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateExpiredCouponsCommandIsNotConstructed)
}
