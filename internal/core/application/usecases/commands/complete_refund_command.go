package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrCompleteRefundCommandIsNotConstructed = errors.New(
		"CompleteRefundCommand must be created via NewCompleteRefundCommand constructor",
	)
)

// CompleteRefundCommand records the bank transfer that settles a pending refund.
type CompleteRefundCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	ref       order.Reference
	refundUTR string

	guard guard.ConstructorGuard
}

func NewCompleteRefundCommand(actor kernel.Actor, ref order.Reference, refundUTR string) (CompleteRefundCommand, error) {
	refundUTR = strings.TrimSpace(refundUTR)

	var utrErr error
	if refundUTR == "" {
		utrErr = errs.NewValueIsRequiredError("refundUtrNumber")
	}

	if err := errors.Join(requireAdmin(actor), requireRef(ref), utrErr); err != nil {
		return CompleteRefundCommand{}, err
	}

	return CompleteRefundCommand{
		actor:     actor,
		ref:       ref,
		refundUTR: refundUTR,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteRefundCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRefundCommandIsNotConstructed)
}

func (c CompleteRefundCommand) Actor() kernel.Actor  { return c.actor }
func (c CompleteRefundCommand) Ref() order.Reference { return c.ref }
func (c CompleteRefundCommand) RefundUTR() string    { return c.refundUTR }
