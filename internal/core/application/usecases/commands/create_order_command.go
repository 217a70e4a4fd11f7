package commands

import (
	"errors"
	"slices"

	"ordering/internal/core/application/checkout"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a checkout: the cart, where to ship it, how it
// is paid and the totals the client displayed to the customer.
//
// Example:
//
//	submitted, _ := order.NewCharges(itemsPrice, discount, order.CouponDiscount, "SAVE10", shipping)
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), actor, lines, address, payment, submitted)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	userID    kernel.UUID
	lines     []checkout.CartLine
	address   kernel.Address
	payment   order.Payment
	submitted order.Charges

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the checkout input. The caller must be
// signed in; the order belongs to them.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	lines []checkout.CartLine,
	address kernel.Address,
	payment order.Payment,
	submitted order.Charges,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		submitted: submitted,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(actor),
		cmd.setLines(lines),
		cmd.setAddress(address),
		cmd.setPayment(payment),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID            { return c.orderID }
func (c CreateOrderCommand) UserID() kernel.UUID             { return c.userID }
func (c CreateOrderCommand) Lines() []checkout.CartLine      { return slices.Clone(c.lines) }
func (c CreateOrderCommand) ShippingAddress() kernel.Address { return c.address }
func (c CreateOrderCommand) Payment() order.Payment          { return c.payment }

// Submitted returns the totals the client computed. The order is only created
// when the server side quote matches them exactly.
func (c CreateOrderCommand) Submitted() order.Charges { return c.submitted }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(actor kernel.Actor) error {
	userID, ok := actor.UserID()
	if !ok {
		return errs.NewAccessDeniedError("sign in to place an order")
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []checkout.CartLine) error {
	if err := checkout.ValidateCart(lines); err != nil {
		return err
	}
	c.lines = slices.Clone(lines)
	return nil
}

func (c *CreateOrderCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *CreateOrderCommand) setPayment(payment order.Payment) error {
	if err := payment.Method().Validate(); err != nil {
		return err
	}
	c.payment = payment
	return nil
}
