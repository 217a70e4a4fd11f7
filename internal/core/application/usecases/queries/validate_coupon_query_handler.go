package queries

import (
	"context"

	"ordering/internal/core/application/checkout"
	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
)

// ValidateCouponQueryResponse describes a coupon that currently applies.
// Amount is what the coupon alone would take off cartTotal; the tier may
// still beat it at checkout.
type ValidateCouponQueryResponse struct {
	Discount coupon.Discount
	Amount   kernel.Money
}

// ValidateCouponQueryHandler runs the coupon validator without redeeming.
type ValidateCouponQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      ports.Clock
}

func NewValidateCouponQueryHandler(uowFactory ports.UnitOfWorkFactory, clock ports.Clock) ValidateCouponQueryHandler {
	return ValidateCouponQueryHandler{uowFactory: uowFactory, clock: clock}
}

func (h ValidateCouponQueryHandler) Handle(ctx context.Context, query ValidateCouponQuery) (ValidateCouponQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ValidateCouponQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	c, err := checkout.NewCouponValidator(uow.CouponRepository(), uow.OrderRepository()).
		Validate(ctx, query.code, query.userID, query.cartTotal, h.clock.Now())
	if err != nil {
		return ValidateCouponQueryResponse{}, err
	}

	return ValidateCouponQueryResponse{
		Discount: c.Descriptor(),
		Amount:   c.DiscountFor(query.cartTotal),
	}, nil
}
