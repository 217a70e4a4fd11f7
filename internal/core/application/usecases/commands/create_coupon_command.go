package commands

import (
	"errors"

	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateCouponCommandIsNotConstructed = errors.New(
		"CreateCouponCommand must be created via NewCreateCouponCommand constructor",
	)
)

// CreateCouponCommand registers a new coupon. The coupon itself is validated by
// the handler through coupon.NewCoupon.
type CreateCouponCommand struct { //nolint:recvcheck //using for validation
	couponID kernel.UUID
	params   coupon.Params

	guard guard.ConstructorGuard
}

func NewCreateCouponCommand(actor kernel.Actor, couponID kernel.UUID, params coupon.Params) (CreateCouponCommand, error) {
	if err := errors.Join(requireAdmin(actor), couponID.Validate()); err != nil {
		return CreateCouponCommand{}, err
	}

	return CreateCouponCommand{
		couponID: couponID,
		params:   params,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCouponCommand) Validate() error {
	return c.guard.Validate(ErrCreateCouponCommandIsNotConstructed)
}

func (c CreateCouponCommand) CouponID() kernel.UUID { return c.couponID }
func (c CreateCouponCommand) Params() coupon.Params { return c.params }
