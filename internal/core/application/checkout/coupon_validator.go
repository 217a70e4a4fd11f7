package checkout

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

type (
	// CouponFinder is the read side of ports.CouponRepository.
	CouponFinder interface {
		GetByCode(ctx context.Context, code string) (*coupon.Coupon, error)
	}

	// OrderCounter is the read side of ports.OrderRepository used for newUsers targeting.
	OrderCounter interface {
		CountByUser(ctx context.Context, userID kernel.UUID) (int, error)
	}
)

// CouponValidator resolves a coupon code for a caller and cart subtotal.
//
// Example:
//
//	validator := checkout.NewCouponValidator(uow.CouponRepository(), uow.OrderRepository())
//	c, err := validator.Validate(ctx, "save10", userID, subtotal, now)
//	if errors.Is(err, errs.ErrCouponInvalid) {
//	    // show the reason to the customer
//	}
type CouponValidator struct {
	coupons CouponFinder
	orders  OrderCounter
}

func NewCouponValidator(coupons CouponFinder, orders OrderCounter) CouponValidator {
	return CouponValidator{coupons: coupons, orders: orders}
}

// Validate upper-cases code, loads the coupon and runs every applicability
// check. A missing coupon is reported as errs.CouponInvalidError too.
// Prior orders are only counted for newUsers coupons.
func (v CouponValidator) Validate(
	ctx context.Context,
	code string,
	userID kernel.UUID,
	subtotal kernel.Money,
	now time.Time,
) (*coupon.Coupon, error) {
	code = coupon.NormalizeCode(code)
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	c, err := v.coupons.GetByCode(ctx, code)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewCouponInvalidError(code, coupon.ReasonNotFound)
	}
	if err != nil {
		return nil, err
	}

	eligibility := coupon.Eligibility{UserID: userID, Subtotal: subtotal, Now: now}
	if c.Target() == coupon.TargetNewUsers {
		if eligibility.PriorOrders, err = v.orders.CountByUser(ctx, userID); err != nil {
			return nil, err
		}
	}

	if err = c.CheckApplicable(eligibility); err != nil {
		return nil, err
	}

	return c, nil
}
