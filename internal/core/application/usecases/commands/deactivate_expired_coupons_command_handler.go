package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// DeactivateExpiredCouponsCommandHandler switches off every active coupon whose
// expiry has passed. Expired coupons are already rejected at validation time;
// the sweep keeps the stored isActive flag in line with that.
type DeactivateExpiredCouponsCommandHandler struct {
	uowFactory CouponUoWFactory
	clock      ports.Clock
}

func NewDeactivateExpiredCouponsCommandHandler(
	uowFactory CouponUoWFactory,
	clock ports.Clock,
) DeactivateExpiredCouponsCommandHandler {
	return DeactivateExpiredCouponsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns how many coupons were deactivated. All updates occur within a
// single transaction.
func (h *DeactivateExpiredCouponsCommandHandler) Handle(ctx context.Context, cmd DeactivateExpiredCouponsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	couponRepo := uow.CouponRepository()

	expired, err := couponRepo.ListExpiredActive(ctx, h.clock.Now())
	if err != nil {
		return 0, err
	}

	for _, c := range expired {
		c.Deactivate()
		if err = couponRepo.Update(ctx, c); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(expired), nil
}
