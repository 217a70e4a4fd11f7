package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/coupon"
)

// CouponRepository defines the persistence contract for coupons.
type CouponRepository interface {
	// Add persists a new coupon. A duplicate code fails with errs.ValueIsInvalidError.
	Add(ctx context.Context, c *coupon.Coupon) error

	// Update persists admin editable fields. usedCount is only ever changed by Redeem.
	Update(ctx context.Context, c *coupon.Coupon) error

	// GetByCode looks a coupon up by its normalized code.
	GetByCode(ctx context.Context, code string) (*coupon.Coupon, error)

	// Redeem increments usedCount by one in a single conditional statement that
	// also checks the active flag, expiry and usage limit. When the statement
	// matches no row the coupon was exhausted concurrently and Redeem fails with
	// errs.CouponInvalidError. On success c.Redeem has been applied as well.
	Redeem(ctx context.Context, c *coupon.Coupon, now time.Time) error

	// ListExpiredActive returns active coupons whose expiresAt is not after now.
	ListExpiredActive(ctx context.Context, now time.Time) ([]*coupon.Coupon, error)
}
