// Package coupon provides the Coupon aggregate and the coupon validation rules.
//
// A coupon is looked up by its upper-cased code and is applicable when it is
// active, not expired, under its usage limit, the cart subtotal reaches
// minOrder and the caller belongs to its target audience. Every failed check
// surfaces as errs.CouponInvalidError with a user facing reason.
//
// usedCount only ever grows and never exceeds usageLimit. The in-memory Redeem
// mirrors the conditional update the repository performs inside the order
// creation transaction.
package coupon
