package services

import (
	"fmt"

	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/tier"
	"ordering/internal/pkg/errs"
)

// ShippingRule is the flat shipping charge waived once the subtotal reaches
// FreeShippingThreshold.
type ShippingRule struct {
	FreeShippingThreshold kernel.Money
	ShippingCharge        kernel.Money
}

// ShippingFor returns zero when subtotal >= FreeShippingThreshold, else ShippingCharge.
func (r ShippingRule) ShippingFor(subtotal kernel.Money) kernel.Money {
	if subtotal.LessThan(r.FreeShippingThreshold) {
		return r.ShippingCharge
	}
	return kernel.Money{}
}

// Quote is the pricing breakdown for a cart.
type Quote struct {
	// Charges is the breakdown stored on the order.
	Charges order.Charges

	// CouponDiscount and TierDiscount are the two competing candidates; only the
	// larger one ends up in Charges.
	CouponDiscount kernel.Money
	TierDiscount   kernel.Money

	// Coupon is set when a coupon was offered, whether or not it won.
	Coupon *coupon.Discount
	// Tier is set when a tier qualified.
	Tier *tier.Tier
}

// CouponApplied reports whether the coupon discount won and must be redeemed.
func (q Quote) CouponApplied() bool {
	return q.Charges.DiscountType() == order.CouponDiscount
}

// PricingEngine computes order charges.
//
// Business rules:
//   - subtotal = Σ(unit price × quantity)
//   - coupon discount: percent coupons round(subtotal × value / 100) capped at
//     maxDiscount, flat coupons their value even above the subtotal
//   - tier discount: the qualifying tier with the largest minAmount
//   - applied discount = max(coupon, tier); the two are never summed and the
//     coupon wins a tie
//   - shipping per ShippingRule
//   - total = subtotal - discount + shipping, clamped at zero
//
// Example usage:
//
//	engine := services.NewPricingEngine(services.ShippingRule{
//	    FreeShippingThreshold: kernel.MoneyFromInt(499),
//	    ShippingCharge:        kernel.MoneyFromInt(49),
//	})
//	quote, err := engine.Quote(items, save10, tiers)
//	if err != nil {
//	    return err
//	}
//	if quote.CouponApplied() {
//	    // redeem the coupon in the same transaction that stores the order
//	}
type PricingEngine struct {
	shipping ShippingRule
}

// NewPricingEngine creates a PricingEngine with the given shipping rule.
func NewPricingEngine(shipping ShippingRule) PricingEngine {
	return PricingEngine{shipping: shipping}
}

// ShippingRule returns the configured shipping rule.
func (e PricingEngine) ShippingRule() ShippingRule {
	return e.shipping
}

// Quote prices items.
//
// Parameters:
//   - items: line item snapshots, at least one
//   - c: the already validated coupon, or nil when none was supplied
//   - tiers: the configured discount tiers
//
// Returns:
//   - Quote: the breakdown and the competing discount candidates
//   - error: validation errors for an empty cart or an unconstructed coupon
func (e PricingEngine) Quote(items []order.LineItem, c *coupon.Coupon, tiers []tier.Tier) (Quote, error) {
	if len(items) == 0 {
		return Quote{}, errs.NewValueIsRequiredError("items")
	}

	subtotal := order.Subtotal(items)
	return e.QuoteSubtotal(subtotal, c, tiers)
}

// QuoteSubtotal prices a cart already reduced to its subtotal.
func (e PricingEngine) QuoteSubtotal(subtotal kernel.Money, c *coupon.Coupon, tiers []tier.Tier) (Quote, error) {
	q := Quote{}

	if c != nil {
		if err := c.Validate(); err != nil {
			return Quote{}, err
		}
		d := c.Descriptor()
		q.Coupon = &d
		q.CouponDiscount = c.DiscountFor(subtotal)
	}

	if best, ok := tier.Select(tiers, subtotal); ok {
		q.Tier = &best
		q.TierDiscount = best.DiscountFor(subtotal)
	}

	discount, discountType, code := kernel.Money{}, order.NoDiscount, ""
	switch {
	case c != nil && q.CouponDiscount.IsPositive() && !q.CouponDiscount.LessThan(q.TierDiscount):
		discount, discountType, code = q.CouponDiscount, order.CouponDiscount, c.Code()
	case q.TierDiscount.IsPositive():
		discount, discountType = q.TierDiscount, order.TierDiscount
	}

	charges, err := order.NewCharges(subtotal, discount, discountType, code, e.shipping.ShippingFor(subtotal))
	if err != nil {
		return Quote{}, fmt.Errorf("price cart: %w", err)
	}
	q.Charges = charges

	return q, nil
}
