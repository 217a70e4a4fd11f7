package order

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// DiscountType records which source produced an order's discount.
type DiscountType int

const (
	NoDiscount DiscountType = iota
	CouponDiscount
	TierDiscount
)

func (d DiscountType) String() string {
	switch d {
	case CouponDiscount:
		return "coupon"
	case TierDiscount:
		return "tier"
	default:
		return ""
	}
}

// ParseDiscountType accepts "", "coupon" or "tier".
func ParseDiscountType(s string) (DiscountType, error) {
	switch s {
	case "":
		return NoDiscount, nil
	case "coupon":
		return CouponDiscount, nil
	case "tier":
		return TierDiscount, nil
	default:
		return NoDiscount, errs.NewValueIsInvalidErrorWithCause(
			"discountType",
			fmt.Errorf("%q is not one of coupon, tier", s),
		)
	}
}

// Charges is the price breakdown fixed at checkout.
// Total is itemsPrice - discountAmount + shippingPrice, clamped at zero.
type Charges struct {
	itemsPrice     kernel.Money
	discountAmount kernel.Money
	discountType   DiscountType
	discountCode   string
	shippingPrice  kernel.Money
	totalPrice     kernel.Money
}

// NewCharges derives the total and checks that the discount fields agree:
// a coupon discount carries its code, a tier discount carries none, and
// NoDiscount means a zero amount.
func NewCharges(
	itemsPrice kernel.Money,
	discountAmount kernel.Money,
	discountType DiscountType,
	discountCode string,
	shippingPrice kernel.Money,
) (Charges, error) {
	discountCode = strings.ToUpper(strings.TrimSpace(discountCode))

	var discountErr error
	switch {
	case discountType == CouponDiscount && discountCode == "":
		discountErr = errs.NewValueIsRequiredError("discountCode")
	case discountType != CouponDiscount && discountCode != "":
		discountErr = errs.NewValueIsInvalidErrorWithCause(
			"discountCode",
			fmt.Errorf("only coupon discounts carry a code"),
		)
	case discountType == NoDiscount && !discountAmount.IsZero():
		discountErr = errs.NewValueIsInvalidErrorWithCause(
			"discountAmount",
			fmt.Errorf("%s given without a discount type", discountAmount),
		)
	}

	if err := errors.Join(
		nonNegative("itemsPrice", itemsPrice),
		nonNegative("discountAmount", discountAmount),
		nonNegative("shippingPrice", shippingPrice),
		discountErr,
	); err != nil {
		return Charges{}, err
	}

	return Charges{
		itemsPrice:     itemsPrice,
		discountAmount: discountAmount,
		discountType:   discountType,
		discountCode:   discountCode,
		shippingPrice:  shippingPrice,
		totalPrice:     itemsPrice.Sub(discountAmount).Add(shippingPrice).ClampAtZero(),
	}, nil
}

func (c Charges) ItemsPrice() kernel.Money     { return c.itemsPrice }
func (c Charges) DiscountAmount() kernel.Money { return c.discountAmount }
func (c Charges) DiscountType() DiscountType   { return c.discountType }
func (c Charges) DiscountCode() string         { return c.discountCode }
func (c Charges) ShippingPrice() kernel.Money  { return c.shippingPrice }
func (c Charges) TotalPrice() kernel.Money     { return c.totalPrice }

// IsEqual compares every field; used to verify client submitted totals.
func (c Charges) IsEqual(other Charges) bool {
	return c.itemsPrice.IsEqual(other.itemsPrice) &&
		c.discountAmount.IsEqual(other.discountAmount) &&
		c.discountType == other.discountType &&
		c.discountCode == other.discountCode &&
		c.shippingPrice.IsEqual(other.shippingPrice) &&
		c.totalPrice.IsEqual(other.totalPrice)
}

func nonNegative(name string, m kernel.Money) error {
	if m.Decimal().IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", m))
	}
	return nil
}
