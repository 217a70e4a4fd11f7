package coupon

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrCouponIsNotConstructed is returned when a Coupon was not created through NewCoupon or RestoreCoupon.
	ErrCouponIsNotConstructed = errors.New("Coupon must be created via NewCoupon constructor")

	maxPercent = decimal.NewFromInt(100)
)

// Reasons reported through errs.CouponInvalidError.
const (
	ReasonNotFound     = "coupon not found"
	ReasonInactive     = "coupon is no longer active"
	ReasonExpired      = "coupon has expired"
	ReasonLimitReached = "coupon usage limit reached"
	ReasonMinOrder     = "minimum order value not met"
	ReasonNotEligible  = "coupon is not available for this account"
	ReasonNewUsersOnly = "coupon is only for first orders"
)

// NormalizeCode trims and upper-cases a user supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Params are the admin supplied coupon attributes.
type Params struct {
	Code        string
	Type        Type
	Value       decimal.Decimal
	MinOrder    kernel.Money
	MaxDiscount *kernel.Money
	IsActive    bool
	ExpiresAt   *time.Time
	UsageLimit  *int
	Target      Target
	TargetUsers []kernel.UUID
}

// Coupon is a discount code.
//
// Coupon follows these invariants:
//   - code is unique, non-empty and upper-cased
//   - percent coupons have 0 < value <= 100, flat coupons value > 0
//   - usedCount <= usageLimit whenever a limit is set
//   - specificUsers coupons list at least one user
type Coupon struct {
	id          kernel.UUID
	code        string
	couponType  Type
	value       decimal.Decimal
	minOrder    kernel.Money
	maxDiscount *kernel.Money
	isActive    bool
	expiresAt   *time.Time
	usageLimit  *int
	usedCount   int
	target      Target
	targetUsers []kernel.UUID

	isConstructed bool
}

// NewCoupon validates p and creates an unused coupon.
func NewCoupon(id kernel.UUID, p Params) (*Coupon, error) {
	return build(id, p, 0)
}

// RestoreCoupon rebuilds a coupon from persistence.
func RestoreCoupon(id kernel.UUID, p Params, usedCount int) (*Coupon, error) {
	return build(id, p, usedCount)
}

func build(id kernel.UUID, p Params, usedCount int) (*Coupon, error) {
	c := &Coupon{
		minOrder:      p.MinOrder,
		isActive:      p.IsActive,
		target:        p.Target,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setCode(p.Code),
		c.setValue(p.Type, p.Value),
		c.setMaxDiscount(p.MaxDiscount),
		c.setExpiresAt(p.ExpiresAt),
		c.setUsage(p.UsageLimit, usedCount),
		c.setTargetUsers(p.Target, p.TargetUsers),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Coupon) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCouponIsNotConstructed
	}
	return nil
}

func (c *Coupon) ID() kernel.UUID        { return c.id }
func (c *Coupon) Code() string           { return c.code }
func (c *Coupon) Type() Type             { return c.couponType }
func (c *Coupon) Value() decimal.Decimal { return c.value }
func (c *Coupon) MinOrder() kernel.Money { return c.minOrder }
func (c *Coupon) IsActive() bool         { return c.isActive }
func (c *Coupon) UsedCount() int         { return c.usedCount }
func (c *Coupon) Target() Target         { return c.target }

func (c *Coupon) MaxDiscount() *kernel.Money {
	if c.maxDiscount == nil {
		return nil
	}
	m := *c.maxDiscount
	return &m
}

func (c *Coupon) ExpiresAt() *time.Time {
	if c.expiresAt == nil {
		return nil
	}
	t := *c.expiresAt
	return &t
}

func (c *Coupon) UsageLimit() *int {
	if c.usageLimit == nil {
		return nil
	}
	n := *c.usageLimit
	return &n
}

func (c *Coupon) TargetUsers() []kernel.UUID {
	return slices.Clone(c.targetUsers)
}

// IsExpired reports whether expiresAt is set and not after now.
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.expiresAt != nil && !now.Before(*c.expiresAt)
}

// IsExhausted reports whether the usage limit has been reached.
func (c *Coupon) IsExhausted() bool {
	return c.usageLimit != nil && c.usedCount >= *c.usageLimit
}

// Eligibility is the caller side input to CheckApplicable.
type Eligibility struct {
	UserID   kernel.UUID
	Subtotal kernel.Money
	// PriorOrders is only consulted for TargetNewUsers coupons.
	PriorOrders int
	Now         time.Time
}

// CheckApplicable runs the validation checks in a fixed order and reports the
// first failure as errs.CouponInvalidError.
func (c *Coupon) CheckApplicable(e Eligibility) error {
	switch {
	case !c.isActive:
		return c.invalid(ReasonInactive)
	case c.IsExpired(e.Now):
		return c.invalid(ReasonExpired)
	case c.IsExhausted():
		return c.invalid(ReasonLimitReached)
	case e.Subtotal.LessThan(c.minOrder):
		return c.invalid(fmt.Sprintf("%s: add items worth ₹%s more", ReasonMinOrder, c.minOrder.Sub(e.Subtotal)))
	}

	switch c.target {
	case TargetNewUsers:
		if e.PriorOrders > 0 {
			return c.invalid(ReasonNewUsersOnly)
		}
	case TargetSpecificUsers:
		if !slices.ContainsFunc(c.targetUsers, e.UserID.IsEqual) {
			return c.invalid(ReasonNotEligible)
		}
	}

	return nil
}

// DiscountFor computes the coupon discount for subtotal. Percent coupons round
// half away from zero to whole rupees and respect maxDiscount; flat coupons
// are never reduced to the subtotal.
func (c *Coupon) DiscountFor(subtotal kernel.Money) kernel.Money {
	if c.couponType == Flat {
		return moneyOf(c.value)
	}

	discount := subtotal.Percent(c.value)
	if c.maxDiscount != nil {
		discount = discount.Min(*c.maxDiscount)
	}
	return discount
}

// Descriptor returns the public description of the coupon.
func (c *Coupon) Descriptor() Discount {
	return Discount{
		Code:        c.code,
		Type:        c.couponType,
		Value:       c.value,
		MaxDiscount: c.MaxDiscount(),
		Label:       c.label(),
	}
}

// Redeem consumes one use.
func (c *Coupon) Redeem() error {
	if c.IsExhausted() {
		return c.invalid(ReasonLimitReached)
	}
	c.usedCount++
	return nil
}

// Deactivate switches the coupon off; it is a no-op on inactive coupons.
func (c *Coupon) Deactivate() {
	c.isActive = false
}

func (c *Coupon) invalid(reason string) error {
	return errs.NewCouponInvalidError(c.code, reason)
}

func (c *Coupon) label() string {
	if c.couponType == Flat {
		return fmt.Sprintf("₹%s off", c.value)
	}
	if c.maxDiscount != nil {
		return fmt.Sprintf("%s%% off up to ₹%s", c.value, c.maxDiscount)
	}
	return fmt.Sprintf("%s%% off", c.value)
}

func (c *Coupon) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Coupon) setCode(code string) error {
	code = NormalizeCode(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}

func (c *Coupon) setValue(t Type, value decimal.Decimal) error {
	switch t {
	case Percent:
		if !value.IsPositive() || value.GreaterThan(maxPercent) {
			return errs.NewValueIsOutOfRangeError("value", value, 0, 100)
		}
	case Flat:
		if !value.IsPositive() {
			return errs.NewValueIsInvalidErrorWithCause("value", fmt.Errorf("%s is not greater than 0", value))
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%d is not a valid coupon type", t))
	}
	c.couponType = t
	c.value = value
	return nil
}

func (c *Coupon) setMaxDiscount(maxDiscount *kernel.Money) error {
	if maxDiscount == nil {
		return nil
	}
	if !maxDiscount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("maxDiscount", fmt.Errorf("%s is not greater than 0", maxDiscount))
	}
	m := *maxDiscount
	c.maxDiscount = &m
	return nil
}

func (c *Coupon) setExpiresAt(expiresAt *time.Time) error {
	if expiresAt == nil {
		return nil
	}
	t := expiresAt.UTC()
	c.expiresAt = &t
	return nil
}

func (c *Coupon) setUsage(usageLimit *int, usedCount int) error {
	if usedCount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("usedCount", fmt.Errorf("%d is negative", usedCount))
	}
	c.usedCount = usedCount

	if usageLimit == nil {
		return nil
	}
	if *usageLimit < 1 {
		return errs.NewValueIsInvalidErrorWithCause("usageLimit", fmt.Errorf("%d is not greater than 0", *usageLimit))
	}
	if usedCount > *usageLimit {
		return errs.NewValueIsOutOfRangeError("usedCount", usedCount, 0, *usageLimit)
	}
	n := *usageLimit
	c.usageLimit = &n
	return nil
}

func (c *Coupon) setTargetUsers(target Target, users []kernel.UUID) error {
	switch target {
	case TargetAll, TargetNewUsers:
		return nil
	case TargetSpecificUsers:
		if len(users) == 0 {
			return errs.NewValueIsRequiredError("targetUsers")
		}
		c.targetUsers = slices.Clone(users)
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("target", fmt.Errorf("%d is not a valid target", target))
	}
}

func moneyOf(d decimal.Decimal) kernel.Money {
	m, err := kernel.NewMoney(d)
	if err != nil {
		return kernel.Money{}
	}
	return m
}
