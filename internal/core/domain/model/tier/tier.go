// Package tier provides order value discount tiers and the tier selector.
package tier

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrTierIsNotConstructed = errs.NewValueIsRequiredError("tier must be created via NewTier")

	maxPercent = decimal.NewFromInt(100)
)

// Tier is an automatic percentage discount unlocked once the cart subtotal
// reaches minAmount.
type Tier struct {
	minAmount       kernel.Money
	discountPercent decimal.Decimal
	label           string

	guard guard.ConstructorGuard
}

// NewTier validates the tier; an empty label is derived from the other fields.
func NewTier(minAmount kernel.Money, discountPercent decimal.Decimal, label string) (Tier, error) {
	if !discountPercent.IsPositive() || discountPercent.GreaterThan(maxPercent) {
		return Tier{}, errs.NewValueIsOutOfRangeError("discountPercent", discountPercent, 0, 100)
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = fmt.Sprintf("%s%% off on orders above ₹%s", discountPercent, minAmount)
	}

	return Tier{
		minAmount:       minAmount,
		discountPercent: discountPercent,
		label:           label,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (t Tier) Validate() error {
	return t.guard.Validate(ErrTierIsNotConstructed)
}

func (t Tier) MinAmount() kernel.Money          { return t.minAmount }
func (t Tier) DiscountPercent() decimal.Decimal { return t.discountPercent }
func (t Tier) Label() string                    { return t.label }

// DiscountFor is subtotal * discountPercent / 100 rounded to whole rupees.
func (t Tier) DiscountFor(subtotal kernel.Money) kernel.Money {
	return subtotal.Percent(t.discountPercent)
}

// Select returns the qualifying tier with the largest minAmount.
// Tiers never stack; ok is false when no tier qualifies.
func Select(tiers []Tier, subtotal kernel.Money) (best Tier, ok bool) {
	for _, t := range tiers {
		if t.Validate() != nil || subtotal.LessThan(t.minAmount) {
			continue
		}
		if !ok || t.minAmount.GreaterThan(best.minAmount) {
			best, ok = t, true
		}
	}
	return best, ok
}

// ValidateSet checks a complete tier configuration: every tier constructed and
// no two tiers sharing a threshold.
func ValidateSet(tiers []Tier) error {
	seen := make(map[string]struct{}, len(tiers))
	var err error
	for i, t := range tiers {
		if vErr := t.Validate(); vErr != nil {
			err = errors.Join(err, vErr)
			continue
		}
		key := t.minAmount.Decimal().String()
		if _, dup := seen[key]; dup {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("tiers[%d].minAmount", i),
				fmt.Errorf("threshold %s is used twice", t.minAmount),
			))
		}
		seen[key] = struct{}{}
	}
	return err
}
