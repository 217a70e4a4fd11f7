package coupon

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Type selects how a coupon value is turned into a discount.
type Type int

const (
	UnknownType Type = iota
	// Percent takes value percent of the subtotal, capped at maxDiscount when set.
	Percent
	// Flat takes value rupees off regardless of the subtotal.
	Flat
)

func (t Type) String() string {
	switch t {
	case Percent:
		return "percent"
	case Flat:
		return "flat"
	default:
		return "unknown"
	}
}

func ParseType(s string) (Type, error) {
	switch s {
	case "percent":
		return Percent, nil
	case "flat":
		return Flat, nil
	default:
		return UnknownType, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not one of percent, flat", s))
	}
}

// Target is the audience allowed to redeem a coupon.
type Target int

const (
	TargetAll Target = iota
	// TargetNewUsers admits users with no prior orders.
	TargetNewUsers
	// TargetSpecificUsers admits only the listed user ids.
	TargetSpecificUsers
)

func (t Target) String() string {
	switch t {
	case TargetNewUsers:
		return "newUsers"
	case TargetSpecificUsers:
		return "specificUsers"
	default:
		return "all"
	}
}

// ParseTarget accepts "all", "newUsers" or "specificUsers"; empty means all.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "", "all":
		return TargetAll, nil
	case "newUsers":
		return TargetNewUsers, nil
	case "specificUsers":
		return TargetSpecificUsers, nil
	default:
		return TargetAll, errs.NewValueIsInvalidErrorWithCause(
			"target",
			fmt.Errorf("%q is not one of all, newUsers, specificUsers", s),
		)
	}
}
