package coupon

import (
	"ordering/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Discount is what the coupon validator returns for an applicable coupon.
type Discount struct {
	Code        string
	Type        Type
	Value       decimal.Decimal
	MaxDiscount *kernel.Money
	Label       string
}
