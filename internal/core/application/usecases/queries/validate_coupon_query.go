// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Domain reads go through repositories outside a transaction; list views use
// raw SQL read models.
package queries

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrValidateCouponQueryIsNotConstructed = errors.New(
		"ValidateCouponQuery must be created via NewValidateCouponQuery constructor",
	)
)

// ValidateCouponQuery checks a coupon code for the caller's cart before checkout.
//
// Example:
//
//	query, err := NewValidateCouponQuery(actor, "save10", kernel.MoneyFromInt(1000))
//	resp, err := handler.Handle(ctx, query)
//	fmt.Println(resp.Discount.Label, resp.Amount)
type ValidateCouponQuery struct {
	userID    kernel.UUID
	code      string
	cartTotal kernel.Money

	guard guard.ConstructorGuard
}

func NewValidateCouponQuery(actor kernel.Actor, code string, cartTotal kernel.Money) (ValidateCouponQuery, error) {
	userID, ok := actor.UserID()
	if !ok {
		return ValidateCouponQuery{}, errs.NewAccessDeniedError("sign in to use a coupon")
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return ValidateCouponQuery{}, errs.NewValueIsRequiredError("code")
	}

	return ValidateCouponQuery{
		userID:    userID,
		code:      code,
		cartTotal: cartTotal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ValidateCouponQuery) Validate() error {
	return q.guard.Validate(ErrValidateCouponQueryIsNotConstructed)
}
