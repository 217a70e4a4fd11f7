package queries

import (
	"errors"
	"slices"
	"strings"

	"ordering/internal/core/application/checkout"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrQuoteCartQueryIsNotConstructed = errors.New(
		"QuoteCartQuery must be created via NewQuoteCartQuery constructor",
	)
)

// QuoteCartQuery prices a cart the same way checkout will, without creating
// anything. Anonymous callers may quote a cart but not apply a coupon.
type QuoteCartQuery struct {
	userID     kernel.UUID
	lines      []checkout.CartLine
	couponCode string

	guard guard.ConstructorGuard
}

func NewQuoteCartQuery(actor kernel.Actor, lines []checkout.CartLine, couponCode string) (QuoteCartQuery, error) {
	if err := checkout.ValidateCart(lines); err != nil {
		return QuoteCartQuery{}, err
	}

	couponCode = strings.TrimSpace(couponCode)
	userID, signedIn := actor.UserID()
	if couponCode != "" && !signedIn {
		return QuoteCartQuery{}, errs.NewAccessDeniedError("sign in to use a coupon")
	}

	return QuoteCartQuery{
		userID:     userID,
		lines:      slices.Clone(lines),
		couponCode: couponCode,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q QuoteCartQuery) Validate() error {
	return q.guard.Validate(ErrQuoteCartQueryIsNotConstructed)
}
