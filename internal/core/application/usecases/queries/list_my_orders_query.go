package queries

import (
	"errors"
	"math"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	ErrListMyOrdersQueryIsNotConstructed = errors.New(
		"ListMyOrdersQuery must be created via NewListMyOrdersQuery constructor",
	)
)

// ListMyOrdersQuery pages through the caller's own orders, newest first.
// A zero limit selects DefaultPageSize.
//
// Example:
//
//	query, err := NewListMyOrdersQuery(actor, 0, 0)
//	page, err := handler.Handle(ctx, query)
type ListMyOrdersQuery struct {
	userID kernel.UUID
	limit  int
	offset int

	guard guard.ConstructorGuard
}

func NewListMyOrdersQuery(actor kernel.Actor, limit, offset int) (ListMyOrdersQuery, error) {
	userID, ok := actor.UserID()
	if !ok {
		return ListMyOrdersQuery{}, errs.NewAccessDeniedError("sign in required")
	}

	if limit == 0 {
		limit = DefaultPageSize
	}

	if err := validatePage(limit, offset); err != nil {
		return ListMyOrdersQuery{}, err
	}

	return ListMyOrdersQuery{
		userID: userID,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListMyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListMyOrdersQueryIsNotConstructed)
}

func validatePage(limit, offset int) error {
	var err error
	if limit < 1 || limit > MaxPageSize {
		err = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize)
	}
	if offset < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("offset", offset, 0, math.MaxInt32))
	}
	return err
}
