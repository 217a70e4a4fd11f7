package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrTrackOrderQueryIsNotConstructed = errors.New(
		"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
	)
)

// TrackOrderQuery looks an order up by code or id on behalf of any caller,
// signed in or not.
type TrackOrderQuery struct {
	ref    order.Reference
	viewer kernel.Actor

	guard guard.ConstructorGuard
}

func NewTrackOrderQuery(ref order.Reference, viewer kernel.Actor) (TrackOrderQuery, error) {
	if ref.IsZero() {
		return TrackOrderQuery{}, errs.NewValueIsRequiredError("orderId")
	}

	return TrackOrderQuery{
		ref:    ref,
		viewer: viewer,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}
