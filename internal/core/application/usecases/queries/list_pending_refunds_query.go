package queries

import (
	"errors"

	"ordering/internal/pkg/guard"
)

var (
	ErrListPendingRefundsQueryIsNotConstructed = errors.New(
		"ListPendingRefundsQuery must be created via NewListPendingRefundsQuery constructor",
	)
)

// ListPendingRefundsQuery lists cancelled prepaid orders still waiting for a
// refund, oldest cancellation first. Callers are expected to be admins.
type ListPendingRefundsQuery struct {
	guard guard.ConstructorGuard
}

func NewListPendingRefundsQuery() ListPendingRefundsQuery {
	return ListPendingRefundsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListPendingRefundsQuery) Validate() error {
	return q.guard.Validate(ErrListPendingRefundsQueryIsNotConstructed)
}
