// Package ports defines the contracts between the ordering core and its
// infrastructure: repositories, the unit of work, the product catalog, the
// order code sequence and the event publisher.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted.
type OrderRepository interface {
	// Add persists a new order together with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a changed order with a compare-and-set on its version.
	// It fails with errs.VersionIsInvalidError when another writer committed
	// first; the aggregate version is incremented on success.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by internal id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByCode retrieves an order by its sequential code.
	GetByCode(ctx context.Context, code order.Code) (*order.Order, error)

	// CountByUser returns how many orders a user has placed, cancelled ones included.
	// Used to resolve newUsers coupon targeting.
	CountByUser(ctx context.Context, userID kernel.UUID) (int, error)
}

// FindOrder resolves ref against repo by id or by code.
func FindOrder(ctx context.Context, repo OrderRepository, ref order.Reference) (*order.Order, error) {
	if id, ok := ref.ID(); ok {
		return repo.Get(ctx, id)
	}
	return repo.GetByCode(ctx, ref.Code())
}
