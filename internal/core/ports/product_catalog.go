package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// Product is the catalog data copied into a line item at checkout.
type Product struct {
	ID       string
	Name     string
	Price    kernel.Money
	Image    string
	IsActive bool
}

// ProductCatalog is a read-only view of the catalog owned by another service.
type ProductCatalog interface {
	// GetByIDs returns the products found, keyed by id. Unknown ids are absent.
	GetByIDs(ctx context.Context, ids []string) (map[string]Product, error)
}
