package ports

import (
	"context"

	"ordering/internal/core/domain/model/tier"
)

// TierRepository stores the discount tier configuration as one set.
type TierRepository interface {
	// GetAll returns every configured tier ordered by minAmount.
	GetAll(ctx context.Context) ([]tier.Tier, error)

	// ReplaceAll swaps the whole configuration.
	ReplaceAll(ctx context.Context, tiers []tier.Tier) error
}
