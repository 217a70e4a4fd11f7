package commands

import (
	"errors"
	"slices"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/tier"
	"ordering/internal/pkg/guard"
)

var (
	ErrReplaceTiersCommandIsNotConstructed = errors.New(
		"ReplaceTiersCommand must be created via NewReplaceTiersCommand constructor",
	)
)

// ReplaceTiersCommand swaps the whole discount tier configuration. An empty
// set disables tier discounts.
type ReplaceTiersCommand struct { //nolint:recvcheck //using for validation
	tiers []tier.Tier

	guard guard.ConstructorGuard
}

func NewReplaceTiersCommand(actor kernel.Actor, tiers []tier.Tier) (ReplaceTiersCommand, error) {
	if err := errors.Join(requireAdmin(actor), tier.ValidateSet(tiers)); err != nil {
		return ReplaceTiersCommand{}, err
	}

	return ReplaceTiersCommand{
		tiers: slices.Clone(tiers),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ReplaceTiersCommand) Validate() error {
	return c.guard.Validate(ErrReplaceTiersCommandIsNotConstructed)
}

func (c ReplaceTiersCommand) Tiers() []tier.Tier { return slices.Clone(c.tiers) }
