package commands

import (
	"context"
	"slices"

	"ordering/internal/core/domain/model/tier"
)

// ReplaceTiersCommandHandler replaces the tier set in one transaction.
type ReplaceTiersCommandHandler struct {
	uowFactory TierUoWFactory
}

func NewReplaceTiersCommandHandler(uowFactory TierUoWFactory) ReplaceTiersCommandHandler {
	return ReplaceTiersCommandHandler{uowFactory: uowFactory}
}

func (h ReplaceTiersCommandHandler) Handle(ctx context.Context, cmd ReplaceTiersCommand) ([]tier.Tier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tiers := cmd.Tiers()
	if err := uow.TierRepository().ReplaceAll(ctx, tiers); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	slices.SortFunc(tiers, func(a, b tier.Tier) int {
		return a.MinAmount().Decimal().Cmp(b.MinAmount().Decimal())
	})
	return tiers, nil
}
