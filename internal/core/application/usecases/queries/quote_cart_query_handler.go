package queries

import (
	"context"

	"ordering/internal/core/application/checkout"
	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// QuoteCartQueryResponse is the priced cart. Submitting Quote.Charges with the
// same cart at checkout passes the totals check unless prices changed.
type QuoteCartQueryResponse struct {
	Items []order.LineItem
	Quote services.Quote
}

type QuoteCartQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	catalog    ports.ProductCatalog
	pricing    services.PricingEngine
	clock      ports.Clock
}

func NewQuoteCartQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	catalog ports.ProductCatalog,
	pricing services.PricingEngine,
	clock ports.Clock,
) QuoteCartQueryHandler {
	return QuoteCartQueryHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		pricing:    pricing,
		clock:      clock,
	}
}

func (h QuoteCartQueryHandler) Handle(ctx context.Context, query QuoteCartQuery) (QuoteCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return QuoteCartQueryResponse{}, err
	}

	items, err := checkout.SnapshotItems(ctx, h.catalog, query.lines)
	if err != nil {
		return QuoteCartQueryResponse{}, err
	}

	uow := h.uowFactory.Create()

	tiers, err := uow.TierRepository().GetAll(ctx)
	if err != nil {
		return QuoteCartQueryResponse{}, err
	}

	var applied *coupon.Coupon
	if query.couponCode != "" {
		applied, err = checkout.NewCouponValidator(uow.CouponRepository(), uow.OrderRepository()).
			Validate(ctx, query.couponCode, query.userID, order.Subtotal(items), h.clock.Now())
		if err != nil {
			return QuoteCartQueryResponse{}, err
		}
	}

	quote, err := h.pricing.Quote(items, applied, tiers)
	if err != nil {
		return QuoteCartQueryResponse{}, err
	}

	return QuoteCartQueryResponse{Items: items, Quote: quote}, nil
}
