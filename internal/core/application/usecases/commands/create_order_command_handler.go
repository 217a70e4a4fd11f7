package commands

import (
	"context"
	"fmt"
	"log/slog"

	"ordering/internal/core/application/checkout"
	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// CreateOrderCommandHandler places an order.
//
// Flow:
//   - snapshot line items from the catalog
//   - reserve the next order code
//   - inside one transaction: load tiers, validate the coupon, price the cart,
//     compare with the submitted totals, redeem the coupon if it won, insert the order
//   - after commit publish order.created
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog, codes, pricing, publisher, clock, logger)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrCouponInvalid):
//	    // coupon rejected or exhausted by a concurrent checkout
//	case errs.IsValidation(err):
//	    // bad input or stale cart totals
//	}
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	catalog    ports.ProductCatalog
	codes      ports.OrderCodeGenerator
	pricing    services.PricingEngine
	publisher  ports.EventPublisher
	clock      ports.Clock
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for checkout.
func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	catalog ports.ProductCatalog,
	codes ports.OrderCodeGenerator,
	pricing services.PricingEngine,
	publisher ports.EventPublisher,
	clock ports.Clock,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		codes:      codes,
		pricing:    pricing,
		publisher:  publisher,
		clock:      clock,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle processes the checkout command and returns the created order.
// Nothing is persisted when any step fails.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()

	items, err := checkout.SnapshotItems(ctx, h.catalog, cmd.Lines())
	if err != nil {
		return nil, err
	}

	code, err := h.codes.Next(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("reserve order code: %w", err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	couponRepo := uow.CouponRepository()
	orderRepo := uow.OrderRepository()

	tiers, err := uow.TierRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var applied *coupon.Coupon
	if couponCode := cmd.Submitted().DiscountCode(); couponCode != "" {
		applied, err = checkout.NewCouponValidator(couponRepo, orderRepo).
			Validate(ctx, couponCode, cmd.UserID(), order.Subtotal(items), now)
		if err != nil {
			return nil, err
		}
	}

	quote, err := h.pricing.Quote(items, applied, tiers)
	if err != nil {
		return nil, err
	}

	if !quote.Charges.IsEqual(cmd.Submitted()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("totals", fmt.Errorf(
			"submitted total %s does not match current total %s, refresh the cart",
			cmd.Submitted().TotalPrice(), quote.Charges.TotalPrice(),
		))
	}

	if quote.CouponApplied() {
		if err = couponRepo.Redeem(ctx, applied, now); err != nil {
			return nil, err
		}
	}

	o, err := order.NewOrder(
		cmd.OrderID(), code, cmd.UserID(), items, quote.Charges, cmd.ShippingAddress(), cmd.Payment(), now,
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Order placed",
		"order_code", o.Code().String(),
		"total", o.Charges().TotalPrice().String(),
		"discount_type", o.Charges().DiscountType().String(),
	)
	publishAfterCommit(ctx, h.publisher, h.logger, ports.NewOrderEvent(ports.OrderCreated, o, now))

	return o, nil
}
