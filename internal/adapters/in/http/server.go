package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ordering/internal/core/application/checkout"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/tier"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}
	UpdateTrackingHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateTrackingCommand) (*order.Order, error)
	}
	CompleteRefundHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteRefundCommand) (*order.Order, error)
	}
	CreateCouponHandler interface {
		Handle(ctx context.Context, cmd commands.CreateCouponCommand) (*coupon.Coupon, error)
	}
	ReplaceTiersHandler interface {
		Handle(ctx context.Context, cmd commands.ReplaceTiersCommand) ([]tier.Tier, error)
	}
	ValidateCouponHandler interface {
		Handle(ctx context.Context, query queries.ValidateCouponQuery) (queries.ValidateCouponQueryResponse, error)
	}
	QuoteCartHandler interface {
		Handle(ctx context.Context, query queries.QuoteCartQuery) (queries.QuoteCartQueryResponse, error)
	}
	TrackOrderHandler interface {
		Handle(ctx context.Context, query queries.TrackOrderQuery) (services.TrackedOrder, error)
	}
	ListMyOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListMyOrdersQuery) ([]queries.ListMyOrdersQueryResponse, error)
	}
	ListPendingRefundsHandler interface {
		Handle(ctx context.Context, query queries.ListPendingRefundsQuery) ([]queries.ListPendingRefundsQueryResponse, error)
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateOrder        CreateOrderHandler
	ChangeOrderStatus  ChangeOrderStatusHandler
	UpdateTracking     UpdateTrackingHandler
	CompleteRefund     CompleteRefundHandler
	CreateCoupon       CreateCouponHandler
	ReplaceTiers       ReplaceTiersHandler
	ValidateCoupon     ValidateCouponHandler
	QuoteCart          QuoteCartHandler
	TrackOrder         TrackOrderHandler
	ListMyOrders       ListMyOrdersHandler
	ListPendingRefunds ListPendingRefundsHandler
}

// Server implements ServerInterface. It translates JSON bodies into commands
// and queries and results back into the API schemas; errors are rendered by
// ErrorHandler.
type Server struct {
	h Handlers
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// ValidateCoupon handles POST /api/v1/coupons/validate.
func (s *Server) ValidateCoupon(ctx echo.Context) error {
	var req ValidateCouponRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	cartTotal, err := money("cartTotal", req.CartTotal)
	if err != nil {
		return err
	}

	query, err := queries.NewValidateCouponQuery(actorFrom(ctx), req.Code, cartTotal)
	if err != nil {
		return err
	}

	resp, err := s.h.ValidateCoupon.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toCouponValidation(resp.Discount, resp.Amount))
}

// QuoteCart handles POST /api/v1/cart/quote.
func (s *Server) QuoteCart(ctx echo.Context) error {
	var req QuoteRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	query, err := queries.NewQuoteCartQuery(actorFrom(ctx), toCartLines(req.Items), req.CouponCode)
	if err != nil {
		return err
	}

	resp, err := s.h.QuoteCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toQuote(resp))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrder
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	address, addrErr := kernel.NewAddress(kernel.AddressFields{
		FullName: req.ShippingAddress.FullName,
		Phone:    req.ShippingAddress.Phone,
		Line1:    req.ShippingAddress.Line1,
		Line2:    req.ShippingAddress.Line2,
		City:     req.ShippingAddress.City,
		State:    req.ShippingAddress.State,
		Pincode:  req.ShippingAddress.Pincode,
	})
	payment, payErr := parsePayment(req.PaymentMethod, req.UTRNumber)
	submitted, chargesErr := parseCharges(req)
	if err := errors.Join(addrErr, payErr, chargesErr); err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), actorFrom(ctx), toCartLines(req.Items), address, payment, submitted,
	)
	if err != nil {
		return err
	}

	o, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toOrder(o))
}

// ListMyOrders handles GET /api/v1/orders/mine.
func (s *Server) ListMyOrders(ctx echo.Context, params ListMyOrdersParams) error {
	var limit, offset int
	if params.Limit != nil {
		limit = *params.Limit
	}
	if params.Offset != nil {
		offset = *params.Offset
	}

	query, err := queries.NewListMyOrdersQuery(actorFrom(ctx), limit, offset)
	if err != nil {
		return err
	}

	rows, err := s.h.ListMyOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrderSummaries(rows))
}

// TrackOrder handles GET /api/v1/orders/track/{orderId}.
func (s *Server) TrackOrder(ctx echo.Context, orderID string) error {
	ref, err := order.ParseReference(orderID)
	if err != nil {
		return err
	}

	query, err := queries.NewTrackOrderQuery(ref, actorFrom(ctx))
	if err != nil {
		return err
	}

	tracked, err := s.h.TrackOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toTrackedOrder(tracked))
}

// ChangeOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderID string) error {
	var req StatusChange
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	ref, refErr := order.ParseReference(orderID)
	to, statusErr := order.ParseStatus(req.OrderStatus)
	if err := errors.Join(refErr, statusErr); err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(actorFrom(ctx), ref, order.StatusChange{
		To:              to,
		TrackingID:      req.TrackingID,
		DeliveryPartner: req.DeliveryPartner,
		CancelReason:    req.CancelReason,
	})
	if err != nil {
		return err
	}

	o, err := s.h.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// UpdateTracking handles PATCH /api/v1/orders/{orderId}/tracking.
func (s *Server) UpdateTracking(ctx echo.Context, orderID string) error {
	var req TrackingUpdate
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	ref, err := order.ParseReference(orderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateTrackingCommand(actorFrom(ctx), ref, req.TrackingID, req.DeliveryPartner)
	if err != nil {
		return err
	}

	o, err := s.h.UpdateTracking.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// CompleteRefund handles POST /api/v1/orders/{orderId}/refund.
func (s *Server) CompleteRefund(ctx echo.Context, orderID string) error {
	var req RefundCompletion
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	ref, err := order.ParseReference(orderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCompleteRefundCommand(actorFrom(ctx), ref, req.RefundUTRNumber)
	if err != nil {
		return err
	}

	o, err := s.h.CompleteRefund.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// ListPendingRefunds handles GET /api/v1/admin/refunds/pending.
func (s *Server) ListPendingRefunds(ctx echo.Context) error {
	rows, err := s.h.ListPendingRefunds.Handle(ctx.Request().Context(), queries.NewListPendingRefundsQuery())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toPendingRefunds(rows))
}

// CreateCoupon handles POST /api/v1/admin/coupons.
func (s *Server) CreateCoupon(ctx echo.Context) error {
	var req NewCoupon
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	params, err := parseCouponParams(req)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateCouponCommand(actorFrom(ctx), kernel.NewUUID(), params)
	if err != nil {
		return err
	}

	c, err := s.h.CreateCoupon.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toCoupon(c))
}

// ReplaceTiers handles PUT /api/v1/admin/tiers.
func (s *Server) ReplaceTiers(ctx echo.Context) error {
	var req TierSet
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	tiers := make([]tier.Tier, 0, len(req.Tiers))
	var tiersErr error
	for i, t := range req.Tiers {
		minAmount, err := money(fmt.Sprintf("tiers[%d].minAmount", i), t.MinAmount)
		if err != nil {
			tiersErr = errors.Join(tiersErr, err)
			continue
		}
		parsed, err := tier.NewTier(minAmount, t.DiscountPercent, t.Label)
		if err != nil {
			tiersErr = errors.Join(tiersErr, err)
			continue
		}
		tiers = append(tiers, parsed)
	}
	if tiersErr != nil {
		return tiersErr
	}

	cmd, err := commands.NewReplaceTiersCommand(actorFrom(ctx), tiers)
	if err != nil {
		return err
	}

	stored, err := s.h.ReplaceTiers.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	resp := TierSet{Tiers: make([]Tier, len(stored))}
	for i, t := range stored {
		resp.Tiers[i] = toTier(t)
	}
	return ctx.JSON(http.StatusOK, resp)
}

func bindBody(ctx echo.Context, dst any) error {
	if err := ctx.Bind(dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

func money(name string, amount decimal.Decimal) (kernel.Money, error) {
	m, err := kernel.NewMoney(amount)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return m, nil
}

func toCartLines(lines []CartLine) []checkout.CartLine {
	out := make([]checkout.CartLine, len(lines))
	for i, line := range lines {
		out[i] = checkout.CartLine{ProductID: line.ProductID, Quantity: line.Quantity}
	}
	return out
}

func parsePayment(method, utr string) (order.Payment, error) {
	m, err := order.ParsePaymentMethod(method)
	if err != nil {
		return order.Payment{}, err
	}
	return order.NewPayment(m, utr)
}

func parseCharges(req NewOrder) (order.Charges, error) {
	itemsPrice, itemsErr := money("itemsPrice", req.ItemsPrice)
	discount, discountErr := money("discountAmount", req.DiscountAmount)
	shipping, shippingErr := money("shippingPrice", req.ShippingPrice)
	total, totalErr := money("totalPrice", req.TotalPrice)
	discountType, typeErr := order.ParseDiscountType(req.DiscountType)
	if err := errors.Join(itemsErr, discountErr, shippingErr, totalErr, typeErr); err != nil {
		return order.Charges{}, err
	}

	charges, err := order.NewCharges(itemsPrice, discount, discountType, req.DiscountCode, shipping)
	if err != nil {
		return order.Charges{}, err
	}

	if !charges.TotalPrice().IsEqual(total) {
		return order.Charges{}, errs.NewValueIsInvalidErrorWithCause("totalPrice", fmt.Errorf(
			"%s does not add up to %s", total, charges.TotalPrice(),
		))
	}
	return charges, nil
}

func parseCouponParams(req NewCoupon) (coupon.Params, error) {
	couponType, typeErr := coupon.ParseType(req.Type)
	target, targetErr := coupon.ParseTarget(req.Target)
	minOrder, minErr := money("minOrder", req.MinOrder)

	var maxDiscount *kernel.Money
	var maxErr error
	if req.MaxDiscount != nil {
		m, err := money("maxDiscount", *req.MaxDiscount)
		maxDiscount, maxErr = &m, err
	}

	users := make([]kernel.UUID, 0, len(req.TargetUsers))
	var usersErr error
	for i, raw := range req.TargetUsers {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			usersErr = errors.Join(usersErr, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("targetUsers[%d]", i), err))
			continue
		}
		users = append(users, id)
	}

	if err := errors.Join(typeErr, targetErr, minErr, maxErr, usersErr); err != nil {
		return coupon.Params{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return coupon.Params{
		Code:        req.Code,
		Type:        couponType,
		Value:       req.Value,
		MinOrder:    minOrder,
		MaxDiscount: maxDiscount,
		IsActive:    isActive,
		ExpiresAt:   req.ExpiresAt,
		UsageLimit:  req.UsageLimit,
		Target:      target,
		TargetUsers: users,
	}, nil
}
