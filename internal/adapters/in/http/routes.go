package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ListMyOrdersParams are the query parameters of GET /api/v1/orders/mine.
type ListMyOrdersParams struct {
	Limit  *int `form:"limit,omitempty" json:"limit,omitempty"`
	Offset *int `form:"offset,omitempty" json:"offset,omitempty"`
}

// ServerInterface lists one method per operation in openapi.yaml.
type ServerInterface interface {
	// (POST /api/v1/coupons/validate)
	ValidateCoupon(ctx echo.Context) error
	// (POST /api/v1/cart/quote)
	QuoteCart(ctx echo.Context) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders/mine)
	ListMyOrders(ctx echo.Context, params ListMyOrdersParams) error
	// (GET /api/v1/orders/track/{orderId})
	TrackOrder(ctx echo.Context, orderID string) error
	// (PATCH /api/v1/orders/{orderId}/status)
	ChangeOrderStatus(ctx echo.Context, orderID string) error
	// (PATCH /api/v1/orders/{orderId}/tracking)
	UpdateTracking(ctx echo.Context, orderID string) error
	// (POST /api/v1/orders/{orderId}/refund)
	CompleteRefund(ctx echo.Context, orderID string) error
	// (GET /api/v1/admin/refunds/pending)
	ListPendingRefunds(ctx echo.Context) error
	// (POST /api/v1/admin/coupons)
	CreateCoupon(ctx echo.Context) error
	// (PUT /api/v1/admin/tiers)
	ReplaceTiers(ctx echo.Context) error
}

// ServerInterfaceWrapper binds path and query parameters before calling the server.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ValidateCoupon(ctx echo.Context) error {
	return w.Handler.ValidateCoupon(ctx)
}

func (w *ServerInterfaceWrapper) QuoteCart(ctx echo.Context) error {
	return w.Handler.QuoteCart(ctx)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ListMyOrders(ctx echo.Context) error {
	var params ListMyOrdersParams

	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	if err := runtime.BindQueryParameter("form", true, false, "offset", ctx.QueryParams(), &params.Offset); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter offset: %s", err))
	}

	return w.Handler.ListMyOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) TrackOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.TrackOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ChangeOrderStatus(ctx, orderID)
}

func (w *ServerInterfaceWrapper) UpdateTracking(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateTracking(ctx, orderID)
}

func (w *ServerInterfaceWrapper) CompleteRefund(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CompleteRefund(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ListPendingRefunds(ctx echo.Context) error {
	return w.Handler.ListPendingRefunds(ctx)
}

func (w *ServerInterfaceWrapper) CreateCoupon(ctx echo.Context) error {
	return w.Handler.CreateCoupon(ctx)
}

func (w *ServerInterfaceWrapper) ReplaceTiers(ctx echo.Context) error {
	return w.Handler.ReplaceTiers(ctx)
}

func bindOrderID(ctx echo.Context) (string, error) {
	var orderID string
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderID, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation. Admin routes additionally run
// adminOnly.
func RegisterHandlers(router EchoRouter, si ServerInterface, adminOnly echo.MiddlewareFunc) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/coupons/validate", w.ValidateCoupon)
	router.POST("/api/v1/cart/quote", w.QuoteCart)
	router.POST("/api/v1/orders", w.CreateOrder)
	router.GET("/api/v1/orders/mine", w.ListMyOrders)
	router.GET("/api/v1/orders/track/:orderId", w.TrackOrder)
	router.PATCH("/api/v1/orders/:orderId/status", w.ChangeOrderStatus)
	router.PATCH("/api/v1/orders/:orderId/tracking", w.UpdateTracking, adminOnly)
	router.POST("/api/v1/orders/:orderId/refund", w.CompleteRefund, adminOnly)
	router.GET("/api/v1/admin/refunds/pending", w.ListPendingRefunds, adminOnly)
	router.POST("/api/v1/admin/coupons", w.CreateCoupon, adminOnly)
	router.PUT("/api/v1/admin/tiers", w.ReplaceTiers, adminOnly)
}
