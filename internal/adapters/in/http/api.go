package http

import (
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/tier"
	"ordering/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// Amounts travel as JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type ValidateCouponRequest struct {
	Code      string          `json:"code"`
	CartTotal decimal.Decimal `json:"cartTotal"`
}

type CouponValidation struct {
	Code        string           `json:"code"`
	Type        string           `json:"type"`
	Value       decimal.Decimal  `json:"value"`
	MaxDiscount *decimal.Decimal `json:"maxDiscount,omitempty"`
	Label       string           `json:"label"`
	Discount    decimal.Decimal  `json:"discount"`
}

type QuoteRequest struct {
	Items      []CartLine `json:"items"`
	CouponCode string     `json:"couponCode,omitempty"`
}

type Quote struct {
	Items          []LineItem        `json:"items"`
	ItemsPrice     decimal.Decimal   `json:"itemsPrice"`
	CouponDiscount decimal.Decimal   `json:"couponDiscount"`
	TierDiscount   decimal.Decimal   `json:"tierDiscount"`
	DiscountAmount decimal.Decimal   `json:"discountAmount"`
	DiscountType   string            `json:"discountType"`
	DiscountCode   string            `json:"discountCode,omitempty"`
	ShippingPrice  decimal.Decimal   `json:"shippingPrice"`
	TotalPrice     decimal.Decimal   `json:"totalPrice"`
	Coupon         *CouponValidation `json:"coupon,omitempty"`
	Tier           *Tier             `json:"tier,omitempty"`
}

type Address struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

type NewOrder struct {
	Items           []CartLine      `json:"items"`
	ShippingAddress Address         `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	UTRNumber       string          `json:"utrNumber,omitempty"`
	ItemsPrice      decimal.Decimal `json:"itemsPrice"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	DiscountType    string          `json:"discountType,omitempty"`
	DiscountCode    string          `json:"discountCode,omitempty"`
	ShippingPrice   decimal.Decimal `json:"shippingPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
}

type LineItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

type Order struct {
	OrderID         string               `json:"orderId"`
	Code            string               `json:"code"`
	UserID          string               `json:"userId"`
	Items           []LineItem           `json:"items"`
	ShippingAddress Address              `json:"shippingAddress"`
	PaymentMethod   string               `json:"paymentMethod"`
	UTRNumber       string               `json:"utrNumber,omitempty"`
	ItemsPrice      decimal.Decimal      `json:"itemsPrice"`
	DiscountAmount  decimal.Decimal      `json:"discountAmount"`
	DiscountType    string               `json:"discountType,omitempty"`
	DiscountCode    string               `json:"discountCode,omitempty"`
	ShippingPrice   decimal.Decimal      `json:"shippingPrice"`
	TotalPrice      decimal.Decimal      `json:"totalPrice"`
	OrderStatus     string               `json:"orderStatus"`
	StatusDates     map[string]time.Time `json:"statusDates"`
	CancelReason    string               `json:"cancelReason,omitempty"`
	CancelledBy     string               `json:"cancelledBy,omitempty"`
	RefundStatus    string               `json:"refundStatus,omitempty"`
	RefundUTRNumber string               `json:"refundUtrNumber,omitempty"`
	RefundedAt      *time.Time           `json:"refundedAt,omitempty"`
	TrackingID      string               `json:"trackingId,omitempty"`
	DeliveryPartner string               `json:"deliveryPartner,omitempty"`
	PlacedAt        time.Time            `json:"placedAt"`
}

// OrderStatusView is what non-owners see when tracking an order.
type OrderStatusView struct {
	Code            string    `json:"code"`
	OrderStatus     string    `json:"orderStatus"`
	PlacedAt        time.Time `json:"placedAt"`
	TrackingID      string    `json:"trackingId,omitempty"`
	DeliveryPartner string    `json:"deliveryPartner,omitempty"`
	IsCancelled     bool      `json:"isCancelled"`
	CancelledBy     string    `json:"cancelledBy,omitempty"`
	RefundStatus    string    `json:"refundStatus,omitempty"`
}

type TrackedOrder struct {
	IsOwner bool             `json:"isOwner"`
	Order   *Order           `json:"order,omitempty"`
	Summary *OrderStatusView `json:"summary,omitempty"`
}

type OrderSummary struct {
	OrderID      string          `json:"orderId"`
	Code         string          `json:"code"`
	OrderStatus  string          `json:"orderStatus"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	ItemCount    int             `json:"itemCount"`
	RefundStatus string          `json:"refundStatus,omitempty"`
	PlacedAt     time.Time       `json:"placedAt"`
}

type StatusChange struct {
	OrderStatus     string `json:"orderStatus"`
	TrackingID      string `json:"trackingId,omitempty"`
	DeliveryPartner string `json:"deliveryPartner,omitempty"`
	CancelReason    string `json:"cancelReason,omitempty"`
}

type TrackingUpdate struct {
	TrackingID      string `json:"trackingId,omitempty"`
	DeliveryPartner string `json:"deliveryPartner,omitempty"`
}

type RefundCompletion struct {
	RefundUTRNumber string `json:"refundUtrNumber"`
}

type PendingRefund struct {
	OrderID       string          `json:"orderId"`
	Code          string          `json:"code"`
	UserID        string          `json:"userId"`
	PaymentMethod string          `json:"paymentMethod"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	CancelledBy   string          `json:"cancelledBy,omitempty"`
	CancelledAt   time.Time       `json:"cancelledAt"`
}

type NewCoupon struct {
	Code        string           `json:"code"`
	Type        string           `json:"type"`
	Value       decimal.Decimal  `json:"value"`
	MinOrder    decimal.Decimal  `json:"minOrder"`
	MaxDiscount *decimal.Decimal `json:"maxDiscount,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
	ExpiresAt   *time.Time       `json:"expiresAt,omitempty"`
	UsageLimit  *int             `json:"usageLimit,omitempty"`
	Target      string           `json:"target,omitempty"`
	TargetUsers []string         `json:"targetUsers,omitempty"`
}

type Coupon struct {
	ID          string           `json:"id"`
	Code        string           `json:"code"`
	Type        string           `json:"type"`
	Value       decimal.Decimal  `json:"value"`
	MinOrder    decimal.Decimal  `json:"minOrder"`
	MaxDiscount *decimal.Decimal `json:"maxDiscount,omitempty"`
	IsActive    bool             `json:"isActive"`
	ExpiresAt   *time.Time       `json:"expiresAt,omitempty"`
	UsageLimit  *int             `json:"usageLimit,omitempty"`
	UsedCount   int              `json:"usedCount"`
	Target      string           `json:"target"`
	TargetUsers []string         `json:"targetUsers,omitempty"`
	Label       string           `json:"label"`
}

type Tier struct {
	MinAmount       decimal.Decimal `json:"minAmount"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Label           string          `json:"label,omitempty"`
}

type TierSet struct {
	Tiers []Tier `json:"tiers"`
}

func toLineItems(items []order.LineItem) []LineItem {
	resp := make([]LineItem, len(items))
	for i, item := range items {
		resp[i] = LineItem{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Price:     item.UnitPrice().Decimal(),
			Quantity:  item.Quantity(),
			Image:     item.Image(),
		}
	}
	return resp
}

func toAddress(a kernel.Address) Address {
	f := a.Fields()
	return Address{
		FullName: f.FullName,
		Phone:    f.Phone,
		Line1:    f.Line1,
		Line2:    f.Line2,
		City:     f.City,
		State:    f.State,
		Pincode:  f.Pincode,
	}
}

func toOrder(o *order.Order) Order {
	charges := o.Charges()
	dates := make(map[string]time.Time, len(o.StatusDates()))
	for status, at := range o.StatusDates() {
		dates[status.String()] = at
	}

	return Order{
		OrderID:         o.ID().String(),
		Code:            o.Code().String(),
		UserID:          o.UserID().String(),
		Items:           toLineItems(o.Items()),
		ShippingAddress: toAddress(o.ShippingAddress()),
		PaymentMethod:   o.Payment().Method().String(),
		UTRNumber:       o.Payment().UTRNumber(),
		ItemsPrice:      charges.ItemsPrice().Decimal(),
		DiscountAmount:  charges.DiscountAmount().Decimal(),
		DiscountType:    charges.DiscountType().String(),
		DiscountCode:    charges.DiscountCode(),
		ShippingPrice:   charges.ShippingPrice().Decimal(),
		TotalPrice:      charges.TotalPrice().Decimal(),
		OrderStatus:     o.Status().String(),
		StatusDates:     dates,
		CancelReason:    o.Cancellation().Reason(),
		CancelledBy:     o.Cancellation().By().String(),
		RefundStatus:    o.Refund().Status().String(),
		RefundUTRNumber: o.Refund().UTRNumber(),
		RefundedAt:      o.Refund().RefundedAt(),
		TrackingID:      o.Tracking().TrackingID(),
		DeliveryPartner: o.Tracking().DeliveryPartner(),
		PlacedAt:        o.PlacedAt(),
	}
}

func toTrackedOrder(tracked services.TrackedOrder) TrackedOrder {
	if tracked.IsOwner {
		o := toOrder(tracked.Order)
		return TrackedOrder{IsOwner: true, Order: &o}
	}

	r := tracked.Redacted
	return TrackedOrder{Summary: &OrderStatusView{
		Code:            r.Code.String(),
		OrderStatus:     r.Status.String(),
		PlacedAt:        r.PlacedAt,
		TrackingID:      r.TrackingID,
		DeliveryPartner: r.DeliveryPartner,
		IsCancelled:     r.IsCancelled,
		CancelledBy:     r.CancelledBy.String(),
		RefundStatus:    r.RefundStatus.String(),
	}}
}

func toCouponValidation(d coupon.Discount, amount kernel.Money) CouponValidation {
	resp := CouponValidation{
		Code:     d.Code,
		Type:     d.Type.String(),
		Value:    d.Value,
		Label:    d.Label,
		Discount: amount.Decimal(),
	}
	if d.MaxDiscount != nil {
		maxDiscount := d.MaxDiscount.Decimal()
		resp.MaxDiscount = &maxDiscount
	}
	return resp
}

func toQuote(resp queries.QuoteCartQueryResponse) Quote {
	q := resp.Quote
	out := Quote{
		Items:          toLineItems(resp.Items),
		ItemsPrice:     q.Charges.ItemsPrice().Decimal(),
		CouponDiscount: q.CouponDiscount.Decimal(),
		TierDiscount:   q.TierDiscount.Decimal(),
		DiscountAmount: q.Charges.DiscountAmount().Decimal(),
		DiscountType:   q.Charges.DiscountType().String(),
		DiscountCode:   q.Charges.DiscountCode(),
		ShippingPrice:  q.Charges.ShippingPrice().Decimal(),
		TotalPrice:     q.Charges.TotalPrice().Decimal(),
	}
	if q.Coupon != nil {
		c := toCouponValidation(*q.Coupon, q.CouponDiscount)
		out.Coupon = &c
	}
	if q.Tier != nil {
		t := toTier(*q.Tier)
		out.Tier = &t
	}
	return out
}

func toTier(t tier.Tier) Tier {
	return Tier{
		MinAmount:       t.MinAmount().Decimal(),
		DiscountPercent: t.DiscountPercent(),
		Label:           t.Label(),
	}
}

func toCoupon(c *coupon.Coupon) Coupon {
	resp := Coupon{
		ID:         c.ID().String(),
		Code:       c.Code(),
		Type:       c.Type().String(),
		Value:      c.Value(),
		MinOrder:   c.MinOrder().Decimal(),
		IsActive:   c.IsActive(),
		ExpiresAt:  c.ExpiresAt(),
		UsageLimit: c.UsageLimit(),
		UsedCount:  c.UsedCount(),
		Target:     c.Target().String(),
		Label:      c.Descriptor().Label,
	}
	if m := c.MaxDiscount(); m != nil {
		maxDiscount := m.Decimal()
		resp.MaxDiscount = &maxDiscount
	}
	for _, id := range c.TargetUsers() {
		resp.TargetUsers = append(resp.TargetUsers, id.String())
	}
	return resp
}

func toOrderSummaries(rows []queries.ListMyOrdersQueryResponse) []OrderSummary {
	resp := make([]OrderSummary, len(rows))
	for i, row := range rows {
		resp[i] = OrderSummary{
			OrderID:      row.ID.String(),
			Code:         row.Code,
			OrderStatus:  row.Status,
			TotalPrice:   row.TotalPrice.Decimal(),
			ItemCount:    row.ItemCount,
			RefundStatus: row.RefundStatus,
			PlacedAt:     row.PlacedAt,
		}
	}
	return resp
}

func toPendingRefunds(rows []queries.ListPendingRefundsQueryResponse) []PendingRefund {
	resp := make([]PendingRefund, len(rows))
	for i, row := range rows {
		resp[i] = PendingRefund{
			OrderID:       row.ID.String(),
			Code:          row.Code,
			UserID:        row.UserID.String(),
			PaymentMethod: row.PaymentMethod,
			TotalPrice:    row.TotalPrice.Decimal(),
			CancelledBy:   row.CancelledBy,
			CancelledAt:   row.CancelledAt,
		}
	}
	return resp
}
