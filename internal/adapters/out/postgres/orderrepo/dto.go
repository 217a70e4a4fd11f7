// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items live in order_items; status history is one nullable timestamp
// column per status.
type OrderDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code    string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_orders_user_placed,priority:1"`
	Version int       `gorm:"not null;default:0"`

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Charges         ChargesDTO  `gorm:"embedded"`
	ShippingAddress AddressDTO  `gorm:"embedded;embeddedPrefix:shipping_"`
	Payment         PaymentDTO  `gorm:"embedded;embeddedPrefix:payment_"`
	Status          string      `gorm:"type:varchar(32);not null;index"`
	StatusDates     StatusDates `gorm:"embedded"`

	CancelReason    string     `gorm:"type:text"`
	CancelledBy     string     `gorm:"type:varchar(16)"`
	RefundStatus    string     `gorm:"type:varchar(16);index"`
	RefundUTRNumber string     `gorm:"column:refund_utr_number;type:varchar(64)"`
	RefundedAt      *time.Time `gorm:"type:timestamptz"`
	TrackingID      string     `gorm:"type:varchar(64)"`
	DeliveryPartner string     `gorm:"type:varchar(64)"`

	PlacedAt time.Time `gorm:"type:timestamptz;not null;index:idx_orders_user_placed,priority:2"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one purchased product snapshot.
type OrderItemDTO struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	ProductID string          `gorm:"type:varchar(64);not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"not null"`
	Image     string          `gorm:"type:text"`
}

// TableName specifies the database table name for line items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// ChargesDTO is the embedded pricing breakdown.
type ChargesDTO struct {
	ItemsPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DiscountType   string          `gorm:"type:varchar(16);not null"`
	DiscountCode   string          `gorm:"type:varchar(64)"`
	ShippingPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// AddressDTO is the embedded shipping address.
type AddressDTO struct {
	FullName string `gorm:"type:varchar(255);not null"`
	Phone    string `gorm:"type:varchar(16);not null"`
	Line1    string `gorm:"type:varchar(255);not null"`
	Line2    string `gorm:"type:varchar(255)"`
	City     string `gorm:"type:varchar(128);not null"`
	State    string `gorm:"type:varchar(128);not null"`
	Pincode  string `gorm:"type:varchar(6);not null"`
}

// PaymentDTO is the embedded payment data.
type PaymentDTO struct {
	Method    string `gorm:"type:varchar(8);not null"`
	UTRNumber string `gorm:"column:payment_utr_number;type:varchar(64)"`
}

// StatusDates holds the time each status was entered.
type StatusDates struct {
	ConfirmedAt      *time.Time `gorm:"type:timestamptz"`
	ProcessingAt     *time.Time `gorm:"type:timestamptz"`
	ShippedAt        *time.Time `gorm:"type:timestamptz"`
	OutForDeliveryAt *time.Time `gorm:"type:timestamptz"`
	DeliveredAt      *time.Time `gorm:"type:timestamptz"`
	CancelledAt      *time.Time `gorm:"type:timestamptz"`
}

func (d *StatusDates) slot(status order.Status) **time.Time {
	switch status {
	case order.Confirmed:
		return &d.ConfirmedAt
	case order.Processing:
		return &d.ProcessingAt
	case order.Shipped:
		return &d.ShippedAt
	case order.OutForDelivery:
		return &d.OutForDeliveryAt
	case order.Delivered:
		return &d.DeliveredAt
	case order.Cancelled:
		return &d.CancelledAt
	default:
		return nil
	}
}

func statusDatesFromDomain(dates map[order.Status]time.Time) StatusDates {
	var dto StatusDates
	for status, at := range dates {
		if slot := dto.slot(status); slot != nil {
			at := at.UTC()
			*slot = &at
		}
	}
	return dto
}

func (d StatusDates) toDomain() map[order.Status]time.Time {
	dates := make(map[order.Status]time.Time)
	for _, status := range order.AllStatuses() {
		if at := *d.slot(status); at != nil {
			dates[status] = at.UTC()
		}
	}
	return dates
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   orderID,
			Position:  i,
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Price:     item.UnitPrice().Decimal(),
			Quantity:  item.Quantity(),
			Image:     item.Image(),
		})
	}

	charges := o.Charges()
	address := o.ShippingAddress()

	var cancelledBy string
	if o.Status() == order.Cancelled {
		cancelledBy = o.Cancellation().By().String()
	}

	return OrderDTO{
		ID:      orderID,
		Code:    o.Code().String(),
		UserID:  o.UserID().Bytes(),
		Version: o.Version(),
		Items:   items,
		Charges: ChargesDTO{
			ItemsPrice:     charges.ItemsPrice().Decimal(),
			DiscountAmount: charges.DiscountAmount().Decimal(),
			DiscountType:   charges.DiscountType().String(),
			DiscountCode:   charges.DiscountCode(),
			ShippingPrice:  charges.ShippingPrice().Decimal(),
			TotalPrice:     charges.TotalPrice().Decimal(),
		},
		ShippingAddress: AddressDTO{
			FullName: address.FullName(),
			Phone:    address.Phone(),
			Line1:    address.Line1(),
			Line2:    address.Line2(),
			City:     address.City(),
			State:    address.State(),
			Pincode:  address.Pincode(),
		},
		Payment: PaymentDTO{
			Method:    o.Payment().Method().String(),
			UTRNumber: o.Payment().UTRNumber(),
		},
		Status:          o.Status().String(),
		StatusDates:     statusDatesFromDomain(o.StatusDates()),
		CancelReason:    o.Cancellation().Reason(),
		CancelledBy:     cancelledBy,
		RefundStatus:    o.Refund().Status().String(),
		RefundUTRNumber: o.Refund().UTRNumber(),
		RefundedAt:      o.Refund().RefundedAt(),
		TrackingID:      o.Tracking().TrackingID(),
		DeliveryPartner: o.Tracking().DeliveryPartner(),
		PlacedAt:        o.PlacedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	code, err := order.ParseCode(dto.Code)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	charges, err := chargesToDomain(dto.Charges)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(kernel.AddressFields{
		FullName: dto.ShippingAddress.FullName,
		Phone:    dto.ShippingAddress.Phone,
		Line1:    dto.ShippingAddress.Line1,
		Line2:    dto.ShippingAddress.Line2,
		City:     dto.ShippingAddress.City,
		State:    dto.ShippingAddress.State,
		Pincode:  dto.ShippingAddress.Pincode,
	})
	if err != nil {
		return nil, err
	}

	method, err := order.ParsePaymentMethod(dto.Payment.Method)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	refundStatus, err := order.ParseRefundStatus(dto.RefundStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:              id,
		Code:            code,
		UserID:          userID,
		Items:           items,
		Charges:         charges,
		ShippingAddress: address,
		PaymentMethod:   method,
		UTRNumber:       dto.Payment.UTRNumber,
		Status:          status,
		StatusDates:     dto.StatusDates.toDomain(),
		CancelReason:    dto.CancelReason,
		CancelledBy:     order.ParseCanceller(dto.CancelledBy),
		RefundStatus:    refundStatus,
		RefundUTRNumber: dto.RefundUTRNumber,
		RefundedAt:      dto.RefundedAt,
		TrackingID:      dto.TrackingID,
		DeliveryPartner: dto.DeliveryPartner,
		Version:         dto.Version,
	})
}

func itemToDomain(dto OrderItemDTO) (order.LineItem, error) {
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return order.LineItem{}, err
	}
	return order.NewLineItem(dto.ProductID, dto.Name, price, dto.Quantity, dto.Image)
}

func chargesToDomain(dto ChargesDTO) (order.Charges, error) {
	discountType, err := order.ParseDiscountType(dto.DiscountType)
	if err != nil {
		return order.Charges{}, err
	}

	itemsPrice, err := kernel.NewMoney(dto.ItemsPrice)
	if err != nil {
		return order.Charges{}, err
	}
	discount, err := kernel.NewMoney(dto.DiscountAmount)
	if err != nil {
		return order.Charges{}, err
	}
	shipping, err := kernel.NewMoney(dto.ShippingPrice)
	if err != nil {
		return order.Charges{}, err
	}

	return order.NewCharges(itemsPrice, discount, discountType, dto.DiscountCode, shipping)
}
