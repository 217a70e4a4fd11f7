package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

// Order event types.
const (
	OrderCreated         = "order.created"
	OrderStatusChanged   = "order.status_changed"
	OrderRefundCompleted = "order.refund_completed"
)

// OrderEvent is a notification about a committed order change.
type OrderEvent struct {
	Type         string    `json:"type"`
	OrderID      string    `json:"orderId"`
	OrderCode    string    `json:"orderCode"`
	UserID       string    `json:"userId"`
	Status       string    `json:"status"`
	RefundStatus string    `json:"refundStatus,omitempty"`
	TotalPrice   string    `json:"totalPrice"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// NewOrderEvent snapshots o for an event of the given type.
func NewOrderEvent(eventType string, o *order.Order, occurredAt time.Time) OrderEvent {
	return OrderEvent{
		Type:         eventType,
		OrderID:      o.ID().String(),
		OrderCode:    o.Code().String(),
		UserID:       o.UserID().String(),
		Status:       o.Status().String(),
		RefundStatus: o.Refund().Status().String(),
		TotalPrice:   o.Charges().TotalPrice().String(),
		OccurredAt:   occurredAt.UTC(),
	}
}

// EventPublisher delivers order events after commit. Delivery is best effort;
// callers log failures and never roll back because of them.
type EventPublisher interface {
	Publish(ctx context.Context, events ...OrderEvent) error
}
