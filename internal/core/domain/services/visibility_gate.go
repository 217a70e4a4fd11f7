package services

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// RedactedOrder is the part of an order safe to show to anyone holding its
// code: no items, no shipping address, no prices, no UTRs, no cancel reason.
type RedactedOrder struct {
	Code            order.Code
	Status          order.Status
	PlacedAt        time.Time
	TrackingID      string
	DeliveryPartner string
	IsCancelled     bool
	CancelledBy     order.Canceller
	RefundStatus    order.RefundStatus
}

// TrackedOrder is the gate's answer. Exactly one of Order and Redacted is set.
type TrackedOrder struct {
	IsOwner  bool
	Order    *order.Order
	Redacted *RedactedOrder
}

// VisibilityGate hands the full order to its owner and the redacted view to
// everyone else. Admins and anonymous callers are treated like any other
// non-owner.
type VisibilityGate struct{}

func NewVisibilityGate() VisibilityGate {
	return VisibilityGate{}
}

func (VisibilityGate) Reveal(o *order.Order, viewer kernel.Actor) (TrackedOrder, error) {
	if err := o.Validate(); err != nil {
		return TrackedOrder{}, err
	}

	if viewer.Owns(o.UserID()) {
		return TrackedOrder{IsOwner: true, Order: o}, nil
	}

	return TrackedOrder{Redacted: Redact(o)}, nil
}

// Redact builds the non-owner view of o.
func Redact(o *order.Order) *RedactedOrder {
	return &RedactedOrder{
		Code:            o.Code(),
		Status:          o.Status(),
		PlacedAt:        o.PlacedAt(),
		TrackingID:      o.Tracking().TrackingID(),
		DeliveryPartner: o.Tracking().DeliveryPartner(),
		IsCancelled:     o.Status() == order.Cancelled,
		CancelledBy:     o.Cancellation().By(),
		RefundStatus:    o.Refund().Status(),
	}
}
