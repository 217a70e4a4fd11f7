package order

import (
	"fmt"
	"time"

	"ordering/internal/pkg/errs"
)

// RefundStatus tracks money owed back on a cancelled prepaid order.
type RefundStatus int

const (
	// RefundNone means no refund obligation exists.
	RefundNone RefundStatus = iota
	RefundPending
	RefundCompleted
)

func (r RefundStatus) String() string {
	switch r {
	case RefundPending:
		return "pending"
	case RefundCompleted:
		return "completed"
	default:
		return ""
	}
}

// ParseRefundStatus accepts "", "pending" or "completed".
func ParseRefundStatus(s string) (RefundStatus, error) {
	switch s {
	case "":
		return RefundNone, nil
	case "pending":
		return RefundPending, nil
	case "completed":
		return RefundCompleted, nil
	default:
		return RefundNone, errs.NewValueIsInvalidErrorWithCause(
			"refundStatus",
			fmt.Errorf("%q is not one of pending, completed", s),
		)
	}
}

// Refund is the refund sub-state of a cancelled, non-COD order.
type Refund struct {
	status     RefundStatus
	utrNumber  string
	refundedAt *time.Time
}

func (r Refund) Status() RefundStatus { return r.status }
func (r Refund) UTRNumber() string    { return r.utrNumber }

// RefundedAt is nil until the refund completes.
func (r Refund) RefundedAt() *time.Time {
	if r.refundedAt == nil {
		return nil
	}
	t := *r.refundedAt
	return &t
}

// Canceller records which side cancelled an order.
type Canceller int

const (
	CancelledByNobody Canceller = iota
	CancelledByUser
	CancelledByAdmin
)

func (c Canceller) String() string {
	switch c {
	case CancelledByUser:
		return "user"
	case CancelledByAdmin:
		return "admin"
	default:
		return ""
	}
}

// ParseCanceller is the inverse of Canceller.String.
func ParseCanceller(s string) Canceller {
	switch s {
	case "user":
		return CancelledByUser
	case "admin":
		return CancelledByAdmin
	default:
		return CancelledByNobody
	}
}

// Cancellation holds why and by whom an order was cancelled.
type Cancellation struct {
	reason string
	by     Canceller
}

func (c Cancellation) Reason() string { return c.reason }
func (c Cancellation) By() Canceller  { return c.by }

// Tracking identifies the shipment with the delivery partner.
type Tracking struct {
	trackingID      string
	deliveryPartner string
}

func (t Tracking) TrackingID() string      { return t.trackingID }
func (t Tracking) DeliveryPartner() string { return t.deliveryPartner }

// IsComplete reports whether both tracking fields are present.
func (t Tracking) IsComplete() bool {
	return t.trackingID != "" && t.deliveryPartner != ""
}

// merge overlays non-empty values from other.
func (t Tracking) merge(trackingID, deliveryPartner string) Tracking {
	if trackingID != "" {
		t.trackingID = trackingID
	}
	if deliveryPartner != "" {
		t.deliveryPartner = deliveryPartner
	}
	return t
}
