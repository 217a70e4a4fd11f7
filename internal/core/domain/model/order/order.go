package order

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a placed order. It is created at checkout in
// Confirmed status and afterwards only changed through ChangeStatus,
// UpdateTracking and CompleteRefund.
//
// Order follows these invariants:
//   - Has at least one line item; items are value snapshots
//   - Charges.ItemsPrice equals the sum of the line item totals
//   - statusDates holds a stamp for every status the order has entered
//   - A refund exists only for cancelled non-COD orders
//   - Delivered and Cancelled orders never change status again
type Order struct {
	// id is the internal identifier
	id kernel.UUID

	// code is the human readable sequential number
	code Code

	// userID is the purchasing customer
	userID kernel.UUID

	items           []LineItem
	charges         Charges
	shippingAddress kernel.Address
	payment         Payment

	status      Status
	statusDates map[Status]time.Time

	cancellation Cancellation
	refund       Refund
	tracking     Tracking

	// version is the optimistic concurrency token maintained by the repository
	version int

	isConstructed bool
}

// NewOrder creates an order in Confirmed status stamped at now.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), code, userID, items, charges, address, payment, time.Now())
//	if err != nil {
//	    // validation error, nothing was created
//	}
func NewOrder(
	id kernel.UUID,
	code Code,
	userID kernel.UUID,
	items []LineItem,
	charges Charges,
	shippingAddress kernel.Address,
	payment Payment,
	now time.Time,
) (*Order, error) {
	o := &Order{
		payment:       payment,
		status:        Confirmed,
		statusDates:   map[Status]time.Time{Confirmed: now.UTC()},
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(code),
		o.setUserID(userID),
		o.setItems(items),
		o.setShippingAddress(shippingAddress),
		payment.Method().Validate(),
	); err != nil {
		return nil, err
	}

	if err := o.setCharges(charges); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries persisted state for RestoreOrder.
type RestoreParams struct {
	ID              kernel.UUID
	Code            Code
	UserID          kernel.UUID
	Items           []LineItem
	Charges         Charges
	ShippingAddress kernel.Address
	PaymentMethod   PaymentMethod
	UTRNumber       string
	Status          Status
	StatusDates     map[Status]time.Time
	CancelReason    string
	CancelledBy     Canceller
	RefundStatus    RefundStatus
	RefundUTRNumber string
	RefundedAt      *time.Time
	TrackingID      string
	DeliveryPartner string
	Version         int
}

// RestoreOrder rebuilds an order from persistence without replaying transitions.
func RestoreOrder(p RestoreParams) (*Order, error) {
	if err := p.Status.Validate(); err != nil {
		return nil, err
	}
	if err := p.PaymentMethod.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		payment:      Payment{method: p.PaymentMethod, utrNumber: p.UTRNumber},
		status:       p.Status,
		statusDates:  maps.Clone(p.StatusDates),
		cancellation: Cancellation{reason: p.CancelReason, by: p.CancelledBy},
		refund: Refund{
			status:     p.RefundStatus,
			utrNumber:  p.RefundUTRNumber,
			refundedAt: p.RefundedAt,
		},
		tracking:      Tracking{trackingID: p.TrackingID, deliveryPartner: p.DeliveryPartner},
		charges:       p.Charges,
		version:       p.Version,
		isConstructed: true,
	}
	if o.statusDates == nil {
		o.statusDates = make(map[Status]time.Time)
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCode(p.Code),
		o.setUserID(p.UserID),
		o.setItems(p.Items),
		o.setShippingAddress(p.ShippingAddress),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                 { return o.id }
func (o *Order) Code() Code                      { return o.code }
func (o *Order) UserID() kernel.UUID             { return o.userID }
func (o *Order) Charges() Charges                { return o.charges }
func (o *Order) ShippingAddress() kernel.Address { return o.shippingAddress }
func (o *Order) Payment() Payment                { return o.payment }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) Cancellation() Cancellation      { return o.cancellation }
func (o *Order) Refund() Refund                  { return o.refund }
func (o *Order) Tracking() Tracking              { return o.tracking }
func (o *Order) Version() int                    { return o.version }

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// StatusDates returns a copy of the status history.
func (o *Order) StatusDates() map[Status]time.Time {
	return maps.Clone(o.statusDates)
}

// PlacedAt is when the order entered Confirmed.
func (o *Order) PlacedAt() time.Time {
	return o.statusDates[Confirmed]
}

// IncrementVersion is called by the repository after a successful write.
func (o *Order) IncrementVersion() {
	o.version++
}

// StatusChange is a requested transition with its side data.
type StatusChange struct {
	To              Status
	TrackingID      string
	DeliveryPartner string
	CancelReason    string
}

// ChangeStatus is the single entry point of the order state machine.
//
// Business rules:
//   - Only admins may advance fulfillment; customers may only cancel their own
//     orders while Confirmed or Processing
//   - The move must be allowed by Status.ValidateTransition
//   - Entering Processing requires tracking id and delivery partner, supplied
//     now or already present
//   - Cancelling requires a reason, records the canceller and opens a pending
//     refund unless the order is cash on delivery
//
// On error nothing is modified.
func (o *Order) ChangeStatus(actor kernel.Actor, change StatusChange, now time.Time) error {
	if err := change.To.Validate(); err != nil {
		return err
	}

	if err := o.authorizeStatusChange(actor, change.To); err != nil {
		return err
	}

	if err := o.status.ValidateTransition(change.To); err != nil {
		return err
	}

	tracking := o.tracking.merge(strings.TrimSpace(change.TrackingID), strings.TrimSpace(change.DeliveryPartner))
	if change.To == Processing && !tracking.IsComplete() {
		return errs.NewInvalidTransitionErrorWithCause(
			o.status.String(), change.To.String(),
			errors.New("trackingId and deliveryPartner are required"),
		)
	}

	cancellation := o.cancellation
	refund := o.refund
	if change.To == Cancelled {
		reason := strings.TrimSpace(change.CancelReason)
		if reason == "" {
			return errs.NewInvalidTransitionErrorWithCause(
				o.status.String(), change.To.String(),
				errs.NewValueIsRequiredError("cancelReason"),
			)
		}

		cancellation = Cancellation{reason: reason, by: CancelledByUser}
		if actor.IsAdmin() {
			cancellation.by = CancelledByAdmin
		}

		if !o.payment.IsCashOnDelivery() {
			refund = Refund{status: RefundPending}
		}
	}

	o.status = change.To
	o.statusDates[change.To] = now.UTC()
	o.tracking = tracking
	o.cancellation = cancellation
	o.refund = refund
	return nil
}

// UpdateTracking edits the tracking fields without a status change.
// Admin only; not allowed once the order is cancelled.
func (o *Order) UpdateTracking(actor kernel.Actor, trackingID, deliveryPartner string) error {
	if !actor.IsAdmin() {
		return errs.NewAccessDeniedError("only admins can edit tracking")
	}

	if o.status == Cancelled {
		return errs.NewInvalidTransitionErrorWithCause(
			o.status.String(), o.status.String(),
			errors.New("tracking cannot be edited on a cancelled order"),
		)
	}

	tracking := o.tracking.merge(strings.TrimSpace(trackingID), strings.TrimSpace(deliveryPartner))
	if !tracking.IsComplete() {
		return errors.Join(
			requiredIfEmpty("trackingId", tracking.trackingID),
			requiredIfEmpty("deliveryPartner", tracking.deliveryPartner),
		)
	}

	o.tracking = tracking
	return nil
}

// CompleteRefund records the refund transfer for a cancelled prepaid order.
// It succeeds exactly once; later attempts fail with RefundNotApplicable.
func (o *Order) CompleteRefund(actor kernel.Actor, refundUTR string, now time.Time) error {
	if !actor.IsAdmin() {
		return errs.NewAccessDeniedError("only admins can complete refunds")
	}

	switch {
	case o.payment.IsCashOnDelivery():
		return errs.NewRefundNotApplicableError(o.code.String(), "cash on delivery orders have no refund")
	case o.status != Cancelled:
		return errs.NewRefundNotApplicableError(o.code.String(), fmt.Sprintf("order is %s, not cancelled", o.status))
	case o.refund.status == RefundCompleted:
		return errs.NewRefundNotApplicableError(o.code.String(), "refund already completed")
	case o.refund.status != RefundPending:
		return errs.NewRefundNotApplicableError(o.code.String(), "no pending refund")
	}

	utr := strings.TrimSpace(refundUTR)
	if utr == "" {
		return errs.NewValueIsRequiredError("refundUtrNumber")
	}

	refundedAt := now.UTC()
	o.refund = Refund{status: RefundCompleted, utrNumber: utr, refundedAt: &refundedAt}
	return nil
}

func (o *Order) authorizeStatusChange(actor kernel.Actor, to Status) error {
	if actor.IsAdmin() {
		return nil
	}

	if !actor.Owns(o.userID) {
		return errs.NewAccessDeniedError("order belongs to another customer")
	}

	if to != Cancelled {
		return errs.NewAccessDeniedError("customers can only cancel orders")
	}

	return o.status.ValidateCustomerCancel()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCode(code Code) error {
	if code.IsZero() {
		return errs.NewValueIsRequiredError("orderCode")
	}
	o.code = code
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	o.userID = userID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]LineItem(nil), items...)
	return nil
}

func (o *Order) setShippingAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setCharges(charges Charges) error {
	if subtotal := Subtotal(o.items); !subtotal.IsEqual(charges.ItemsPrice()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"itemsPrice",
			fmt.Errorf("%s does not match line item total %s", charges.ItemsPrice(), subtotal),
		)
	}
	o.charges = charges
	return nil
}

func requiredIfEmpty(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
