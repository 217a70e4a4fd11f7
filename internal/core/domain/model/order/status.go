package order

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Confirmed ──> Processing ──> Shipped ──> OutForDelivery ──> Delivered
//	    │             │             │               │
//	    └─────────────┴─────────────┴───────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal. Customers may only cancel from
// Confirmed or Processing; operators may cancel from any non-terminal state.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Confirmed
	Processing
	Shipped
	OutForDelivery
	Delivered
	Cancelled
)

// fulfillmentPath is the forward order of the non-cancelled states.
var fulfillmentPath = []Status{Confirmed, Processing, Shipped, OutForDelivery, Delivered}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Confirmed:      "confirmed",
		Processing:     "processing",
		Shipped:        "shipped",
		OutForDelivery: "outForDelivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// AllStatuses returns the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return append(append([]Status{}, fulfillmentPath...), Cancelled)
}

// ParseStatus converts the wire name of a status (e.g. "outForDelivery").
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("orderStatus", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition may leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// next returns the fulfillment successor of s.
func (s Status) next() (Status, bool) {
	for i, status := range fulfillmentPath[:len(fulfillmentPath)-1] {
		if status == s {
			return fulfillmentPath[i+1], true
		}
	}
	return Unknown, false
}

// ValidateTransition checks the move s -> to against the transition table.
// Forward moves go exactly one step; Cancelled is reachable from every
// non-terminal state.
func (s Status) ValidateTransition(to Status) error {
	if err := errors.Join(s.Validate(), to.Validate()); err != nil {
		return errs.NewInvalidTransitionErrorWithCause(s.String(), to.String(), err)
	}

	if s.IsTerminal() {
		return errs.NewInvalidTransitionErrorWithCause(
			s.String(), to.String(),
			fmt.Errorf("%s is a terminal status", s),
		)
	}

	if to == Cancelled {
		return nil
	}

	if next, ok := s.next(); !ok || next != to {
		return errs.NewInvalidTransitionErrorWithCause(
			s.String(), to.String(),
			fmt.Errorf("%s can only advance to %s", s, next),
		)
	}

	return nil
}

// ValidateCustomerCancel checks that a customer may still cancel from s.
func (s Status) ValidateCustomerCancel() error {
	if s != Confirmed && s != Processing {
		return errs.NewInvalidTransitionErrorWithCause(
			s.String(), Cancelled.String(),
			fmt.Errorf("customers can only cancel %s or %s orders", Confirmed, Processing),
		)
	}
	return nil
}
