// Package order provides the Order aggregate and the order state machine.
//
// The package includes:
//   - Order: the aggregate root holding line item snapshots, charges, shipping
//     address, payment, status history, cancellation, refund and tracking data
//   - Status: the closed set of lifecycle states and the single transition table
//   - Charges: the price breakdown fixed at checkout
//   - Code: the human readable sequential order code (e.g. UK-2602-0001)
//
// Key business rules:
//   - Status follows confirmed -> processing -> shipped -> outForDelivery -> delivered
//   - cancelled is reachable from every state except delivered; delivered and
//     cancelled are terminal
//   - First entry into processing needs a tracking id and delivery partner
//   - Cancelling needs a reason; non-COD cancellations open a pending refund
//   - A pending refund completes exactly once, with a UTR
//   - Every status change stamps statusDates[status]; earlier stamps never change
//   - Each mutating method is all-or-nothing: on error the order is untouched
package order
