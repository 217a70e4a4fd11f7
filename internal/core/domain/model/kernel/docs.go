// Package kernel provides the shared value objects of the ordering domain.
//
// The package includes:
//   - UUID: internal identifier for orders, coupons and users
//   - Money: a decimal rupee amount with the rounding rules used by pricing
//   - Address: a validated shipping address snapshot
//   - Actor: the identity and role of the caller performing an operation
//
// Value objects are immutable. Those whose zero value is not meaningful carry a
// guard.ConstructorGuard and expose Validate.
package kernel
