// Package services provides domain services that compute results spanning
// several aggregates of the ordering system and do not belong to any one of them.
//
// The package includes:
//   - PricingEngine: turns a cart subtotal, an optional coupon and the tier
//     configuration into the order charges
//   - VisibilityGate: decides whether a tracking lookup sees the full order or
//     the redacted view
//
// Both services are stateless and free of I/O; the application layer loads
// the aggregates and passes them in.
package services
