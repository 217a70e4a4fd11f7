// Package checkout holds the checkout steps shared by the order creation
// command and the cart quote query: copying catalog data into line item
// snapshots and validating a coupon code for a caller.
package checkout
