// Package errs provides standardized error types for the ordering application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two groups of error types:
//   - Value errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError)
//     that together form the validation category: malformed input rejected before
//     any state change.
//   - Business errors (CouponInvalidError, InvalidTransitionError, RefundNotApplicableError,
//     AccessDeniedError) raised when a well-formed request breaks a business rule.
//   - Infrastructure-facing errors (ObjectNotFoundError, VersionIsInvalidError).
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so callers classify with errors.Is
package errs
