// Package errs provides standardized error types for the partner application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Validation and lookup errors:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value is outside its allowed bounds
//   - ObjectNotFoundError: a record does not exist
//
// Application failure taxonomy:
//   - AuthError: credential rejection, disabled account, rate limiting; mapped to fixed
//     user-facing strings by UserMessage and never retried automatically
//   - ErrProfileNotFound: an authenticated identity without a partner record
//   - TransitionRejectedError: a lifecycle precondition no longer holds
//   - WriteFailureError: the persistence layer refused a write
//
// Each error type follows the same shape: a sentinel error variable, a struct type with
// the details, constructor functions with and without cause, Error() and Unwrap().
package errs
