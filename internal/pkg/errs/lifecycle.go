package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrTransitionRejected is the sentinel for lifecycle operations whose precondition
	// no longer holds when they reach the store.
	ErrTransitionRejected = errors.New("transition rejected")

	// ErrWriteFailure is the sentinel for writes the persistence layer refused.
	ErrWriteFailure = errors.New("write failure")

	// ErrProfileNotFound means an authenticated identity has no partner record.
	// It is a persistent state, not a transient error.
	ErrProfileNotFound = errors.New("delivery partner profile not found")
)

// TransitionRejectedError reports that an order could not move from its current status
// with the requested operation. It is never retried automatically.
type TransitionRejectedError struct {
	Operation string
	OrderID   string
	Current   string
	Cause     error
}

// NewTransitionRejectedError creates a TransitionRejectedError.
// Current may be empty when the current status is unknown to the caller (lost race).
func NewTransitionRejectedError(operation, orderID, current string) *TransitionRejectedError {
	return &TransitionRejectedError{
		Operation: operation,
		OrderID:   orderID,
		Current:   current,
	}
}

// NewTransitionRejectedErrorWithCause creates a TransitionRejectedError wrapping cause.
func NewTransitionRejectedErrorWithCause(operation, orderID, current string, cause error) *TransitionRejectedError {
	return &TransitionRejectedError{
		Operation: operation,
		OrderID:   orderID,
		Current:   current,
		Cause:     cause,
	}
}

func (e *TransitionRejectedError) Error() string {
	msg := fmt.Sprintf("%s: %s on order %s", ErrTransitionRejected, e.Operation, sanitize(e.OrderID))
	if e.Current != "" {
		msg += fmt.Sprintf(" in status %s", e.Current)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *TransitionRejectedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrTransitionRejected, e.Cause}
	}
	return []error{ErrTransitionRejected}
}

// WriteFailureError wraps a persistence error so callers can show a one-shot notice.
type WriteFailureError struct {
	Operation string
	Cause     error
}

// NewWriteFailureError creates a WriteFailureError.
func NewWriteFailureError(operation string, cause error) *WriteFailureError {
	return &WriteFailureError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *WriteFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrWriteFailure, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrWriteFailure, e.Operation)
}

func (e *WriteFailureError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrWriteFailure, e.Cause}
	}
	return []error{ErrWriteFailure}
}

// WrapWrite turns a store error into a WriteFailureError unless it already carries a
// classification the caller must see unchanged.
func WrapWrite(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTransitionRejected) ||
		errors.Is(err, ErrObjectNotFound) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange) ||
		errors.Is(err, ErrWriteFailure) {
		return err
	}
	return NewWriteFailureError(operation, err)
}
