// Package guard provides ConstructorGuard, a marker that lets value objects, commands
// and queries detect that they were built through their constructor rather than as a
// zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the caller
// passes a nil validation error, so that an unconstructed object always fails with a
// readable message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be created via a constructor.
// Its zero value means "not constructed": a struct literal, a zero-value variable or a
// field that was never assigned all carry a zero guard, and their Validate fails.
//
// Commands and queries in this module embed a guard and check it first thing in their
// handler's Handle, before any unit of work is opened. Domain aggregates check it in
// their own Validate, which repositories call before writing.
//
// Example usage:
//
//	var ErrAcceptOrderCommandIsNotConstructed = errors.New(
//	    "AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
//	)
//
//	type AcceptOrderCommand struct {
//	    orderID   kernel.ID
//	    partnerID kernel.ID
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewAcceptOrderCommand(orderID, partnerID kernel.ID) (AcceptOrderCommand, error) {
//	    if err := errors.Join(orderID.Validate(), partnerID.Validate()); err != nil {
//	        return AcceptOrderCommand{}, err
//	    }
//	    return AcceptOrderCommand{
//	        orderID:   orderID,
//	        partnerID: partnerID,
//	        guard:     guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (c AcceptOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
//	}
//
// The guard carries no other state and is safe to copy along with its owner.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed. Call it only from the
// owning type's constructor, after every argument has been validated, so that a
// constructed guard implies a valid object.
//
// Returns:
//   - A ConstructorGuard whose Validate returns nil
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the owning object came from its constructor.
//
// Parameters:
//   - validationError: the error to report for an unconstructed object, usually the
//     owner's ErrXxxIsNotConstructed sentinel
//
// Example:
//
//	func (q GetEarningsQuery) Validate() error {
//	    return q.guard.Validate(ErrGetEarningsQueryIsNotConstructed)
//	}
//
// Returns:
//   - nil if the guard was created by NewConstructorGuard
//   - validationError if the guard is a zero value
//   - ErrDefaultConstructorGuard if the guard is a zero value and validationError is nil
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
