package kernel

import (
	"fmt"
	"strings"

	"bolpurmart/internal/pkg/errs"

	"github.com/google/uuid"
)

// maxIDLength bounds identifiers coming from the session provider or the ordering system.
const maxIDLength = 128

// ErrIDIsNotConstructed is returned when validating a zero-value ID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID or IDFromString")

// ID is an opaque document identifier. Partner identifiers are issued by the session
// provider and order identifiers by the external ordering system, so IDs are not
// required to be UUIDs; ids generated by this application (earnings, outbox events)
// are random UUIDs.
//
// The zero value of ID is invalid.
type ID struct {
	value string
}

// NewID generates a new random identifier.
func NewID() ID {
	return ID{value: uuid.NewString()}
}

// IDFromString validates and wraps an externally issued identifier.
// Surrounding whitespace is trimmed; empty, overlong or path-like values are rejected.
//
// Example:
//
//	orderID, err := kernel.IDFromString(c.Param("orderId"))
//	if err != nil {
//	    return err
//	}
func IDFromString(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ID{}, errs.NewValueIsRequiredError("id")
	}
	if len(s) > maxIDLength {
		return ID{}, errs.NewValueIsOutOfRangeError("id length", len(s), 1, maxIDLength)
	}
	if strings.ContainsAny(s, "/\n\r\t ") {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%q contains forbidden characters", s))
	}
	return ID{value: s}, nil
}

// MustIDFromString is IDFromString for literals; it panics on invalid input.
func MustIDFromString(s string) ID {
	id, err := IDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the identifier text.
func (i ID) String() string {
	return i.value
}

// IsEqual compares two identifiers.
func (i ID) IsEqual(other ID) bool {
	return i.value == other.value
}

// IsZero reports whether the identifier is the zero value.
func (i ID) IsZero() bool {
	return i.value == ""
}

// Validate returns ErrIDIsNotConstructed for the zero value.
func (i ID) Validate() error {
	if i.value == "" {
		return ErrIDIsNotConstructed
	}
	return nil
}
