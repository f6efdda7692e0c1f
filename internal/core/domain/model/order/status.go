package order

import (
	"fmt"

	"bolpurmart/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a forward-only state machine: once an order advances it never returns
// to an earlier status.
//
// State transitions:
//
//	Confirmed ──> Accepted ──> PickedUp ──> EnRoute ──> Delivered
//	    │            │                        │             ▲
//	    │            │                        └─────────────┘ (en_route is optional)
//	    └────────────┴──> Declined (terminal, removed from the feed)
//
// Confirmed orders are created by the external ordering system. EnRoute is written by
// that system's tracking as well; this application reads it and may deliver from it.
// The string values are the persisted representation.
type Status string

const (
	// Unknown represents an invalid or undefined status.
	// The empty string helps catch uninitialized Status values.
	Unknown Status = ""

	// Confirmed orders are visible to every approved partner as available orders.
	Confirmed Status = "confirmed"

	// Accepted orders are claimed by exactly one partner.
	Accepted Status = "accepted"

	// PickedUp orders have been collected from the store.
	PickedUp Status = "picked_up"

	// EnRoute orders are on the way to the customer.
	EnRoute Status = "en_route"

	// Delivered is the final successful state.
	Delivered Status = "delivered"

	// Declined orders were removed from the available list. Terminal.
	Declined Status = "declined"
)

// rank orders statuses along the lifecycle. Declined ranks after every state it can be
// reached from, so that it is also a forward move.
func (s Status) rank() int {
	switch s {
	case Confirmed:
		return 1
	case Accepted:
		return 2
	case PickedUp:
		return 3
	case EnRoute:
		return 4
	case Delivered:
		return 5
	case Declined:
		return 6
	case Unknown:
		return 0
	}
	return 0
}

// ParseStatus converts the persisted representation into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return Unknown, err
	}
	return status, nil
}

// Validate checks if the Status value is one of the lifecycle states.
func (s Status) Validate() error {
	if s.rank() == 0 {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the persisted name of the status, or "unknown".
func (s Status) String() string {
	if s.rank() == 0 {
		return "unknown"
	}
	return string(s)
}

// IsActive reports whether the order is claimed and still in progress.
// These are the statuses shown in a partner's active orders.
func (s Status) IsActive() bool {
	return s == Accepted || s == PickedUp || s == EnRoute
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Declined
}

// RequiresPartner reports whether an order in this status must carry a partner id.
func (s Status) RequiresPartner() bool {
	return s.IsActive() || s == Delivered
}

// Precedes reports whether s comes strictly before other in the lifecycle.
func (s Status) Precedes(other Status) bool {
	return s.rank() < other.rank()
}

// Accept transitions Confirmed -> Accepted.
func (s Status) Accept() (Status, error) {
	if s != Confirmed {
		return Unknown, invalidTransition(s, Accepted)
	}
	return Accepted, nil
}

// Decline transitions Confirmed or Accepted -> Declined.
func (s Status) Decline() (Status, error) {
	if s != Confirmed && s != Accepted {
		return Unknown, invalidTransition(s, Declined)
	}
	return Declined, nil
}

// PickUp transitions Accepted -> PickedUp.
func (s Status) PickUp() (Status, error) {
	if s != Accepted {
		return Unknown, invalidTransition(s, PickedUp)
	}
	return PickedUp, nil
}

// Deliver transitions PickedUp or EnRoute -> Delivered.
func (s Status) Deliver() (Status, error) {
	if s != PickedUp && s != EnRoute {
		return Unknown, invalidTransition(s, Delivered)
	}
	return Delivered, nil
}

func invalidTransition(from, to Status) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("cannot move from %s to %s", from.String(), to.String()),
	)
}
