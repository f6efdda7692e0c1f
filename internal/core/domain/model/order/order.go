package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/errs"
	"bolpurmart/internal/pkg/guard"
)

// Operation names used in TransitionRejected errors and metrics.
const (
	OpAccept   = "accept"
	OpDecline  = "decline"
	OpPickUp   = "pick up"
	OpDeliver  = "deliver"
	OpArchive  = "archive"
	maxAddress = 500
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrPartnerAlreadySet is the cause used when accept would overwrite an assignment.
	ErrPartnerAlreadySet = errors.New("delivery partner is already assigned")

	// ErrPartnerMismatch is the cause used when a partner acts on another partner's order.
	ErrPartnerMismatch = errors.New("order is assigned to another delivery partner")
)

// State is the full persisted state of an order, used to restore the aggregate from a
// record store and to map it back.
type State struct {
	ID                    kernel.ID
	CustomerPhone         string
	CustomerAddress       string
	DeliveryPartnerID     *kernel.ID
	Status                Status
	DeliveryFee           *kernel.Money
	PickupTime            *time.Time
	DeliveryTime          *time.Time
	EstimatedDeliveryTime *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	ArchivedAt            *time.Time
}

// Order is a single customer delivery request. It is the aggregate root guarding the
// order lifecycle.
//
// Order follows these invariants:
//   - Status only moves forward (see Status)
//   - DeliveryPartnerID is set exactly once, by Accept, and never changes afterwards
//   - Confirmed orders carry no partner; active and delivered orders always carry one
//   - PickupTime is set by MarkPickedUp, DeliveryTime by MarkDelivered
type Order struct {
	id                    kernel.ID
	customerPhone         string
	customerAddress       string
	deliveryPartnerID     *kernel.ID
	status                Status
	deliveryFee           *kernel.Money
	pickupTime            *time.Time
	deliveryTime          *time.Time
	estimatedDeliveryTime *time.Time
	createdAt             time.Time
	updatedAt             time.Time
	archivedAt            *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a Confirmed order. Orders are normally created by the external
// ordering system; this constructor serves seeding and tests.
//
// Example:
//
//	fee, _ := kernel.Rupees(30)
//	o, err := order.NewOrder(kernel.NewID(), "9999999999", "Santiniketan Road, Bolpur", &fee, time.Now())
func NewOrder(id kernel.ID, customerPhone, customerAddress string, fee *kernel.Money, now time.Time) (*Order, error) {
	o := &Order{
		status:      Confirmed,
		deliveryFee: fee,
		createdAt:   now,
		updatedAt:   now,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerPhone(customerPhone),
		o.setCustomerAddress(customerAddress),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from its persisted state and checks the invariants
// that must hold for any stored order.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		deliveryPartnerID:     s.DeliveryPartnerID,
		deliveryFee:           s.DeliveryFee,
		pickupTime:            s.PickupTime,
		deliveryTime:          s.DeliveryTime,
		estimatedDeliveryTime: s.EstimatedDeliveryTime,
		createdAt:             s.CreatedAt,
		updatedAt:             s.UpdatedAt,
		archivedAt:            s.ArchivedAt,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setStatus(s.Status),
	); err != nil {
		return nil, err
	}
	// Address and phone come from the ordering system and are kept as stored.
	o.customerPhone = s.CustomerPhone
	o.customerAddress = s.CustomerAddress

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's identifier.
func (o *Order) ID() kernel.ID {
	return o.id
}

// CustomerPhone returns the customer's contact number.
func (o *Order) CustomerPhone() string {
	return o.customerPhone
}

// CustomerAddress returns the delivery address.
func (o *Order) CustomerAddress() string {
	return o.customerAddress
}

// DeliveryPartnerID returns the assigned partner, or nil while unclaimed.
func (o *Order) DeliveryPartnerID() *kernel.ID {
	if o.deliveryPartnerID == nil {
		return nil
	}
	id := *o.deliveryPartnerID
	return &id
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryFee returns the fee paid for delivering the order, or nil if the ordering
// system did not provide one.
func (o *Order) DeliveryFee() *kernel.Money {
	return o.deliveryFee
}

// PickupTime returns when the order was picked up.
func (o *Order) PickupTime() *time.Time { return o.pickupTime }

// DeliveryTime returns when the order was delivered.
func (o *Order) DeliveryTime() *time.Time { return o.deliveryTime }

// EstimatedDeliveryTime returns the ordering system's estimate.
func (o *Order) EstimatedDeliveryTime() *time.Time { return o.estimatedDeliveryTime }

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last modification time.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// ArchivedAt returns when the delivered order was archived.
func (o *Order) ArchivedAt() *time.Time { return o.archivedAt }

// State returns a copy of the persisted state.
func (o *Order) State() State {
	return State{
		ID:                    o.id,
		CustomerPhone:         o.customerPhone,
		CustomerAddress:       o.customerAddress,
		DeliveryPartnerID:     o.DeliveryPartnerID(),
		Status:                o.status,
		DeliveryFee:           o.deliveryFee,
		PickupTime:            o.pickupTime,
		DeliveryTime:          o.deliveryTime,
		EstimatedDeliveryTime: o.estimatedDeliveryTime,
		CreatedAt:             o.createdAt,
		UpdatedAt:             o.updatedAt,
		ArchivedAt:            o.archivedAt,
	}
}

// Accept claims the order for partnerID.
//
// Business rules:
//   - The order must be Confirmed
//   - The partner id is written once and is immutable afterwards
//
// Returns a TransitionRejectedError otherwise; the order is left unchanged.
func (o *Order) Accept(partnerID kernel.ID, now time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	next, err := o.status.Accept()
	if err != nil {
		return o.rejected(OpAccept, err)
	}
	if o.deliveryPartnerID != nil {
		return o.rejected(OpAccept, ErrPartnerAlreadySet)
	}

	o.status = next
	o.deliveryPartnerID = &partnerID
	o.updatedAt = now
	return nil
}

// Decline removes the order from the available list. No caller identity is checked and
// an existing assignment is left in place.
func (o *Order) Decline(now time.Time) error {
	next, err := o.status.Decline()
	if err != nil {
		return o.rejected(OpDecline, err)
	}

	o.status = next
	o.updatedAt = now
	return nil
}

// MarkPickedUp records the pickup of an Accepted order.
func (o *Order) MarkPickedUp(now time.Time) error {
	next, err := o.status.PickUp()
	if err != nil {
		return o.rejected(OpPickUp, err)
	}

	o.status = next
	o.pickupTime = &now
	o.updatedAt = now
	return nil
}

// MarkDelivered completes a PickedUp or EnRoute order on behalf of its assigned partner.
func (o *Order) MarkDelivered(partnerID kernel.ID, now time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	next, err := o.status.Deliver()
	if err != nil {
		return o.rejected(OpDeliver, err)
	}
	if o.deliveryPartnerID == nil || !o.deliveryPartnerID.IsEqual(partnerID) {
		return o.rejected(OpDeliver, ErrPartnerMismatch)
	}

	o.status = next
	o.deliveryTime = &now
	o.updatedAt = now
	return nil
}

// Archive marks a delivered order as archived. Archiving twice is a no-op.
func (o *Order) Archive(now time.Time) error {
	if o.status != Delivered {
		return o.rejected(OpArchive, fmt.Errorf("only delivered orders are archived"))
	}
	if o.archivedAt == nil {
		o.archivedAt = &now
	}
	return nil
}

func (o *Order) rejected(op string, cause error) error {
	return errs.NewTransitionRejectedErrorWithCause(op, o.id.String(), o.status.String(), cause)
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerPhone(phone string) error {
	p, err := kernel.NewPhone(phone)
	if err != nil {
		return err
	}
	o.customerPhone = p.String()
	return nil
}

func (o *Order) setCustomerAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("customer address")
	}
	if len(address) > maxAddress {
		return errs.NewValueIsOutOfRangeError("customer address length", len(address), 1, maxAddress)
	}
	o.customerAddress = address
	return nil
}

// setStatus validates a restored status against the partner assignment.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	hasPartner := o.deliveryPartnerID != nil
	if status.RequiresPartner() && !hasPartner {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no delivery partner", status),
		)
	}
	if status == Confirmed && hasPartner {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a delivery partner", status),
		)
	}
	o.status = status
	return nil
}
