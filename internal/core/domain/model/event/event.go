// Package event defines the order lifecycle events published to the external ordering
// system. Events are written to an outbox in the same transaction as the change they
// describe and relayed afterwards.
package event

import (
	"encoding/json"
	"fmt"
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/order"
)

// Type names an event on the wire.
type Type string

const (
	OrderAccepted  Type = "order.accepted"
	OrderDeclined  Type = "order.declined"
	OrderPickedUp  Type = "order.picked_up"
	OrderDelivered Type = "order.delivered"
	OrderArchived  Type = "order.archived"
)

// Event is an immutable record of a committed lifecycle change.
type Event struct {
	ID          kernel.ID
	AggregateID kernel.ID
	Type        Type
	Payload     []byte
	OccurredAt  time.Time
}

// OrderPayload is the JSON body of every order event.
type OrderPayload struct {
	OrderID           string     `json:"orderId"`
	Status            string     `json:"status"`
	DeliveryPartnerID string     `json:"deliveryPartnerId,omitempty"`
	PickupTime        *time.Time `json:"pickupTime,omitempty"`
	DeliveryTime      *time.Time `json:"deliveryTime,omitempty"`
	ArchivedAt        *time.Time `json:"archivedAt,omitempty"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// TypeFor returns the event type for an order that moved from one status to the next.
func TypeFor(from order.Status, o *order.Order) (Type, error) {
	to := o.Status()
	switch {
	case from == order.Delivered && to == order.Delivered && o.ArchivedAt() != nil:
		return OrderArchived, nil
	case to == order.Accepted:
		return OrderAccepted, nil
	case to == order.Declined:
		return OrderDeclined, nil
	case to == order.PickedUp:
		return OrderPickedUp, nil
	case to == order.Delivered:
		return OrderDelivered, nil
	}
	return "", fmt.Errorf("no event for %s -> %s", from, to)
}

// NewOrderEvent snapshots o into an event of type t.
func NewOrderEvent(t Type, o *order.Order, occurredAt time.Time) (Event, error) {
	p := OrderPayload{
		OrderID:      o.ID().String(),
		Status:       o.Status().String(),
		PickupTime:   o.PickupTime(),
		DeliveryTime: o.DeliveryTime(),
		ArchivedAt:   o.ArchivedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
	if id := o.DeliveryPartnerID(); id != nil {
		p.DeliveryPartnerID = id.String()
	}
	body, err := json.Marshal(p)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:          kernel.NewID(),
		AggregateID: o.ID(),
		Type:        t,
		Payload:     body,
		OccurredAt:  occurredAt,
	}, nil
}
