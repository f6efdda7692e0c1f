// Package earnings holds the per-delivery payout records shown in the partner's history.
package earnings

import (
	"errors"
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/guard"
)

// ErrEarningIsNotConstructed is returned when using an improperly initialized Earning.
var ErrEarningIsNotConstructed = errors.New("Earning must be created via NewEarning or RestoreEarning constructor")

// Earning is appended once per delivered order and never modified.
type Earning struct {
	id        kernel.ID
	partnerID kernel.ID
	orderID   kernel.ID
	amount    kernel.Money
	date      time.Time

	guard guard.ConstructorGuard
}

// NewEarning creates an earning for a delivered order with a fresh identifier.
func NewEarning(partnerID, orderID kernel.ID, amount kernel.Money, date time.Time) (*Earning, error) {
	return RestoreEarning(kernel.NewID(), partnerID, orderID, amount, date)
}

// RestoreEarning rebuilds an earning from storage.
func RestoreEarning(id, partnerID, orderID kernel.ID, amount kernel.Money, date time.Time) (*Earning, error) {
	if err := errors.Join(id.Validate(), partnerID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	return &Earning{
		id:        id,
		partnerID: partnerID,
		orderID:   orderID,
		amount:    amount,
		date:      date,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Earning instance was properly constructed.
func (e *Earning) Validate() error {
	if e == nil {
		return ErrEarningIsNotConstructed
	}
	return e.guard.Validate(ErrEarningIsNotConstructed)
}

func (e *Earning) ID() kernel.ID { return e.id }
func (e *Earning) PartnerID() kernel.ID { return e.partnerID }
func (e *Earning) OrderID() kernel.ID { return e.orderID }
func (e *Earning) Amount() kernel.Money { return e.amount }
func (e *Earning) Date() time.Time { return e.date }

// Total sums the amounts of the given earnings.
func Total(list []*Earning) kernel.Money {
	var total kernel.Money
	for _, e := range list {
		total = total.Add(e.amount)
	}
	return total
}
