package services

import (
	"errors"
	"time"

	"bolpurmart/internal/core/domain/model/earnings"
	"bolpurmart/internal/core/domain/model/order"
	"bolpurmart/internal/core/domain/model/partner"
)

// DeliveryCompleter is a domain service that completes a delivery.
//
// Business rules:
//   - The order must accept the delivered transition for this partner (see Order.MarkDelivered)
//   - The partner's delivery counter grows by exactly one
//   - Exactly one earning is produced, priced by the PayoutPolicy
//
// Nothing is modified when the transition is rejected.
//
// Example usage:
//
//	completer := services.NewDeliveryCompleter(services.NewFlatFeePolicy(defaultFee))
//	earning, err := completer.Complete(o, p, time.Now())
type DeliveryCompleter struct {
	payout PayoutPolicy
}

// NewDeliveryCompleter creates a DeliveryCompleter using payout to price earnings.
func NewDeliveryCompleter(payout PayoutPolicy) DeliveryCompleter {
	return DeliveryCompleter{payout: payout}
}

// Complete marks o delivered by p and returns the earning to append.
func (d DeliveryCompleter) Complete(o *order.Order, p *partner.Partner, now time.Time) (*earnings.Earning, error) {
	if err := errors.Join(o.Validate(), p.Validate()); err != nil {
		return nil, err
	}
	if d.payout == nil {
		return nil, errors.New("payout policy is not configured")
	}

	earning, err := earnings.NewEarning(p.ID(), o.ID(), d.payout.Amount(o), now)
	if err != nil {
		return nil, err
	}
	if err := o.MarkDelivered(p.ID(), now); err != nil {
		return nil, err
	}
	p.RecordDelivery(now)

	return earning, nil
}
