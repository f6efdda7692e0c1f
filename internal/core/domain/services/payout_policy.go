package services

import (
	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/order"
)

// PayoutPolicy computes the amount a partner earns for a delivered order.
type PayoutPolicy interface {
	Amount(o *order.Order) kernel.Money
}

// FlatFeePolicy pays the order's delivery fee, or Default when the ordering system did
// not set one.
type FlatFeePolicy struct {
	Default kernel.Money
}

// NewFlatFeePolicy creates a FlatFeePolicy with the given fallback amount.
func NewFlatFeePolicy(defaultFee kernel.Money) FlatFeePolicy {
	return FlatFeePolicy{Default: defaultFee}
}

func (p FlatFeePolicy) Amount(o *order.Order) kernel.Money {
	if fee := o.DeliveryFee(); fee != nil {
		return *fee
	}
	return p.Default
}
