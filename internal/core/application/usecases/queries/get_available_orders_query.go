package queries

import (
	"errors"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/guard"
)

var (
	ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
		"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
	)
)

// GetAvailableOrdersQuery lists the confirmed orders offered to a partner.
// Every approved partner sees the same list; the first to accept wins.
//
// Example:
//
//	query, err := NewGetAvailableOrdersQuery(partnerID)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetAvailableOrdersQuery struct {
	partnerID kernel.ID

	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates the query for the partner asking.
func NewGetAvailableOrdersQuery(partnerID kernel.ID) (GetAvailableOrdersQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return GetAvailableOrdersQuery{}, err
	}
	return GetAvailableOrdersQuery{partnerID: partnerID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// PartnerID returns the partner the list is computed for.
func (q GetAvailableOrdersQuery) PartnerID() kernel.ID { return q.partnerID }
