package queries

import (
	"errors"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// GetActiveOrdersQuery lists the orders a partner has claimed and not yet delivered.
type GetActiveOrdersQuery struct {
	partnerID kernel.ID

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates the query for partnerID.
func NewGetActiveOrdersQuery(partnerID kernel.ID) (GetActiveOrdersQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}
	return GetActiveOrdersQuery{partnerID: partnerID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

func (q GetActiveOrdersQuery) PartnerID() kernel.ID { return q.partnerID }
