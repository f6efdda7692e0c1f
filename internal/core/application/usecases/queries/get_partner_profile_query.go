package queries

import (
	"errors"
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/partner"
	"bolpurmart/internal/pkg/guard"
)

var (
	ErrGetPartnerProfileQueryIsNotConstructed = errors.New(
		"GetPartnerProfileQuery must be created via NewGetPartnerProfileQuery constructor",
	)
)

// GetPartnerProfileQuery resolves an identity to its partner record.
type GetPartnerProfileQuery struct {
	partnerID kernel.ID

	guard guard.ConstructorGuard
}

// NewGetPartnerProfileQuery creates the query for partnerID.
func NewGetPartnerProfileQuery(partnerID kernel.ID) (GetPartnerProfileQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return GetPartnerProfileQuery{}, err
	}
	return GetPartnerProfileQuery{partnerID: partnerID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPartnerProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetPartnerProfileQueryIsNotConstructed)
}

func (q GetPartnerProfileQuery) PartnerID() kernel.ID { return q.partnerID }

// PartnerProfile is the read model of a delivery partner. Payment fields are empty
// until the partner saves payment details.
type PartnerProfile struct {
	ID              kernel.ID
	Name            string
	Phone           string
	Email           string
	VehicleType     partner.VehicleType
	VehicleNumber   string
	AdminApproved   bool
	Status          partner.Status
	Rating          float64
	TotalDeliveries int
	UPIID           string
	AccountHolder   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
