package queries

import (
	"context"
	"database/sql"
	"errors"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/partner"

	"gorm.io/gorm"
)

// GetPartnerProfileQueryHandler reads one row of delivery_partners. A missing row is
// reported as errs.ErrProfileNotFound, never as an empty profile.
type GetPartnerProfileQueryHandler struct {
	db *gorm.DB
}

func NewGetPartnerProfileQueryHandler(db *gorm.DB) GetPartnerProfileQueryHandler {
	return GetPartnerProfileQueryHandler{db: db}
}

// Handle executes the query.
func (h GetPartnerProfileQueryHandler) Handle(ctx context.Context, query GetPartnerProfileQuery) (PartnerProfile, error) {
	if err := query.Validate(); err != nil {
		return PartnerProfile{}, err
	}

	var (
		p                    PartnerProfile
		id, vehicle, status  string
		upiID, accountHolder sql.NullString
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			email,
			vehicle_type,
			vehicle_number,
			admin_approved,
			status,
			rating,
			total_deliveries,
			upi_id,
			account_holder,
			created_at,
			updated_at
		FROM delivery_partners
		WHERE id = ?
	`, query.PartnerID().String()).Row().Scan(
		&id,
		&p.Name,
		&p.Phone,
		&p.Email,
		&vehicle,
		&p.VehicleNumber,
		&p.AdminApproved,
		&status,
		&p.Rating,
		&p.TotalDeliveries,
		&upiID,
		&accountHolder,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return PartnerProfile{}, profileNotFound(query.PartnerID())
	}
	if err != nil {
		return PartnerProfile{}, err
	}

	if p.ID, err = kernel.IDFromString(id); err != nil {
		return PartnerProfile{}, err
	}
	if p.VehicleType, err = partner.ParseVehicleType(vehicle); err != nil {
		return PartnerProfile{}, err
	}
	if p.Status, err = partner.ParseStatus(status); err != nil {
		return PartnerProfile{}, err
	}
	p.UPIID = upiID.String
	p.AccountHolder = accountHolder.String

	return p, nil
}
