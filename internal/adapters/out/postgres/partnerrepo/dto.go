// Package partnerrepo persists delivery partner records. Every write other than the
// signup insert is a merge that touches only the columns it names.
package partnerrepo

import (
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/partner"

	"github.com/lib/pq"
)

// PartnerDTO is the delivery_partners table row.
type PartnerDTO struct {
	ID              string         `gorm:"type:text;primaryKey"`
	Name            string         `gorm:"type:text;not null"`
	Phone           string         `gorm:"type:text;not null"`
	Email           string         `gorm:"type:text;not null;uniqueIndex"`
	VehicleType     string         `gorm:"type:text;not null"`
	VehicleNumber   string         `gorm:"type:text;not null"`
	AdminApproved   bool           `gorm:"not null;default:false"`
	Status          string         `gorm:"type:text;not null;index"`
	Rating          float64        `gorm:"not null;default:0"`
	TotalDeliveries int            `gorm:"not null;default:0"`
	UPIID           *string        `gorm:"column:upi_id;type:text"`
	AccountHolder   *string        `gorm:"type:text"`
	DeviceTokens    pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt       time.Time      `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time      `gorm:"not null;autoUpdateTime:false"`
}

// TableName overrides GORM's default naming.
func (PartnerDTO) TableName() string {
	return "delivery_partners"
}

func fromDomain(p *partner.Partner) PartnerDTO {
	s := p.State()

	dto := PartnerDTO{
		ID:              s.ID.String(),
		Name:            s.Name,
		Phone:           s.Phone,
		Email:           s.Email,
		VehicleType:     string(s.VehicleType),
		VehicleNumber:   s.VehicleNumber,
		AdminApproved:   s.AdminApproved,
		Status:          string(s.Status),
		Rating:          s.Rating,
		TotalDeliveries: s.TotalDeliveries,
		DeviceTokens:    pq.StringArray(s.DeviceTokens),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	if dto.DeviceTokens == nil {
		dto.DeviceTokens = pq.StringArray{}
	}
	if s.Payment != nil {
		upi, holder := s.Payment.UPIID(), s.Payment.AccountHolder()
		dto.UPIID, dto.AccountHolder = &upi, &holder
	}
	return dto
}

func toDomain(dto PartnerDTO) (*partner.Partner, error) {
	id, err := kernel.IDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	var payment *partner.PaymentDetails
	if dto.UPIID != nil && dto.AccountHolder != nil {
		pd, pdErr := partner.NewPaymentDetails(*dto.UPIID, *dto.AccountHolder)
		if pdErr != nil {
			return nil, pdErr
		}
		payment = &pd
	}

	return partner.RestorePartner(partner.State{
		ID:              id,
		Name:            dto.Name,
		Phone:           dto.Phone,
		Email:           dto.Email,
		VehicleType:     partner.VehicleType(dto.VehicleType),
		VehicleNumber:   dto.VehicleNumber,
		AdminApproved:   dto.AdminApproved,
		Status:          partner.Status(dto.Status),
		Rating:          dto.Rating,
		TotalDeliveries: dto.TotalDeliveries,
		Payment:         payment,
		DeviceTokens:    dto.DeviceTokens,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	})
}

// patchColumns maps the fields carried by patch to their columns.
func patchColumns(patch partner.Patch, now time.Time) map[string]any {
	cols := map[string]any{"updated_at": now}
	if v, ok := patch.Name(); ok {
		cols["name"] = v
	}
	if v, ok := patch.Phone(); ok {
		cols["phone"] = v
	}
	if v, ok := patch.VehicleType(); ok {
		cols["vehicle_type"] = string(v)
	}
	if v, ok := patch.VehicleNumber(); ok {
		cols["vehicle_number"] = v
	}
	if v, ok := patch.Payment(); ok {
		cols["upi_id"] = v.UPIID()
		cols["account_holder"] = v.AccountHolder()
	}
	if v, ok := patch.Status(); ok {
		cols["status"] = string(v)
	}
	return cols
}
