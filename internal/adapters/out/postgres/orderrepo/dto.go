// Package orderrepo persists order aggregates in the orders table and implements the
// conditional status writes the order lifecycle relies on.
package orderrepo

import (
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/order"
)

// OrderDTO is the orders table row. Status is stored as its text name so that the
// external ordering system can read and write the same table.
type OrderDTO struct {
	ID                    string  `gorm:"type:text;primaryKey"`
	CustomerPhone         string  `gorm:"type:text;not null"`
	CustomerAddress       string  `gorm:"type:text;not null"`
	DeliveryPartnerID     *string `gorm:"type:text;index"`
	Status                string  `gorm:"type:text;not null;index"`
	DeliveryFee           *int64  `gorm:"comment:paise"`
	PickupTime            *time.Time
	DeliveryTime          *time.Time `gorm:"index"`
	EstimatedDeliveryTime *time.Time
	CreatedAt             time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt             time.Time `gorm:"not null;autoUpdateTime:false"`
	ArchivedAt            *time.Time
}

// TableName overrides GORM's default naming.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.State()

	var partnerID *string
	if s.DeliveryPartnerID != nil {
		id := s.DeliveryPartnerID.String()
		partnerID = &id
	}

	var fee *int64
	if s.DeliveryFee != nil {
		paise := s.DeliveryFee.Paise()
		fee = &paise
	}

	return OrderDTO{
		ID:                    s.ID.String(),
		CustomerPhone:         s.CustomerPhone,
		CustomerAddress:       s.CustomerAddress,
		DeliveryPartnerID:     partnerID,
		Status:                string(s.Status),
		DeliveryFee:           fee,
		PickupTime:            s.PickupTime,
		DeliveryTime:          s.DeliveryTime,
		EstimatedDeliveryTime: s.EstimatedDeliveryTime,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
		ArchivedAt:            s.ArchivedAt,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.IDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.ID
	if dto.DeliveryPartnerID != nil {
		pid, pidErr := kernel.IDFromString(*dto.DeliveryPartnerID)
		if pidErr != nil {
			return nil, pidErr
		}
		partnerID = &pid
	}

	var fee *kernel.Money
	if dto.DeliveryFee != nil {
		m, feeErr := kernel.NewMoney(*dto.DeliveryFee)
		if feeErr != nil {
			return nil, feeErr
		}
		fee = &m
	}

	return order.RestoreOrder(order.State{
		ID:                    id,
		CustomerPhone:         dto.CustomerPhone,
		CustomerAddress:       dto.CustomerAddress,
		DeliveryPartnerID:     partnerID,
		Status:                order.Status(dto.Status),
		DeliveryFee:           fee,
		PickupTime:            dto.PickupTime,
		DeliveryTime:          dto.DeliveryTime,
		EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		CreatedAt:             dto.CreatedAt,
		UpdatedAt:             dto.UpdatedAt,
		ArchivedAt:            dto.ArchivedAt,
	})
}

// lifecycleColumns are the columns a transition may change.
func lifecycleColumns(dto OrderDTO) map[string]any {
	return map[string]any{
		"status":              dto.Status,
		"delivery_partner_id": dto.DeliveryPartnerID,
		"pickup_time":         dto.PickupTime,
		"delivery_time":       dto.DeliveryTime,
		"updated_at":          dto.UpdatedAt,
		"archived_at":         dto.ArchivedAt,
	}
}
