package queries

import (
	"database/sql"
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/order"
)

// OrderView is the read model of an order as shown in a partner's lists.
type OrderView struct {
	ID                    kernel.ID
	CustomerPhone         string
	CustomerAddress       string
	DeliveryPartnerID     *kernel.ID
	Status                order.Status
	DeliveryFee           *kernel.Money
	PickupTime            *time.Time
	DeliveryTime          *time.Time
	EstimatedDeliveryTime *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

const orderViewColumns = `
	id,
	customer_phone,
	customer_address,
	delivery_partner_id,
	status,
	delivery_fee,
	pickup_time,
	delivery_time,
	estimated_delivery_time,
	created_at,
	updated_at`

func scanOrderViews(rows *sql.Rows) ([]OrderView, error) {
	orders := make([]OrderView, 0)

	for rows.Next() {
		var (
			v                            OrderView
			id, status                   string
			partnerID                    sql.NullString
			fee                          sql.NullInt64
			pickup, delivered, estimated sql.NullTime
		)

		err := rows.Scan(
			&id,
			&v.CustomerPhone,
			&v.CustomerAddress,
			&partnerID,
			&status,
			&fee,
			&pickup,
			&delivered,
			&estimated,
			&v.CreatedAt,
			&v.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if v.ID, err = kernel.IDFromString(id); err != nil {
			return nil, err
		}
		if v.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		if partnerID.Valid {
			pid, idErr := kernel.IDFromString(partnerID.String)
			if idErr != nil {
				return nil, idErr
			}
			v.DeliveryPartnerID = &pid
		}
		if fee.Valid {
			m, feeErr := kernel.NewMoney(fee.Int64)
			if feeErr != nil {
				return nil, feeErr
			}
			v.DeliveryFee = &m
		}
		v.PickupTime = nullTime(pickup)
		v.DeliveryTime = nullTime(delivered)
		v.EstimatedDeliveryTime = nullTime(estimated)

		orders = append(orders, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
