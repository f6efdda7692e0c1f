package queries

import (
	"context"

	"bolpurmart/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetDeliveryHistoryQueryHandler reads delivered orders from the orders table,
// archived ones included, latest delivery first.
type GetDeliveryHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryHistoryQueryHandler(db *gorm.DB) GetDeliveryHistoryQueryHandler {
	return GetDeliveryHistoryQueryHandler{db: db}
}

// Handle executes the query.
func (h GetDeliveryHistoryQueryHandler) Handle(ctx context.Context, query GetDeliveryHistoryQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderViewColumns+`
		FROM orders
		WHERE delivery_partner_id = ? AND status = ?
		ORDER BY delivery_time DESC NULLS LAST, id
		LIMIT ?
	`, query.PartnerID().String(), string(order.Delivered), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderViews(rows)
}
