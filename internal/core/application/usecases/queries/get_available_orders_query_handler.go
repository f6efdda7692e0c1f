package queries

import (
	"context"

	"bolpurmart/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler returns confirmed, unarchived orders, newest first.
// A partner without admin approval always gets an empty list; a partner without a
// profile gets errs.ErrProfileNotFound.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for available order queries.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the query.
func (h GetAvailableOrdersQueryHandler) Handle(ctx context.Context, query GetAvailableOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	approved, err := partnerApproved(ctx, h.db, query.PartnerID())
	if err != nil {
		return nil, err
	}
	if !approved {
		return make([]OrderView, 0), nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderViewColumns+`
		FROM orders
		WHERE status = ? AND archived_at IS NULL
		ORDER BY created_at DESC, id
	`, string(order.Confirmed)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderViews(rows)
}
