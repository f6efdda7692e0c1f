package queries

import (
	"context"
	"strings"

	"bolpurmart/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetEarningsQueryHandler reads the earnings table.
//
// Example:
//
//	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
//	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
//	q, _ := NewGetEarningsQuery(partnerID, &from, &to)
//	resp, err := handler.Handle(ctx, q)
//	// resp.Items holds March's earnings, latest first; resp.Total their sum
type GetEarningsQueryHandler struct {
	db *gorm.DB
}

// NewGetEarningsQueryHandler creates a handler reading through db.
func NewGetEarningsQueryHandler(db *gorm.DB) GetEarningsQueryHandler {
	return GetEarningsQueryHandler{db: db}
}

// Handle executes the query. The total is computed from the returned rows.
func (h GetEarningsQueryHandler) Handle(ctx context.Context, query GetEarningsQuery) (GetEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEarningsQueryResponse{}, err
	}

	where := []string{"partner_id = ?"}
	args := []any{query.PartnerID().String()}
	if from := query.From(); from != nil {
		where = append(where, "date >= ?")
		args = append(args, *from)
	}
	if to := query.To(); to != nil {
		where = append(where, "date <= ?")
		args = append(args, *to)
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, amount, date
		FROM earnings
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY date DESC, id
	`, args...).Rows()
	if err != nil {
		return GetEarningsQueryResponse{}, err
	}
	defer rows.Close()

	resp := GetEarningsQueryResponse{Items: make([]EarningView, 0)}
	for rows.Next() {
		var (
			id, orderID string
			amount      int64
			v           EarningView
		)
		if err = rows.Scan(&id, &orderID, &amount, &v.Date); err != nil {
			return GetEarningsQueryResponse{}, err
		}
		if v.ID, err = kernel.IDFromString(id); err != nil {
			return GetEarningsQueryResponse{}, err
		}
		if v.OrderID, err = kernel.IDFromString(orderID); err != nil {
			return GetEarningsQueryResponse{}, err
		}
		if v.Amount, err = kernel.NewMoney(amount); err != nil {
			return GetEarningsQueryResponse{}, err
		}
		resp.Total = resp.Total.Add(v.Amount)
		resp.Items = append(resp.Items, v)
	}

	if err = rows.Err(); err != nil {
		return GetEarningsQueryResponse{}, err
	}

	return resp, nil
}
