package queries

import (
	"errors"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/errs"
	"bolpurmart/internal/pkg/guard"
)

// DefaultHistoryLimit is the number of delivered orders returned when no limit is given.
const (
	DefaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

var (
	ErrGetDeliveryHistoryQueryIsNotConstructed = errors.New(
		"GetDeliveryHistoryQuery must be created via NewGetDeliveryHistoryQuery constructor",
	)
)

// GetDeliveryHistoryQuery lists a partner's delivered orders, latest delivery first.
// Archived orders are included.
type GetDeliveryHistoryQuery struct {
	partnerID kernel.ID
	limit     int

	guard guard.ConstructorGuard
}

// NewGetDeliveryHistoryQuery creates the query. A zero limit means DefaultHistoryLimit.
func NewGetDeliveryHistoryQuery(partnerID kernel.ID, limit int) (GetDeliveryHistoryQuery, error) {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	var limitErr error
	if limit < 1 || limit > maxHistoryLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, maxHistoryLimit)
	}
	if err := errors.Join(partnerID.Validate(), limitErr); err != nil {
		return GetDeliveryHistoryQuery{}, err
	}
	return GetDeliveryHistoryQuery{
		partnerID: partnerID,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryHistoryQueryIsNotConstructed)
}

func (q GetDeliveryHistoryQuery) PartnerID() kernel.ID { return q.partnerID }
func (q GetDeliveryHistoryQuery) Limit() int { return q.limit }
