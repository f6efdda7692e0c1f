package queries

import (
	"errors"
	"fmt"
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/errs"
	"bolpurmart/internal/pkg/guard"
)

var (
	ErrGetEarningsQueryIsNotConstructed = errors.New(
		"GetEarningsQuery must be created via NewGetEarningsQuery constructor",
	)
)

// GetEarningsQuery lists a partner's earnings dated within [from, to], both ends inclusive.
// Either bound may be nil.
type GetEarningsQuery struct {
	partnerID kernel.ID
	from      *time.Time
	to        *time.Time

	guard guard.ConstructorGuard
}

// NewGetEarningsQuery creates the query. from must not be after to.
func NewGetEarningsQuery(partnerID kernel.ID, from, to *time.Time) (GetEarningsQuery, error) {
	var rangeErr error
	if from != nil && to != nil && from.After(*to) {
		rangeErr = errs.NewValueIsInvalidErrorWithCause("date range", fmt.Errorf("from %s is after to %s",
			from.Format(time.RFC3339), to.Format(time.RFC3339)))
	}
	if err := errors.Join(partnerID.Validate(), rangeErr); err != nil {
		return GetEarningsQuery{}, err
	}
	return GetEarningsQuery{partnerID: partnerID, from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetEarningsQueryIsNotConstructed)
}

func (q GetEarningsQuery) PartnerID() kernel.ID { return q.partnerID }
func (q GetEarningsQuery) From() *time.Time { return q.from }
func (q GetEarningsQuery) To() *time.Time { return q.to }

// EarningView is a single earnings entry.
type EarningView struct {
	ID      kernel.ID
	OrderID kernel.ID
	Amount  kernel.Money
	Date    time.Time
}

// GetEarningsQueryResponse carries the entries, latest first, and their sum.
type GetEarningsQueryResponse struct {
	Items []EarningView
	Total kernel.Money
}
