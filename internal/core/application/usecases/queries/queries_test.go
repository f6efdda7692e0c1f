package queries_test

import (
	"testing"
	"time"

	"bolpurmart/internal/core/application/usecases/queries"
	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var partnerID = kernel.MustIDFromString("P1")

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.GetAvailableOrdersQuery{}.Validate(), queries.ErrGetAvailableOrdersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetActiveOrdersQuery{}.Validate(), queries.ErrGetActiveOrdersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetDeliveryHistoryQuery{}.Validate(), queries.ErrGetDeliveryHistoryQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetEarningsQuery{}.Validate(), queries.ErrGetEarningsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetPartnerProfileQuery{}.Validate(), queries.ErrGetPartnerProfileQueryIsNotConstructed)
}

func TestQueries_RequirePartnerID(t *testing.T) {
	_, err := queries.NewGetAvailableOrdersQuery(kernel.ID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetActiveOrdersQuery(kernel.ID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetPartnerProfileQuery(kernel.ID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewGetDeliveryHistoryQuery(t *testing.T) {
	q, err := queries.NewGetDeliveryHistoryQuery(partnerID, 0)
	require.NoError(t, err)
	assert.Equal(t, queries.DefaultHistoryLimit, q.Limit())

	q, err = queries.NewGetDeliveryHistoryQuery(partnerID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, q.Limit())

	_, err = queries.NewGetDeliveryHistoryQuery(partnerID, -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewGetDeliveryHistoryQuery(partnerID, 1000)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewGetEarningsQuery(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	q, err := queries.NewGetEarningsQuery(partnerID, &from, &to)
	require.NoError(t, err)
	assert.Equal(t, from, *q.From())

	q, err = queries.NewGetEarningsQuery(partnerID, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, q.From())
	assert.Nil(t, q.To())

	_, err = queries.NewGetEarningsQuery(partnerID, &to, &from)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
