package commands_test

import (
	"testing"
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/order"
	"bolpurmart/internal/core/domain/model/partner"

	"github.com/stretchr/testify/require"
)

var (
	testNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	orderID = kernel.MustIDFromString("O1")
	p1ID    = kernel.MustIDFromString("P1")
	p2ID    = kernel.MustIDFromString("P2")
)

func confirmedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(orderID, "9876543210", "Bolpur", nil, testNow)
	require.NoError(t, err)
	return o
}

func restoredOrder(t *testing.T, status order.Status, partnerID *kernel.ID) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.State{
		ID:                orderID,
		CustomerPhone:     "9876543210",
		CustomerAddress:   "Bolpur",
		Status:            status,
		DeliveryPartnerID: partnerID,
		CreatedAt:         testNow,
		UpdatedAt:         testNow,
	})
	require.NoError(t, err)
	return o
}

func testPartner(t *testing.T, id kernel.ID, approved bool) *partner.Partner {
	t.Helper()
	p, err := partner.RestorePartner(partner.State{
		ID:            id,
		Name:          "Ravi",
		Phone:         "9876543210",
		Email:         "ravi@example.com",
		VehicleType:   partner.Bike,
		VehicleNumber: "WB1",
		AdminApproved: approved,
		Status:        partner.Online,
	})
	require.NoError(t, err)
	return p
}
