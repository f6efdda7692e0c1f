package commands_test

import (
	"errors"
	"testing"

	"bolpurmart/internal/core/application/usecases/commands"
	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/order"
	"bolpurmart/internal/core/domain/services"
	"bolpurmart/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func deliveredHandler(factory commands.UoWFactory) commands.MarkDeliveredCommandHandler {
	fee, _ := kernel.Rupees(30)
	return commands.NewMarkDeliveredCommandHandler(factory, services.NewDeliveryCompleter(services.NewFlatFeePolicy(fee)))
}

type deliveredMocks struct {
	orders   *MockOrderRepository
	partners *MockPartnerRepository
	earnings *MockEarningsRepository
	uow      *MockUoW
	factory  *MockUoWFactory
}

func newDeliveredMocks(t *testing.T) deliveredMocks {
	t.Helper()
	ctx := t.Context()
	m := deliveredMocks{
		orders:   new(MockOrderRepository),
		partners: new(MockPartnerRepository),
		earnings: new(MockEarningsRepository),
		uow:      new(MockUoW),
		factory:  new(MockUoWFactory),
	}
	m.uow.On("Begin", ctx).Return(nil).Once()
	m.uow.On("OrderRepository").Return(m.orders).Once()
	m.uow.On("PartnerRepository").Return(m.partners).Once()
	m.uow.On("EarningsRepository").Return(m.earnings).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()
	m.factory.On("Create").Return(m.uow).Once()
	return m
}

func TestMarkDeliveredCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	m := newDeliveredMocks(t)
	o := restoredOrder(t, order.PickedUp, &p1ID)
	p := testPartner(t, p1ID, true)

	mock.InOrder(
		m.orders.On("Get", ctx, orderID).Return(o, nil).Once(),
		m.partners.On("Get", ctx, p1ID).Return(p, nil).Once(),
		m.orders.On("Transition", ctx, o, order.PickedUp).Return(nil).Once(),
		m.earnings.On("Add", ctx, mock.AnythingOfType("*earnings.Earning")).Return(nil).Once(),
		m.partners.On("IncrementDeliveries", ctx, p1ID, mock.AnythingOfType("time.Time")).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
	)

	cmd, _ := commands.NewMarkDeliveredCommand(orderID, p1ID)
	err := deliveredHandler(m.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, o.Status())
	m.orders.AssertExpectations(t)
	m.partners.AssertExpectations(t)
	m.earnings.AssertExpectations(t)
	m.uow.AssertExpectations(t)
}

func TestMarkDeliveredCommandHandler_Handle_ConfirmedOrderRejected(t *testing.T) {
	ctx := t.Context()
	m := newDeliveredMocks(t)
	o := confirmedOrder(t)

	m.orders.On("Get", ctx, orderID).Return(o, nil).Once()
	m.partners.On("Get", ctx, p1ID).Return(testPartner(t, p1ID, true), nil).Once()

	cmd, _ := commands.NewMarkDeliveredCommand(orderID, p1ID)
	err := deliveredHandler(m.factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrTransitionRejected)
	assert.Equal(t, order.Confirmed, o.Status())
	m.orders.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything)
	m.earnings.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	m.partners.AssertNotCalled(t, "IncrementDeliveries", mock.Anything, mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestMarkDeliveredCommandHandler_Handle_EarningWriteFails(t *testing.T) {
	ctx := t.Context()
	m := newDeliveredMocks(t)
	o := restoredOrder(t, order.EnRoute, &p1ID)

	m.orders.On("Get", ctx, orderID).Return(o, nil).Once()
	m.partners.On("Get", ctx, p1ID).Return(testPartner(t, p1ID, true), nil).Once()
	m.orders.On("Transition", ctx, o, order.EnRoute).Return(nil).Once()
	m.earnings.On("Add", ctx, mock.Anything).Return(errors.New("disk full")).Once()

	cmd, _ := commands.NewMarkDeliveredCommand(orderID, p1ID)
	err := deliveredHandler(m.factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrWriteFailure)
	m.partners.AssertNotCalled(t, "IncrementDeliveries", mock.Anything, mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	m.uow.AssertCalled(t, "Rollback", ctx)
}
