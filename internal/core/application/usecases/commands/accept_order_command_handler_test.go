package commands_test

import (
	"errors"
	"testing"

	"bolpurmart/internal/core/application/usecases/commands"
	"bolpurmart/internal/core/domain/model/order"
	"bolpurmart/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAcceptOrderCommand(t *testing.T) {
	cmd, err := commands.NewAcceptOrderCommand(orderID, p1ID)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, orderID, cmd.OrderID())

	var zero commands.AcceptOrderCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrAcceptOrderCommandIsNotConstructed)
}

func TestAcceptOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAcceptOrderCommand(orderID, p1ID)
	o := confirmedOrder(t)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		partnerRepo.On("Get", ctx, p1ID).Return(testPartner(t, p1ID, true), nil).Once(),
		orderRepo.On("Get", ctx, orderID).Return(o, nil).Once(),
		orderRepo.On("Transition", ctx, o, order.Confirmed).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	err := commands.NewAcceptOrderCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Accepted, o.Status())
	assert.True(t, o.DeliveryPartnerID().IsEqual(p1ID))
	orderRepo.AssertExpectations(t)
	partnerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_UnapprovedPartner(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAcceptOrderCommand(orderID, p1ID)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PartnerRepository").Return(partnerRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	partnerRepo.On("Get", ctx, p1ID).Return(testPartner(t, p1ID, false), nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	err := commands.NewAcceptOrderCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrTransitionRejected)
	require.ErrorIs(t, err, commands.ErrPartnerNotApproved)
	orderRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

// P1's accept has landed; P2 acts on a view that still shows the order as confirmed.
// The stored order is already accepted, so P2 is rejected and P1 keeps the order.
func TestAcceptOrderCommandHandler_Handle_SecondPartnerIsRejected(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAcceptOrderCommand(orderID, p2ID)
	stored := restoredOrder(t, order.Accepted, &p1ID)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PartnerRepository").Return(partnerRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	partnerRepo.On("Get", ctx, p2ID).Return(testPartner(t, p2ID, true), nil).Once()
	orderRepo.On("Get", ctx, orderID).Return(stored, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	err := commands.NewAcceptOrderCommandHandler(factory).Handle(ctx, cmd)

	var rejected *errs.TransitionRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, "accepted", rejected.Current)
	assert.True(t, stored.DeliveryPartnerID().IsEqual(p1ID))
	orderRepo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

// Both partners read the order as confirmed; the conditional write decides the race.
func TestAcceptOrderCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAcceptOrderCommand(orderID, p2ID)
	stale := confirmedOrder(t)
	lost := errs.NewTransitionRejectedError(order.OpAccept, orderID.String(), "")

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PartnerRepository").Return(partnerRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	partnerRepo.On("Get", ctx, p2ID).Return(testPartner(t, p2ID, true), nil).Once()
	orderRepo.On("Get", ctx, orderID).Return(stale, nil).Once()
	orderRepo.On("Transition", ctx, stale, order.Confirmed).Return(lost).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	err := commands.NewAcceptOrderCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrTransitionRejected)
	require.NotErrorIs(t, err, errs.ErrWriteFailure)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAcceptOrderCommandHandler_Handle_StoreFailure(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAcceptOrderCommand(orderID, p1ID)
	o := confirmedOrder(t)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PartnerRepository").Return(partnerRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	partnerRepo.On("Get", ctx, p1ID).Return(testPartner(t, p1ID, true), nil).Once()
	orderRepo.On("Get", ctx, orderID).Return(o, nil).Once()
	orderRepo.On("Transition", ctx, o, order.Confirmed).Return(errors.New("connection reset")).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	err := commands.NewAcceptOrderCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrWriteFailure)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAcceptOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)

	err := commands.NewAcceptOrderCommandHandler(factory).Handle(t.Context(), commands.AcceptOrderCommand{})

	require.ErrorIs(t, err, commands.ErrAcceptOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAcceptOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAcceptOrderCommand(orderID, p1ID)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	err := commands.NewAcceptOrderCommandHandler(factory).Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}
