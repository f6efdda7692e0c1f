package commands_test

import (
	"errors"
	"testing"
	"time"

	"bolpurmart/internal/core/application/usecases/commands"
	"bolpurmart/internal/core/domain/model/event"
	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/order"
	"bolpurmart/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	fee, _ := kernel.Rupees(30)
	cmd, err := commands.NewCreateOrderCommand(orderID, "98765 43210", "Bolpur", &fee)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == order.Confirmed && o.DeliveryPartnerID() == nil
	})).Return(nil).Once()
	factory, uow := orderUoW(t, repo, true)

	h := commands.NewCreateOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)

	_, err = commands.NewCreateOrderCommand(orderID, "9876543210", " ", nil)
	require.ErrorIs(t, err, commands.ErrAddressIsRequired)
}

func TestArchiveDeliveredOrdersCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	delivered := restoredOrder(t, order.Delivered, &p1ID)
	cmd, err := commands.NewArchiveDeliveredOrdersCommand(30*24*time.Hour, 100)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("ListArchivable", ctx, mock.AnythingOfType("time.Time"), 100).Return([]*order.Order{delivered}, nil).Once()
	repo.On("Transition", ctx, delivered, order.Delivered).Return(nil).Once()
	factory, _ := orderUoW(t, repo, true)

	n, err := commands.NewArchiveDeliveredOrdersCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotNil(t, delivered.ArchivedAt())

	_, err = commands.NewArchiveDeliveredOrdersCommand(time.Hour, 0)
	require.Error(t, err)
}

func TestArchiveDeliveredOrdersCommandHandler_SkipsOrdersArchivedConcurrently(t *testing.T) {
	ctx := t.Context()
	first := restoredOrder(t, order.Delivered, &p1ID)
	second := restoredOrder(t, order.Delivered, &p1ID)
	cmd, err := commands.NewArchiveDeliveredOrdersCommand(30*24*time.Hour, 100)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("ListArchivable", ctx, mock.AnythingOfType("time.Time"), 100).Return([]*order.Order{first, second}, nil).Once()
	repo.On("Transition", ctx, mock.Anything, order.Delivered).
		Return(errs.NewTransitionRejectedError(order.OpArchive, orderID.String(), "delivered")).Once()
	repo.On("Transition", ctx, mock.Anything, order.Delivered).Return(nil).Once()
	factory, uow := orderUoW(t, repo, true)

	n, err := commands.NewArchiveDeliveredOrdersCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_Handle(t *testing.T) {
	events := []event.Event{
		{ID: kernel.MustIDFromString("E1"), AggregateID: orderID, Type: event.OrderAccepted},
		{ID: kernel.MustIDFromString("E2"), AggregateID: orderID, Type: event.OrderPickedUp},
	}
	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	t.Run("should publish then mark published", func(t *testing.T) {
		ctx := t.Context()
		outbox := new(MockOutboxRepository)
		publisher := new(MockEventPublisher)
		mock.InOrder(
			outbox.On("ListUnpublished", ctx, 10).Return(events, nil).Once(),
			publisher.On("Publish", ctx, events).Return(nil).Once(),
			outbox.On("MarkPublished", ctx, []kernel.ID{events[0].ID, events[1].ID}, mock.AnythingOfType("time.Time")).Return(nil).Once(),
		)

		n, err := commands.NewRelayOutboxCommandHandler(outbox, publisher).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		outbox.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("should keep events when publishing fails", func(t *testing.T) {
		ctx := t.Context()
		outbox := new(MockOutboxRepository)
		publisher := new(MockEventPublisher)
		outbox.On("ListUnpublished", ctx, 10).Return(events, nil).Once()
		publisher.On("Publish", ctx, events).Return(errors.New("broker down")).Once()

		_, err := commands.NewRelayOutboxCommandHandler(outbox, publisher).Handle(ctx, cmd)

		require.EqualError(t, err, "broker down")
		outbox.AssertNotCalled(t, "MarkPublished", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty outbox publishes nothing", func(t *testing.T) {
		ctx := t.Context()
		outbox := new(MockOutboxRepository)
		publisher := new(MockEventPublisher)
		outbox.On("ListUnpublished", ctx, 10).Return([]event.Event{}, nil).Once()

		n, err := commands.NewRelayOutboxCommandHandler(outbox, publisher).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, n)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}
