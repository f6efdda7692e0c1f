package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bolpurmart/internal/adapters/out/kafka"
	"bolpurmart/internal/core/domain/model/event"
	"bolpurmart/internal/core/domain/model/kernel"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	return m.Called(ctx, msgs).Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

var occurred = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func orderEvent(id, orderID string, t event.Type) event.Event {
	return event.Event{
		ID:          kernel.MustIDFromString(id),
		AggregateID: kernel.MustIDFromString(orderID),
		Type:        t,
		Payload:     []byte(`{"orderId":"` + orderID + `"}`),
		OccurredAt:  occurred,
	}
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublish_KeysByOrderAndCarriesHeaders(t *testing.T) {
	writer := new(MockWriter)
	var sent []kafkago.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafkago.Message) }).
		Return(nil).Once()

	err := kafka.NewPublisherWithWriter(writer).Publish(t.Context(), []event.Event{
		orderEvent("E1", "O1", event.OrderAccepted),
		orderEvent("E2", "O1", event.OrderPickedUp),
	})

	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Equal(t, "O1", string(sent[0].Key))
	assert.JSONEq(t, `{"orderId":"O1"}`, string(sent[0].Value))
	assert.Equal(t, "E1", header(sent[0], "event-id"))
	assert.Equal(t, "order.accepted", header(sent[0], "event-type"))
	assert.Equal(t, "order.picked_up", header(sent[1], "event-type"))
	assert.Equal(t, "2025-03-14T10:00:00Z", header(sent[1], "occurred-at"))
	writer.AssertExpectations(t)
}

func TestPublish_EmptyBatchSkipsWriter(t *testing.T) {
	writer := new(MockWriter)

	require.NoError(t, kafka.NewPublisherWithWriter(writer).Publish(t.Context(), nil))

	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestPublish_WriterErrorIsReturned(t *testing.T) {
	writer := new(MockWriter)
	boom := errors.New("leader not available")
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(boom)

	err := kafka.NewPublisherWithWriter(writer).Publish(t.Context(), []event.Event{
		orderEvent("E1", "O1", event.OrderDeclined),
	})

	require.ErrorIs(t, err, boom)
}
