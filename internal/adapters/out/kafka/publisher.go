// Package kafka publishes order lifecycle events to the external ordering system.
package kafka

import (
	"context"
	"time"

	"bolpurmart/internal/core/domain/model/event"

	kafkago "github.com/segmentio/kafka-go"
)

const (
	headerEventID    = "event-id"
	headerEventType  = "event-type"
	headerOccurredAt = "occurred-at"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher. Messages are keyed by order id so that
// all events of one order land on one partition in order.
type Publisher struct {
	writer messageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafkago.Hash{},
			RequiredAcks:           kafkago.RequireAll,
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}
}

// Publish writes events as one batch. The batch either succeeds as a whole or the
// relay retries it, so consumers must tolerate duplicates by event id.
func (p *Publisher) Publish(ctx context.Context, events []event.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, len(events))
	for _, e := range events {
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(e.AggregateID.String()),
			Value: e.Payload,
			Time:  e.OccurredAt,
			Headers: []kafkago.Header{
				{Key: headerEventID, Value: []byte(e.ID.String())},
				{Key: headerEventType, Value: []byte(e.Type)},
				{Key: headerOccurredAt, Value: []byte(e.OccurredAt.UTC().Format(time.RFC3339Nano))},
			},
		})
	}

	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
