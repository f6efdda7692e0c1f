package kafka

import kafkago "github.com/segmentio/kafka-go"

type MessageWriter = messageWriter

func NewPublisherWithWriter(w MessageWriter) *Publisher {
	return &Publisher{writer: w}
}

var _ MessageWriter = (*kafkago.Writer)(nil)
