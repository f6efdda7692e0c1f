package ports

import (
	"bolpurmart/internal/pkg/live"
)

// Topic names a record store whose committed writes are signalled.
type Topic string

const (
	TopicOrders   Topic = "orders"
	TopicPartners Topic = "delivery_partners"
)

// Change signals that a record in Topic was written. Resync is set when the feed may
// have missed changes (for example after a reconnect) and every view must re-query.
type Change struct {
	Topic  Topic
	ID     string
	Resync bool
}

// ChangeFeed is the live subscription transport of the record stores.
// A subscription stream receives a Change for every committed write to any of the
// requested topics; the subscriber must Close it exactly once.
type ChangeFeed interface {
	Subscribe(topics ...Topic) (*live.Stream[Change], error)
}
