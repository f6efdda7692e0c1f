// Package livequery turns Postgres LISTEN/NOTIFY into ports.ChangeFeed subscriptions.
//
// The record store tables carry triggers (see postgres.Migrate) that NOTIFY on a channel
// named after the table with the row id as payload. Hub listens on those channels over
// a single dedicated connection and fans every notification out to the subscriptions
// that asked for its topic. A dropped connection is re-established by lib/pq; after it
// comes back every subscriber receives a Resync change, since notifications sent while
// disconnected are lost.
package livequery

import (
	"context"
	"errors"
	"sync"
	"time"

	"bolpurmart/internal/core/ports"
	"bolpurmart/internal/pkg/live"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pingInterval = 90 * time.Second

// ErrHubClosed is returned by Subscribe after the hub stopped.
var ErrHubClosed = errors.New("live query hub is closed")

// source is the notification transport. *pq.Listener satisfies it through pqSource.
type source interface {
	Listen(channel string) error
	Notifications() <-chan *pq.Notification
	Ping() error
	Close() error
}

type subscription struct {
	topics map[ports.Topic]struct{}
	stream *live.Stream[ports.Change]
}

// Hub implements ports.ChangeFeed.
type Hub struct {
	src    source
	logger *zap.Logger

	mu     sync.Mutex
	subs   map[*subscription]struct{}
	closed bool

	onSubscribers func(n int)
}

// NewHub opens a listener connection on dsn and listens on every record store topic.
func NewHub(dsn string, logger *zap.Logger) (*Hub, error) {
	logger = logger.With(zap.String("component", "live_query_hub"))
	l := pq.NewListener(dsn, time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventDisconnected:
			logger.Warn("listener disconnected", zap.Error(err))
		case pq.ListenerEventReconnected:
			logger.Info("listener reconnected")
		case pq.ListenerEventConnectionAttemptFailed:
			logger.Warn("listener connection attempt failed", zap.Error(err))
		case pq.ListenerEventConnected:
		}
	})
	return newHub(pqSource{l}, logger)
}

func newHub(src source, logger *zap.Logger) (*Hub, error) {
	for _, topic := range []ports.Topic{ports.TopicOrders, ports.TopicPartners} {
		if err := src.Listen(string(topic)); err != nil {
			_ = src.Close()
			return nil, err
		}
	}
	return &Hub{
		src:           src,
		logger:        logger,
		subs:          make(map[*subscription]struct{}),
		onSubscribers: func(int) {},
	}, nil
}

// OnSubscribersChanged registers a callback receiving the number of open subscriptions
// whenever it changes. It must be set before Run.
func (h *Hub) OnSubscribersChanged(fn func(n int)) {
	h.onSubscribers = fn
}

// Subscribe opens a change stream for topics. The returned stream must be closed by
// the caller; closing it detaches it from the hub.
func (h *Hub) Subscribe(topics ...ports.Topic) (*live.Stream[ports.Change], error) {
	if len(topics) == 0 {
		return nil, errors.New("at least one topic is required")
	}

	sub := &subscription{topics: make(map[ports.Topic]struct{}, len(topics))}
	for _, t := range topics {
		sub.topics[t] = struct{}{}
	}
	sub.stream = live.NewStream[ports.Change](func() { h.remove(sub) })

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrHubClosed
	}
	h.subs[sub] = struct{}{}
	h.onSubscribers(len(h.subs))

	return sub.stream, nil
}

// Run dispatches notifications until ctx is cancelled, then closes the listener and
// every open subscription.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := h.src.Ping(); err != nil {
				h.logger.Warn("listener ping failed", zap.Error(err))
			}
		case n, ok := <-h.src.Notifications():
			if !ok {
				return errors.New("listener notification channel closed")
			}
			h.dispatch(n)
		}
	}
}

func (h *Hub) dispatch(n *pq.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// lib/pq sends nil after re-establishing the connection.
	if n == nil {
		for sub := range h.subs {
			sub.stream.Publish(ports.Change{Resync: true})
		}
		return
	}

	change := ports.Change{Topic: ports.Topic(n.Channel), ID: n.Extra}
	for sub := range h.subs {
		if _, ok := sub.topics[change.Topic]; ok {
			sub.stream.Publish(change)
		}
	}
}

func (h *Hub) remove(sub *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	h.onSubscribers(len(h.subs))
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	h.closed = true
	subs := make([]*subscription, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	// Close outside the lock: onClose calls remove.
	for _, sub := range subs {
		_ = sub.stream.Close()
	}
	if err := h.src.Close(); err != nil {
		h.logger.Warn("closing listener", zap.Error(err))
	}
}

type pqSource struct {
	l *pq.Listener
}

func (s pqSource) Listen(channel string) error { return s.l.Listen(channel) }
func (s pqSource) Notifications() <-chan *pq.Notification { return s.l.Notify }
func (s pqSource) Ping() error { return s.l.Ping() }
func (s pqSource) Close() error { return s.l.Close() }
