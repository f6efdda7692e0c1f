// Package notify pushes a notice to online partners when an order becomes available.
package notify

import (
	"context"
	"slices"
	"strings"
	"time"

	"bolpurmart/internal/core/domain/model/order"
	"bolpurmart/internal/core/domain/model/partner"
	"bolpurmart/internal/core/ports"
	"bolpurmart/internal/metrics"

	"go.uber.org/zap"
)

const (
	scanLimit = 500
	seenLimit = 1024
)

type OrderLister interface {
	ListConfirmed(ctx context.Context, limit int) ([]*order.Order, error)
}

type PartnerLister interface {
	ListNotifiable(ctx context.Context) ([]*partner.Partner, error)
}

// NewOrderNotifier watches the orders topic. Every change is a cue to re-read the
// unclaimed orders; each one not seen before gets one push to every approved, online
// partner with a device. Orders already waiting when Run starts are not announced.
// Push failures are logged and counted, never retried.
type NewOrderNotifier struct {
	feed     ports.ChangeFeed
	orders   OrderLister
	partners PartnerLister
	push     ports.PushGateway
	logger   *zap.Logger
	now      func() time.Time
	seen     map[string]time.Time
}

func NewNewOrderNotifier(
	feed ports.ChangeFeed,
	orders OrderLister,
	partners PartnerLister,
	push ports.PushGateway,
	logger *zap.Logger,
) *NewOrderNotifier {
	return &NewOrderNotifier{
		feed:     feed,
		orders:   orders,
		partners: partners,
		push:     push,
		logger:   logger.With(zap.String("component", "new_order_notifier")),
		now:      time.Now,
		seen:     make(map[string]time.Time),
	}
}

// Run blocks until ctx is done or the feed shuts down.
func (n *NewOrderNotifier) Run(ctx context.Context) error {
	changes, err := n.feed.Subscribe(ports.TopicOrders)
	if err != nil {
		return err
	}
	defer func() { _ = changes.Close() }()

	if waiting, err := n.orders.ListConfirmed(ctx, scanLimit); err != nil {
		n.logger.Warn("reading waiting orders", zap.Error(err))
	} else {
		n.unseen(waiting)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes.Done():
			return nil
		case snap := <-changes.Updates():
			if snap.Err != nil {
				continue
			}
			n.scan(ctx)
		}
	}
}

// scan reads the unclaimed orders and announces the ones not seen before. Changes that
// arrive while a scan runs collapse into one wake-up, and the next scan picks up every
// order they created.
func (n *NewOrderNotifier) scan(ctx context.Context) {
	waiting, err := n.orders.ListConfirmed(ctx, scanLimit)
	if err != nil {
		n.logger.Warn("reading waiting orders", zap.Error(err))
		return
	}

	fresh := n.unseen(waiting)
	if len(fresh) == 0 {
		return
	}

	partners, err := n.partners.ListNotifiable(ctx)
	if err != nil {
		n.logger.Warn("listing notifiable partners", zap.Error(err))
		metrics.PushFailuresTotal.WithLabelValues("new_order").Add(float64(len(fresh)))
		return
	}

	var tokens []string
	for _, p := range partners {
		if p.ShouldBeNotified() {
			tokens = append(tokens, p.DeviceTokens()...)
		}
	}
	if len(tokens) == 0 {
		return
	}

	for _, o := range fresh {
		msg := ports.PushMessage{
			Title: "New order available",
			Body:  o.CustomerAddress(),
			Data:  map[string]string{"orderId": o.ID().String()},
		}
		if err = n.push.Send(ctx, tokens, msg); err != nil {
			n.logger.Warn("new order push failed", zap.String("order_id", o.ID().String()), zap.Error(err))
			metrics.PushFailuresTotal.WithLabelValues("new_order").Inc()
		}
	}
}

// unseen records waiting as seen and returns the orders that were not seen before,
// oldest first.
func (n *NewOrderNotifier) unseen(waiting []*order.Order) []*order.Order {
	now := n.now()

	var fresh []*order.Order
	for i := len(waiting) - 1; i >= 0; i-- {
		id := waiting[i].ID().String()
		if _, ok := n.seen[id]; ok {
			continue
		}
		n.seen[id] = now
		fresh = append(fresh, waiting[i])
	}

	// A complete listing names every unclaimed order. Status only moves forward, so an
	// order missing from it is never confirmed again.
	if len(waiting) < scanLimit {
		current := make(map[string]struct{}, len(waiting))
		for _, o := range waiting {
			current[o.ID().String()] = struct{}{}
		}
		for id := range n.seen {
			if _, ok := current[id]; !ok {
				delete(n.seen, id)
			}
		}
	}

	n.evictOldest()
	return fresh
}

// evictOldest keeps seen within seenLimit, dropping the entries recorded first.
func (n *NewOrderNotifier) evictOldest() {
	excess := len(n.seen) - seenLimit
	if excess <= 0 {
		return
	}

	type entry struct {
		id string
		at time.Time
	}
	entries := make([]entry, 0, len(n.seen))
	for id, at := range n.seen {
		entries = append(entries, entry{id: id, at: at})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := a.at.Compare(b.at); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})

	for _, e := range entries[:excess] {
		delete(n.seen, e.id)
	}
}
