// Package views provides the live derived views of a partner session: available orders,
// active orders and the partner profile. Each view is a live.Stream that receives a full
// snapshot when it opens and a fresh one after every committed write that can affect it.
// Views from different calls are independent; no ordering holds across them.
package views

import (
	"context"

	"bolpurmart/internal/core/application/usecases/queries"
	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/ports"
	"bolpurmart/internal/pkg/live"

	"go.uber.org/zap"
)

type AvailableOrdersReader interface {
	Handle(ctx context.Context, query queries.GetAvailableOrdersQuery) ([]queries.OrderView, error)
}

type ActiveOrdersReader interface {
	Handle(ctx context.Context, query queries.GetActiveOrdersQuery) ([]queries.OrderView, error)
}

type ProfileReader interface {
	Handle(ctx context.Context, query queries.GetPartnerProfileQuery) (queries.PartnerProfile, error)
}

// Views opens live views over the record stores.
type Views struct {
	feed      ports.ChangeFeed
	available AvailableOrdersReader
	active    ActiveOrdersReader
	profile   ProfileReader
	logger    *zap.Logger
}

func New(
	feed ports.ChangeFeed,
	available AvailableOrdersReader,
	active ActiveOrdersReader,
	profile ProfileReader,
	logger *zap.Logger,
) *Views {
	return &Views{
		feed:      feed,
		available: available,
		active:    active,
		profile:   profile,
		logger:    logger.With(zap.String("component", "views")),
	}
}

// AvailableOrders streams the confirmed orders offered to partnerID. The list is empty
// while the partner is not admin-approved, so an approval change on the partner's own
// record also refreshes it.
func (v *Views) AvailableOrders(ctx context.Context, partnerID kernel.ID) (*live.Stream[[]queries.OrderView], error) {
	query, err := queries.NewGetAvailableOrdersQuery(partnerID)
	if err != nil {
		return nil, err
	}
	relevant := func(c ports.Change) bool {
		return c.Topic == ports.TopicOrders || c.ID == partnerID.String()
	}
	fetch := func(ctx context.Context) ([]queries.OrderView, error) {
		return v.available.Handle(ctx, query)
	}
	return watch(ctx, v.feed, v.logger.With(zap.String("view", "available_orders")),
		fetch, relevant, ports.TopicOrders, ports.TopicPartners)
}

// ActiveOrders streams the orders partnerID is working on, most recently updated first.
func (v *Views) ActiveOrders(ctx context.Context, partnerID kernel.ID) (*live.Stream[[]queries.OrderView], error) {
	query, err := queries.NewGetActiveOrdersQuery(partnerID)
	if err != nil {
		return nil, err
	}
	fetch := func(ctx context.Context) ([]queries.OrderView, error) {
		return v.active.Handle(ctx, query)
	}
	return watch(ctx, v.feed, v.logger.With(zap.String("view", "active_orders")),
		fetch, anyChange, ports.TopicOrders)
}

// Profile streams the partner record. A missing record is delivered as a failed
// snapshot carrying errs.ErrProfileNotFound; the stream stays open and recovers once
// the record is written.
func (v *Views) Profile(ctx context.Context, partnerID kernel.ID) (*live.Stream[queries.PartnerProfile], error) {
	query, err := queries.NewGetPartnerProfileQuery(partnerID)
	if err != nil {
		return nil, err
	}
	relevant := func(c ports.Change) bool { return c.ID == partnerID.String() }
	fetch := func(ctx context.Context) (queries.PartnerProfile, error) {
		return v.profile.Handle(ctx, query)
	}
	return watch(ctx, v.feed, v.logger.With(zap.String("view", "profile")),
		fetch, relevant, ports.TopicPartners)
}
