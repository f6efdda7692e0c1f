// Package ports defines the contracts between the application core and the adapters:
// record stores, the unit of work, the change feed, the session provider and the
// outbound push and event transports.
package ports

import (
	"context"
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. Orders are normally created by the external ordering
	// system; Add serves seeding and tests.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns errs.ObjectNotFoundError if no such order exists.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// Transition persists the lifecycle fields of aggregate only if the stored status
	// still equals from. The check and the write are a single conditional statement,
	// so of two concurrent transitions from the same status exactly one succeeds.
	//
	// Returns errs.TransitionRejectedError when the stored status no longer matches.
	Transition(ctx context.Context, aggregate *order.Order, from order.Status) error

	// ListArchivable returns delivered, unarchived orders delivered before cutoff,
	// oldest first, at most limit of them.
	ListArchivable(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error)

	// ListConfirmed returns orders still waiting for a partner, newest first, at most
	// limit of them.
	ListConfirmed(ctx context.Context, limit int) ([]*order.Order, error)
}
