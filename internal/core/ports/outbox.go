package ports

import (
	"context"
	"time"

	"bolpurmart/internal/core/domain/model/event"
	"bolpurmart/internal/core/domain/model/kernel"
)

// OutboxRepository reads and acknowledges lifecycle events written by units of work.
type OutboxRepository interface {
	// ListUnpublished returns at most limit unpublished events in the order they occurred.
	ListUnpublished(ctx context.Context, limit int) ([]event.Event, error)

	// MarkPublished records that the events with the given ids were delivered.
	MarkPublished(ctx context.Context, ids []kernel.ID, at time.Time) error
}

// EventPublisher delivers lifecycle events to the external ordering system.
type EventPublisher interface {
	Publish(ctx context.Context, events []event.Event) error
}
