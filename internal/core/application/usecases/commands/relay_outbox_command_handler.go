package commands

import (
	"context"
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/ports"
)

// RelayOutboxCommandHandler publishes outbox events and marks them published.
// Delivery is at least once: a crash between publish and mark republishes the batch.
type RelayOutboxCommandHandler struct {
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
	now       func() time.Time
}

// NewRelayOutboxCommandHandler creates a handler for the outbox relay job.
func NewRelayOutboxCommandHandler(outbox ports.OutboxRepository, publisher ports.EventPublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{outbox: outbox, publisher: publisher, now: time.Now}
}

// Handle relays one batch and returns the number of events published.
// The batch goes out in one Publish call and is marked only after it succeeds, so a
// failure leaves every event of the batch for the next run.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	events, err := h.outbox.ListUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, events); err != nil {
		return 0, err
	}

	ids := make([]kernel.ID, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	if err = h.outbox.MarkPublished(ctx, ids, h.now()); err != nil {
		return 0, err
	}

	return len(events), nil
}
