package commands

import (
	"context"
	"time"

	"bolpurmart/internal/core/domain/model/order"
)

// DeclineOrderCommandHandler moves a confirmed or accepted order to declined.
// Declined is terminal. The caller's identity is not checked against the assigned
// partner, and an assigned partner id is kept on the declined order.
type DeclineOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewDeclineOrderCommandHandler creates a handler for decline operations.
func NewDeclineOrderCommandHandler(uowFactory OrderUoWFactory) DeclineOrderCommandHandler {
	return DeclineOrderCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle processes the decline command.
// Returns errs.TransitionRejectedError when the order is already picked up or further
// along, or when a concurrent write changed its status first.
func (h DeclineOrderCommandHandler) Handle(ctx context.Context, cmd DeclineOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return transitionOrder(ctx, h.uowFactory, order.OpDecline, cmd.OrderID(), func(o *order.Order) error {
		return o.Decline(h.now())
	})
}
