package commands

import (
	"context"
	"time"

	"bolpurmart/internal/core/domain/model/order"
)

// MarkPickedUpCommandHandler moves an accepted order to picked_up and stamps the
// pickup time.
type MarkPickedUpCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewMarkPickedUpCommandHandler creates a handler for pickup operations.
func NewMarkPickedUpCommandHandler(uowFactory OrderUoWFactory) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle processes the pickup command. Only an accepted order can be picked up; any
// other stored status yields errs.TransitionRejectedError and leaves the row untouched.
func (h MarkPickedUpCommandHandler) Handle(ctx context.Context, cmd MarkPickedUpCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return transitionOrder(ctx, h.uowFactory, order.OpPickUp, cmd.OrderID(), func(o *order.Order) error {
		return o.MarkPickedUp(h.now())
	})
}
