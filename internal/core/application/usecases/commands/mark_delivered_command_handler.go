package commands

import (
	"context"
	"time"

	"bolpurmart/internal/core/domain/model/order"
	"bolpurmart/internal/core/domain/services"
	"bolpurmart/internal/pkg/errs"
)

// MarkDeliveredCommandHandler completes a picked up or en route order.
//
// In one transaction it writes the delivered status (conditional on the status read),
// appends the partner's earning and increments the partner's delivery counter. Either
// all three are committed or none is.
type MarkDeliveredCommandHandler struct {
	uowFactory UoWFactory
	completer  services.DeliveryCompleter
	now        func() time.Time
}

// NewMarkDeliveredCommandHandler creates a handler for delivery completion.
func NewMarkDeliveredCommandHandler(uowFactory UoWFactory, completer services.DeliveryCompleter) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		completer:  completer,
		now:        time.Now,
	}
}

// Handle processes the delivered command.
// The order must be picked up or en route and assigned to cmd.PartnerID(). The earning
// amount comes from the DeliveryCompleter's payout policy.
// Returns errs.TransitionRejectedError for a wrong status or partner and
// errs.WriteFailureError when the store rejects any of the three writes.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	partnerRepo := uow.PartnerRepository()
	earningsRepo := uow.EarningsRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	p, err := partnerRepo.Get(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}

	now := h.now()
	from := o.Status()
	earning, err := h.completer.Complete(o, p, now)
	if err != nil {
		return err
	}

	if err = orderRepo.Transition(ctx, o, from); err != nil {
		return errs.WrapWrite(order.OpDeliver, err)
	}
	if err = earningsRepo.Add(ctx, earning); err != nil {
		return errs.WrapWrite(order.OpDeliver, err)
	}
	if err = partnerRepo.IncrementDeliveries(ctx, p.ID(), now); err != nil {
		return errs.WrapWrite(order.OpDeliver, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errs.WrapWrite(order.OpDeliver, err)
	}

	return nil
}
