package commands

import (
	"context"
	"errors"
	"time"

	"bolpurmart/internal/core/domain/model/order"
	"bolpurmart/internal/pkg/errs"
)

// ErrPartnerNotApproved is the cause of a rejected accept by an unapproved partner.
var ErrPartnerNotApproved = errors.New("delivery partner is not approved")

// AcceptOrderCommandHandler claims a confirmed order.
//
// The partner must be admin-approved. The write is conditional on the order still being
// confirmed, so when two partners race for the same order the second one is rejected
// and the first assignment is kept.
//
// Example:
//
//	handler := NewAcceptOrderCommandHandler(uowFactory)
//	cmd, _ := NewAcceptOrderCommand(orderID, partnerID)
//	err := handler.Handle(ctx, cmd)
//	var rejected *errs.TransitionRejectedError
//	switch {
//	case errors.Is(err, ErrPartnerNotApproved):
//	    // waiting for admin approval
//	case errors.As(err, &rejected):
//	    // another partner claimed it first; rejected.Current holds the stored status
//	case err != nil:
//	    return err
//	}
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewAcceptOrderCommandHandler creates a handler for accept operations.
// Requires a UoWFactory: the partner is read and the order written in one transaction.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the accept command.
// Returns errs.TransitionRejectedError if the order is no longer confirmed or the partner
// is not approved, and errs.ObjectNotFoundError for unknown orders or partners.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	partnerRepo := uow.PartnerRepository()
	orderRepo := uow.OrderRepository()

	p, err := partnerRepo.Get(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}
	if !p.CanReceiveOrders() {
		return errs.NewTransitionRejectedErrorWithCause(order.OpAccept, cmd.OrderID().String(), "", ErrPartnerNotApproved)
	}

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	from := o.Status()
	if err = o.Accept(p.ID(), h.now()); err != nil {
		return err
	}

	if err = orderRepo.Transition(ctx, o, from); err != nil {
		return errs.WrapWrite(order.OpAccept, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errs.WrapWrite(order.OpAccept, err)
	}

	return nil
}
