package commands

import (
	"context"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/order"
	"bolpurmart/internal/pkg/errs"
)

// transitionOrder runs a single-order lifecycle change inside an order unit of work:
// load, apply, conditional write, commit.
func transitionOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	op string,
	orderID kernel.ID,
	apply func(*order.Order) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	from := o.Status()
	if err = apply(o); err != nil {
		return err
	}

	if err = repo.Transition(ctx, o, from); err != nil {
		return errs.WrapWrite(op, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errs.WrapWrite(op, err)
	}

	return nil
}
