package commands

import (
	"context"
	"errors"
	"time"

	"bolpurmart/internal/core/domain/model/order"
	"bolpurmart/internal/pkg/errs"
)

// ArchiveDeliveredOrdersCommandHandler sets archivedAt on old delivered orders.
// Orders are archived, never deleted.
type ArchiveDeliveredOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewArchiveDeliveredOrdersCommandHandler creates a handler for the archive job.
func NewArchiveDeliveredOrdersCommandHandler(uowFactory OrderUoWFactory) ArchiveDeliveredOrdersCommandHandler {
	return ArchiveDeliveredOrdersCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle archives one batch and returns how many orders were archived.
// Orders that a concurrent run archived first are skipped and not counted.
func (h ArchiveDeliveredOrdersCommandHandler) Handle(ctx context.Context, cmd ArchiveDeliveredOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	now := h.now()

	orders, err := repo.ListArchivable(ctx, now.Add(-cmd.Retention()), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	archived := 0
	for _, o := range orders {
		if err = o.Archive(now); err != nil {
			return 0, err
		}
		err = repo.Transition(ctx, o, order.Delivered)
		var rejected *errs.TransitionRejectedError
		if errors.As(err, &rejected) {
			continue
		}
		if err != nil {
			return 0, errs.WrapWrite(order.OpArchive, err)
		}
		archived++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, errs.WrapWrite(order.OpArchive, err)
	}

	return archived, nil
}
