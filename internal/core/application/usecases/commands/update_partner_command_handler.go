package commands

import (
	"context"
	"time"

	"bolpurmart/internal/pkg/errs"
)

// UpdatePartnerCommandHandler merge-writes a patch without reading the record first.
// Only the fields set in the patch are written, so a profile edit never touches the
// vehicle or payment columns.
//
// Example:
//
//	cmd, _ := NewUpdateProfileCommand(partnerID, "Ravi Das", "9876543210")
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrObjectNotFound) {
//	    // the partner record does not exist
//	}
type UpdatePartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
	now        func() time.Time
}

// NewUpdatePartnerCommandHandler creates a handler for partner edits.
func NewUpdatePartnerCommandHandler(uowFactory PartnerUoWFactory) UpdatePartnerCommandHandler {
	return UpdatePartnerCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle processes the update command.
func (h UpdatePartnerCommandHandler) Handle(ctx context.Context, cmd UpdatePartnerCommand) error {
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

	if err := uow.PartnerRepository().Merge(ctx, cmd.PartnerID(), cmd.Patch(), h.now()); err != nil {
		return errs.WrapWrite("update partner", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return errs.WrapWrite("update partner", err)
	}

	return nil
}
