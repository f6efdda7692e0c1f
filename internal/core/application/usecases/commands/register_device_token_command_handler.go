package commands

import (
	"context"
	"time"
)

// RegisterDeviceTokenCommandHandler appends a device token. Callers log failures and
// carry on; registration is never retried.
type RegisterDeviceTokenCommandHandler struct {
	uowFactory PartnerUoWFactory
	now        func() time.Time
}

// NewRegisterDeviceTokenCommandHandler creates a handler for token registration.
func NewRegisterDeviceTokenCommandHandler(uowFactory PartnerUoWFactory) RegisterDeviceTokenCommandHandler {
	return RegisterDeviceTokenCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle processes the registration command. Registering a token the partner already
// has is a no-op.
func (h RegisterDeviceTokenCommandHandler) Handle(ctx context.Context, cmd RegisterDeviceTokenCommand) error {
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

	if err := uow.PartnerRepository().AddDeviceToken(ctx, cmd.PartnerID(), cmd.Token(), h.now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
