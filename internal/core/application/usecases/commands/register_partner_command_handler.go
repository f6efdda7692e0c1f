package commands

import (
	"context"
	"errors"
	"time"

	"bolpurmart/internal/core/domain/model/partner"
	"bolpurmart/internal/core/ports"
)

// RegisterPartnerCommandHandler signs a partner up: it creates the credential with the
// session provider and then the partner record keyed by the issued identity. If the
// record cannot be written the credential is removed again.
type RegisterPartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
	sessions   ports.SessionProvider
	now        func() time.Time
}

// NewRegisterPartnerCommandHandler creates a handler for signups.
func NewRegisterPartnerCommandHandler(
	uowFactory PartnerUoWFactory,
	sessions ports.SessionProvider,
) RegisterPartnerCommandHandler {
	return RegisterPartnerCommandHandler{
		uowFactory: uowFactory,
		sessions:   sessions,
		now:        time.Now,
	}
}

// Handle processes the signup and returns the signed in identity of the new partner.
func (h RegisterPartnerCommandHandler) Handle(ctx context.Context, cmd RegisterPartnerCommand) (ports.Identity, error) {
	if err := cmd.Validate(); err != nil {
		return ports.Identity{}, err
	}

	identity, err := h.sessions.Register(ctx, cmd.Email(), cmd.Password())
	if err != nil {
		return ports.Identity{}, err
	}

	if err = h.addPartner(ctx, identity, cmd); err != nil {
		if undoErr := h.sessions.Unregister(ctx, identity.PartnerID); undoErr != nil {
			err = errors.Join(err, undoErr)
		}
		return ports.Identity{}, err
	}

	return identity, nil
}

func (h RegisterPartnerCommandHandler) addPartner(ctx context.Context, identity ports.Identity, cmd RegisterPartnerCommand) error {
	p, err := partner.NewPartner(
		identity.PartnerID,
		cmd.Name(),
		cmd.Phone(),
		cmd.Email(),
		cmd.VehicleType(),
		cmd.VehicleNumber(),
		h.now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PartnerRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
