package commands

import (
	"errors"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/partner"
	"bolpurmart/internal/pkg/guard"
)

var ErrRegisterDeviceTokenCommandIsNotConstructed = errors.New(
	"RegisterDeviceTokenCommand must be created via NewRegisterDeviceTokenCommand constructor",
)

// RegisterDeviceTokenCommand adds a push device token to a partner's token set.
type RegisterDeviceTokenCommand struct {
	partnerID kernel.ID
	token     string

	guard guard.ConstructorGuard
}

// NewRegisterDeviceTokenCommand creates a command to register token for partnerID.
func NewRegisterDeviceTokenCommand(partnerID kernel.ID, token string) (RegisterDeviceTokenCommand, error) {
	token, tokenErr := partner.NormalizeDeviceToken(token)
	if err := errors.Join(partnerID.Validate(), tokenErr); err != nil {
		return RegisterDeviceTokenCommand{}, err
	}
	return RegisterDeviceTokenCommand{
		partnerID: partnerID,
		token:     token,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDeviceTokenCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDeviceTokenCommandIsNotConstructed)
}

func (c RegisterDeviceTokenCommand) PartnerID() kernel.ID { return c.partnerID }
func (c RegisterDeviceTokenCommand) Token() string { return c.token }
