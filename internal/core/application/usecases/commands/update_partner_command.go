package commands

import (
	"errors"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/partner"
	"bolpurmart/internal/pkg/guard"
)

var ErrUpdatePartnerCommandIsNotConstructed = errors.New(
	"UpdatePartnerCommand must be created via one of its constructors",
)

// UpdatePartnerCommand merges a small set of fields into a partner record.
// It backs the profile, vehicle and payment editors and the status toggle.
//
// Example:
//
//	cmd, err := NewUpdateProfileCommand(partnerID, "Ravi Das", "9876543210")
//	if err != nil {
//	    return err // missing or malformed fields
//	}
//	err = handler.Handle(ctx, cmd)
type UpdatePartnerCommand struct {
	partnerID kernel.ID
	patch     partner.Patch

	guard guard.ConstructorGuard
}

// NewUpdateProfileCommand updates name and phone.
func NewUpdateProfileCommand(partnerID kernel.ID, name, phone string) (UpdatePartnerCommand, error) {
	patch, err := partner.NewProfilePatch(name, phone)
	return newUpdatePartnerCommand(partnerID, patch, err)
}

// NewUpdateVehicleCommand updates vehicle type and number.
func NewUpdateVehicleCommand(partnerID kernel.ID, vehicleType, vehicleNumber string) (UpdatePartnerCommand, error) {
	patch, err := partner.NewVehiclePatch(vehicleType, vehicleNumber)
	return newUpdatePartnerCommand(partnerID, patch, err)
}

// NewUpdatePaymentCommand sets UPI payout details.
func NewUpdatePaymentCommand(partnerID kernel.ID, upiID, accountHolder string) (UpdatePartnerCommand, error) {
	patch, err := partner.NewPaymentPatch(upiID, accountHolder)
	return newUpdatePartnerCommand(partnerID, patch, err)
}

// NewSetPartnerStatusCommand toggles offline, online or busy.
func NewSetPartnerStatusCommand(partnerID kernel.ID, status string) (UpdatePartnerCommand, error) {
	patch, err := partner.NewStatusPatch(status)
	return newUpdatePartnerCommand(partnerID, patch, err)
}

func newUpdatePartnerCommand(partnerID kernel.ID, patch partner.Patch, patchErr error) (UpdatePartnerCommand, error) {
	if err := errors.Join(partnerID.Validate(), patchErr); err != nil {
		return UpdatePartnerCommand{}, err
	}
	return UpdatePartnerCommand{
		partnerID: partnerID,
		patch:     patch,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c UpdatePartnerCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePartnerCommandIsNotConstructed)
}

func (c UpdatePartnerCommand) PartnerID() kernel.ID { return c.partnerID }
func (c UpdatePartnerCommand) Patch() partner.Patch { return c.patch }
