package commands

import (
	"errors"
	"fmt"
	"strings"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/partner"
	"bolpurmart/internal/pkg/errs"
	"bolpurmart/internal/pkg/guard"
)

const minPasswordLength = 6

var ErrRegisterPartnerCommandIsNotConstructed = errors.New(
	"RegisterPartnerCommand must be created via NewRegisterPartnerCommand constructor",
)

// RegisterPartnerCommand is the signup form.
type RegisterPartnerCommand struct {
	name          string
	phone         string
	email         string
	vehicleType   partner.VehicleType
	vehicleNumber string
	password      string

	guard guard.ConstructorGuard
}

// NewRegisterPartnerCommand validates the signup form. Field level validation of the
// profile happens again in partner.NewPartner; here only the form shape is checked.
func NewRegisterPartnerCommand(
	name, phone, email, vehicleType, vehicleNumber, password string,
) (RegisterPartnerCommand, error) {
	vt, errVehicle := partner.ParseVehicleType(vehicleType)
	normalizedEmail, errEmail := partner.NormalizeEmail(email)
	_, errPhone := kernel.NewPhone(phone)

	var errName, errPassword error
	if strings.TrimSpace(name) == "" {
		errName = partner.ErrNameIsRequired
	}
	if len(password) < minPasswordLength {
		errPassword = errs.NewValueIsInvalidErrorWithCause("password", fmt.Errorf("must have at least %d characters", minPasswordLength))
	}

	if err := errors.Join(errName, errPhone, errEmail, errVehicle, errPassword); err != nil {
		return RegisterPartnerCommand{}, err
	}

	return RegisterPartnerCommand{
		name:          name,
		phone:         phone,
		email:         normalizedEmail,
		vehicleType:   vt,
		vehicleNumber: vehicleNumber,
		password:      password,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterPartnerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPartnerCommandIsNotConstructed)
}

func (c RegisterPartnerCommand) Name() string { return c.name }
func (c RegisterPartnerCommand) Phone() string { return c.phone }
func (c RegisterPartnerCommand) Email() string { return c.email }
func (c RegisterPartnerCommand) VehicleType() partner.VehicleType { return c.vehicleType }
func (c RegisterPartnerCommand) VehicleNumber() string { return c.vehicleNumber }
func (c RegisterPartnerCommand) Password() string { return c.password }
