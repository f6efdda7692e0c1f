package partner

import (
	"fmt"
	"strings"

	"bolpurmart/internal/pkg/errs"
)

// VehicleType is the fixed set of vehicles a partner can register.
type VehicleType string

const (
	Bike    VehicleType = "Bike"
	Bicycle VehicleType = "Bicycle"
	Scooter VehicleType = "Scooter"
)

// VehicleTypes lists every accepted vehicle type in display order.
var VehicleTypes = []VehicleType{Bike, Bicycle, Scooter}

// ParseVehicleType accepts the display names case-insensitively.
func ParseVehicleType(s string) (VehicleType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errs.NewValueIsRequiredError("vehicle type")
	}
	for _, v := range VehicleTypes {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%q is not one of %v", s, VehicleTypes))
}

// Validate checks membership in VehicleTypes.
func (v VehicleType) Validate() error {
	_, err := ParseVehicleType(string(v))
	return err
}

func (v VehicleType) String() string {
	return string(v)
}
