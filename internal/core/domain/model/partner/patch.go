package partner

import (
	"errors"

	"bolpurmart/internal/core/domain/model/kernel"
)

// Patch is a validated partial update of a partner record. Record stores write only
// the fields a patch carries, so unrelated fields are never overwritten.
type Patch struct {
	name          *string
	phone         *string
	vehicleType   *VehicleType
	vehicleNumber *string
	payment       *PaymentDetails
	status        *Status
}

// NewProfilePatch updates name and phone. Both are required.
func NewProfilePatch(name, phone string) (Patch, error) {
	n, errName := normalizeName(name)
	ph, errPhone := kernel.NewPhone(phone)
	if err := errors.Join(errName, errPhone); err != nil {
		return Patch{}, err
	}
	digits := ph.String()
	return Patch{name: &n, phone: &digits}, nil
}

// NewVehiclePatch updates vehicle type and number.
func NewVehiclePatch(vehicleType, vehicleNumber string) (Patch, error) {
	vt, errType := ParseVehicleType(vehicleType)
	vn, errNumber := normalizeVehicleNumber(vehicleNumber)
	if err := errors.Join(errType, errNumber); err != nil {
		return Patch{}, err
	}
	return Patch{vehicleType: &vt, vehicleNumber: &vn}, nil
}

// NewPaymentPatch sets the payout details.
func NewPaymentPatch(upiID, accountHolder string) (Patch, error) {
	pd, err := NewPaymentDetails(upiID, accountHolder)
	if err != nil {
		return Patch{}, err
	}
	return Patch{payment: &pd}, nil
}

// NewStatusPatch changes the availability status.
func NewStatusPatch(status string) (Patch, error) {
	s, err := ParseStatus(status)
	if err != nil {
		return Patch{}, err
	}
	return Patch{status: &s}, nil
}

// IsEmpty reports whether the patch carries no field.
func (p Patch) IsEmpty() bool {
	return p.name == nil && p.phone == nil && p.vehicleType == nil &&
		p.vehicleNumber == nil && p.payment == nil && p.status == nil
}

func (p Patch) Name() (string, bool) { return deref(p.name) }
func (p Patch) Phone() (string, bool) { return deref(p.phone) }
func (p Patch) VehicleType() (VehicleType, bool) { return deref(p.vehicleType) }
func (p Patch) VehicleNumber() (string, bool) { return deref(p.vehicleNumber) }
func (p Patch) Payment() (PaymentDetails, bool) { return deref(p.payment) }
func (p Patch) Status() (Status, bool) { return deref(p.status) }

func deref[T any](v *T) (T, bool) {
	if v == nil {
		var zero T
		return zero, false
	}
	return *v, true
}
