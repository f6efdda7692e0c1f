package partner

import (
	"errors"
	"net/mail"
	"slices"
	"strings"
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/errs"
	"bolpurmart/internal/pkg/guard"
)

const (
	maxName          = 100
	maxVehicleNumber = 20
	maxDeviceToken   = 4096
)

var (
	// ErrPartnerIsNotConstructed is returned when using an improperly initialized Partner.
	ErrPartnerIsNotConstructed = errors.New("Partner must be created via NewPartner or RestorePartner constructor")
	// ErrNameIsRequired is returned for an empty partner name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrVehicleNumberIsRequired is returned for an empty vehicle registration number.
	ErrVehicleNumberIsRequired = errs.NewValueIsRequiredError("vehicle number")
)

// State is the persisted form of a partner record.
type State struct {
	ID              kernel.ID
	Name            string
	Phone           string
	Email           string
	VehicleType     VehicleType
	VehicleNumber   string
	AdminApproved   bool
	Status          Status
	Rating          float64
	TotalDeliveries int
	Payment         *PaymentDetails
	DeviceTokens    []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Partner is a delivery partner's profile. It is an aggregate root keyed by the identity
// issued by the session provider.
//
// Business rules:
//   - A new partner starts offline, unapproved, with no deliveries and a zero rating
//   - AdminApproved is set only by an external admin; this application never changes it
//   - Only approved partners may see or accept orders
//   - Rating is computed externally; TotalDeliveries grows by one per delivered order
//   - Device tokens form a set that only grows
type Partner struct {
	id              kernel.ID
	name            string
	phone           kernel.Phone
	email           string
	vehicleType     VehicleType
	vehicleNumber   string
	adminApproved   bool
	status          Status
	rating          float64
	totalDeliveries int
	payment         *PaymentDetails
	deviceTokens    []string
	createdAt       time.Time
	updatedAt       time.Time

	guard guard.ConstructorGuard
}

// NewPartner creates the record written at signup.
//
// Example:
//
//	p, err := partner.NewPartner(identity.ID, "Ravi Das", "9876543210", "ravi@example.com", partner.Bike, "WB 54 A 1234", time.Now())
func NewPartner(
	id kernel.ID,
	name, phone, email string,
	vehicleType VehicleType,
	vehicleNumber string,
	now time.Time,
) (*Partner, error) {
	p := &Partner{
		status:    Offline,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPhone(phone),
		p.setEmail(email),
		p.setVehicleType(vehicleType),
		p.setVehicleNumber(vehicleNumber),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePartner rebuilds a partner from its stored state. Only the identity and the
// enumerations are checked; free text fields are kept as stored.
func RestorePartner(s State) (*Partner, error) {
	p := &Partner{
		name:            s.Name,
		email:           s.Email,
		vehicleNumber:   s.VehicleNumber,
		adminApproved:   s.AdminApproved,
		rating:          s.Rating,
		totalDeliveries: s.TotalDeliveries,
		payment:         s.Payment,
		deviceTokens:    slices.Clone(s.DeviceTokens),
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		guard:           guard.NewConstructorGuard(),
	}
	if phone, err := kernel.NewPhone(s.Phone); err == nil {
		p.phone = phone
	}

	if err := errors.Join(
		p.setID(s.ID),
		p.setVehicleType(s.VehicleType),
		p.setStatus(s.Status),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Partner instance was properly constructed.
func (p *Partner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

func (p *Partner) ID() kernel.ID { return p.id }
func (p *Partner) Name() string { return p.name }
func (p *Partner) Phone() string { return p.phone.String() }
func (p *Partner) Email() string { return p.email }
func (p *Partner) VehicleType() VehicleType { return p.vehicleType }
func (p *Partner) VehicleNumber() string { return p.vehicleNumber }
func (p *Partner) AdminApproved() bool { return p.adminApproved }
func (p *Partner) Status() Status { return p.status }
func (p *Partner) Rating() float64 { return p.rating }
func (p *Partner) TotalDeliveries() int { return p.totalDeliveries }
func (p *Partner) Payment() *PaymentDetails { return p.payment }
func (p *Partner) DeviceTokens() []string { return slices.Clone(p.deviceTokens) }
func (p *Partner) CreatedAt() time.Time { return p.createdAt }
func (p *Partner) UpdatedAt() time.Time { return p.updatedAt }

// CanReceiveOrders reports whether the partner may be offered orders.
func (p *Partner) CanReceiveOrders() bool {
	return p.adminApproved
}

// ShouldBeNotified reports whether new-order pushes go to this partner.
func (p *Partner) ShouldBeNotified() bool {
	return p.adminApproved && p.status == Online && len(p.deviceTokens) > 0
}

// Apply merges a validated patch into the partner. Fields absent from the patch are
// left untouched.
func (p *Partner) Apply(patch Patch, now time.Time) {
	if v, ok := patch.Name(); ok {
		p.name = v
	}
	if v, ok := patch.Phone(); ok {
		p.phone, _ = kernel.NewPhone(v)
	}
	if v, ok := patch.VehicleType(); ok {
		p.vehicleType = v
	}
	if v, ok := patch.VehicleNumber(); ok {
		p.vehicleNumber = v
	}
	if v, ok := patch.Payment(); ok {
		p.payment = &v
	}
	if v, ok := patch.Status(); ok {
		p.status = v
	}
	p.updatedAt = now
}

// AddDeviceToken adds token to the set. It reports whether the set changed.
func (p *Partner) AddDeviceToken(token string) (bool, error) {
	token, err := NormalizeDeviceToken(token)
	if err != nil {
		return false, err
	}
	if slices.Contains(p.deviceTokens, token) {
		return false, nil
	}
	p.deviceTokens = append(p.deviceTokens, token)
	return true, nil
}

// RecordDelivery increments the delivered orders counter.
func (p *Partner) RecordDelivery(now time.Time) {
	p.totalDeliveries++
	p.updatedAt = now
}

// State returns a copy of the persisted state.
func (p *Partner) State() State {
	return State{
		ID:              p.id,
		Name:            p.name,
		Phone:           p.phone.String(),
		Email:           p.email,
		VehicleType:     p.vehicleType,
		VehicleNumber:   p.vehicleNumber,
		AdminApproved:   p.adminApproved,
		Status:          p.status,
		Rating:          p.rating,
		TotalDeliveries: p.totalDeliveries,
		Payment:         p.payment,
		DeviceTokens:    slices.Clone(p.deviceTokens),
		CreatedAt:       p.createdAt,
		UpdatedAt:       p.updatedAt,
	}
}

// NormalizeDeviceToken trims and bounds a push device token.
func NormalizeDeviceToken(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errs.NewValueIsRequiredError("device token")
	}
	if len(token) > maxDeviceToken {
		return "", errs.NewValueIsOutOfRangeError("device token length", len(token), 1, maxDeviceToken)
	}
	return token, nil
}

func (p *Partner) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Partner) setName(name string) error {
	v, err := normalizeName(name)
	if err != nil {
		return err
	}
	p.name = v
	return nil
}

func (p *Partner) setPhone(phone string) error {
	v, err := kernel.NewPhone(phone)
	if err != nil {
		return err
	}
	p.phone = v
	return nil
}

func (p *Partner) setEmail(email string) error {
	v, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	p.email = v
	return nil
}

func (p *Partner) setVehicleType(v VehicleType) error {
	if err := v.Validate(); err != nil {
		return err
	}
	p.vehicleType = v
	return nil
}

func (p *Partner) setVehicleNumber(number string) error {
	v, err := normalizeVehicleNumber(number)
	if err != nil {
		return err
	}
	p.vehicleNumber = v
	return nil
}

func (p *Partner) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	p.status = s
	return nil
}

// NormalizeEmail lower-cases and validates an email address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	return email, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameIsRequired
	}
	if len(name) > maxName {
		return "", errs.NewValueIsOutOfRangeError("name length", len(name), 1, maxName)
	}
	return name, nil
}

func normalizeVehicleNumber(number string) (string, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return "", ErrVehicleNumberIsRequired
	}
	if len(number) > maxVehicleNumber {
		return "", errs.NewValueIsOutOfRangeError("vehicle number length", len(number), 1, maxVehicleNumber)
	}
	return number, nil
}
