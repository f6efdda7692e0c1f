package kernel

import (
	"fmt"
	"strings"

	"bolpurmart/internal/pkg/errs"
)

// Phone is a ten digit Indian mobile number. An optional +91 or leading 0 is stripped.
type Phone struct {
	digits string
}

// NewPhone normalizes and validates a phone number.
func NewPhone(raw string) (Phone, error) {
	s := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw))
	if s == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}
	s = strings.TrimPrefix(s, "+91")
	if len(s) == 11 && s[0] == '0' {
		s = s[1:]
	}
	if len(s) != 10 {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("%q must have 10 digits", raw))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("%q must be numeric", raw))
		}
	}
	return Phone{digits: s}, nil
}

// String returns the ten digits.
func (p Phone) String() string {
	return p.digits
}

// IsZero reports whether the phone is unset.
func (p Phone) IsZero() bool {
	return p.digits == ""
}
