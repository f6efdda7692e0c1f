package partner

import (
	"fmt"

	"bolpurmart/internal/pkg/errs"
)

// Status is the partner's availability as toggled from the dashboard.
type Status string

const (
	Offline Status = "offline"
	Online  Status = "online"
	Busy    Status = "busy"
)

// ParseStatus converts the persisted representation into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that s is one of Offline, Online or Busy.
func (s Status) Validate() error {
	switch s {
	case Offline, Online, Busy:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("partner status", fmt.Errorf("%q is not a valid status", string(s)))
}

func (s Status) String() string {
	return string(s)
}
