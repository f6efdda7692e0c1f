package partner

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"bolpurmart/internal/pkg/errs"
)

const maxAccountHolder = 100

var upiPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{2,256}@[a-zA-Z][a-zA-Z0-9]{1,63}$`)

// PaymentDetails is where a partner receives payouts. It is optional on the partner
// record; once present both fields are set.
type PaymentDetails struct {
	upiID         string
	accountHolder string
}

// NewPaymentDetails validates a UPI id ("name@handle") and the account holder name.
func NewPaymentDetails(upiID, accountHolder string) (PaymentDetails, error) {
	upiID = strings.TrimSpace(upiID)
	accountHolder = strings.TrimSpace(accountHolder)

	var errUPI, errHolder error
	switch {
	case upiID == "":
		errUPI = errs.NewValueIsRequiredError("upi id")
	case !upiPattern.MatchString(upiID):
		errUPI = errs.NewValueIsInvalidErrorWithCause("upi id", fmt.Errorf("%q is not of the form name@handle", upiID))
	}
	switch {
	case accountHolder == "":
		errHolder = errs.NewValueIsRequiredError("account holder")
	case len(accountHolder) > maxAccountHolder:
		errHolder = errs.NewValueIsOutOfRangeError("account holder length", len(accountHolder), 1, maxAccountHolder)
	}
	if err := errors.Join(errUPI, errHolder); err != nil {
		return PaymentDetails{}, err
	}

	return PaymentDetails{upiID: upiID, accountHolder: accountHolder}, nil
}

func (p PaymentDetails) UPIID() string { return p.upiID }
func (p PaymentDetails) AccountHolder() string { return p.accountHolder }
