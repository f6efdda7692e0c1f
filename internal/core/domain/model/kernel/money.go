package kernel

import (
	"fmt"

	"bolpurmart/internal/pkg/errs"
)

// Money is a non-negative amount in paise (1/100 rupee). Integer minor units keep
// earnings sums exact.
type Money struct {
	paise int64
}

// NewMoney creates an amount from paise. Negative amounts are rejected.
func NewMoney(paise int64) (Money, error) {
	if paise < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", paise))
	}
	return Money{paise: paise}, nil
}

// Rupees creates an amount from whole rupees.
func Rupees(r int64) (Money, error) {
	return NewMoney(r * 100)
}

// Paise returns the amount in minor units.
func (m Money) Paise() int64 {
	return m.paise
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.paise == 0
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{paise: m.paise + other.paise}
}

// String formats the amount as rupees, e.g. "₹40.50".
func (m Money) String() string {
	return fmt.Sprintf("₹%d.%02d", m.paise/100, m.paise%100)
}
