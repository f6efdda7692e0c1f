package kernel_test

import (
	"strings"
	"testing"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	t.Run("NewID generates distinct valid ids", func(t *testing.T) {
		a, b := kernel.NewID(), kernel.NewID()

		require.NoError(t, a.Validate())
		assert.False(t, a.IsEqual(b))
	})

	t.Run("IDFromString trims and accepts provider ids", func(t *testing.T) {
		id, err := kernel.IDFromString("  kX2u9Qm1ZsP0  ")

		require.NoError(t, err)
		assert.Equal(t, "kX2u9Qm1ZsP0", id.String())
	})

	t.Run("IDFromString rejects bad input", func(t *testing.T) {
		testCases := map[string]error{
			"":                      errs.ErrValueIsRequired,
			"   ":                   errs.ErrValueIsRequired,
			"a/b":                   errs.ErrValueIsInvalid,
			strings.Repeat("x", 129): errs.ErrValueIsOutOfRange,
		}
		for input, expected := range testCases {
			_, err := kernel.IDFromString(input)
			require.ErrorIs(t, err, expected, "input %q", input)
		}
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var id kernel.ID

		assert.True(t, id.IsZero())
		require.ErrorIs(t, id.Validate(), errs.ErrValueIsRequired)
	})
}

func TestMoney(t *testing.T) {
	t.Run("formats rupees and paise", func(t *testing.T) {
		m, err := kernel.NewMoney(4050)

		require.NoError(t, err)
		assert.Equal(t, "₹40.50", m.String())
	})

	t.Run("adds amounts", func(t *testing.T) {
		a, _ := kernel.Rupees(30)
		b, _ := kernel.NewMoney(5)

		assert.Equal(t, int64(3005), a.Add(b).Paise())
	})

	t.Run("rejects negative", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPhone(t *testing.T) {
	valid := []string{"9999999999", "+91 99999 99999", "09999999999", "99999-99999"}
	for _, raw := range valid {
		p, err := kernel.NewPhone(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "9999999999", p.String())
	}

	_, err := kernel.NewPhone("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	for _, raw := range []string{"12345", "99999x9999", "+1 555 0100"} {
		_, err = kernel.NewPhone(raw)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
	}
}
