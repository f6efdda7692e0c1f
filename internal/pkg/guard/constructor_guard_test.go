package guard_test

import (
	"errors"
	"testing"

	"bolpurmart/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("test object not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("command not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is embedded
// in a command to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type TokenCommand struct {
		token string
		guard guard.ConstructorGuard
	}

	errNotConstructed := errors.New("TokenCommand must be created via NewTokenCommand")

	newTokenCommand := func(token string) (TokenCommand, error) {
		if token == "" {
			return TokenCommand{}, errors.New("token is required")
		}
		return TokenCommand{token: token, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		cmd, err := newTokenCommand("device-token")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errNotConstructed))
		assert.Equal(t, "device-token", cmd.token)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		var cmd TokenCommand

		assert.Equal(t, errNotConstructed, cmd.guard.Validate(errNotConstructed))
	})

	t.Run("guard_can_be_safely_passed_by_value", func(t *testing.T) {
		cmd, err := newTokenCommand("abc")
		require.NoError(t, err)

		cmdCopy := cmd
		require.NoError(t, cmdCopy.guard.Validate(errNotConstructed))
	})
}
