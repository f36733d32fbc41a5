package guard_test

import (
	"errors"
	"testing"

	"laundry/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type claimCommand struct {
		orderID string
		guard   guard.ConstructorGuard
	}
	errNotConstructed := errors.New("claimCommand must be created via newClaimCommand")

	newClaimCommand := func(orderID string) (claimCommand, error) {
		if orderID == "" {
			return claimCommand{}, errors.New("order id is required")
		}
		return claimCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_path_validates", func(t *testing.T) {
		cmd, err := newClaimCommand("o-1")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errNotConstructed))
		assert.Equal(t, "o-1", cmd.orderID)
	})

	t.Run("struct_literal_is_rejected", func(t *testing.T) {
		cmd := claimCommand{orderID: "o-1"}

		assert.Equal(t, errNotConstructed, cmd.guard.Validate(errNotConstructed))
	})
}
