package kernel_test

import (
	"testing"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create unique valid identifiers", func(t *testing.T) {
		id1 := kernel.NewUUID()
		id2 := kernel.NewUUID()

		require.NoError(t, id1.Validate())
		assert.False(t, id1.IsZero())
		assert.False(t, id1.IsEqual(id2))
	})
}

func TestUUIDFromString(t *testing.T) {
	validUUID := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should parse canonical form", func(t *testing.T) {
		id, err := kernel.UUIDFromString(validUUID)

		require.NoError(t, err)
		assert.Equal(t, validUUID, id.String())
	})

	t.Run("should reject malformed input as a validation error", func(t *testing.T) {
		for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716"} {
			t.Run(input, func(t *testing.T) {
				_, err := kernel.UUIDFromString(input)

				require.Error(t, err)
				assert.True(t, errs.IsValidation(err))
				assert.Contains(t, err.Error(), "invalid UUID format")
			})
		}
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round trip through the storage form", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("should reject short slices", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})

		require.Error(t, err)
	})
}

func TestUUIDsFromStrings(t *testing.T) {
	t.Run("should parse every id", func(t *testing.T) {
		a, b := kernel.NewUUID(), kernel.NewUUID()

		ids, err := kernel.UUIDsFromStrings([]string{a.String(), b.String()})

		require.NoError(t, err)
		require.Len(t, ids, 2)
		assert.True(t, ids[0].IsEqual(a))
		assert.True(t, ids[1].IsEqual(b))
	})

	t.Run("should join all failures", func(t *testing.T) {
		_, err := kernel.UUIDsFromStrings([]string{"x", kernel.NewUUID().String(), "y"})

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
	})
}

func TestUUID_ZeroValue(t *testing.T) {
	var id kernel.UUID

	assert.True(t, id.IsZero())
	require.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
}
