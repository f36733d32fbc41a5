package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors(t *testing.T) {
	cause := errors.New("unique constraint")
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "missing order",
			err:      errs.NewObjectNotFoundError("order", "8f1c"),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: 8f1c",
		},
		{
			name:     "missing order with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("order", "8f1c", cause),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: order, ID is: 8f1c (cause: unique constraint)",
		},
		{
			name:     "non string id",
			err:      errs.NewObjectNotFoundError("history entry", 42),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: %!s(int=42)",
		},
		{
			name:     "invalid window",
			err:      errs.NewValueIsInvalidError("window"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: window",
		},
		{
			name:     "invalid status with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("status", cause),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: status (cause: unique constraint)",
		},
		{
			name:     "quantity out of range",
			err:      errs.NewValueIsOutOfRangeError("quantity", 150, 1, 99),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 150 is quantity, min value is 1, max value is 99",
		},
		{
			name:     "latitude out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("lat", -95, -90, 90, cause),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: -95 is lat, min value is -90, max value is 90 (cause: unique constraint)",
		},
		{
			name:     "reason required",
			err:      errs.NewValueIsRequiredError("reason"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: reason",
		},
		{
			name:     "photos required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("photos", cause),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: photos (cause: unique constraint)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, fmt.Errorf("handler: %w", tt.err), tt.sentinel)
		})
	}

	t.Run("fields are kept", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("quantity", 0, 1, 99, cause)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, 0, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 99, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("newlines in values are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("notes", "two\nlines", 0, 10)

		assert.Contains(t, err.Error(), "two lines")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("processing claim", "held by another staff member")

		assert.Equal(t, "processing claim", err.Resource)
		require.NoError(t, err.Cause)
		assert.Equal(t, "conflict: processing claim: held by another staff member", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("duplicate key")
		err := errs.NewConflictErrorWithCause("assignment", "already open", cause)

		assert.Equal(t, "conflict: assignment: already open (cause: duplicate key)", err.Error())
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestForbiddenExpiredInvalidState(t *testing.T) {
	t.Run("ForbiddenError", func(t *testing.T) {
		err := errs.NewForbiddenError("staff-1", "processing claim")
		assert.Equal(t, "forbidden: actor staff-1 may not act on processing claim", err.Error())
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("ExpiredError", func(t *testing.T) {
		err := errs.NewExpiredError("processing claim", "30m0s")
		assert.Equal(t, "expired: processing claim, window of 30m0s has elapsed", err.Error())
		require.ErrorIs(t, err, errs.ErrExpired)
	})

	t.Run("InvalidStateError", func(t *testing.T) {
		err := errs.NewInvalidStateError("order", "PENDING", "PICKINGUP")
		assert.Equal(t, "invalid state: order cannot move from PENDING to PICKINGUP", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestClassification(t *testing.T) {
	t.Run("validation family", func(t *testing.T) {
		assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("photos")))
		assert.True(t, errs.IsValidation(errs.NewValueIsInvalidError("window")))
		assert.True(t, errs.IsValidation(errs.NewValueIsOutOfRangeError("qty", 0, 1, 99)))
		assert.False(t, errs.IsValidation(errs.NewConflictError("a", "b")))
	})

	t.Run("business kinds survive wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("assign pickup: %w", errs.NewExpiredError("claim", "30m"))
		assert.True(t, errs.IsBusiness(wrapped))
		assert.False(t, errs.IsBusiness(errors.New("connection reset")))
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrConflict)
		require.Error(t, errs.ErrForbidden)
		require.Error(t, errs.ErrExpired)
		require.Error(t, errs.ErrInvalidState)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "conflict", errs.ErrConflict.Error())
		assert.Equal(t, "invalid state", errs.ErrInvalidState.Error())
	})
}
