package kernel_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, date, from, to string) kernel.TimeRange {
	t.Helper()
	r, err := kernel.TimeRangeOnDate(date, from, to, time.UTC)
	require.NoError(t, err)
	return r
}

func TestTimeRangeOnDate(t *testing.T) {
	t.Run("should build the range in the given location and store UTC", func(t *testing.T) {
		jakarta := time.FixedZone("WIB", 7*3600)

		r, err := kernel.TimeRangeOnDate("2026-10-19", "09:00", "12:00", jakarta)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC), r.Start())
		assert.Equal(t, time.Date(2026, 10, 19, 5, 0, 0, 0, time.UTC), r.End())
		assert.Equal(t, 3*time.Hour, r.Duration())
	})

	t.Run("should reject an empty or inverted range", func(t *testing.T) {
		for _, tc := range [][2]string{{"10:00", "10:00"}, {"12:00", "09:00"}} {
			_, err := kernel.TimeRangeOnDate("2026-10-19", tc[0], tc[1], time.UTC)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("should reject malformed parts", func(t *testing.T) {
		_, err := kernel.TimeRangeOnDate("19/10/2026", "09:00", "10:00", time.UTC)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "date")

		_, err = kernel.TimeRangeOnDate("2026-10-19", "9am", "10:00", time.UTC)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "from")
	})
}

func TestTimeRange_Overlaps(t *testing.T) {
	base := mustRange(t, "2026-10-19", "09:00", "12:00")

	testCases := []struct {
		name     string
		other    kernel.TimeRange
		expected bool
	}{
		{"tail overlap", mustRange(t, "2026-10-19", "11:00", "13:00"), true},
		{"head overlap", mustRange(t, "2026-10-19", "08:00", "09:30"), true},
		{"contained", mustRange(t, "2026-10-19", "10:00", "10:30"), true},
		{"touching after", mustRange(t, "2026-10-19", "12:00", "13:00"), false},
		{"touching before", mustRange(t, "2026-10-19", "07:00", "09:00"), false},
		{"other day", mustRange(t, "2026-10-20", "09:00", "12:00"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, base.Overlaps(tc.other))
			assert.Equal(t, tc.expected, tc.other.Overlaps(base))
		})
	}
}

func TestTimeRange_Contains(t *testing.T) {
	r := mustRange(t, "2026-10-19", "09:00", "12:00")

	assert.True(t, r.Contains(r.Start()))
	assert.True(t, r.Contains(r.Start().Add(time.Hour)))
	assert.False(t, r.Contains(r.End()))
	assert.False(t, r.Contains(r.Start().Add(-time.Second)))
}
