package kernel

import (
	"fmt"
	"time"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
)

var ErrTimeRangeIsNotConstructed = errs.NewValueIsRequiredError("time range must be created via NewTimeRange")

// TimeRange is a half-open interval [start, end) stored in UTC.
type TimeRange struct { //nolint:recvcheck //using for validation
	start time.Time
	end   time.Time
	guard guard.ConstructorGuard
}

// NewTimeRange requires end to be strictly after start.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	start, end = start.UTC(), end.UTC()
	if !end.After(start) {
		return TimeRange{}, errs.NewValueIsInvalidErrorWithCause(
			"time range",
			fmt.Errorf("end %s is not after start %s", end.Format(time.RFC3339), start.Format(time.RFC3339)),
		)
	}

	return TimeRange{start: start, end: end, guard: guard.NewConstructorGuard()}, nil
}

// TimeRangeOnDate combines a calendar date and two times of day, interpreted in loc.
//
// Example:
//
//	window, err := kernel.TimeRangeOnDate("2026-10-19", "09:00", "12:00", jakarta)
func TimeRangeOnDate(date, from, to string, loc *time.Location) (TimeRange, error) {
	if loc == nil {
		loc = time.UTC
	}

	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return TimeRange{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}

	start, err := atTimeOfDay(day, from)
	if err != nil {
		return TimeRange{}, errs.NewValueIsInvalidErrorWithCause("from", err)
	}

	end, err := atTimeOfDay(day, to)
	if err != nil {
		return TimeRange{}, errs.NewValueIsInvalidErrorWithCause("to", err)
	}

	return NewTimeRange(start, end)
}

func atTimeOfDay(day time.Time, clock string) (time.Time, error) {
	tod, err := time.Parse(TimeOfDayLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, day.Location()), nil
}

func (r TimeRange) Validate() error {
	return r.guard.Validate(ErrTimeRangeIsNotConstructed)
}

func (r TimeRange) Start() time.Time {
	return r.start
}

func (r TimeRange) End() time.Time {
	return r.end
}

func (r TimeRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

// Overlaps uses half-open semantics: touching ranges do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.start.Before(other.end) && r.end.After(other.start)
}

// Contains reports whether t falls in [start, end).
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.start) && t.Before(r.end)
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.start.Format(time.RFC3339), r.end.Format(time.RFC3339))
}
