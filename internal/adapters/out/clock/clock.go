// Package clock provides the wall clock behind ports.Clock.
package clock

import "time"

type System struct{}

func NewSystem() System {
	return System{}
}

// Now returns the current time in UTC.
func (System) Now() time.Time {
	return time.Now().UTC()
}
