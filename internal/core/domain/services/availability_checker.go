package services

import (
	"fmt"
	"time"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// AvailabilityChecker decides whether a driver may declare an absence window.
//
// Business rules, checked in this order:
//   - The window must be non-empty (end after start)
//   - A driver holding any open pickup or delivery assignment cannot be marked absent
//     at all, whatever the requested window
//   - The window must not overlap any other window of the same driver, using half-open
//     overlap: existing.start < end && existing.end > start
//
// Example usage:
//
//	checker := services.NewAvailabilityChecker()
//	err := checker.Check(driverID, window, openJobs, absences, nil)
//	if errors.Is(err, errs.ErrConflict) {
//	    // driver is busy or already absent
//	}
type AvailabilityChecker struct{}

func NewAvailabilityChecker() AvailabilityChecker {
	return AvailabilityChecker{}
}

// Check validates window for driverID. openJobs are the driver's open assignments,
// existing the driver's stored windows. exclude skips the window being moved.
func (AvailabilityChecker) Check(
	driverID kernel.UUID,
	window kernel.TimeRange,
	openJobs []*assignment.Assignment,
	existing []*driver.Absence,
	exclude *kernel.UUID,
) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := window.Validate(); err != nil {
		return err
	}
	if !window.End().After(window.Start()) {
		return errs.NewValueIsInvalidErrorWithCause("absence window", fmt.Errorf("%s is empty", window))
	}

	for _, job := range openJobs {
		if job.Phase().IsDriverPhase() && job.IsOpen() && job.IsHeldBy(driverID) {
			return errs.NewConflictError("driver "+driverID.String(),
				fmt.Sprintf("holds open %s assignment for order %s", job.Phase(), job.OrderID()))
		}
	}

	for _, a := range existing {
		if exclude != nil && a.ID().IsEqual(*exclude) {
			continue
		}
		if !a.DriverID().IsEqual(driverID) {
			continue
		}
		if a.Window().Overlaps(window) {
			return errs.NewConflictError("driver "+driverID.String(),
				fmt.Sprintf("window %s overlaps absence %s", window, a.ID()))
		}
	}

	return nil
}

// AbsentAt returns the window covering t, if any.
func (AvailabilityChecker) AbsentAt(absences []*driver.Absence, t time.Time) *driver.Absence {
	for _, a := range absences {
		if a.Window().Contains(t) {
			return a
		}
	}
	return nil
}
