package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
)

// availability turns a requested local window into UTC and checks it against the
// driver's open jobs and stored windows, reading both through the caller's unit of
// work so the check and the write share one transaction.
type availability struct {
	checker  services.AvailabilityChecker
	location *time.Location
}

func newAvailability(checker services.AvailabilityChecker, location *time.Location) availability {
	if location == nil {
		location = time.UTC
	}
	return availability{checker: checker, location: location}
}

// CheckAndReserve returns the window to persist. exclude skips the absence being moved.
func (a availability) CheckAndReserve(
	ctx context.Context,
	uow AbsenceUoW,
	driverID kernel.UUID,
	date, from, to string,
	exclude *kernel.UUID,
) (kernel.TimeRange, error) {
	window, err := kernel.TimeRangeOnDate(date, from, to, a.location)
	if err != nil {
		return kernel.TimeRange{}, err
	}

	openJobs, err := uow.AssignmentRepository().ListOpenByAssignee(ctx, driverID)
	if err != nil {
		return kernel.TimeRange{}, err
	}
	existing, err := uow.AbsenceRepository().ListByDriver(ctx, driverID)
	if err != nil {
		return kernel.TimeRange{}, err
	}

	if err = a.checker.Check(driverID, window, openJobs, existing, exclude); err != nil {
		return kernel.TimeRange{}, err
	}
	return window, nil
}
