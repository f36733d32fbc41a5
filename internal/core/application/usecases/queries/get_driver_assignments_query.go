package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrGetDriverAssignmentsQueryIsNotConstructed = errors.New(
	"GetDriverAssignmentsQuery must be created via NewGetDriverAssignmentsQuery constructor",
)

// GetDriverAssignmentsQuery lists a driver's open pickup and delivery jobs. With a
// start position the stops come back in visiting order.
type GetDriverAssignmentsQuery struct {
	driverID kernel.UUID
	from     *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewGetDriverAssignmentsQuery builds the query. from may be nil, in which case stops
// are ordered by assignment time.
func NewGetDriverAssignmentsQuery(driverID kernel.UUID, from *kernel.GeoPoint) (GetDriverAssignmentsQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverAssignmentsQuery{}, err
	}
	if from != nil {
		if err := from.Validate(); err != nil {
			return GetDriverAssignmentsQuery{}, err
		}
	}
	return GetDriverAssignmentsQuery{driverID: driverID, from: from, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverAssignmentsQueryIsNotConstructed)
}

type GetDriverAssignmentsQueryResponse struct {
	Stops []DriverStop
	// DistanceKm is the planned route length; zero when no start was given.
	DistanceKm float64
}

// DriverStop is one open assignment and the address the driver goes to.
type DriverStop struct {
	AssignmentID kernel.UUID
	OrderID      kernel.UUID
	Phase        string
	Status       string
	Emergency    bool
	Street       string
	Lat          float64
	Lng          float64
	AssignedAt   time.Time
	StartedAt    *time.Time
}
