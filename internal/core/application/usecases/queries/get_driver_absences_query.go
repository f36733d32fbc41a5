package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrGetDriverAbsencesQueryIsNotConstructed = errors.New(
	"GetDriverAbsencesQuery must be created via NewGetDriverAbsencesQuery constructor",
)

// GetDriverAbsencesQuery lists a driver's absence windows that end after since.
// A zero since lists them all.
type GetDriverAbsencesQuery struct {
	driverID kernel.UUID
	since    time.Time

	guard guard.ConstructorGuard
}

func NewGetDriverAbsencesQuery(driverID kernel.UUID, since time.Time) (GetDriverAbsencesQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverAbsencesQuery{}, err
	}
	return GetDriverAbsencesQuery{driverID: driverID, since: since.UTC(), guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverAbsencesQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverAbsencesQueryIsNotConstructed)
}

type GetDriverAbsencesQueryResponse struct {
	ID       kernel.UUID
	StartsAt time.Time
	EndsAt   time.Time
	Reason   string
}
