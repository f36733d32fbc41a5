package ports

import (
	"context"

	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/kernel"
)

// AbsenceRepository stores driver absence windows.
type AbsenceRepository interface {
	Add(ctx context.Context, a *driver.Absence) error
	Update(ctx context.Context, a *driver.Absence) error
	Delete(ctx context.Context, id kernel.UUID) error

	// Get returns errs.ObjectNotFoundError when missing.
	Get(ctx context.Context, id kernel.UUID) (*driver.Absence, error)

	// ListByDriver returns the driver's windows ordered by start.
	ListByDriver(ctx context.Context, driverID kernel.UUID) ([]*driver.Absence, error)
}
