// Package driver holds the driver side of availability: declared absence windows.
package driver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

var ErrAbsenceIsNotConstructed = errors.New("Absence must be created via NewAbsence constructor")

// Absence is a declared window in which a driver takes no new work. Windows of one
// driver never overlap; that rule spans several aggregates and is enforced by
// services.AvailabilityChecker.
type Absence struct {
	id        kernel.UUID
	driverID  kernel.UUID
	window    kernel.TimeRange
	reason    string
	createdAt time.Time

	isConstructed bool
}

func NewAbsence(driverID kernel.UUID, window kernel.TimeRange, reason string, now time.Time) (*Absence, error) {
	if err := errors.Join(driverID.Validate(), window.Validate()); err != nil {
		return nil, err
	}

	return &Absence{
		id:            kernel.NewUUID(),
		driverID:      driverID,
		window:        window,
		reason:        strings.TrimSpace(reason),
		createdAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

func RestoreAbsence(id, driverID kernel.UUID, window kernel.TimeRange, reason string, createdAt time.Time) (*Absence, error) {
	if err := errors.Join(id.Validate(), driverID.Validate(), window.Validate()); err != nil {
		return nil, fmt.Errorf("restore absence: %w", err)
	}

	return &Absence{
		id:            id,
		driverID:      driverID,
		window:        window,
		reason:        reason,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (a *Absence) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAbsenceIsNotConstructed
	}
	return nil
}

func (a *Absence) ID() kernel.UUID {
	return a.id
}

func (a *Absence) DriverID() kernel.UUID {
	return a.driverID
}

func (a *Absence) Window() kernel.TimeRange {
	return a.window
}

func (a *Absence) Reason() string {
	return a.reason
}

func (a *Absence) CreatedAt() time.Time {
	return a.createdAt
}

// EnsureOwnedBy returns a ForbiddenError unless driverID declared the window.
func (a *Absence) EnsureOwnedBy(driverID kernel.UUID) error {
	if !a.driverID.IsEqual(driverID) {
		return errs.NewForbiddenError(driverID.String(), "absence "+a.id.String())
	}
	return nil
}

// Move replaces the window. Availability must be re-checked by the caller first.
func (a *Absence) Move(window kernel.TimeRange, reason string) error {
	if err := window.Validate(); err != nil {
		return err
	}
	a.window = window
	a.reason = strings.TrimSpace(reason)
	return nil
}
