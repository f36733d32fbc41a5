package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrUpdateAbsenceCommandIsNotConstructed = errors.New(
	"UpdateAbsenceCommand must be created via NewUpdateAbsenceCommand constructor",
)

// UpdateAbsenceCommand moves an existing window. Only the driver who declared it may
// move it.
type UpdateAbsenceCommand struct { //nolint:recvcheck //using for validation
	absenceID kernel.UUID
	driverID  kernel.UUID
	date      string
	from      string
	to        string
	reason    string

	guard guard.ConstructorGuard
}

func NewUpdateAbsenceCommand(absenceID, driverID kernel.UUID, date, from, to, reason string) (UpdateAbsenceCommand, error) {
	cmd := UpdateAbsenceCommand{
		date:   strings.TrimSpace(date),
		from:   strings.TrimSpace(from),
		to:     strings.TrimSpace(to),
		reason: strings.TrimSpace(reason),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("absenceID", absenceID, &cmd.absenceID),
		requireID("driverID", driverID, &cmd.driverID),
		requireText("date", cmd.date),
		requireText("from", cmd.from),
		requireText("to", cmd.to),
	); err != nil {
		return UpdateAbsenceCommand{}, err
	}
	return cmd, nil
}

func (c UpdateAbsenceCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAbsenceCommandIsNotConstructed)
}

func (c UpdateAbsenceCommand) AbsenceID() kernel.UUID {
	return c.absenceID
}

func (c UpdateAbsenceCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c UpdateAbsenceCommand) Date() string {
	return c.date
}

func (c UpdateAbsenceCommand) From() string {
	return c.from
}

func (c UpdateAbsenceCommand) To() string {
	return c.to
}

func (c UpdateAbsenceCommand) Reason() string {
	return c.reason
}
