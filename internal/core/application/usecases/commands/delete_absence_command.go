package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrDeleteAbsenceCommandIsNotConstructed = errors.New(
	"DeleteAbsenceCommand must be created via NewDeleteAbsenceCommand constructor",
)

type DeleteAbsenceCommand struct { //nolint:recvcheck //using for validation
	absenceID kernel.UUID
	driverID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteAbsenceCommand(absenceID, driverID kernel.UUID) (DeleteAbsenceCommand, error) {
	cmd := DeleteAbsenceCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("absenceID", absenceID, &cmd.absenceID),
		requireID("driverID", driverID, &cmd.driverID),
	); err != nil {
		return DeleteAbsenceCommand{}, err
	}
	return cmd, nil
}

func (c DeleteAbsenceCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAbsenceCommandIsNotConstructed)
}

func (c DeleteAbsenceCommand) AbsenceID() kernel.UUID {
	return c.absenceID
}

func (c DeleteAbsenceCommand) DriverID() kernel.UUID {
	return c.driverID
}
