package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrAddAbsenceCommandIsNotConstructed = errors.New(
	"AddAbsenceCommand must be created via NewAddAbsenceCommand constructor",
)

// AddAbsenceCommand declares a window on one calendar day, given as local times of
// day in the business time zone.
type AddAbsenceCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	date     string
	from     string
	to       string
	reason   string

	guard guard.ConstructorGuard
}

func NewAddAbsenceCommand(driverID kernel.UUID, date, from, to, reason string) (AddAbsenceCommand, error) {
	cmd := AddAbsenceCommand{
		date:   strings.TrimSpace(date),
		from:   strings.TrimSpace(from),
		to:     strings.TrimSpace(to),
		reason: strings.TrimSpace(reason),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("driverID", driverID, &cmd.driverID),
		requireText("date", cmd.date),
		requireText("from", cmd.from),
		requireText("to", cmd.to),
	); err != nil {
		return AddAbsenceCommand{}, err
	}
	return cmd, nil
}

func (c AddAbsenceCommand) Validate() error {
	return c.guard.Validate(ErrAddAbsenceCommandIsNotConstructed)
}

func (c AddAbsenceCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c AddAbsenceCommand) Date() string {
	return c.date
}

func (c AddAbsenceCommand) From() string {
	return c.from
}

func (c AddAbsenceCommand) To() string {
	return c.to
}

func (c AddAbsenceCommand) Reason() string {
	return c.reason
}

func requireText(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
