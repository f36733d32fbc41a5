package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrStartCheckingCommandIsNotConstructed = errors.New(
	"StartCheckingCommand must be created via NewStartCheckingCommand constructor",
)

// StartCheckingCommand is a staff member unpacking a picked up order at the shop.
type StartCheckingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	staffID kernel.UUID
	notes   string

	guard guard.ConstructorGuard
}

func NewStartCheckingCommand(orderID, staffID kernel.UUID, notes string) (StartCheckingCommand, error) {
	cmd := StartCheckingCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("staffID", staffID, &cmd.staffID),
	); err != nil {
		return StartCheckingCommand{}, err
	}
	return cmd, nil
}

func (c StartCheckingCommand) Validate() error {
	return c.guard.Validate(ErrStartCheckingCommandIsNotConstructed)
}

func (c StartCheckingCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c StartCheckingCommand) StaffID() kernel.UUID {
	return c.staffID
}

func (c StartCheckingCommand) Notes() string {
	return c.notes
}
