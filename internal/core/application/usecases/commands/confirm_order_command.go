package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand completes a processing claim and confirms the order.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	staffID kernel.UUID
	notes   string

	guard guard.ConstructorGuard
}

func NewConfirmOrderCommand(orderID, staffID kernel.UUID, notes string) (ConfirmOrderCommand, error) {
	cmd := ConfirmOrderCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("staffID", staffID, &cmd.staffID),
	); err != nil {
		return ConfirmOrderCommand{}, err
	}
	return cmd, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

func (c ConfirmOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmOrderCommand) StaffID() kernel.UUID {
	return c.staffID
}

func (c ConfirmOrderCommand) Notes() string {
	return c.notes
}
