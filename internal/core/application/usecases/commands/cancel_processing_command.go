package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrCancelProcessingCommandIsNotConstructed = errors.New(
	"CancelProcessingCommand must be created via NewCancelProcessingCommand constructor",
)

// CancelProcessingCommand gives a claimed order back to the queue.
type CancelProcessingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	staffID kernel.UUID
	note    string

	guard guard.ConstructorGuard
}

func NewCancelProcessingCommand(orderID, staffID kernel.UUID, note string) (CancelProcessingCommand, error) {
	cmd := CancelProcessingCommand{
		note:  strings.TrimSpace(note),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("staffID", staffID, &cmd.staffID),
	); err != nil {
		return CancelProcessingCommand{}, err
	}
	return cmd, nil
}

func (c CancelProcessingCommand) Validate() error {
	return c.guard.Validate(ErrCancelProcessingCommandIsNotConstructed)
}

func (c CancelProcessingCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelProcessingCommand) StaffID() kernel.UUID {
	return c.staffID
}

func (c CancelProcessingCommand) Note() string {
	return c.note
}
