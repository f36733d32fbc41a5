package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrClaimForProcessingCommandIsNotConstructed = errors.New(
	"ClaimForProcessingCommand must be created via NewClaimForProcessingCommand constructor",
)

// ClaimForProcessingCommand is a staff member taking a PENDING order off the queue.
//
// Example:
//
//	cmd, err := NewClaimForProcessingCommand(orderID, staffID)
//	if err != nil {
//	    return err
//	}
//	claim, err := handler.Handle(ctx, cmd)
type ClaimForProcessingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	staffID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClaimForProcessingCommand(orderID, staffID kernel.UUID) (ClaimForProcessingCommand, error) {
	cmd := ClaimForProcessingCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("staffID", staffID, &cmd.staffID),
	); err != nil {
		return ClaimForProcessingCommand{}, err
	}
	return cmd, nil
}

func (c ClaimForProcessingCommand) Validate() error {
	return c.guard.Validate(ErrClaimForProcessingCommandIsNotConstructed)
}

func (c ClaimForProcessingCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ClaimForProcessingCommand) StaffID() kernel.UUID {
	return c.staffID
}

// requireID validates id and stores it in dst.
func requireID(param string, id kernel.UUID, dst *kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	*dst = id
	return nil
}
