package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrPurgeOrderCommandIsNotConstructed = errors.New(
	"PurgeOrderCommand must be created via NewPurgeOrderCommand constructor",
)

// PurgeOrderCommand deletes an order with its items, log, photos and assignments.
type PurgeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	adminID kernel.UUID

	guard guard.ConstructorGuard
}

func NewPurgeOrderCommand(orderID, adminID kernel.UUID) (PurgeOrderCommand, error) {
	cmd := PurgeOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("adminID", adminID, &cmd.adminID),
	); err != nil {
		return PurgeOrderCommand{}, err
	}
	return cmd, nil
}

func (c PurgeOrderCommand) Validate() error {
	return c.guard.Validate(ErrPurgeOrderCommandIsNotConstructed)
}

func (c PurgeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PurgeOrderCommand) AdminID() kernel.UUID {
	return c.adminID
}
