package commands

import (
	"errors"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrConfirmArrivalCommandIsNotConstructed = errors.New(
	"ConfirmArrivalCommand must be created via NewConfirmPickupArrivalCommand or NewConfirmDeliveryArrivalCommand",
)

// ConfirmArrivalCommand is a driver telling the customer they are at the door.
type ConfirmArrivalCommand struct { //nolint:recvcheck //using for validation
	phase    assignment.Phase
	orderID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmPickupArrivalCommand(orderID, driverID kernel.UUID) (ConfirmArrivalCommand, error) {
	return newConfirmArrivalCommand(assignment.Pickup, orderID, driverID)
}

func NewConfirmDeliveryArrivalCommand(orderID, driverID kernel.UUID) (ConfirmArrivalCommand, error) {
	return newConfirmArrivalCommand(assignment.Delivery, orderID, driverID)
}

func newConfirmArrivalCommand(phase assignment.Phase, orderID, driverID kernel.UUID) (ConfirmArrivalCommand, error) {
	cmd := ConfirmArrivalCommand{phase: phase, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("driverID", driverID, &cmd.driverID),
	); err != nil {
		return ConfirmArrivalCommand{}, err
	}
	return cmd, nil
}

func (c ConfirmArrivalCommand) Validate() error {
	return c.guard.Validate(ErrConfirmArrivalCommandIsNotConstructed)
}

func (c ConfirmArrivalCommand) Phase() assignment.Phase {
	return c.phase
}

func (c ConfirmArrivalCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmArrivalCommand) DriverID() kernel.UUID {
	return c.driverID
}
