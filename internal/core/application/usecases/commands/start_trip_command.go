package commands

import (
	"errors"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrStartTripCommandIsNotConstructed = errors.New(
	"StartTripCommand must be created via NewStartPickupCommand or NewStartDeliveryCommand",
)

// StartTripCommand is a driver leaving for a scheduled pickup or delivery.
type StartTripCommand struct { //nolint:recvcheck //using for validation
	phase    assignment.Phase
	orderID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartPickupCommand(orderID, driverID kernel.UUID) (StartTripCommand, error) {
	return newStartTripCommand(assignment.Pickup, orderID, driverID)
}

func NewStartDeliveryCommand(orderID, driverID kernel.UUID) (StartTripCommand, error) {
	return newStartTripCommand(assignment.Delivery, orderID, driverID)
}

func newStartTripCommand(phase assignment.Phase, orderID, driverID kernel.UUID) (StartTripCommand, error) {
	cmd := StartTripCommand{phase: phase, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("driverID", driverID, &cmd.driverID),
	); err != nil {
		return StartTripCommand{}, err
	}
	return cmd, nil
}

func (c StartTripCommand) Validate() error {
	return c.guard.Validate(ErrStartTripCommandIsNotConstructed)
}

func (c StartTripCommand) Phase() assignment.Phase {
	return c.phase
}

func (c StartTripCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c StartTripCommand) DriverID() kernel.UUID {
	return c.driverID
}
