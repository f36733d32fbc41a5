package commands

import (
	"errors"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignPickupCommand or NewAssignDeliveryCommand",
)

// AssignDriverCommand is an admin scheduling a driver for the pickup or delivery of
// several orders.
//
// Example:
//
//	cmd, err := NewAssignPickupCommand(orderIDs, driverID, adminID)
//	if err != nil {
//	    return err
//	}
//	results, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	for _, r := range results {
//	    if r.Err != nil {
//	        log.Warn("order not assigned", "order", r.OrderID, "err", r.Err)
//	    }
//	}
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	phase    assignment.Phase
	orderIDs []kernel.UUID
	driverID kernel.UUID
	adminID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignPickupCommand(orderIDs []kernel.UUID, driverID, adminID kernel.UUID) (AssignDriverCommand, error) {
	return newAssignDriverCommand(assignment.Pickup, orderIDs, driverID, adminID)
}

func NewAssignDeliveryCommand(orderIDs []kernel.UUID, driverID, adminID kernel.UUID) (AssignDriverCommand, error) {
	return newAssignDriverCommand(assignment.Delivery, orderIDs, driverID, adminID)
}

func newAssignDriverCommand(phase assignment.Phase, orderIDs []kernel.UUID, driverID, adminID kernel.UUID) (AssignDriverCommand, error) {
	cmd := AssignDriverCommand{phase: phase, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		requireID("driverID", driverID, &cmd.driverID),
		requireID("adminID", adminID, &cmd.adminID),
	); err != nil {
		return AssignDriverCommand{}, err
	}
	return cmd, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) Phase() assignment.Phase {
	return c.phase
}

// OrderIDs returns the orders in request order without duplicates.
func (c AssignDriverCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c AssignDriverCommand) AdminID() kernel.UUID {
	return c.adminID
}

func (c *AssignDriverCommand) setOrderIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("orderIDs")
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("orderIDs", err)
		}
	}
	c.orderIDs = dedupe(ids)
	return nil
}
