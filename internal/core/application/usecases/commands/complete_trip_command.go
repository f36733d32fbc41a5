package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/guard"
)

var ErrCompleteTripCommandIsNotConstructed = errors.New(
	"CompleteTripCommand must be created via NewConfirmPickupCommand or NewConfirmDeliveryCommand",
)

// CompleteTripCommand is a driver handing over the laundry: picked up from the
// customer, or delivered back. Photos are optional.
type CompleteTripCommand struct { //nolint:recvcheck //using for validation
	phase    assignment.Phase
	orderID  kernel.UUID
	driverID kernel.UUID
	notes    string
	photos   []ports.PhotoUpload

	guard guard.ConstructorGuard
}

func NewConfirmPickupCommand(orderID, driverID kernel.UUID, notes string, photos []ports.PhotoUpload) (CompleteTripCommand, error) {
	return newCompleteTripCommand(assignment.Pickup, orderID, driverID, notes, photos)
}

func NewConfirmDeliveryCommand(orderID, driverID kernel.UUID, notes string, photos []ports.PhotoUpload) (CompleteTripCommand, error) {
	return newCompleteTripCommand(assignment.Delivery, orderID, driverID, notes, photos)
}

func newCompleteTripCommand(
	phase assignment.Phase,
	orderID, driverID kernel.UUID,
	notes string,
	photos []ports.PhotoUpload,
) (CompleteTripCommand, error) {
	cmd := CompleteTripCommand{
		phase:  phase,
		notes:  strings.TrimSpace(notes),
		photos: photos,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("driverID", driverID, &cmd.driverID),
		validatePhotos(photos),
	); err != nil {
		return CompleteTripCommand{}, err
	}
	return cmd, nil
}

func (c CompleteTripCommand) Validate() error {
	return c.guard.Validate(ErrCompleteTripCommandIsNotConstructed)
}

func (c CompleteTripCommand) Phase() assignment.Phase {
	return c.phase
}

func (c CompleteTripCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CompleteTripCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c CompleteTripCommand) Notes() string {
	return c.notes
}

func (c CompleteTripCommand) Photos() []ports.PhotoUpload {
	return c.photos
}
