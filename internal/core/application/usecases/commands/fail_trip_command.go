package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var (
	ErrFailTripCommandIsNotConstructed = errors.New(
		"FailTripCommand must be created via NewCancelPickupAssignmentCommand or NewCancelDeliveryAssignmentCommand",
	)
	ErrEvidenceIsRequired = errs.NewValueIsRequiredError("photos")
)

// FailTripCommand is a driver giving up on a trip already underway. At least one
// photo proving the attempt is mandatory.
type FailTripCommand struct { //nolint:recvcheck //using for validation
	phase    assignment.Phase
	orderID  kernel.UUID
	driverID kernel.UUID
	reason   string
	photos   []ports.PhotoUpload

	guard guard.ConstructorGuard
}

func NewCancelPickupAssignmentCommand(orderID, driverID kernel.UUID, reason string, photos []ports.PhotoUpload) (FailTripCommand, error) {
	return newFailTripCommand(assignment.Pickup, orderID, driverID, reason, photos)
}

func NewCancelDeliveryAssignmentCommand(orderID, driverID kernel.UUID, reason string, photos []ports.PhotoUpload) (FailTripCommand, error) {
	return newFailTripCommand(assignment.Delivery, orderID, driverID, reason, photos)
}

func newFailTripCommand(
	phase assignment.Phase,
	orderID, driverID kernel.UUID,
	reason string,
	photos []ports.PhotoUpload,
) (FailTripCommand, error) {
	if len(photos) == 0 {
		return FailTripCommand{}, ErrEvidenceIsRequired
	}

	cmd := FailTripCommand{
		phase:  phase,
		reason: strings.TrimSpace(reason),
		photos: photos,
		guard:  guard.NewConstructorGuard(),
	}
	var reasonErr error
	if cmd.reason == "" {
		reasonErr = assignment.ErrReasonIsRequired
	}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("driverID", driverID, &cmd.driverID),
		reasonErr,
		validatePhotos(photos),
	); err != nil {
		return FailTripCommand{}, err
	}
	return cmd, nil
}

func (c FailTripCommand) Validate() error {
	return c.guard.Validate(ErrFailTripCommandIsNotConstructed)
}

func (c FailTripCommand) Phase() assignment.Phase {
	return c.phase
}

func (c FailTripCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c FailTripCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c FailTripCommand) Reason() string {
	return c.reason
}

func (c FailTripCommand) Photos() []ports.PhotoUpload {
	return c.photos
}
