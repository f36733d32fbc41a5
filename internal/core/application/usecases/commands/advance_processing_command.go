package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrAdvanceProcessingCommandIsNotConstructed = errors.New(
	"AdvanceProcessingCommand must be created via NewAdvanceProcessingCommand constructor",
)

// workshopSteps are the statuses staff may set inside the shop.
var workshopSteps = map[order.Status]struct{}{
	order.Checked:        {},
	order.Washing:        {},
	order.Washed:         {},
	order.QualityChecked: {},
}

// AdvanceProcessingCommand records a workshop step after checking.
type AdvanceProcessingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	staffID kernel.UUID
	target  order.Status
	notes   string
	photos  []ports.PhotoUpload

	guard guard.ConstructorGuard
}

func NewAdvanceProcessingCommand(
	orderID, staffID kernel.UUID,
	target order.Status,
	notes string,
	photos []ports.PhotoUpload,
) (AdvanceProcessingCommand, error) {
	cmd := AdvanceProcessingCommand{
		notes:  strings.TrimSpace(notes),
		photos: photos,
		guard:  guard.NewConstructorGuard(),
	}

	var targetErr error
	if _, ok := workshopSteps[target]; !ok {
		targetErr = errs.NewValueIsInvalidError("target " + target.String() + " is not a workshop step")
	} else {
		cmd.target = target
	}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("staffID", staffID, &cmd.staffID),
		targetErr,
		validatePhotos(photos),
	); err != nil {
		return AdvanceProcessingCommand{}, err
	}
	return cmd, nil
}

func (c AdvanceProcessingCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceProcessingCommandIsNotConstructed)
}

func (c AdvanceProcessingCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvanceProcessingCommand) StaffID() kernel.UUID {
	return c.staffID
}

func (c AdvanceProcessingCommand) Target() order.Status {
	return c.target
}

func (c AdvanceProcessingCommand) Notes() string {
	return c.notes
}

func (c AdvanceProcessingCommand) Photos() []ports.PhotoUpload {
	return c.photos
}
