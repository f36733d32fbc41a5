package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrFileComplaintCommandIsNotConstructed = errors.New(
	"FileComplaintCommand must be created via NewFileComplaintCommand constructor",
)

// FileComplaintCommand is a customer reporting a problem with a delivered order.
type FileComplaintCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	notes      string
	photos     []ports.PhotoUpload

	guard guard.ConstructorGuard
}

func NewFileComplaintCommand(orderID, customerID kernel.UUID, notes string, photos []ports.PhotoUpload) (FileComplaintCommand, error) {
	cmd := FileComplaintCommand{
		notes:  strings.TrimSpace(notes),
		photos: photos,
		guard:  guard.NewConstructorGuard(),
	}

	var notesErr error
	if cmd.notes == "" {
		notesErr = errs.NewValueIsRequiredError("notes")
	}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("customerID", customerID, &cmd.customerID),
		notesErr,
		validatePhotos(photos),
	); err != nil {
		return FileComplaintCommand{}, err
	}
	return cmd, nil
}

func (c FileComplaintCommand) Validate() error {
	return c.guard.Validate(ErrFileComplaintCommandIsNotConstructed)
}

func (c FileComplaintCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c FileComplaintCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c FileComplaintCommand) Notes() string {
	return c.notes
}

func (c FileComplaintCommand) Photos() []ports.PhotoUpload {
	return c.photos
}
