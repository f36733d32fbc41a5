package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrAmendCheckingNotesCommandIsNotConstructed = errors.New(
	"AmendCheckingNotesCommand must be created via NewAmendCheckingNotesCommand constructor",
)

// AmendCheckingNotesCommand adds findings to the open CHECKING entry.
type AmendCheckingNotesCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	staffID kernel.UUID
	notes   string
	photos  []ports.PhotoUpload

	guard guard.ConstructorGuard
}

func NewAmendCheckingNotesCommand(orderID, staffID kernel.UUID, notes string, photos []ports.PhotoUpload) (AmendCheckingNotesCommand, error) {
	cmd := AmendCheckingNotesCommand{
		notes:  strings.TrimSpace(notes),
		photos: photos,
		guard:  guard.NewConstructorGuard(),
	}

	var contentErr error
	if cmd.notes == "" && len(photos) == 0 {
		contentErr = errs.NewValueIsRequiredError("notes or photos")
	}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("staffID", staffID, &cmd.staffID),
		contentErr,
		validatePhotos(photos),
	); err != nil {
		return AmendCheckingNotesCommand{}, err
	}
	return cmd, nil
}

func (c AmendCheckingNotesCommand) Validate() error {
	return c.guard.Validate(ErrAmendCheckingNotesCommandIsNotConstructed)
}

func (c AmendCheckingNotesCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AmendCheckingNotesCommand) StaffID() kernel.UUID {
	return c.staffID
}

func (c AmendCheckingNotesCommand) Notes() string {
	return c.notes
}

func (c AmendCheckingNotesCommand) Photos() []ports.PhotoUpload {
	return c.photos
}
