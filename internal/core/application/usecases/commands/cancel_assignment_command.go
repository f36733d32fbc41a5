package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrCancelAssignmentCommandIsNotConstructed = errors.New(
	"CancelAssignmentCommand must be created via NewCancelAssignmentCommand constructor",
)

// CancelAssignmentCommand is an admin withdrawing driver assignments that have not
// started yet.
type CancelAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentIDs []kernel.UUID
	adminID       kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelAssignmentCommand(assignmentIDs []kernel.UUID, adminID kernel.UUID) (CancelAssignmentCommand, error) {
	cmd := CancelAssignmentCommand{guard: guard.NewConstructorGuard()}

	var idsErr error
	if len(assignmentIDs) == 0 {
		idsErr = errs.NewValueIsRequiredError("assignmentIDs")
	}
	for _, id := range assignmentIDs {
		if err := id.Validate(); err != nil {
			idsErr = errs.NewValueIsInvalidErrorWithCause("assignmentIDs", err)
			break
		}
	}

	if err := errors.Join(idsErr, requireID("adminID", adminID, &cmd.adminID)); err != nil {
		return CancelAssignmentCommand{}, err
	}
	cmd.assignmentIDs = dedupe(assignmentIDs)
	return cmd, nil
}

func (c CancelAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelAssignmentCommandIsNotConstructed)
}

func (c CancelAssignmentCommand) AssignmentIDs() []kernel.UUID {
	return c.assignmentIDs
}

func (c CancelAssignmentCommand) AdminID() kernel.UUID {
	return c.adminID
}
