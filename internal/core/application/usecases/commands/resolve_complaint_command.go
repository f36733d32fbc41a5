package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrResolveComplaintCommandIsNotConstructed = errors.New(
	"ResolveComplaintCommand must be created via NewResolveComplaintCommand constructor",
)

type ResolveComplaintCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	staffID kernel.UUID
	notes   string

	guard guard.ConstructorGuard
}

func NewResolveComplaintCommand(orderID, staffID kernel.UUID, notes string) (ResolveComplaintCommand, error) {
	cmd := ResolveComplaintCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("staffID", staffID, &cmd.staffID),
	); err != nil {
		return ResolveComplaintCommand{}, err
	}
	return cmd, nil
}

func (c ResolveComplaintCommand) Validate() error {
	return c.guard.Validate(ErrResolveComplaintCommandIsNotConstructed)
}

func (c ResolveComplaintCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ResolveComplaintCommand) StaffID() kernel.UUID {
	return c.staffID
}

func (c ResolveComplaintCommand) Notes() string {
	return c.notes
}
