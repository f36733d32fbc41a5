package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels an order before pickup. When asCustomer is set the
// actor must own the order; staff and admins may cancel any order.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actorID    kernel.UUID
	asCustomer bool
	reason     string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID, actorID kernel.UUID, asCustomer bool, reason string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		asCustomer: asCustomer,
		reason:     strings.TrimSpace(reason),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("actorID", actorID, &cmd.actorID),
	); err != nil {
		return CancelOrderCommand{}, err
	}
	return cmd, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c CancelOrderCommand) AsCustomer() bool {
	return c.asCustomer
}

func (c CancelOrderCommand) Reason() string {
	return c.reason
}
