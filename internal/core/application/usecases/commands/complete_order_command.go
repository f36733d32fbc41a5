package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand closes a delivered order. When asCustomer is set the actor
// must own the order.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actorID    kernel.UUID
	asCustomer bool

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(orderID, actorID kernel.UUID, asCustomer bool) (CompleteOrderCommand, error) {
	cmd := CompleteOrderCommand{asCustomer: asCustomer, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("actorID", actorID, &cmd.actorID),
	); err != nil {
		return CompleteOrderCommand{}, err
	}
	return cmd, nil
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CompleteOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c CompleteOrderCommand) AsCustomer() bool {
	return c.asCustomer
}
