package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand submits the customer's cart for processing.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	pickup     kernel.Address
	delivery   kernel.Address
	emergency  bool

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(
	orderID, customerID kernel.UUID,
	pickup, delivery kernel.Address,
	emergency bool,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		pickup:    pickup,
		delivery:  delivery,
		emergency: emergency,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("orderID", orderID, &cmd.orderID),
		requireID("customerID", customerID, &cmd.customerID),
		pickup.Validate(),
		delivery.Validate(),
	); err != nil {
		return PlaceOrderCommand{}, err
	}
	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c PlaceOrderCommand) Pickup() kernel.Address {
	return c.pickup
}

func (c PlaceOrderCommand) Delivery() kernel.Address {
	return c.delivery
}

func (c PlaceOrderCommand) Emergency() bool {
	return c.emergency
}
