package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrAddToCartCommandIsNotConstructed = errors.New(
	"AddToCartCommand must be created via NewAddToCartCommand constructor",
)

// AddToCartCommand puts quantity units of a laundry service into the customer's cart.
type AddToCartCommand struct { //nolint:recvcheck //using for validation
	customerID  kernel.UUID
	serviceCode string
	quantity    int

	guard guard.ConstructorGuard
}

func NewAddToCartCommand(customerID kernel.UUID, serviceCode string, quantity int) (AddToCartCommand, error) {
	cmd := AddToCartCommand{
		serviceCode: strings.TrimSpace(serviceCode),
		quantity:    quantity,
		guard:       guard.NewConstructorGuard(),
	}

	var codeErr, qtyErr error
	if cmd.serviceCode == "" {
		codeErr = errs.NewValueIsRequiredError("serviceCode")
	}
	if quantity <= 0 {
		qtyErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	if err := errors.Join(requireID("customerID", customerID, &cmd.customerID), codeErr, qtyErr); err != nil {
		return AddToCartCommand{}, err
	}
	return cmd, nil
}

func (c AddToCartCommand) Validate() error {
	return c.guard.Validate(ErrAddToCartCommandIsNotConstructed)
}

func (c AddToCartCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c AddToCartCommand) ServiceCode() string {
	return c.serviceCode
}

func (c AddToCartCommand) Quantity() int {
	return c.quantity
}
