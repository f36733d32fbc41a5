package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrRemoveFromCartCommandIsNotConstructed = errors.New(
	"RemoveFromCartCommand must be created via NewRemoveFromCartCommand constructor",
)

type RemoveFromCartCommand struct { //nolint:recvcheck //using for validation
	customerID  kernel.UUID
	serviceCode string

	guard guard.ConstructorGuard
}

func NewRemoveFromCartCommand(customerID kernel.UUID, serviceCode string) (RemoveFromCartCommand, error) {
	cmd := RemoveFromCartCommand{
		serviceCode: strings.TrimSpace(serviceCode),
		guard:       guard.NewConstructorGuard(),
	}

	var codeErr error
	if cmd.serviceCode == "" {
		codeErr = errs.NewValueIsRequiredError("serviceCode")
	}
	if err := errors.Join(requireID("customerID", customerID, &cmd.customerID), codeErr); err != nil {
		return RemoveFromCartCommand{}, err
	}
	return cmd, nil
}

func (c RemoveFromCartCommand) Validate() error {
	return c.guard.Validate(ErrRemoveFromCartCommandIsNotConstructed)
}

func (c RemoveFromCartCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c RemoveFromCartCommand) ServiceCode() string {
	return c.serviceCode
}
