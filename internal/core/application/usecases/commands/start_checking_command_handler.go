package commands

import (
	"context"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/domain/model/order"
)

// StartCheckingCommandHandler moves a PICKEDUP order to CHECKING. The staff member
// recorded on the entry is the only one allowed to amend its notes afterwards.
type StartCheckingCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     *lifecycle.Engine
}

func NewStartCheckingCommandHandler(uowFactory OrderUoWFactory, engine *lifecycle.Engine) StartCheckingCommandHandler {
	return StartCheckingCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

func (h *StartCheckingCommandHandler) Handle(ctx context.Context, cmd StartCheckingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	staffID := cmd.StaffID()
	_, err := transitionOrder(ctx, h.uowFactory, h.engine, lifecycle.TransitionRequest{
		OrderID: cmd.OrderID(),
		Target:  order.Checking,
		Actor:   &staffID,
		Notes:   cmd.Notes(),
	}, nil)
	return err
}
