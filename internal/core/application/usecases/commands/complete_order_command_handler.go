package commands

import (
	"context"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     *lifecycle.Engine
}

func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory, engine *lifecycle.Engine) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actorID := cmd.ActorID()
	_, err := transitionOrder(ctx, h.uowFactory, h.engine, lifecycle.TransitionRequest{
		OrderID: cmd.OrderID(),
		Target:  order.Completed,
		Actor:   &actorID,
	}, func(o *order.Order) error {
		if cmd.AsCustomer() && !o.IsOwnedBy(actorID) {
			return errs.NewForbiddenError(actorID.String(), "order "+o.ID().String())
		}
		return nil
	})
	return err
}
