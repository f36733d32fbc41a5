package commands

import (
	"context"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/domain/model/order"
)

// ResolveComplaintCommandHandler returns a COMPLAINT order to DELIVERED.
type ResolveComplaintCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     *lifecycle.Engine
}

func NewResolveComplaintCommandHandler(uowFactory OrderUoWFactory, engine *lifecycle.Engine) ResolveComplaintCommandHandler {
	return ResolveComplaintCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

func (h *ResolveComplaintCommandHandler) Handle(ctx context.Context, cmd ResolveComplaintCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	staffID := cmd.StaffID()
	_, err := transitionOrder(ctx, h.uowFactory, h.engine, lifecycle.TransitionRequest{
		OrderID: cmd.OrderID(),
		Target:  order.Delivered,
		Actor:   &staffID,
		Notes:   cmd.Notes(),
	}, func(o *order.Order) error {
		return o.Status().ValidateTransition(order.Delivered)
	})
	return err
}
