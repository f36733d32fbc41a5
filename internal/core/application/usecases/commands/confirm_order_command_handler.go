package commands

import (
	"context"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// ConfirmOrderCommandHandler moves the claim to SUCCESS and the order to CONFIRMED
// in one unit of work.
type ConfirmOrderCommandHandler struct {
	uowFactory UoWFactory
	engine     *lifecycle.Engine
	clock      ports.Clock
}

func NewConfirmOrderCommandHandler(uowFactory UoWFactory, engine *lifecycle.Engine, clock ports.Clock) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clock,
	}
}

func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.Status().ValidateTransition(order.Confirmed); err != nil {
		return err
	}

	assignments := uow.AssignmentRepository()
	claim, err := assignments.GetOpen(ctx, o.ID(), assignment.Processing)
	if err != nil {
		return err
	}
	if err = claim.Succeed(cmd.StaffID(), h.clock.Now()); err != nil {
		return err
	}
	if err = assignments.Update(ctx, claim); err != nil {
		return err
	}

	staffID := cmd.StaffID()
	if _, err = h.engine.Apply(ctx, uow, o, lifecycle.TransitionRequest{
		OrderID: o.ID(),
		Target:  order.Confirmed,
		Actor:   &staffID,
		Notes:   cmd.Notes(),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
