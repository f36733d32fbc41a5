package commands

import (
	"context"
	"errors"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// CancelOrderCommandHandler moves the order to CANCELLED and releases a processing
// claim still open on it.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	engine     *lifecycle.Engine
	clock      ports.Clock
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory, engine *lifecycle.Engine, clock ports.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clock,
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	if cmd.AsCustomer() && !o.IsOwnedBy(cmd.ActorID()) {
		return errs.NewForbiddenError(cmd.ActorID().String(), "order "+o.ID().String())
	}
	if err = o.Status().ValidateTransition(order.Cancelled); err != nil {
		return err
	}

	assignments := uow.AssignmentRepository()
	claim, err := assignments.GetOpen(ctx, o.ID(), assignment.Processing)
	switch {
	case err == nil:
		if err = claim.Release("order cancelled", h.clock.Now()); err != nil {
			return err
		}
		if err = assignments.Update(ctx, claim); err != nil {
			return err
		}
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	actorID := cmd.ActorID()
	if _, err = h.engine.Apply(ctx, uow, o, lifecycle.TransitionRequest{
		OrderID: o.ID(),
		Target:  order.Cancelled,
		Actor:   &actorID,
		Notes:   cmd.Reason(),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
