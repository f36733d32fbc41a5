package commands

import (
	"context"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/pkg/errs"
)

// CancelAssignmentCommandHandler deletes unstarted driver assignments and reverts
// their orders to the status they had before scheduling. The whole batch is one unit
// of work: either every assignment is withdrawn or none is.
type CancelAssignmentCommandHandler struct {
	uowFactory UoWFactory
	engine     *lifecycle.Engine
}

func NewCancelAssignmentCommandHandler(uowFactory UoWFactory, engine *lifecycle.Engine) CancelAssignmentCommandHandler {
	return CancelAssignmentCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

func (h *CancelAssignmentCommandHandler) Handle(ctx context.Context, cmd CancelAssignmentCommand) error {
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

	assignments := uow.AssignmentRepository()
	for _, id := range cmd.AssignmentIDs() {
		a, err := assignments.Get(ctx, id)
		if err != nil {
			return err
		}
		if !a.IsCancellable() {
			return errs.NewInvalidStateError("assignment "+id.String(), a.Status().String(), "cancelled")
		}
		t, err := tripOf(a.Phase())
		if err != nil {
			return err
		}

		o, err := uow.OrderRepository().GetForUpdate(ctx, a.OrderID())
		if err != nil {
			return err
		}
		if o.Status() != t.scheduled {
			return errs.NewInvalidStateError("order", o.Status().String(), "unscheduled")
		}

		if err = assignments.Delete(ctx, a.ID()); err != nil {
			return err
		}
		if _, err = h.engine.RevertScheduling(ctx, uow, o); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
