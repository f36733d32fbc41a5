package commands

import (
	"context"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// StartTripCommandHandler marks the driver's assignment as started and moves the
// order to PICKINGUP or DELIVERING. A driver runs one trip of a phase at a time.
type StartTripCommandHandler struct {
	uowFactory UoWFactory
	engine     *lifecycle.Engine
	clock      ports.Clock
}

func NewStartTripCommandHandler(uowFactory UoWFactory, engine *lifecycle.Engine, clock ports.Clock) StartTripCommandHandler {
	return StartTripCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clock,
	}
}

func (h *StartTripCommandHandler) Handle(ctx context.Context, cmd StartTripCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	t, err := tripOf(cmd.Phase())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = requireStatus(o, t.scheduled, t.underway); err != nil {
		return err
	}

	assignments := uow.AssignmentRepository()
	a, err := assignments.GetOpen(ctx, o.ID(), cmd.Phase())
	if err != nil {
		return err
	}
	if err = a.EnsureHeldBy(cmd.DriverID()); err != nil {
		return err
	}

	open, err := assignments.ListOpenByAssignee(ctx, cmd.DriverID())
	if err != nil {
		return err
	}
	for _, other := range open {
		if other.ID().IsEqual(a.ID()) || other.Phase() != cmd.Phase() {
			continue
		}
		if other.IsStarted() {
			return errs.NewConflictError("driver "+cmd.DriverID().String(),
				"already on a "+other.Phase().String()+" trip for order "+other.OrderID().String())
		}
	}

	if err = a.Start(cmd.DriverID(), h.clock.Now()); err != nil {
		return err
	}
	if err = assignments.Update(ctx, a); err != nil {
		return err
	}

	driverID := cmd.DriverID()
	if _, err = h.engine.Apply(ctx, uow, o, lifecycle.TransitionRequest{
		OrderID: o.ID(),
		Target:  t.underway,
		Actor:   &driverID,
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
