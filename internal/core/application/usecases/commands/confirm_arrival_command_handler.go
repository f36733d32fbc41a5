package commands

import (
	"context"

	"laundry/internal/core/domain/model/event"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// ConfirmArrivalCommandHandler queues a driver_arrived notification. The order
// status does not change.
type ConfirmArrivalCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewConfirmArrivalCommandHandler(uowFactory UoWFactory, clock ports.Clock) ConfirmArrivalCommandHandler {
	return ConfirmArrivalCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *ConfirmArrivalCommandHandler) Handle(ctx context.Context, cmd ConfirmArrivalCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if o.Status() != t.underway {
		return errs.NewInvalidStateError("order", o.Status().String(), "driver arrived")
	}

	a, err := uow.AssignmentRepository().GetOpen(ctx, o.ID(), cmd.Phase())
	if err != nil {
		return err
	}
	if err = a.EnsureHeldBy(cmd.DriverID()); err != nil {
		return err
	}

	now := h.clock.Now()
	ev, err := event.New(event.TopicDriverArrived, o.ID(), event.DriverArrived{
		OrderID:    o.ID().String(),
		CustomerID: o.CustomerID().String(),
		DriverID:   cmd.DriverID().String(),
		Phase:      cmd.Phase().String(),
		At:         now.UTC(),
	}, now)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, ev); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
