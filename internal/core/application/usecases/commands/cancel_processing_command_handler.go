package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/ports"
)

// DefaultProcessingGrace is how long a staff member may give a claim back.
const DefaultProcessingGrace = 30 * time.Minute

// CancelProcessingCommandHandler releases the caller's processing claim while it is
// younger than the grace window. The order stays PENDING.
type CancelProcessingCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	grace      time.Duration
}

func NewCancelProcessingCommandHandler(uowFactory UoWFactory, clock ports.Clock, grace time.Duration) CancelProcessingCommandHandler {
	if grace <= 0 {
		grace = DefaultProcessingGrace
	}
	return CancelProcessingCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		grace:      grace,
	}
}

func (h *CancelProcessingCommandHandler) Handle(ctx context.Context, cmd CancelProcessingCommand) error {
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
	claim, err := assignments.GetOpen(ctx, cmd.OrderID(), assignment.Processing)
	if err != nil {
		return err
	}
	if err = claim.CancelClaim(cmd.StaffID(), cmd.Note(), h.grace, h.clock.Now()); err != nil {
		return err
	}
	if err = assignments.Update(ctx, claim); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
