package commands

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// ClaimForProcessingCommandHandler gives one staff member exclusive ownership of a
// PENDING order. The order row is locked first; the partial unique index on open
// assignments catches any claim that still races past the lock.
type ClaimForProcessingCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewClaimForProcessingCommandHandler(uowFactory UoWFactory, clock ports.Clock) ClaimForProcessingCommandHandler {
	return ClaimForProcessingCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the caller's open claim. Claiming again returns the existing claim.
func (h *ClaimForProcessingCommandHandler) Handle(ctx context.Context, cmd ClaimForProcessingCommand) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if o.Status() != order.Pending {
		return nil, errs.NewConflictError("order "+o.ID().String(), "is "+o.Status().String()+", not PENDING")
	}

	assignments := uow.AssignmentRepository()
	existing, err := assignments.GetOpen(ctx, o.ID(), assignment.Processing)
	switch {
	case err == nil:
		if existing.IsHeldBy(cmd.StaffID()) {
			return existing, nil
		}
		return nil, errs.NewConflictError("order "+o.ID().String(), "already claimed by another staff member")
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	claim, err := assignment.NewAssignment(o.ID(), assignment.Processing, cmd.StaffID(), nil, h.clock.Now())
	if err != nil {
		return nil, err
	}
	if err = assignments.Add(ctx, claim); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return claim, nil
}
