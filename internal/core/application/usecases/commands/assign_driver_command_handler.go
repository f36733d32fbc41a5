package commands

import (
	"context"
	"errors"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// AssignResult reports what happened to one order of a bulk assignment.
// Skipped is set when the order was already scheduled and only the driver changed.
type AssignResult struct {
	OrderID      kernel.UUID
	AssignmentID kernel.UUID
	Skipped      bool
	Err          error
}

// AssignDriverCommandHandler schedules a driver for each order in its own unit of
// work, so one failing order does not undo the others.
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	engine     *lifecycle.Engine
	clock      ports.Clock
	checker    services.AvailabilityChecker
}

func NewAssignDriverCommandHandler(
	uowFactory UoWFactory,
	engine *lifecycle.Engine,
	clock ports.Clock,
	checker services.AvailabilityChecker,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clock,
		checker:    checker,
	}
}

// Handle returns one result per order, in request order. The error is reserved for
// an invalid command.
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) ([]AssignResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if _, err := tripOf(cmd.Phase()); err != nil {
		return nil, err
	}

	results := make([]AssignResult, 0, len(cmd.OrderIDs()))
	for _, orderID := range cmd.OrderIDs() {
		if err := ctx.Err(); err != nil {
			results = append(results, AssignResult{OrderID: orderID, Err: err})
			continue
		}
		results = append(results, h.assign(ctx, cmd, orderID))
	}
	return results, nil
}

func (h *AssignDriverCommandHandler) assign(ctx context.Context, cmd AssignDriverCommand, orderID kernel.UUID) AssignResult {
	result := AssignResult{OrderID: orderID}
	t, _ := tripOf(cmd.Phase())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		result.Err = err
		return result
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	absences, err := uow.AbsenceRepository().ListByDriver(ctx, cmd.DriverID())
	if err != nil {
		result.Err = err
		return result
	}
	if absent := h.checker.AbsentAt(absences, now); absent != nil {
		result.Err = errs.NewConflictError("driver "+cmd.DriverID().String(), "absent until "+absent.Window().End().String())
		return result
	}

	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		result.Err = err
		return result
	}

	assignments := uow.AssignmentRepository()
	switch {
	case o.Status().CanTransitionTo(t.scheduled):
		// Fresh scheduling: new assignment and a SCHEDULED_* entry.
	case o.Status() == t.scheduled:
		existing, getErr := assignments.GetOpen(ctx, orderID, cmd.Phase())
		switch {
		case getErr == nil:
			if existing.IsHeldBy(cmd.DriverID()) {
				result.Err = errs.NewConflictError("order "+orderID.String(), "already assigned to this driver")
				return result
			}
			if existing.IsStarted() {
				result.Err = assignment.ErrAlreadyStarted
				return result
			}
			if err = existing.Withdraw("reassigned to driver "+cmd.DriverID().String(), now); err != nil {
				result.Err = err
				return result
			}
			if err = assignments.Update(ctx, existing); err != nil {
				result.Err = err
				return result
			}
		case !errors.Is(getErr, errs.ErrObjectNotFound):
			result.Err = getErr
			return result
		}
		result.Skipped = true
	case o.Status() == t.underway:
		result.Err = errs.NewConflictError("order "+orderID.String(), "driver is already on the way")
		return result
	default:
		result.Err = errs.NewInvalidStateError("order", o.Status().String(), t.scheduled.String())
		return result
	}

	adminID := cmd.AdminID()
	a, err := assignment.NewAssignment(orderID, cmd.Phase(), cmd.DriverID(), &adminID, now)
	if err != nil {
		result.Err = err
		return result
	}
	if err = assignments.Add(ctx, a); err != nil {
		result.Err = err
		return result
	}

	if !result.Skipped {
		if _, err = h.engine.Apply(ctx, uow, o, lifecycle.TransitionRequest{
			OrderID: orderID,
			Target:  t.scheduled,
			Actor:   &adminID,
		}); err != nil {
			result.Err = err
			return result
		}
	}

	if err = uow.Commit(ctx); err != nil {
		result.Err = err
		return result
	}
	result.AssignmentID = a.ID()
	return result
}
