package assignment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

var (
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")
	ErrAlreadyStarted             = errs.NewConflictError("assignment", "trip already started")
	ErrReasonIsRequired           = errs.NewValueIsRequiredError("reason")
)

// Assignment records that one actor is responsible for one phase of an order. Staff
// hold processing claims; drivers hold pickup and delivery assignments created by an
// admin.
//
// Business rules:
//   - An assignment starts in the open sub-state of its phase and closes exactly once
//   - Only the holder may start, complete or release it
//   - A driver assignment is started once, before it can succeed or fail
//   - A processing claim may be released by its holder only inside the grace window
type Assignment struct {
	id            kernel.UUID
	orderID       kernel.UUID
	phase         Phase
	assignedTo    kernel.UUID
	assignedBy    *kernel.UUID
	assignedAt    time.Time
	startedAt     *time.Time
	completedAt   *time.Time
	status        Status
	declineReason string

	isConstructed bool
}

// NewAssignment opens a claim of phase on orderID for assignedTo. assignedBy is the
// admin creating a driver assignment and nil for staff self-claims.
//
// Example:
//
//	claim, err := assignment.NewAssignment(orderID, assignment.Processing, staffID, nil, clock.Now())
func NewAssignment(orderID kernel.UUID, phase Phase, assignedTo kernel.UUID, assignedBy *kernel.UUID, now time.Time) (*Assignment, error) {
	var failures []error
	failures = append(failures, orderID.Validate(), phase.Validate())
	if err := assignedTo.Validate(); err != nil {
		failures = append(failures, errs.NewValueIsRequiredErrorWithCause("assignedTo", err))
	}
	if assignedBy != nil {
		if err := assignedBy.Validate(); err != nil {
			failures = append(failures, errs.NewValueIsInvalidErrorWithCause("assignedBy", err))
		}
	}
	if err := errors.Join(failures...); err != nil {
		return nil, err
	}

	return &Assignment{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		phase:         phase,
		assignedTo:    assignedTo,
		assignedBy:    assignedBy,
		assignedAt:    now.UTC(),
		status:        phase.OpenStatus(),
		isConstructed: true,
	}, nil
}

// RestoreParams carries a persisted assignment back into the domain.
type RestoreParams struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	Phase         Phase
	AssignedTo    kernel.UUID
	AssignedBy    *kernel.UUID
	AssignedAt    time.Time
	StartedAt     *time.Time
	CompletedAt   *time.Time
	Status        Status
	DeclineReason string
}

func RestoreAssignment(p RestoreParams) (*Assignment, error) {
	if err := errors.Join(p.ID.Validate(), p.OrderID.Validate(), p.Phase.Validate(), p.Status.Validate()); err != nil {
		return nil, fmt.Errorf("restore assignment: %w", err)
	}
	if p.Status.Phase() != p.Phase {
		return nil, fmt.Errorf("restore assignment: %w",
			errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s does not belong to phase %s", p.Status, p.Phase)))
	}

	return &Assignment{
		id:            p.ID,
		orderID:       p.OrderID,
		phase:         p.Phase,
		assignedTo:    p.AssignedTo,
		assignedBy:    p.AssignedBy,
		assignedAt:    p.AssignedAt,
		startedAt:     p.StartedAt,
		completedAt:   p.CompletedAt,
		status:        p.Status,
		declineReason: p.DeclineReason,
		isConstructed: true,
	}, nil
}

func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

func (a *Assignment) ID() kernel.UUID {
	return a.id
}

func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

func (a *Assignment) Phase() Phase {
	return a.phase
}

func (a *Assignment) AssignedTo() kernel.UUID {
	return a.assignedTo
}

func (a *Assignment) AssignedBy() *kernel.UUID {
	return a.assignedBy
}

func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

func (a *Assignment) StartedAt() *time.Time {
	return a.startedAt
}

func (a *Assignment) CompletedAt() *time.Time {
	return a.completedAt
}

func (a *Assignment) Status() Status {
	return a.status
}

func (a *Assignment) DeclineReason() string {
	return a.declineReason
}

func (a *Assignment) IsOpen() bool {
	return a.status.IsOpen()
}

func (a *Assignment) IsStarted() bool {
	return a.startedAt != nil
}

// IsHeldBy reports whether actor is the assignee.
func (a *Assignment) IsHeldBy(actor kernel.UUID) bool {
	return a.assignedTo.IsEqual(actor)
}

// EnsureHeldBy returns a ForbiddenError when actor is not the assignee.
func (a *Assignment) EnsureHeldBy(actor kernel.UUID) error {
	if !a.IsHeldBy(actor) {
		return errs.NewForbiddenError(actor.String(), fmt.Sprintf("%s assignment %s", a.phase, a.id))
	}
	return nil
}

// IsCancellable reports whether an admin may still withdraw a driver assignment:
// it is open and the driver has not set off.
func (a *Assignment) IsCancellable() bool {
	return a.phase.IsDriverPhase() && a.IsOpen() && !a.IsStarted()
}

// Start records that the driver set off. The order moves to PICKINGUP or DELIVERING
// in the same unit of work.
func (a *Assignment) Start(actor kernel.UUID, now time.Time) error {
	if !a.phase.IsDriverPhase() {
		return errs.NewInvalidStateError("assignment", a.phase.String(), "started")
	}
	if err := a.EnsureHeldBy(actor); err != nil {
		return err
	}
	if !a.IsOpen() {
		return errs.NewInvalidStateError("assignment", a.status.String(), "started")
	}
	if a.IsStarted() {
		return ErrAlreadyStarted
	}
	startedAt := now.UTC()
	a.startedAt = &startedAt
	return nil
}

// Succeed closes the assignment with the success sub-state of its phase.
func (a *Assignment) Succeed(actor kernel.UUID, now time.Time) error {
	if err := a.EnsureHeldBy(actor); err != nil {
		return err
	}
	if a.phase.IsDriverPhase() && !a.IsStarted() {
		return errs.NewInvalidStateError("assignment", a.status.String(), a.phase.SuccessStatus().String())
	}
	return a.close(a.phase.SuccessStatus(), "", now)
}

// Fail closes a driver assignment with the failure sub-state. A reason is required.
func (a *Assignment) Fail(actor kernel.UUID, reason string, now time.Time) error {
	if !a.phase.IsDriverPhase() {
		return errs.NewInvalidStateError("assignment", a.status.String(), a.phase.FailureStatus().String())
	}
	if err := a.EnsureHeldBy(actor); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonIsRequired
	}
	if !a.IsStarted() {
		return errs.NewInvalidStateError("assignment", a.status.String(), a.phase.FailureStatus().String())
	}
	return a.close(a.phase.FailureStatus(), reason, now)
}

// CancelClaim releases a processing claim on behalf of its holder. It is allowed
// while now - assignedAt <= grace.
func (a *Assignment) CancelClaim(actor kernel.UUID, note string, grace time.Duration, now time.Time) error {
	if a.phase != Processing {
		return errs.NewInvalidStateError("assignment", a.phase.String(), StatusProcessingCancelled.String())
	}
	if err := a.EnsureHeldBy(actor); err != nil {
		return err
	}
	if now.Sub(a.assignedAt) > grace {
		return errs.NewExpiredError(fmt.Sprintf("processing claim %s", a.id), grace.String())
	}
	return a.close(StatusProcessingCancelled, strings.TrimSpace(note), now)
}

// Release closes an abandoned processing claim without the grace check. Used by
// the stale claim job.
func (a *Assignment) Release(note string, now time.Time) error {
	if a.phase != Processing {
		return errs.NewInvalidStateError("assignment", a.phase.String(), StatusProcessingCancelled.String())
	}
	return a.close(StatusProcessingCancelled, note, now)
}

// Withdraw closes an unstarted driver assignment when an admin hands the order to
// another driver. The row stays as a record of who held it.
func (a *Assignment) Withdraw(reason string, now time.Time) error {
	if !a.IsCancellable() {
		return errs.NewInvalidStateError("assignment", a.status.String(), a.phase.WithdrawnStatus().String())
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonIsRequired
	}
	return a.close(a.phase.WithdrawnStatus(), reason, now)
}

func (a *Assignment) close(target Status, reason string, now time.Time) error {
	if !a.status.CanTransitionTo(target) {
		return errs.NewInvalidStateError("assignment", a.status.String(), target.String())
	}
	completedAt := now.UTC()
	a.status = target
	a.completedAt = &completedAt
	a.declineReason = reason
	return nil
}
