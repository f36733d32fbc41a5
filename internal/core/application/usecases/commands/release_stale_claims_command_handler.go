package commands

import (
	"context"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/ports"
)

// DefaultStaleClaimTimeout is the age after which the system releases an open claim.
const DefaultStaleClaimTimeout = 24 * time.Hour

// ReleaseStaleClaimsCommandHandler releases every processing claim that has been open
// longer than the timeout. The orders are still PENDING and reappear in the queue.
type ReleaseStaleClaimsCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewReleaseStaleClaimsCommandHandler(uowFactory UoWFactory, clock ports.Clock) ReleaseStaleClaimsCommandHandler {
	return ReleaseStaleClaimsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the number of released claims.
func (h *ReleaseStaleClaimsCommandHandler) Handle(ctx context.Context, cmd ReleaseStaleClaimsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	assignments := uow.AssignmentRepository()
	stale, err := assignments.ListOpenAssignedBefore(ctx, assignment.Processing, now.Add(-cmd.Timeout()))
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	note := fmt.Sprintf("released by system after %s without confirmation", cmd.Timeout())
	for _, claim := range stale {
		if err = claim.Release(note, now); err != nil {
			return 0, err
		}
		if err = assignments.Update(ctx, claim); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return len(stale), nil
}
