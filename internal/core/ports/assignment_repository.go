package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"
)

// AssignmentRepository stores claims of work. Storage guarantees at most one open
// assignment per (order, phase): Add returns errs.ConflictError when a second one is
// inserted, even by a concurrent transaction.
type AssignmentRepository interface {
	Add(ctx context.Context, a *assignment.Assignment) error
	Update(ctx context.Context, a *assignment.Assignment) error
	Delete(ctx context.Context, id kernel.UUID) error

	// Get returns errs.ObjectNotFoundError when missing.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetOpen returns the open assignment of a phase, or errs.ObjectNotFoundError.
	GetOpen(ctx context.Context, orderID kernel.UUID, phase assignment.Phase) (*assignment.Assignment, error)

	// ListByOrder returns every assignment of the order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*assignment.Assignment, error)

	// ListOpenByAssignee returns open assignments held by actorID across all orders.
	ListOpenByAssignee(ctx context.Context, actorID kernel.UUID) ([]*assignment.Assignment, error)

	// ListOpenAssignedBefore returns open assignments of phase created before t.
	ListOpenAssignedBefore(ctx context.Context, phase assignment.Phase, t time.Time) ([]*assignment.Assignment, error)
}
