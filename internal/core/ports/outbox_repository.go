package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/event"
	"laundry/internal/core/domain/model/kernel"
)

// OutboxRepository stores events written in the same unit of work as the change they
// describe.
type OutboxRepository interface {
	Add(ctx context.Context, e event.Event) error

	// ListPending returns CREATED events and FAILED events with fewer than
	// maxAttempts attempts, oldest first.
	ListPending(ctx context.Context, limit, maxAttempts int) ([]event.Event, error)

	MarkDone(ctx context.Context, id kernel.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id kernel.UUID, attempts int, lastError string) error
}
