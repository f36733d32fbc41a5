package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates, including
// their cart lines.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, placement details and cart lines of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Returns errs.ObjectNotFoundError when missing.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get plus a row lock held until the unit of work ends. Every
	// status transition reads the order through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetCart returns the customer's INCART order, or errs.ObjectNotFoundError.
	GetCart(ctx context.Context, customerID kernel.UUID) (*order.Order, error)

	// Delete removes the order together with its items, history, photos and
	// assignments.
	Delete(ctx context.Context, id kernel.UUID) error
}

// HistoryRepository stores the status log. Entries are returned oldest first (by id)
// with their photos loaded.
type HistoryRepository interface {
	// Append inserts entry and its photos, then assigns the generated id to it.
	Append(ctx context.Context, entry *order.HistoryEntry) error

	// AddPhotos attaches photos to an existing entry.
	AddPhotos(ctx context.Context, entryID uint64, photos []order.Photo) error

	// UpdateNotes rewrites the notes column of an existing entry. It is the only
	// in-place change the log allows.
	UpdateNotes(ctx context.Context, entry *order.HistoryEntry) error

	List(ctx context.Context, orderID kernel.UUID) ([]*order.HistoryEntry, error)

	// Latest returns the newest entry of the order, or errs.ObjectNotFoundError.
	Latest(ctx context.Context, orderID kernel.UUID) (*order.HistoryEntry, error)

	// LatestByStatus returns the newest entry with status, used to find who is
	// handling a phase. Returns errs.ObjectNotFoundError when there is none.
	LatestByStatus(ctx context.Context, orderID kernel.UUID, status order.Status) (*order.HistoryEntry, error)

	// Delete removes entries and their photos.
	Delete(ctx context.Context, ids []uint64) error
}
