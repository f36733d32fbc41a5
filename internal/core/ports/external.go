package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// Clock supplies the current time. Handlers never call time.Now directly.
type Clock interface {
	Now() time.Time
}

// PhotoUpload is one evidence file received from a client.
type PhotoUpload struct {
	Filename string
	Content  []byte
}

// PhotoStorage keeps evidence files outside the database.
type PhotoStorage interface {
	// Upload stores the file and returns the URL recorded on the history entry.
	Upload(ctx context.Context, photo PhotoUpload) (string, error)

	// Delete removes a file previously returned by Upload. Deleting a missing file
	// is not an error.
	Delete(ctx context.Context, url string) error
}

// PriceRequest is what the pricing calculator needs to quote an order.
type PriceRequest struct {
	Items     []order.Item
	Pickup    kernel.Address
	Delivery  kernel.Address
	Emergency bool
}

// PricingCalculator prices cart lines and quotes placements.
type PricingCalculator interface {
	// UnitPrice returns the current price of a service, or errs.ObjectNotFoundError.
	UnitPrice(ctx context.Context, serviceCode string) (int64, error)

	Quote(ctx context.Context, req PriceRequest) (order.Quote, error)
}

// EventPublisher delivers outbox events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// HistoryCache keeps rendered order timelines. A miss is not an error.
type HistoryCache interface {
	Get(ctx context.Context, orderID kernel.UUID) ([]byte, bool, error)
	Set(ctx context.Context, orderID kernel.UUID, value []byte) error
	Invalidate(ctx context.Context, orderID kernel.UUID) error
}
