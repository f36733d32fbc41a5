package commands

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
)

// RelayResult counts what one relay pass did.
type RelayResult struct {
	Published int
	Failed    int
}

// RelayOutboxCommandHandler moves outbox events to the message bus in creation
// order. After an event is published the cached timeline of its order is dropped.
// A publish failure is recorded on the row and does not stop the batch; a failing
// cache is ignored because the entry expires on its own.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	cache      ports.HistoryCache
	clock      ports.Clock
}

// NewRelayOutboxCommandHandler accepts a nil cache.
func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	cache ports.HistoryCache,
	clock ports.Clock,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		cache:      cache,
		clock:      clock,
	}
}

func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (RelayResult, error) {
	if err := cmd.Validate(); err != nil {
		return RelayResult{}, err
	}

	outbox := h.uowFactory.Create().OutboxRepository()
	pending, err := outbox.ListPending(ctx, cmd.BatchSize(), cmd.MaxAttempts())
	if err != nil {
		return RelayResult{}, err
	}

	var res RelayResult
	for _, ev := range pending {
		if err = ctx.Err(); err != nil {
			return res, err
		}

		if pubErr := h.publisher.Publish(ctx, ev.Topic, []byte(ev.Key), ev.Payload); pubErr != nil {
			res.Failed++
			if err = outbox.MarkFailed(ctx, ev.ID, ev.Attempts+1, pubErr.Error()); err != nil {
				return res, err
			}
			continue
		}

		if err = outbox.MarkDone(ctx, ev.ID, h.clock.Now()); err != nil {
			return res, err
		}
		res.Published++
		h.invalidate(ctx, ev.Key)
	}
	return res, nil
}

func (h *RelayOutboxCommandHandler) invalidate(ctx context.Context, key string) {
	if h.cache == nil {
		return
	}
	orderID, err := kernel.UUIDFromString(key)
	if err != nil {
		return
	}
	_ = h.cache.Invalidate(ctx, orderID)
}
