package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres/outboxrepo"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/event"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	topic string
	key   string
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []published
	failures int
}

func (p *fakePublisher) Publish(_ context.Context, topic string, key, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failures > 0 {
		p.failures--
		return errors.New("broker unavailable")
	}
	p.messages = append(p.messages, published{topic: topic, key: string(key)})
	return nil
}

type invalidations struct {
	mu  sync.Mutex
	ids []kernel.UUID
}

func (c *invalidations) Get(context.Context, kernel.UUID) ([]byte, bool, error) {
	return nil, false, nil
}
func (c *invalidations) Set(context.Context, kernel.UUID, []byte) error { return nil }
func (c *invalidations) Invalidate(_ context.Context, id kernel.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = append(c.ids, id)
	return nil
}

func (f *fixture) relay(pub *fakePublisher, cache ports.HistoryCache, batch, attempts int) commands.RelayResult {
	h := commands.NewRelayOutboxCommandHandler(outboxUoWFactory{f.pg}, pub, cache, f.clock)
	cmd, err := commands.NewRelayOutboxCommand(batch, attempts)
	require.NoError(f.t, err)

	res, err := h.Handle(f.t.Context(), cmd)
	require.NoError(f.t, err)
	return res
}

func (f *fixture) outboxRows() []outboxrepo.EventDTO {
	var dtos []outboxrepo.EventDTO
	require.NoError(f.t, f.db.Order("created_at").Find(&dtos).Error)
	return dtos
}

func TestRelayOutbox_PublishesInOrderAndInvalidates(t *testing.T) {
	f := newFixture(t)
	id := f.seedOrder(kernel.NewUUID(), order.Pending)
	pub := &fakePublisher{}
	cache := &invalidations{}

	res := f.relay(pub, cache, 10, 3)

	assert.Equal(t, commands.RelayResult{Published: 2}, res)
	require.Len(t, pub.messages, 2)
	for _, m := range pub.messages {
		assert.Equal(t, event.TopicStatusChanged, m.topic)
		assert.Equal(t, id.String(), m.key)
	}
	assert.Equal(t, []kernel.UUID{id, id}, cache.ids)
	for _, row := range f.outboxRows() {
		assert.Equal(t, string(event.StatusDone), row.Status)
		require.NotNil(t, row.PublishedAt)
	}

	assert.Equal(t, commands.RelayResult{}, f.relay(pub, cache, 10, 3), "nothing left to publish")
}

func TestRelayOutbox_RetriesUntilMaxAttempts(t *testing.T) {
	f := newFixture(t)
	f.seedOrder(kernel.NewUUID())
	pub := &fakePublisher{failures: 2}

	assert.Equal(t, commands.RelayResult{Failed: 1}, f.relay(pub, nil, 10, 2))
	rows := f.outboxRows()
	require.Len(t, rows, 1)
	assert.Equal(t, string(event.StatusFailed), rows[0].Status)
	assert.Equal(t, 1, rows[0].Attempts)
	assert.Equal(t, "broker unavailable", rows[0].LastError)

	assert.Equal(t, commands.RelayResult{Failed: 1}, f.relay(pub, nil, 10, 2))
	assert.Equal(t, commands.RelayResult{}, f.relay(pub, nil, 10, 2), "gave up after two attempts")
	assert.Empty(t, pub.messages)

	f.clock.Advance(time.Minute)
	assert.Equal(t, commands.RelayResult{Published: 1}, f.relay(pub, nil, 10, 3), "a higher limit picks it up again")
}

func TestRelayOutbox_BatchSize(t *testing.T) {
	f := newFixture(t)
	f.seedOrder(kernel.NewUUID(), order.Pending, order.Confirmed)
	pub := &fakePublisher{}

	assert.Equal(t, 2, f.relay(pub, nil, 2, 1).Published)
	assert.Equal(t, 1, f.relay(pub, nil, 2, 1).Published)
}

func TestNewRelayOutboxCommand(t *testing.T) {
	_, err := commands.NewRelayOutboxCommand(0, 0)
	require.Error(t, err)

	h := commands.NewRelayOutboxCommandHandler(nil, nil, nil, nil)
	_, err = h.Handle(t.Context(), commands.RelayOutboxCommand{})
	require.ErrorIs(t, err, commands.ErrRelayOutboxCommandIsNotConstructed)
}
