package jobs

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/event"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outboxFactory struct {
	f *postgres.GormUnitOfWorkFactory
}

func (u outboxFactory) Create() commands.OutboxUoW { return u.f.Create() }

type countingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *countingPublisher) Publish(_ context.Context, topic string, _, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func TestOutboxRelayJob_Run(t *testing.T) {
	pg, _ := testutil.NewUnitOfWorkFactory(t)
	clock := testutil.NewClock(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))

	uow := pg.Create()
	require.NoError(t, uow.Begin(t.Context()))
	ev, err := event.New(event.TopicDriverArrived, kernel.NewUUID(), event.DriverArrived{Phase: "pickup"}, clock.Now())
	require.NoError(t, err)
	require.NoError(t, uow.OutboxRepository().Add(t.Context(), ev))
	require.NoError(t, uow.Commit(t.Context()))

	pub := &countingPublisher{}
	cmd, err := commands.NewRelayOutboxCommand(10, 3)
	require.NoError(t, err)
	job := NewOutboxRelayJob(
		commands.NewRelayOutboxCommandHandler(outboxFactory{pg}, pub, nil, clock),
		cmd,
		"*/2 * * * * *",
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	job.Run()
	job.Run()

	assert.Equal(t, []string{event.TopicDriverArrived}, pub.topics)
}

func TestOutboxRelayJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewOutboxRelayJob(commands.RelayOutboxCommandHandler{}, commands.RelayOutboxCommand{}, "every now and then",
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.Error(t, job.Start())
}
