package jobs

import (
	"context"
	"log/slog"
	"sync"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/metrics"

	"github.com/robfig/cron/v3"
)

// OutboxRelayJob publishes pending outbox events on a schedule.
type OutboxRelayJob struct {
	handler  commands.RelayOutboxCommandHandler
	cmd      commands.RelayOutboxCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	mu       sync.Mutex
}

// NewOutboxRelayJob creates the relay job. schedule is a six-field cron spec, for
// example "*/2 * * * * *".
func NewOutboxRelayJob(
	handler commands.RelayOutboxCommandHandler,
	cmd commands.RelayOutboxCommand,
	schedule string,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Run performs one pass. Overlapping passes are skipped.
func (j *OutboxRelayJob) Run() {
	if !j.mu.TryLock() {
		return
	}
	defer j.mu.Unlock()

	ctx := context.Background()
	res, err := j.handler.Handle(ctx, j.cmd)
	metrics.OutboxEventsTotal.WithLabelValues("published").Add(float64(res.Published))
	metrics.OutboxEventsTotal.WithLabelValues("failed").Add(float64(res.Failed))
	if err != nil {
		metrics.OutboxRelayErrorsTotal.Inc()
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
		return
	}
	if res.Failed > 0 {
		j.logger.WarnContext(ctx, "Some outbox events were not published",
			"published", res.Published, "failed", res.Failed)
	} else if res.Published > 0 {
		j.logger.DebugContext(ctx, "Outbox events published", "published", res.Published)
	}
}

// Stop waits for a running pass to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
