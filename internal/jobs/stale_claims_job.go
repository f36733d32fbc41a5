package jobs

import (
	"context"
	"log/slog"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/metrics"

	"github.com/robfig/cron/v3"
)

// StaleClaimsJob returns abandoned processing claims to the staff queue.
type StaleClaimsJob struct {
	handler  commands.ReleaseStaleClaimsCommandHandler
	cmd      commands.ReleaseStaleClaimsCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewStaleClaimsJob(
	handler commands.ReleaseStaleClaimsCommandHandler,
	cmd commands.ReleaseStaleClaimsCommand,
	schedule string,
	logger *slog.Logger,
) *StaleClaimsJob {
	return &StaleClaimsJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "stale_claims_job"),
	}
}

func (j *StaleClaimsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale claims job started",
		"schedule", j.schedule, "timeout", j.cmd.Timeout().String())
	return nil
}

func (j *StaleClaimsJob) Run() {
	ctx := context.Background()
	released, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale claims job failed", "error", err)
		return
	}
	if released > 0 {
		metrics.StaleClaimsReleasedTotal.Add(float64(released))
		j.logger.InfoContext(ctx, "Released stale processing claims", "released", released)
	}
}

func (j *StaleClaimsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale claims job stopped")
}
