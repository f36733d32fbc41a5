// Package jobs provides scheduled background tasks for the laundry service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes outbox events to Kafka and drops cached timelines
// 2. StaleClaimsJob - releases processing claims nobody confirmed within the timeout
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(relayHandler, relayCmd, "*/2 * * * * *", logger)
//	stale := jobs.NewStaleClaimsJob(staleHandler, staleCmd, "0 */5 * * * *", logger)
//	jobManager := jobs.NewJobManager(relay, stale)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions (seconds first). A pass that is still
// running when the next one is due is skipped.
//
// # Error Handling
//
// Handler errors are logged and the job keeps its schedule. Events that fail to
// publish are retried by later passes up to the configured attempt limit.
package jobs
