// Package jobs provides scheduled background tasks of the partner service.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and wrap command handlers:
//
//  1. OutboxRelayJob - publishes lifecycle events from the outbox to the ordering
//     system; each run drains the outbox in batches.
//  2. OrderArchiveJob - sets archivedAt on delivered orders older than the retention.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayJob, archiveJob, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failures are logged and retried on the next tick. A run that is still going when the
// next tick fires is skipped.
package jobs
