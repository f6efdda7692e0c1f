package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs   []namedJob
	logger *zap.Logger
}

type namedJob struct {
	name string
	job  job
}

// NewJobManager creates a job manager for the outbox relay and order archive jobs.
func NewJobManager(relay *OutboxRelayJob, archive *OrderArchiveJob, logger *zap.Logger) *JobManager {
	return &JobManager{
		jobs: []namedJob{
			{name: "outbox relay", job: relay},
			{name: "order archive", job: archive},
		},
		logger: logger,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			// Stop already started jobs if this one fails
			for _, started := range jm.jobs[:i] {
				started.job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	for _, nj := range jm.jobs {
		nj.job.Stop()
	}
}
