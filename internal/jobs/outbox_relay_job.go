package jobs

import (
	"context"

	"bolpurmart/internal/core/application/usecases/commands"
	"bolpurmart/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type outboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob publishes lifecycle events left in the outbox. Each run drains the
// outbox batch by batch until it is empty or a publish fails.
type OutboxRelayJob struct {
	handler   outboxRelayer
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewOutboxRelayJob(handler outboxRelayer, schedule string, batchSize int, logger *zap.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With(zap.String("component", "outbox_relay_job")),
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("outbox relay job started", zap.String("schedule", j.schedule))
	return nil
}

// Run relays until the outbox is drained.
func (j *OutboxRelayJob) Run(ctx context.Context) {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.Error("invalid relay batch size", zap.Error(err))
		return
	}

	for {
		n, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.Error("outbox relay failed", zap.Error(err))
			return
		}
		metrics.OutboxRelayedTotal.Add(float64(n))
		if n < j.batchSize {
			return
		}
	}
}

func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("outbox relay job stopped")
}
