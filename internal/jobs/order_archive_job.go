package jobs

import (
	"context"
	"time"

	"bolpurmart/internal/core/application/usecases/commands"
	"bolpurmart/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type orderArchiver interface {
	Handle(ctx context.Context, cmd commands.ArchiveDeliveredOrdersCommand) (int, error)
}

// OrderArchiveJob stamps archivedAt on delivered orders older than the retention.
type OrderArchiveJob struct {
	handler   orderArchiver
	schedule  string
	retention time.Duration
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewOrderArchiveJob(
	handler orderArchiver,
	schedule string,
	retention time.Duration,
	batchSize int,
	logger *zap.Logger,
) *OrderArchiveJob {
	return &OrderArchiveJob{
		handler:   handler,
		schedule:  schedule,
		retention: retention,
		batchSize: batchSize,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With(zap.String("component", "order_archive_job")),
	}
}

func (j *OrderArchiveJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("order archive job started", zap.String("schedule", j.schedule), zap.Duration("retention", j.retention))
	return nil
}

// Run archives one batch per tick.
func (j *OrderArchiveJob) Run(ctx context.Context) {
	cmd, err := commands.NewArchiveDeliveredOrdersCommand(j.retention, j.batchSize)
	if err != nil {
		j.logger.Error("invalid archive settings", zap.Error(err))
		return
	}

	n, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("order archive failed", zap.Error(err))
	}
	if n > 0 {
		metrics.OrdersArchivedTotal.Add(float64(n))
		j.logger.Info("orders archived", zap.Int("count", n))
	}
}

func (j *OrderArchiveJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("order archive job stopped")
}
