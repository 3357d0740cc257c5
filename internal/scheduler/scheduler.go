package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/storemanager/internal/domain/models"
)

// SnapshotExporter exports the current inventory.
type SnapshotExporter interface {
	ExportSnapshot(ctx context.Context, at time.Time) (models.InventorySnapshot, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	exporter SnapshotExporter
	schedule string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler running the export on a standard
// 5-field cron schedule.
func NewScheduler(schedule string, exporter SnapshotExporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(),
		exporter: exporter,
		schedule: schedule,
		timeout:  2 * time.Minute,
		logger:   logger,
	}
}

// Start registers the export job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.exportSnapshot); err != nil {
		return fmt.Errorf("schedule snapshot export: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running export to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) exportSnapshot() {
	s.logger.Info("exporting inventory snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.exporter.ExportSnapshot(ctx, time.Now()); err != nil {
		s.logger.Error("failed to export inventory snapshot", zap.Error(err))
	}
}
