package worker

import (
	"fmt"
	"time"

	"github.com/dustin/movies-backend/config"
	"github.com/dustin/movies-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// JobFunc defines the function signature for scheduled jobs
type JobFunc func() error

// RankWorker runs the scheduled rank recomputation with a configurable interval
type RankWorker struct {
	name     string
	cron     *cron.Cron
	jobFunc  JobFunc
	interval time.Duration
	logger   *logger.Logger
	entryID  cron.EntryID
}

// NewRankWorker creates a cron-scheduled worker with validation and defaults
func NewRankWorker(cfg *config.WorkerConfig, name string, jobFunc JobFunc, logger *logger.Logger) (*RankWorker, error) {
	// Set defaults for nil or empty config values
	var interval time.Duration = 10 * time.Minute
	if cfg != nil && cfg.RankInterval != "" {
		duration, err := time.ParseDuration(cfg.RankInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid rank interval '%s': %v", cfg.RankInterval, err)
		}
		interval = duration
	}

	return &RankWorker{
		name:     name,
		cron:     cron.New(),
		jobFunc:  jobFunc,
		interval: interval,
		logger:   logger.WithComponent("rank-worker"),
	}, nil
}

// Start schedules and begins the worker
func (w *RankWorker) Start() error {
	intervalStr := w.durationToCronExpression(w.interval)
	w.logger.Info(fmt.Sprintf("Starting rank worker: %s (every %v)", w.name, w.interval))

	entryID, err := w.cron.AddFunc(intervalStr, func() {
		w.logger.Debug("Executing scheduled job for worker: " + w.name)

		if err := w.jobFunc(); err != nil {
			// Rank staleness is tolerated; a failed run leaves prior ranks untouched
			w.logger.Error("Scheduled job failed for worker " + w.name + ": " + err.Error())
		} else {
			w.logger.Info("Scheduled job completed successfully for worker: " + w.name)
		}
	})

	if err != nil {
		w.logger.Error("Failed to schedule worker " + w.name + ": " + err.Error())
		return err
	}

	w.entryID = entryID
	w.cron.Start()

	w.logger.Info("Rank worker started successfully: " + w.name)

	return nil
}

// Stop gracefully shuts down the worker
func (w *RankWorker) Stop() error {
	w.logger.Info("Stopping rank worker: " + w.name)

	if w.entryID > 0 {
		w.cron.Remove(w.entryID)
	}

	ctx := w.cron.Stop()
	<-ctx.Done() // Wait for graceful shutdown

	w.logger.Info("Rank worker stopped: " + w.name)

	return nil
}

// IsRunning checks if the worker has active cron entries
func (w *RankWorker) IsRunning() bool {
	return len(w.cron.Entries()) > 0
}

// durationToCronExpression converts duration to cron format with fallback
func (w *RankWorker) durationToCronExpression(duration time.Duration) string {
	minutes := int(duration.Minutes())
	hours := int(duration.Hours())

	if hours > 0 && minutes%60 == 0 {
		return fmt.Sprintf("0 */%d * * *", hours)
	} else if minutes > 0 && minutes < 60 {
		return fmt.Sprintf("*/%d * * * *", minutes)
	}

	// Fallback for unsupported durations
	w.logger.Warn(fmt.Sprintf("Unsupported rank interval %v, defaulting to 10 minutes", duration))
	return "*/10 * * * *"
}
