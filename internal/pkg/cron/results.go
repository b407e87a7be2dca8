package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
)

// ResultJobs purges stored reconciliation results once they pass their TTL.
type ResultJobs struct {
	results attendance.ResultRepository
}

func NewResultJobs(results attendance.ResultRepository) *ResultJobs {
	return &ResultJobs{results: results}
}

func (j *ResultJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_expired_results", 1*time.Hour, j.PurgeExpiredResults)
}

func (j *ResultJobs) PurgeExpiredResults(ctx context.Context) error {
	purged, err := j.results.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	if purged > 0 {
		slog.Info("Purged expired attendance results", "count", purged)
	}
	return nil
}
