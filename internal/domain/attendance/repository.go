package attendance

import (
	"context"
	"time"
)

// ResultRepository stores computed results keyed by job ID until they expire.
type ResultRepository interface {
	Save(ctx context.Context, result Result, ttl time.Duration) error

	// Get returns ErrResultNotFound for unknown or expired job IDs.
	Get(ctx context.Context, jobID string) (Result, error)

	// DeleteExpired removes expired results and reports how many were purged.
	DeleteExpired(ctx context.Context) (int64, error)
}
