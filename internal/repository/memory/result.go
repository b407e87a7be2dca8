// Package memory is the default result store: process-local, good enough for
// the single-operator deployments this tool targets.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
)

type storedResult struct {
	result    attendance.Result
	expiresAt time.Time
}

type resultRepository struct {
	mu      sync.RWMutex
	results map[string]storedResult
	now     func() time.Time
}

func NewResultRepository() attendance.ResultRepository {
	return &resultRepository{
		results: make(map[string]storedResult),
		now:     time.Now,
	}
}

// Save implements attendance.ResultRepository.
func (r *resultRepository) Save(ctx context.Context, result attendance.Result, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[result.JobID] = storedResult{
		result:    result,
		expiresAt: r.now().Add(ttl),
	}
	return nil
}

// Get implements attendance.ResultRepository.
func (r *resultRepository) Get(ctx context.Context, jobID string) (attendance.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.results[jobID]
	if !ok || r.now().After(stored.expiresAt) {
		return attendance.Result{}, attendance.ErrResultNotFound
	}
	return stored.result, nil
}

// DeleteExpired implements attendance.ResultRepository.
func (r *resultRepository) DeleteExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var purged int64
	now := r.now()
	for id, stored := range r.results {
		if now.After(stored.expiresAt) {
			delete(r.results, id)
			purged++
		}
	}
	return purged, nil
}
