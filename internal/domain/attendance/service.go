package attendance

import (
	"context"
)

// Service defines the reconciliation operations exposed over HTTP.
type Service interface {
	// Compute parses both uploads, reconciles schedule against punches and
	// stores the result for later export.
	Compute(ctx context.Context, req ComputeRequest) (Result, error)

	// ExportCSV renders a stored result as CSV. Returns the suggested file
	// name alongside the payload.
	ExportCSV(ctx context.Context, jobID string) (string, []byte, error)
}
