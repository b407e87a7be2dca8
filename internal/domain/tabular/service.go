package tabular

import (
	"context"
)

// Service maps generically-shaped tabular files into attendance records and
// KPI reports.
type Service interface {
	Compute(ctx context.Context, req ComputeRequest) (Result, error)
}
