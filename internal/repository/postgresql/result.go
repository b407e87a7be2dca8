package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type resultRepository struct {
	db *database.DB
}

func NewResultRepository(db *database.DB) attendance.ResultRepository {
	return &resultRepository{db: db}
}

// Save implements attendance.ResultRepository.
func (r *resultRepository) Save(ctx context.Context, result attendance.Result, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `
		INSERT INTO attendance_results (id, employee_label, payload, created_at, expires_at)
		VALUES ($1, $2, $3, NOW(), NOW() + $4)
		ON CONFLICT (id) DO UPDATE
		SET employee_label = EXCLUDED.employee_label,
		    payload = EXCLUDED.payload,
		    expires_at = EXCLUDED.expires_at
	`

	_, err = r.db.Exec(ctx, query, result.JobID, result.EmployeeLabel, payload, ttl)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// Get implements attendance.ResultRepository.
func (r *resultRepository) Get(ctx context.Context, jobID string) (attendance.Result, error) {
	query := `
		SELECT payload
		FROM attendance_results
		WHERE id = $1
		  AND expires_at > NOW()
	`

	var payload []byte
	err := r.db.QueryRow(ctx, query, jobID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Result{}, attendance.ErrResultNotFound
		}
		return attendance.Result{}, fmt.Errorf("failed to get result: %w", err)
	}

	var result attendance.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return attendance.Result{}, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return result, nil
}

// DeleteExpired implements attendance.ResultRepository.
func (r *resultRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM attendance_results WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired results: %w", err)
	}
	return tag.RowsAffected(), nil
}
