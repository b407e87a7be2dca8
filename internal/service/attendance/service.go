package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/extract"
	"github.com/attendly/attendance-backend-go/internal/pkg/sheet"
	"github.com/attendly/attendance-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	results     attendance.ResultRepository
	fileStorage storage.FileStorage
	defaults    attendance.PolicyConfig
	resultTTL   time.Duration
}

func NewAttendanceService(
	results attendance.ResultRepository,
	fileStorage storage.FileStorage,
	defaults attendance.PolicyConfig,
	resultTTL time.Duration,
) attendance.Service {
	return &AttendanceServiceImpl{
		results:     results,
		fileStorage: fileStorage,
		defaults:    defaults,
		resultTTL:   resultTTL,
	}
}

// Compute implements attendance.Service.
func (s *AttendanceServiceImpl) Compute(ctx context.Context, req attendance.ComputeRequest) (attendance.Result, error) {
	if err := req.Validate(); err != nil {
		return attendance.Result{}, err
	}

	var warnings []string
	policy, policyWarn := s.resolvePolicy(req.Config)
	if policyWarn != "" {
		warnings = append(warnings, policyWarn)
	}

	loc, err := time.LoadLocation(policy.Timezone)
	if err != nil {
		loc = time.UTC
		warnings = append(warnings, fmt.Sprintf("unknown timezone %q, falling back to UTC", policy.Timezone))
	}

	jobID := uuid.NewString()

	punchData, err := s.stageUpload(ctx, jobID+"/punch_"+req.PunchHeader.Filename, req.PunchFile)
	if err != nil {
		return attendance.Result{}, fmt.Errorf("failed to stage punch file: %w", err)
	}
	scheduleData, err := s.stageUpload(ctx, jobID+"/schedule_"+req.ScheduleHeader.Filename, req.ScheduleFile)
	if err != nil {
		return attendance.Result{}, fmt.Errorf("failed to stage schedule file: %w", err)
	}

	punchGrid, err := sheet.Load(req.PunchHeader.Filename, punchData)
	if err != nil {
		return attendance.Result{}, fmt.Errorf("failed to read punch workbook: %w", err)
	}
	scheduleGrid, err := sheet.Load(req.ScheduleHeader.Filename, scheduleData)
	if err != nil {
		return attendance.Result{}, fmt.Errorf("failed to read schedule workbook: %w", err)
	}

	// The two extractions are independent; order does not matter.
	punchRes, err := extract.PunchLog(punchGrid, loc)
	if err != nil {
		return attendance.Result{}, err
	}
	warnings = append(warnings, punchRes.Warnings...)

	scheduleRes, err := extract.ScheduleGrid(scheduleGrid, policy, loc)
	if err != nil {
		return attendance.Result{}, err
	}
	warnings = append(warnings, scheduleRes.Warnings...)

	days, summary, computeWarnings := Reconcile(punchRes.Records, scheduleRes.Records, policy)
	warnings = append(warnings, computeWarnings...)

	var employeeLabel *string
	if punchRes.EmployeeLabel != "" {
		employeeLabel = &punchRes.EmployeeLabel
	}

	result := attendance.Result{
		JobID:         jobID,
		EmployeeLabel: employeeLabel,
		ConfigUsed:    policy,
		Summary:       summary,
		DayRecords:    days,
		Warnings:      warnings,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.results.Save(ctx, result, s.resultTTL); err != nil {
		return attendance.Result{}, fmt.Errorf("failed to store result: %w", err)
	}

	slog.Info("Computed attendance reconciliation",
		"job_id", jobID,
		"day_records", len(days),
		"warnings", len(warnings),
	)
	return result, nil
}

// resolvePolicy merges a raw JSON override onto the configured defaults.
// Invalid JSON degrades to the defaults with a warning, never an error.
func (s *AttendanceServiceImpl) resolvePolicy(configJSON string) (attendance.PolicyConfig, string) {
	policy := s.defaults
	if configJSON == "" {
		return policy, ""
	}
	if err := json.Unmarshal([]byte(configJSON), &policy); err != nil {
		return s.defaults, fmt.Sprintf("invalid config override, using defaults: %v", err)
	}
	return policy, ""
}

// stageUpload writes the upload through file storage, reads it back fully and
// removes the staged copy. Parsing always happens on a complete local copy.
func (s *AttendanceServiceImpl) stageUpload(ctx context.Context, path string, file io.Reader) ([]byte, error) {
	stored, err := s.fileStorage.Upload(ctx, file, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.fileStorage.Delete(ctx, stored); err != nil {
			slog.Warn("Failed to clean up staged upload", "path", stored, "error", err)
		}
	}()

	rc, err := s.fileStorage.Download(ctx, stored)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
