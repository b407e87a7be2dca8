package attendance

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ExportCSV implements attendance.Service.
func (s *AttendanceServiceImpl) ExportCSV(ctx context.Context, jobID string) (string, []byte, error) {
	result, err := s.results.Get(ctx, jobID)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"date", "shift_type", "sched_start", "sched_end",
		"actual_in", "actual_out", "actual_out1", "actual_in2",
		"sched_minutes", "worked_minutes", "worked_minutes_clipped",
		"attendance_fraction", "present", "tardy", "early_dismissal",
	}
	if err := w.Write(header); err != nil {
		return "", nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, day := range result.DayRecords {
		row := []string{
			day.Date.Format("2006-01-02"),
			string(day.Shift),
			day.ScheduledStart.Format(time.RFC3339),
			day.ScheduledEnd.Format(time.RFC3339),
			formatOptionalTime(day.ActualIn),
			formatOptionalTime(day.ActualOut),
			formatOptionalTime(day.ActualOut1),
			formatOptionalTime(day.ActualIn2),
			formatFloat(day.ScheduledMinutes),
			formatFloat(day.WorkedMinutes),
			formatFloat(day.WorkedMinutesClipped),
			formatFloat(day.AttendanceFraction),
			strconv.FormatBool(day.Present),
			strconv.FormatBool(day.Tardy),
			strconv.FormatBool(day.EarlyDismissal),
		}
		if err := w.Write(row); err != nil {
			return "", nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	// Summary block below the day records.
	summaryRows := [][]string{
		{},
		{"__SUMMARY__"},
		{"scheduled_shifts", strconv.Itoa(result.Summary.ScheduledShifts)},
		{"shifts_worked", strconv.Itoa(result.Summary.ShiftsWorked)},
		{"attendance_pct_shifts", formatFloat(result.Summary.AttendancePctShifts)},
		{"scheduled_hours", formatFloat(result.Summary.ScheduledHours)},
		{"worked_hours", formatFloat(result.Summary.WorkedHours)},
		{"attendance_pct_hours", formatFloat(result.Summary.AttendancePctHours)},
		{"tardy_count", strconv.Itoa(result.Summary.TardyCount)},
		{"early_dismissal_count", strconv.Itoa(result.Summary.EarlyDismissalCount)},
	}
	for _, row := range summaryRows {
		if err := w.Write(row); err != nil {
			return "", nil, fmt.Errorf("failed to write csv summary: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	employee := "unknown"
	if result.EmployeeLabel != nil {
		employee = strings.ReplaceAll(*result.EmployeeLabel, " ", "_")
	}
	shortID := jobID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	fileName := fmt.Sprintf("attendance_%s_%s.csv", employee, shortID)

	return fileName, buf.Bytes(), nil
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
