package attendance

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/repository/memory"
)

func TestExportCSV(t *testing.T) {
	repo := memory.NewResultRepository()
	svc := NewAttendanceService(repo, nil, attendance.DefaultPolicy(), time.Hour)

	d := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	in := time.Date(2025, 5, 1, 9, 50, 0, 0, time.UTC)
	out := time.Date(2025, 5, 1, 16, 30, 0, 0, time.UTC)
	label := "Jane Doe"

	result := attendance.Result{
		JobID:         "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		EmployeeLabel: &label,
		ConfigUsed:    attendance.DefaultPolicy(),
		Summary: attendance.Summary{
			ScheduledShifts:     1,
			ShiftsWorked:        1,
			AttendancePctShifts: 100,
		},
		DayRecords: []attendance.DayRecord{{
			Date:                 d,
			Shift:                attendance.ShiftAM,
			ScheduledStart:       in,
			ScheduledEnd:         out,
			ActualIn:             &in,
			ActualOut:            &out,
			ScheduledMinutes:     405,
			WorkedMinutes:        400,
			WorkedMinutesClipped: 400,
			Present:              true,
		}},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Save(context.Background(), result, time.Hour))

	fileName, payload, err := svc.ExportCSV(context.Background(), result.JobID)
	require.NoError(t, err)

	assert.Equal(t, "attendance_Jane_Doe_f47ac10b.csv", fileName)

	lines := strings.Split(strings.TrimRight(string(payload), "\n"), "\n")
	assert.Equal(t,
		"date,shift_type,sched_start,sched_end,actual_in,actual_out,actual_out1,actual_in2,sched_minutes,worked_minutes,worked_minutes_clipped,attendance_fraction,present,tardy,early_dismissal",
		lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2025-05-01,AM,"), "day row: %s", lines[1])
	assert.Contains(t, string(payload), "__SUMMARY__")
	assert.Contains(t, string(payload), "scheduled_shifts,1")
	assert.Contains(t, string(payload), "attendance_pct_shifts,100")
}

func TestExportCSVUnknownJob(t *testing.T) {
	svc := NewAttendanceService(memory.NewResultRepository(), nil, attendance.DefaultPolicy(), time.Hour)

	_, _, err := svc.ExportCSV(context.Background(), "missing-job")
	assert.ErrorIs(t, err, attendance.ErrResultNotFound)
}
