package attendance

import (
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(date time.Time, hour, minute int) *time.Time {
	t := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC)
	return &t
}

func amShift(date time.Time) attendance.ScheduleRecord {
	return attendance.ScheduleRecord{
		Date:  date,
		Shift: attendance.ShiftAM,
		Start: *at(date, 9, 45),
		End:   *at(date, 16, 30),
	}
}

func pmShift(date time.Time) attendance.ScheduleRecord {
	next := date.AddDate(0, 0, 1)
	return attendance.ScheduleRecord{
		Date:  date,
		Shift: attendance.ShiftPM,
		Start: *at(date, 16, 0),
		End:   *at(next, 0, 15),
	}
}

func TestReconcileWorkedDay(t *testing.T) {
	d := day(2025, 5, 1)
	punches := []attendance.PunchRecord{{
		Date:          d,
		EmployeeLabel: "Jane Doe",
		In1:           at(d, 9, 50),
		Out1:          at(d, 12, 0),
		In2:           at(d, 12, 30),
		Out2:          at(d, 16, 30),
	}}
	schedule := []attendance.ScheduleRecord{amShift(d)}

	days, summary, warnings := Reconcile(punches, schedule, attendance.DefaultPolicy())

	require.Len(t, days, 1)
	assert.Empty(t, warnings)

	rec := days[0]
	assert.True(t, rec.Present)
	assert.Equal(t, 405.0, rec.ScheduledMinutes)
	// (16:30-09:50) minus the 30 minute lunch.
	assert.Equal(t, 370.0, rec.WorkedMinutes)
	assert.Equal(t, 370.0, rec.WorkedMinutesClipped)
	assert.InDelta(t, 0.9136, rec.AttendanceFraction, 0.0001)
	// 09:50 is exactly 5 minutes after 09:45; the threshold is strictly
	// greater-than, so this is not tardy.
	assert.False(t, rec.Tardy)
	assert.False(t, rec.EarlyDismissal)

	assert.Equal(t, 1, summary.ScheduledShifts)
	assert.Equal(t, 1, summary.ShiftsWorked)
	assert.Equal(t, 100.0, summary.AttendancePctShifts)
}

func TestReconcileTardyBoundary(t *testing.T) {
	d := day(2025, 5, 1)
	schedule := []attendance.ScheduleRecord{amShift(d)}
	policy := attendance.DefaultPolicy()

	cases := []struct {
		name      string
		inMinute  int
		wantTardy bool
	}{
		{"exactly at threshold", 50, false},
		{"one minute past threshold", 51, true},
		{"on time", 45, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			punches := []attendance.PunchRecord{{
				Date: d,
				In1:  at(d, 9, c.inMinute),
				Out2: at(d, 16, 30),
			}}
			days, _, _ := Reconcile(punches, schedule, policy)
			require.Len(t, days, 1)
			assert.Equal(t, c.wantTardy, days[0].Tardy)
		})
	}
}

func TestReconcileCrossMidnight(t *testing.T) {
	d := day(2025, 5, 1)
	// The raw close-out clock value 00:05 precedes the 15:58 open-in.
	punches := []attendance.PunchRecord{{
		Date: d,
		In1:  at(d, 15, 58),
		Out2: at(d, 0, 5),
	}}
	schedule := []attendance.ScheduleRecord{pmShift(d)}

	days, _, _ := Reconcile(punches, schedule, attendance.DefaultPolicy())

	require.Len(t, days, 1)
	rec := days[0]
	require.NotNil(t, rec.ActualOut)
	assert.True(t, rec.ActualOut.After(*rec.ActualIn), "out must be adjusted past midnight")
	assert.Greater(t, rec.WorkedMinutes, 0.0)
	assert.Equal(t, 2, rec.ActualOut.Day())
}

func TestReconcileAbsence(t *testing.T) {
	d := day(2025, 5, 1)
	days, summary, _ := Reconcile(nil, []attendance.ScheduleRecord{amShift(d)}, attendance.DefaultPolicy())

	require.Len(t, days, 1)
	rec := days[0]
	assert.False(t, rec.Present)
	assert.Equal(t, 0.0, rec.WorkedMinutesClipped)
	assert.Equal(t, 0.0, rec.AttendanceFraction)
	assert.False(t, rec.Tardy)
	assert.False(t, rec.EarlyDismissal)

	assert.Equal(t, 0, summary.ShiftsWorked)
	assert.Equal(t, 0.0, summary.AttendancePctShifts)
	assert.Equal(t, 0.0, summary.WorkedHours)
}

func TestReconcileEarlyDismissal(t *testing.T) {
	d := day(2025, 5, 1)
	punches := []attendance.PunchRecord{{
		Date: d,
		In1:  at(d, 9, 45),
		Out2: at(d, 16, 0), // 30 minutes early, threshold 15
	}}
	days, _, _ := Reconcile(punches, []attendance.ScheduleRecord{amShift(d)}, attendance.DefaultPolicy())

	require.Len(t, days, 1)
	assert.True(t, days[0].EarlyDismissal)
	assert.False(t, days[0].Tardy)
}

func TestReconcileClipping(t *testing.T) {
	d := day(2025, 5, 1)
	// Worked well past the scheduled end; clipped minutes cap at scheduled.
	punches := []attendance.PunchRecord{{
		Date: d,
		In1:  at(d, 9, 0),
		Out2: at(d, 20, 0),
	}}
	days, _, _ := Reconcile(punches, []attendance.ScheduleRecord{amShift(d)}, attendance.DefaultPolicy())

	require.Len(t, days, 1)
	rec := days[0]
	assert.Greater(t, rec.WorkedMinutes, rec.ScheduledMinutes)
	assert.Equal(t, rec.ScheduledMinutes, rec.WorkedMinutesClipped)
	assert.Equal(t, 1.0, rec.AttendanceFraction)
}

func TestReconcileDuplicatePunchWarns(t *testing.T) {
	d := day(2025, 5, 1)
	punches := []attendance.PunchRecord{
		{Date: d, In1: at(d, 9, 45), Out2: at(d, 16, 30)},
		{Date: d, In1: at(d, 10, 0), Out2: at(d, 16, 0)},
	}
	days, _, warnings := Reconcile(punches, []attendance.ScheduleRecord{amShift(d)}, attendance.DefaultPolicy())

	require.Len(t, days, 1)
	// First match wins.
	assert.Equal(t, 9, days[0].ActualIn.Hour())
	assert.Len(t, warnings, 1)
}

func TestReconcileIdempotent(t *testing.T) {
	d1, d2 := day(2025, 5, 1), day(2025, 5, 2)
	punches := []attendance.PunchRecord{
		{Date: d1, In1: at(d1, 9, 50), Out1: at(d1, 12, 0), In2: at(d1, 12, 30), Out2: at(d1, 16, 30)},
		{Date: d2, In1: at(d2, 16, 10), Out2: at(d2, 0, 10)},
	}
	schedule := []attendance.ScheduleRecord{amShift(d1), pmShift(d2)}
	policy := attendance.DefaultPolicy()

	days1, summary1, _ := Reconcile(punches, schedule, policy)
	days2, summary2, _ := Reconcile(punches, schedule, policy)

	assert.Equal(t, days1, days2)
	assert.Equal(t, summary1, summary2)
}

func TestReconcileInvariants(t *testing.T) {
	d := day(2025, 5, 1)
	punchVariants := [][]attendance.PunchRecord{
		nil,
		{{Date: d, In1: at(d, 9, 50)}},
		{{Date: d, In1: at(d, 9, 50), Out2: at(d, 0, 5)}},
		{{Date: d, In1: at(d, 23, 0), Out2: at(d, 1, 0)}},
		{{Date: d, In1: at(d, 9, 0), Out1: at(d, 12, 0), In2: at(d, 11, 0), Out2: at(d, 23, 59)}},
	}
	schedules := []attendance.ScheduleRecord{amShift(d), pmShift(d)}

	for _, punches := range punchVariants {
		for _, sched := range schedules {
			days, _, _ := Reconcile(punches, []attendance.ScheduleRecord{sched}, attendance.DefaultPolicy())
			require.Len(t, days, 1)
			rec := days[0]
			assert.GreaterOrEqual(t, rec.WorkedMinutesClipped, 0.0)
			assert.LessOrEqual(t, rec.WorkedMinutesClipped, rec.ScheduledMinutes)
			assert.GreaterOrEqual(t, rec.AttendanceFraction, 0.0)
			assert.LessOrEqual(t, rec.AttendanceFraction, 1.0)
			assert.True(t, rec.Date.Equal(sched.Date))
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, attendance.Summary{}, s)
}

func TestSummarizeRounding(t *testing.T) {
	d1, d2, d3 := day(2025, 5, 1), day(2025, 5, 2), day(2025, 5, 3)
	days := []attendance.DayRecord{
		{Date: d1, ScheduledMinutes: 405, WorkedMinutesClipped: 400, Present: true, Tardy: true},
		{Date: d2, ScheduledMinutes: 405, WorkedMinutesClipped: 0},
		{Date: d3, ScheduledMinutes: 405, WorkedMinutesClipped: 405, Present: true},
	}
	s := Summarize(days)

	assert.Equal(t, 3, s.ScheduledShifts)
	assert.Equal(t, 2, s.ShiftsWorked)
	assert.Equal(t, 66.67, s.AttendancePctShifts)
	assert.Equal(t, 20.25, s.ScheduledHours)
	assert.Equal(t, 13.42, s.WorkedHours)
	// 805/1215 minutes: rounded only once, from the raw sums.
	assert.Equal(t, 66.26, s.AttendancePctHours)
	assert.Equal(t, 1, s.TardyCount)
	assert.Equal(t, 0, s.EarlyDismissalCount)
}
