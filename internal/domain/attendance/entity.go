package attendance

import (
	"time"
)

type ShiftType string

const (
	ShiftAM ShiftType = "AM"
	ShiftPM ShiftType = "PM"
)

// PunchRecord is one employee-day extracted from a punch-clock export.
// Immutable after extraction.
type PunchRecord struct {
	Date          time.Time
	EmployeeLabel string
	In1           *time.Time
	Out1          *time.Time
	In2           *time.Time
	Out2          *time.Time
	ReportedTotal *float64
}

// ScheduleRecord is one scheduled shift cell from a month-grid schedule.
// End is always strictly after Start; for cross-midnight shifts it falls on
// the next calendar day.
type ScheduleRecord struct {
	Date  time.Time
	Shift ShiftType
	Start time.Time
	End   time.Time
}

// DayRecord is the reconciliation of one scheduled shift against at most one
// punch record sharing its date.
type DayRecord struct {
	Date                 time.Time  `json:"date"`
	Shift                ShiftType  `json:"shift_type"`
	ScheduledStart       time.Time  `json:"sched_start"`
	ScheduledEnd         time.Time  `json:"sched_end"`
	ActualIn             *time.Time `json:"actual_in"`
	ActualOut            *time.Time `json:"actual_out"`
	ActualOut1           *time.Time `json:"actual_out1"`
	ActualIn2            *time.Time `json:"actual_in2"`
	ScheduledMinutes     float64    `json:"sched_minutes"`
	WorkedMinutes        float64    `json:"worked_minutes"`
	WorkedMinutesClipped float64    `json:"worked_minutes_clipped"`
	AttendanceFraction   float64    `json:"attendance_fraction"`
	Present              bool       `json:"present"`
	Tardy                bool       `json:"tardy"`
	EarlyDismissal       bool       `json:"early_dismissal"`
}

// Summary aggregates the day records of one employee.
type Summary struct {
	ScheduledShifts     int     `json:"scheduled_shifts"`
	ShiftsWorked        int     `json:"shifts_worked"`
	AttendancePctShifts float64 `json:"attendance_pct_shifts"`
	ScheduledHours      float64 `json:"scheduled_hours"`
	WorkedHours         float64 `json:"worked_hours"`
	AttendancePctHours  float64 `json:"attendance_pct_hours"`
	TardyCount          int     `json:"tardy_count"`
	EarlyDismissalCount int     `json:"early_dismissal_count"`
}

// ShiftConfig describes the default window of one shift type. Start and End
// are wall-clock "HH:MM" strings.
type ShiftConfig struct {
	Start         string `json:"start"`
	End           string `json:"end"`
	CrossMidnight bool   `json:"cross_midnight"`
}

// PolicyConfig is the full reconciliation policy. It is passed down as plain
// parameters; the engine holds no global configuration state.
type PolicyConfig struct {
	AM           ShiftConfig `json:"am"`
	PM           ShiftConfig `json:"pm"`
	TardyMinutes int         `json:"tardy_minutes"`
	EarlyMinutes int         `json:"early_minutes"`
	Timezone     string      `json:"timezone"`
}

// DefaultPolicy returns the stock shift windows and thresholds.
func DefaultPolicy() PolicyConfig {
	return PolicyConfig{
		AM:           ShiftConfig{Start: "09:45", End: "16:30", CrossMidnight: false},
		PM:           ShiftConfig{Start: "16:00", End: "00:15", CrossMidnight: true},
		TardyMinutes: 5,
		EarlyMinutes: 15,
		Timezone:     "America/New_York",
	}
}

// Result is a fully computed reconciliation, addressable by job ID for CSV
// export until it expires.
type Result struct {
	JobID         string       `json:"job_id"`
	EmployeeLabel *string      `json:"employee_name"`
	ConfigUsed    PolicyConfig `json:"config_used"`
	Summary       Summary      `json:"summary"`
	DayRecords    []DayRecord  `json:"day_level"`
	Warnings      []string     `json:"warnings"`
	CreatedAt     time.Time    `json:"created_at"`
}
