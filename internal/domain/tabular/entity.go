package tabular

import (
	"time"
)

// Status is the discrete attendance state of one generic row.
type Status string

const (
	StatusPresent  Status = "Present"
	StatusAbsent   Status = "Absent"
	StatusLate     Status = "Late"
	StatusEarlyOut Status = "Early-out"
)

// Record is one attendance row synthesized from a generically-shaped file.
type Record struct {
	EmployeeLabel string     `json:"employee_name"`
	Date          time.Time  `json:"date"`
	Status        Status     `json:"status"`
	ClockIn       *time.Time `json:"clock_in"`
	ClockOut      *time.Time `json:"clock_out"`
	SourceFile    string     `json:"source_file"`
	SourceRow     int        `json:"source_row"`
}

// MappingReport describes how headers resolved to fields for one run.
type MappingReport struct {
	Columns           map[string]int `json:"columns"`
	Matched           []string       `json:"matched"`
	Inferred          []string       `json:"inferred"`
	Missing           []string       `json:"missing"`
	Confidence        float64        `json:"confidence"`
	AssistRecommended bool           `json:"assist_recommended"`
	AssistApplied     bool           `json:"assist_applied"`
}

// EmployeeReport aggregates the records of one employee.
type EmployeeReport struct {
	EmployeeLabel       string  `json:"employee_name"`
	ScheduledShifts     int     `json:"scheduled_shifts"`
	ShiftsWorked        int     `json:"shifts_worked"`
	AttendancePctShifts float64 `json:"attendance_pct_shifts"`
	TardyCount          int     `json:"tardy_count"`
	EarlyOutCount       int     `json:"early_out_count"`
}

// TeamReport sums every employee and re-derives the percentage from the sums
// so low-shift-count employees do not skew it.
type TeamReport struct {
	Employees           int     `json:"employees"`
	ScheduledShifts     int     `json:"scheduled_shifts"`
	ShiftsWorked        int     `json:"shifts_worked"`
	AttendancePctShifts float64 `json:"attendance_pct_shifts"`
	TardyCount          int     `json:"tardy_count"`
	EarlyOutCount       int     `json:"early_out_count"`
}

// Result is the full outcome of one generic tabular run.
type Result struct {
	Mapping   MappingReport    `json:"mapping"`
	Records   []Record         `json:"records"`
	Employees []EmployeeReport `json:"per_employee"`
	Team      TeamReport       `json:"team"`
	Warnings  []string         `json:"warnings"`
}
