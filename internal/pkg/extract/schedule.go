package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/sheet"
	"github.com/attendly/attendance-backend-go/internal/pkg/timeparse"
)

const (
	// Bounded scan windows keep a pathological sheet from being an
	// unbounded-loop risk.
	maxHeaderScanRows = 40
	maxShiftTokenCols = 6

	// Minimum parseable dates for a row to qualify as the date header.
	minHeaderDates = 2
)

// ScheduleResult is the output of one schedule-grid scan, sorted by date and
// shift type.
type ScheduleResult struct {
	Records  []attendance.ScheduleRecord
	Warnings []string
}

var cellTimeRegex = regexp.MustCompile(`\b(\d{1,2}):(\d{2})(?::(\d{2}))?\b`)

var nullMarkers = map[string]bool{
	"":          true,
	"0":         true,
	"off":       true,
	"null":      true,
	"undefined": true,
}

// ScheduleGrid locates the date header row, then scans every later row for
// AM/PM shift markers and emits one record per scheduled date cell. Shift
// defaults come from the policy; a time embedded in a cell overrides the
// start only.
func ScheduleGrid(grid sheet.Grid, policy attendance.PolicyConfig, loc *time.Location) (ScheduleResult, error) {
	var res ScheduleResult

	headerRow, dateCols := locateDateHeader(grid)
	if headerRow < 0 {
		return res, attendance.ErrNoScheduleHeader
	}

	amStart, amEnd, err := shiftWindow(policy.AM)
	if err != nil {
		return res, fmt.Errorf("am shift config: %w", err)
	}
	pmStart, pmEnd, err := shiftWindow(policy.PM)
	if err != nil {
		return res, fmt.Errorf("pm shift config: %w", err)
	}

	sawShiftRow := false
	for row := headerRow + 1; row < len(grid); row++ {
		shift, ok := shiftToken(grid, row)
		if !ok {
			continue
		}
		sawShiftRow = true

		defaultStart, defaultEnd, crossMidnight := amStart, amEnd, policy.AM.CrossMidnight
		if shift == attendance.ShiftPM {
			defaultStart, defaultEnd, crossMidnight = pmStart, pmEnd, policy.PM.CrossMidnight
		}

		for _, dc := range dateCols {
			cell := grid.Cell(row, dc.col)
			if nullMarkers[strings.ToLower(cell)] {
				continue
			}

			start := defaultStart
			if override, ok := cellTime(cell); ok {
				start = override
			}

			startDT := timeparse.Combine(dc.date, start, loc)
			endDate := dc.date
			if crossMidnight {
				endDate = dc.date.AddDate(0, 0, 1)
			}
			endDT := timeparse.Combine(endDate, defaultEnd, loc)

			// An override can push the start past the default end; the shift
			// still ends after it starts.
			if !endDT.After(startDT) {
				endDT = endDT.Add(24 * time.Hour)
			}

			res.Records = append(res.Records, attendance.ScheduleRecord{
				Date:  dc.date,
				Shift: shift,
				Start: startDT,
				End:   endDT,
			})
		}
	}

	if !sawShiftRow || len(res.Records) == 0 {
		return res, attendance.ErrNoScheduleRecords
	}

	sort.SliceStable(res.Records, func(i, j int) bool {
		if !res.Records[i].Date.Equal(res.Records[j].Date) {
			return res.Records[i].Date.Before(res.Records[j].Date)
		}
		return res.Records[i].Shift < res.Records[j].Shift
	})

	return res, nil
}

type dateColumn struct {
	col  int
	date time.Time
}

// locateDateHeader returns the first leading row holding at least
// minHeaderDates parseable dates, with its date-bearing columns in order.
func locateDateHeader(grid sheet.Grid) (int, []dateColumn) {
	limit := len(grid)
	if limit > maxHeaderScanRows {
		limit = maxHeaderScanRows
	}
	for row := 0; row < limit; row++ {
		var cols []dateColumn
		for col := range grid[row] {
			if date, ok := timeparse.ParseHeaderDate(grid.Cell(row, col)); ok {
				cols = append(cols, dateColumn{col: col, date: date})
			}
		}
		if len(cols) >= minHeaderDates {
			return row, cols
		}
	}
	return -1, nil
}

// shiftToken looks for an AM/PM marker in the leading columns of a row.
func shiftToken(grid sheet.Grid, row int) (attendance.ShiftType, bool) {
	for col := 0; col < maxShiftTokenCols; col++ {
		cell := strings.ToUpper(grid.Cell(row, col))
		if cell == "" {
			continue
		}
		if strings.Contains(cell, "AM") {
			return attendance.ShiftAM, true
		}
		if strings.Contains(cell, "PM") {
			return attendance.ShiftPM, true
		}
	}
	return "", false
}

// cellTime extracts an embedded time token like "16:00:00" from a scheduled
// cell.
func cellTime(cell string) (timeparse.TimeOfDay, bool) {
	m := cellTimeRegex.FindStringSubmatch(cell)
	if m == nil {
		return timeparse.TimeOfDay{}, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return timeparse.TimeOfDay{}, false
	}
	return timeparse.TimeOfDay{Hour: hour, Minute: minute}, true
}

// shiftWindow parses the configured "HH:MM" bounds of a shift.
func shiftWindow(cfg attendance.ShiftConfig) (timeparse.TimeOfDay, timeparse.TimeOfDay, error) {
	start, ok := timeparse.ParseClockTime(cfg.Start)
	if !ok {
		return timeparse.TimeOfDay{}, timeparse.TimeOfDay{}, fmt.Errorf("invalid start time %q, expected HH:MM", cfg.Start)
	}
	end, ok := timeparse.ParseClockTime(cfg.End)
	if !ok {
		return timeparse.TimeOfDay{}, timeparse.TimeOfDay{}, fmt.Errorf("invalid end time %q, expected HH:MM", cfg.End)
	}
	return start, end, nil
}
