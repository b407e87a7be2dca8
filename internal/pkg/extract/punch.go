// Package extract turns raw sheet grids into punch and schedule records with
// small finite-state scanners. Malformed cells degrade to warnings; only an
// entirely unusable sheet is an error.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/sheet"
	"github.com/attendly/attendance-backend-go/internal/pkg/timeparse"
)

// PunchResult is the output of one punch-log scan. EmployeeLabel is the most
// frequent raw label across all records, for single-employee files.
type PunchResult struct {
	Records       []attendance.PunchRecord
	EmployeeLabel string
	Warnings      []string
}

var reportDateRegex = regexp.MustCompile(`(?i)daily\s+hours\s+report\s+for:?\s*(\d{1,2}/\d{1,2}/\d{4})`)

type punchState int

const (
	punchScanning punchState = iota
	punchHeaderSeek
)

type punchColumns struct {
	employee, in1, out1, in2, out2, total int
}

// PunchLog scans the grid for "Daily Hours Report For:" blocks and emits one
// punch record per block. A block whose header or data row cannot be used is
// skipped with a warning; the scan itself never aborts mid-sheet.
func PunchLog(grid sheet.Grid, loc *time.Location) (PunchResult, error) {
	var res PunchResult

	state := punchScanning
	var current time.Time

	for i := 0; i < len(grid); i++ {
		rowText := grid.RowText(i)

		if m := reportDateRegex.FindStringSubmatch(rowText); m != nil {
			date, err := time.ParseInLocation("1/2/2006", m[1], time.UTC)
			if err != nil {
				res.Warnings = append(res.Warnings, fmt.Sprintf("row %d: could not parse report date %q", i+1, m[1]))
				state = punchScanning
				continue
			}
			if state == punchHeaderSeek {
				res.Warnings = append(res.Warnings, fmt.Sprintf("row %d: new report block before previous header row was found", i+1))
			}
			current = date
			state = punchHeaderSeek
			continue
		}

		if state != punchHeaderSeek {
			continue
		}

		cols, ok := locatePunchColumns(grid[i])
		if !ok {
			continue
		}

		// The single row under the header is the data row for this block.
		if i+1 >= len(grid) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("row %d: header row has no data row beneath it", i+1))
			state = punchScanning
			continue
		}
		rec, warn := parsePunchRow(grid, i+1, cols, current, loc)
		if warn != "" {
			res.Warnings = append(res.Warnings, warn)
		} else {
			res.Records = append(res.Records, rec)
		}
		i++ // data row consumed
		state = punchScanning
	}

	if len(res.Records) == 0 {
		return res, attendance.ErrNoPunchRecords
	}

	res.EmployeeLabel = modalLabel(res.Records)
	if distinct := countDistinctLabels(res.Records); distinct > 1 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("multiple employee labels found (%d distinct), using most frequent: %s", distinct, res.EmployeeLabel))
	}

	return res, nil
}

func locatePunchColumns(row []string) (punchColumns, bool) {
	cols := punchColumns{employee: -1, in1: -1, out1: -1, in2: -1, out2: -1, total: -1}
	for idx, cell := range row {
		switch c := strings.ToLower(strings.TrimSpace(cell)); {
		case strings.Contains(c, "employee name"):
			cols.employee = idx
		case strings.Contains(c, "in 1"):
			cols.in1 = idx
		case strings.Contains(c, "out 1"):
			cols.out1 = idx
		case strings.Contains(c, "in 2"):
			cols.in2 = idx
		case strings.Contains(c, "out 2"):
			cols.out2 = idx
		case strings.Contains(c, "total"):
			cols.total = idx
		}
	}
	return cols, cols.employee >= 0
}

func parsePunchRow(grid sheet.Grid, row int, cols punchColumns, date time.Time, loc *time.Location) (attendance.PunchRecord, string) {
	label := grid.Cell(row, cols.employee)
	if label == "" {
		return attendance.PunchRecord{}, fmt.Sprintf("row %d: no employee name for report date %s", row+1, date.Format("2006-01-02"))
	}

	timeAt := func(col int) *time.Time {
		if col < 0 {
			return nil
		}
		tod, ok := timeparse.ParseClockTime(grid.Cell(row, col))
		if !ok {
			return nil
		}
		t := timeparse.Combine(date, tod, loc)
		return &t
	}

	rec := attendance.PunchRecord{
		Date:          date,
		EmployeeLabel: label,
		In1:           timeAt(cols.in1),
		Out1:          timeAt(cols.out1),
		In2:           timeAt(cols.in2),
		Out2:          timeAt(cols.out2),
	}

	// A close-out clock value earlier than the open-in means the shift ran
	// past midnight.
	if rec.In1 != nil && rec.Out2 != nil && rec.Out2.Before(*rec.In1) {
		adj := rec.Out2.Add(24 * time.Hour)
		rec.Out2 = &adj
	}

	if cols.total >= 0 {
		if v, err := strconv.ParseFloat(grid.Cell(row, cols.total), 64); err == nil {
			rec.ReportedTotal = &v
		}
	}

	return rec, ""
}

// modalLabel picks the most frequent label, first-seen order breaking ties.
func modalLabel(records []attendance.PunchRecord) string {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		if counts[r.EmployeeLabel] == 0 {
			order = append(order, r.EmployeeLabel)
		}
		counts[r.EmployeeLabel]++
	}
	best := ""
	bestCount := 0
	for _, label := range order {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	return best
}

func countDistinctLabels(records []attendance.PunchRecord) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.EmployeeLabel] = struct{}{}
	}
	return len(seen)
}
