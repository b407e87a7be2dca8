package tabular

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/tabular"
	"github.com/attendly/attendance-backend-go/internal/pkg/fieldmap"
	"github.com/attendly/attendance-backend-go/internal/pkg/oracle"
	"github.com/attendly/attendance-backend-go/internal/pkg/sheet"
	"github.com/attendly/attendance-backend-go/internal/pkg/timeparse"
)

// Below this share of direct vocabulary hits the mapping is considered
// uncertain and the assist service is consulted when configured.
const assistThreshold = 0.5

const maxSampleRows = 5

type TabularServiceImpl struct {
	classifier oracle.Classifier
	timezone   string
}

// NewTabularService builds the generic-path service. classifier may be nil;
// local heuristics alone must always produce a usable result.
func NewTabularService(classifier oracle.Classifier, timezone string) tabular.Service {
	return &TabularServiceImpl{classifier: classifier, timezone: timezone}
}

// Compute implements tabular.Service.
func (s *TabularServiceImpl) Compute(ctx context.Context, req tabular.ComputeRequest) (tabular.Result, error) {
	if err := req.Validate(); err != nil {
		return tabular.Result{}, err
	}

	var res tabular.Result

	loc, err := time.LoadLocation(s.timezone)
	if err != nil {
		loc = time.UTC
		res.Warnings = append(res.Warnings, fmt.Sprintf("unknown timezone %q, falling back to UTC", s.timezone))
	}

	grids := make([]sheet.Grid, 0, len(req.Files))
	for _, f := range req.Files {
		grid, err := sheet.Load(f.Name, f.Data)
		if err != nil {
			return tabular.Result{}, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		if len(grid) == 0 {
			return tabular.Result{}, fmt.Errorf("%s: %w", f.Name, tabular.ErrEmptyFile)
		}
		grids = append(grids, grid)
	}

	headers := grids[0][0]
	mapping := fieldmap.Match(headers, fieldmap.DefaultVocabulary())

	assistRecommended := mapping.Confidence() < assistThreshold
	assistApplied := false
	if assistRecommended && s.classifier != nil {
		applied, warn := s.consultOracle(ctx, req.Files[0], headers, &mapping)
		assistApplied = applied
		if warn != "" {
			res.Warnings = append(res.Warnings, warn)
		}
	}

	if len(grids) == 2 {
		secondHeaders := grids[1][0]
		if !sameHeaders(headers, secondHeaders) {
			// No unambiguous merge semantics exist for two differently-shaped
			// files; rows are concatenated under the first file's mapping.
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s has a different header shape than %s; concatenating its rows under the first file's column mapping",
				req.Files[1].Name, req.Files[0].Name))
		}
	}

	for fileIdx, grid := range grids {
		fileName := req.Files[fileIdx].Name
		for rowIdx := 1; rowIdx < len(grid); rowIdx++ {
			rec, ok, warn := s.mapRow(grid, rowIdx, fileName, mapping, loc)
			if warn != "" {
				res.Warnings = append(res.Warnings, warn)
			}
			if ok {
				res.Records = append(res.Records, rec)
			}
		}
	}

	if len(res.Records) == 0 {
		return tabular.Result{}, tabular.ErrNoUsableRows
	}

	res.Mapping = mappingReport(mapping, assistRecommended, assistApplied)
	res.Employees = aggregateEmployees(res.Records)
	res.Team = aggregateTeam(res.Employees)

	slog.Info("Computed tabular attendance",
		"files", len(req.Files),
		"records", len(res.Records),
		"employees", len(res.Employees),
	)
	return res, nil
}

// mapRow synthesizes one record. Rows missing both identity and date are
// skipped with a row-numbered warning, never an error.
func (s *TabularServiceImpl) mapRow(grid sheet.Grid, row int, fileName string, m fieldmap.Mapping, loc *time.Location) (tabular.Record, bool, string) {
	identity := ""
	if col, ok := m.Column(fieldmap.FieldEmployeeName); ok {
		identity = grid.Cell(row, col)
	}
	if identity == "" {
		if col, ok := m.Column(fieldmap.FieldEmployeeID); ok {
			identity = grid.Cell(row, col)
		}
	}

	var date time.Time
	hasDate := false
	if col, ok := m.Column(fieldmap.FieldDate); ok {
		date, hasDate = timeparse.ParseHeaderDate(grid.Cell(row, col))
	}

	if identity == "" && !hasDate {
		return tabular.Record{}, false, fmt.Sprintf("%s row %d: skipped, no identity or date value", fileName, row+1)
	}

	rec := tabular.Record{
		EmployeeLabel: identity,
		Date:          date,
		Status:        normalizeStatus(statusCell(grid, row, m)),
		SourceFile:    fileName,
		SourceRow:     row + 1,
	}
	if identity == "" {
		rec.EmployeeLabel = "(unknown)"
	}

	if hasDate {
		if col, ok := m.Column(fieldmap.FieldClockIn); ok {
			if tod, ok := timeparse.ParseClockTime(grid.Cell(row, col)); ok {
				t := timeparse.Combine(date, tod, loc)
				rec.ClockIn = &t
			}
		}
		if col, ok := m.Column(fieldmap.FieldClockOut); ok {
			if tod, ok := timeparse.ParseClockTime(grid.Cell(row, col)); ok {
				t := timeparse.Combine(date, tod, loc)
				rec.ClockOut = &t
			}
		}
	}

	return rec, true, ""
}

func statusCell(grid sheet.Grid, row int, m fieldmap.Mapping) string {
	if col, ok := m.Column(fieldmap.FieldStatus); ok {
		return grid.Cell(row, col)
	}
	return ""
}

// normalizeStatus folds free-form status strings into the four discrete
// states, defaulting to Present.
func normalizeStatus(raw string) tabular.Status {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "absent"):
		return tabular.StatusAbsent
	case strings.Contains(s, "late"), strings.Contains(s, "tardy"):
		return tabular.StatusLate
	case strings.Contains(s, "early"):
		return tabular.StatusEarlyOut
	default:
		return tabular.StatusPresent
	}
}

// consultOracle asks the assist service for better mappings. Suggestions only
// replace inferred or missing fields; direct vocabulary hits are never
// overridden, so the oracle refines but cannot corrupt a local result.
func (s *TabularServiceImpl) consultOracle(ctx context.Context, file tabular.NamedFile, headers []string, m *fieldmap.Mapping) (bool, string) {
	grid, err := sheet.Load(file.Name, file.Data)
	if err != nil || len(grid) < 2 {
		return false, ""
	}
	samples := grid[1:]
	if len(samples) > maxSampleRows {
		samples = samples[:maxSampleRows]
	}

	prior := make(map[string]string, len(m.Columns))
	for field, col := range m.Columns {
		if col < len(headers) {
			prior[headers[col]] = string(field)
		}
	}

	resp, err := s.classifier.Classify(ctx, oracle.ClassifyRequest{
		FileName:   file.Name,
		Headers:    headers,
		SampleRows: samples,
		PriorGuess: prior,
	})
	if err != nil {
		return false, fmt.Sprintf("classification assist unavailable (%v), using local heuristics only", err)
	}

	matched := make(map[fieldmap.Field]bool, len(m.Matched))
	for _, f := range m.Matched {
		matched[f] = true
	}

	applied := false
	for _, suggestion := range resp.Mappings {
		field := fieldmap.Field(suggestion.SuggestedField)
		if matched[field] {
			continue
		}
		col := headerIndex(headers, suggestion.OriginalHeader)
		if col < 0 {
			continue
		}
		if prev, ok := m.Columns[field]; !ok || prev != col {
			m.Columns[field] = col
			m.Inferred = appendUnique(m.Inferred, field)
			m.Missing = removeField(m.Missing, field)
			applied = true
		}
	}

	if !applied {
		return false, ""
	}
	return true, "field mappings refined by classification assist"
}

func headerIndex(headers []string, header string) int {
	want := fieldmap.Normalize(header)
	for i, h := range headers {
		if fieldmap.Normalize(h) == want {
			return i
		}
	}
	return -1
}

func appendUnique(fields []fieldmap.Field, f fieldmap.Field) []fieldmap.Field {
	for _, existing := range fields {
		if existing == f {
			return fields
		}
	}
	return append(fields, f)
}

func removeField(fields []fieldmap.Field, f fieldmap.Field) []fieldmap.Field {
	out := fields[:0]
	for _, existing := range fields {
		if existing != f {
			out = append(out, existing)
		}
	}
	return out
}

func sameHeaders(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if fieldmap.Normalize(a[i]) != fieldmap.Normalize(b[i]) {
			return false
		}
	}
	return true
}

func mappingReport(m fieldmap.Mapping, recommended, applied bool) tabular.MappingReport {
	report := tabular.MappingReport{
		Columns:           make(map[string]int, len(m.Columns)),
		Confidence:        roundTo2(m.Confidence()),
		AssistRecommended: recommended,
		AssistApplied:     applied,
	}
	for field, col := range m.Columns {
		report.Columns[string(field)] = col
	}
	for _, f := range m.Matched {
		report.Matched = append(report.Matched, string(f))
	}
	for _, f := range m.Inferred {
		report.Inferred = append(report.Inferred, string(f))
	}
	for _, f := range m.Missing {
		report.Missing = append(report.Missing, string(f))
	}
	return report
}

// aggregateEmployees groups records per identity in first-seen order.
func aggregateEmployees(records []tabular.Record) []tabular.EmployeeReport {
	index := make(map[string]int)
	var reports []tabular.EmployeeReport

	for _, rec := range records {
		i, ok := index[rec.EmployeeLabel]
		if !ok {
			i = len(reports)
			index[rec.EmployeeLabel] = i
			reports = append(reports, tabular.EmployeeReport{EmployeeLabel: rec.EmployeeLabel})
		}
		reports[i].ScheduledShifts++
		if rec.Status != tabular.StatusAbsent {
			reports[i].ShiftsWorked++
		}
		if rec.Status == tabular.StatusLate {
			reports[i].TardyCount++
		}
		if rec.Status == tabular.StatusEarlyOut {
			reports[i].EarlyOutCount++
		}
	}

	for i := range reports {
		reports[i].AttendancePctShifts = pct(reports[i].ShiftsWorked, reports[i].ScheduledShifts)
	}
	return reports
}

// aggregateTeam re-derives the team percentage from summed counts rather than
// averaging per-employee percentages.
func aggregateTeam(employees []tabular.EmployeeReport) tabular.TeamReport {
	team := tabular.TeamReport{Employees: len(employees)}
	for _, e := range employees {
		team.ScheduledShifts += e.ScheduledShifts
		team.ShiftsWorked += e.ShiftsWorked
		team.TardyCount += e.TardyCount
		team.EarlyOutCount += e.EarlyOutCount
	}
	team.AttendancePctShifts = pct(team.ShiftsWorked, team.ScheduledShifts)
	return team
}

func pct(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return roundTo2(float64(num) / float64(den) * 100)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
