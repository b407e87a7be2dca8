package extract

import (
	"errors"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/sheet"
)

func punchGrid() sheet.Grid {
	return sheet.Grid{
		{"Daily Hours Report For: 5/1/2025"},
		{"Employee Name", "IN 1", "OUT 1", "IN 2", "OUT 2", "Total"},
		{"Jane Doe", "9:50AM", "12:00PM", "12:30PM", "4:30PM", "6.17"},
		{},
		{"Daily Hours Report For: 5/2/2025"},
		{"Employee Name", "IN 1", "OUT 1", "IN 2", "OUT 2", "Total"},
		{"Jane Doe", "3:58PM", "", "", "12:05AM", ""},
	}
}

func TestPunchLog(t *testing.T) {
	res, err := PunchLog(punchGrid(), time.UTC)
	if err != nil {
		t.Fatalf("PunchLog() error: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(res.Records))
	}
	if res.EmployeeLabel != "Jane Doe" {
		t.Errorf("EmployeeLabel = %q, want %q", res.EmployeeLabel, "Jane Doe")
	}

	first := res.Records[0]
	if !first.Date.Equal(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first record date = %v", first.Date)
	}
	if first.In1 == nil || first.In1.Hour() != 9 || first.In1.Minute() != 50 {
		t.Errorf("first.In1 = %v", first.In1)
	}
	if first.ReportedTotal == nil || *first.ReportedTotal != 6.17 {
		t.Errorf("first.ReportedTotal = %v", first.ReportedTotal)
	}

	// Second record closes out past midnight: raw 12:05AM is before 3:58PM,
	// so out2 must land on the next day.
	second := res.Records[1]
	if second.Out2 == nil {
		t.Fatal("second.Out2 is nil")
	}
	if !second.Out2.After(*second.In1) {
		t.Errorf("second.Out2 = %v not after In1 = %v", second.Out2, second.In1)
	}
	if second.Out2.Day() != 3 {
		t.Errorf("second.Out2 day = %d, want 3 (cross-midnight)", second.Out2.Day())
	}
}

func TestPunchLogSkipsBlockWithoutEmployee(t *testing.T) {
	grid := sheet.Grid{
		{"Daily Hours Report For: 5/1/2025"},
		{"Employee Name", "IN 1", "OUT 1", "IN 2", "OUT 2", "Total"},
		{"", "9:50AM", "", "", "4:30PM", ""},
		{"Daily Hours Report For: 5/2/2025"},
		{"Employee Name", "IN 1", "OUT 1", "IN 2", "OUT 2", "Total"},
		{"Jane Doe", "9:45AM", "", "", "4:30PM", ""},
	}
	res, err := PunchLog(grid, time.UTC)
	if err != nil {
		t.Fatalf("PunchLog() error: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1 (empty-name block skipped)", len(res.Records))
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a warning for the skipped block")
	}
}

func TestPunchLogBlockWithoutHeaderResumesScanning(t *testing.T) {
	grid := sheet.Grid{
		{"Daily Hours Report For: 5/1/2025"},
		{"some decorative row"},
		{"Daily Hours Report For: 5/2/2025"},
		{"Employee Name", "IN 1", "OUT 1", "IN 2", "OUT 2", "Total"},
		{"Jane Doe", "9:45AM", "", "", "4:30PM", ""},
	}
	res, err := PunchLog(grid, time.UTC)
	if err != nil {
		t.Fatalf("PunchLog() error: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(res.Records))
	}
	if !res.Records[0].Date.Equal(time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("record date = %v, want 2025-05-02", res.Records[0].Date)
	}
}

func TestPunchLogEmptySheet(t *testing.T) {
	_, err := PunchLog(sheet.Grid{{"nothing"}, {"to", "see"}}, time.UTC)
	if !errors.Is(err, attendance.ErrNoPunchRecords) {
		t.Errorf("err = %v, want ErrNoPunchRecords", err)
	}
}

func TestModalLabelTieBreak(t *testing.T) {
	records := []attendance.PunchRecord{
		{EmployeeLabel: "Alice"},
		{EmployeeLabel: "Bob"},
		{EmployeeLabel: "Bob"},
		{EmployeeLabel: "Alice"},
	}
	if got := modalLabel(records); got != "Alice" {
		t.Errorf("modalLabel() = %q, want first-seen %q on tie", got, "Alice")
	}
}
