package fieldmap

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct{ input, want string }{
		{"Emp. Name", "emp name"},
		{"WORK_DATE", "work date"},
		{"  Clock-In  ", "clock in"},
		{"###", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.input); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestMatchVocabularyHits(t *testing.T) {
	headers := []string{"Emp Name", "Badge ID", "Work Date"}
	vocab := Vocabulary{
		{FieldEmployeeName, []string{"employee name", "emp name", "name"}},
		{FieldEmployeeID, []string{"employee id", "badge id", "id"}},
		{FieldDate, []string{"work date", "date"}},
	}

	m := Match(headers, vocab)

	if len(m.Missing) != 0 {
		t.Fatalf("Missing = %v, want none", m.Missing)
	}
	if len(m.Inferred) != 0 {
		t.Fatalf("Inferred = %v, want none (all should be vocabulary hits)", m.Inferred)
	}
	want := map[Field]int{FieldEmployeeName: 0, FieldEmployeeID: 1, FieldDate: 2}
	for f, col := range want {
		got, ok := m.Column(f)
		if !ok || got != col {
			t.Errorf("Column(%s) = %d, %v; want %d", f, got, ok, col)
		}
	}
	if m.Confidence() != 1.0 {
		t.Errorf("Confidence() = %v, want 1.0", m.Confidence())
	}
}

func TestMatchFirstHeaderWins(t *testing.T) {
	// Two name-ish headers: the first claims the field, the second stays free.
	headers := []string{"Name", "Nickname", "Date"}
	m := Match(headers, DefaultVocabulary())

	if col, _ := m.Column(FieldEmployeeName); col != 0 {
		t.Errorf("employee_name column = %d, want 0", col)
	}
}

func TestMatchHeaderSatisfiesOneField(t *testing.T) {
	// "Name" must not be consumed twice even though both identity fields
	// could claim it.
	headers := []string{"Name", "Date"}
	m := Match(headers, DefaultVocabulary())

	nameCol, hasName := m.Column(FieldEmployeeName)
	_, hasID := m.Column(FieldEmployeeID)
	if !hasName || nameCol != 0 {
		t.Fatalf("employee_name not mapped to column 0")
	}
	if hasID {
		t.Errorf("employee_id should not steal the already-claimed name column")
	}
}

func TestMatchIdentityInference(t *testing.T) {
	// No vocabulary hit for identity; the matcher falls back to the first
	// unclaimed column.
	headers := []string{"Person", "Work Date", "Status"}
	m := Match(headers, DefaultVocabulary())

	col, ok := m.Column(FieldEmployeeName)
	if !ok || col != 0 {
		t.Fatalf("inferred identity column = %d, %v; want 0", col, ok)
	}
	found := false
	for _, f := range m.Inferred {
		if f == FieldEmployeeName {
			found = true
		}
	}
	if !found {
		t.Errorf("employee_name should be reported as inferred, got %v", m.Inferred)
	}
}

func TestMatchDateInferenceFromDateLikeHeader(t *testing.T) {
	// A column labelled with a literal date is date-like even without a
	// "date" token.
	headers := []string{"Employee Name", "5/1/25"}
	m := Match(headers, DefaultVocabulary())

	col, ok := m.Column(FieldDate)
	if !ok || col != 1 {
		t.Fatalf("date column = %d, %v; want 1", col, ok)
	}
}

func TestMatchMissingFields(t *testing.T) {
	headers := []string{"Foo", "Bar"}
	vocab := Vocabulary{
		{FieldStatus, []string{"status"}},
		{FieldHours, []string{"hours"}},
	}
	m := Match(headers, vocab)

	if len(m.Missing) != 2 {
		t.Errorf("Missing = %v, want 2 entries", m.Missing)
	}
	if m.Confidence() != 0 {
		t.Errorf("Confidence() = %v, want 0", m.Confidence())
	}
}

func TestMatchAbbreviatedHeader(t *testing.T) {
	// Synonym-contains-header: "stat" is inside "attendance status".
	headers := []string{"Employee Name", "Date", "Stat"}
	m := Match(headers, DefaultVocabulary())

	col, ok := m.Column(FieldStatus)
	if !ok || col != 2 {
		t.Errorf("status column = %d, %v; want 2", col, ok)
	}
}
