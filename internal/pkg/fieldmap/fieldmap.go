// Package fieldmap resolves raw column headers to semantic fields by synonym
// containment, with a positional-inference fallback for the two fields no
// record can be built without.
package fieldmap

import (
	"regexp"
	"strings"

	"github.com/attendly/attendance-backend-go/internal/pkg/timeparse"
)

type Field string

const (
	FieldEmployeeName Field = "employee_name"
	FieldEmployeeID   Field = "employee_id"
	FieldDate         Field = "date"
	FieldStatus       Field = "status"
	FieldShift        Field = "shift"
	FieldClockIn      Field = "clock_in"
	FieldClockOut     Field = "clock_out"
	FieldHours        Field = "hours"
)

// FieldSynonyms pairs a semantic field with the header phrases that resolve
// to it. Order inside Vocabulary decides which field claims a header first.
type FieldSynonyms struct {
	Field    Field
	Synonyms []string
}

type Vocabulary []FieldSynonyms

// DefaultVocabulary covers the header variants seen across real exports.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		{FieldEmployeeName, []string{"employee name", "emp name", "staff name", "worker name", "full name", "name", "employee"}},
		{FieldEmployeeID, []string{"employee id", "emp id", "badge id", "staff id", "worker id", "badge", "nik", "id"}},
		{FieldDate, []string{"work date", "attendance date", "shift date", "date", "day"}},
		{FieldStatus, []string{"attendance status", "status", "attendance", "remark"}},
		{FieldShift, []string{"shift type", "shift", "session"}},
		{FieldClockIn, []string{"clock in", "check in", "time in", "in time", "login", "start time"}},
		{FieldClockOut, []string{"clock out", "check out", "time out", "out time", "logout", "end time"}},
		{FieldHours, []string{"total hours", "work hours", "hours", "duration"}},
	}
}

// Mapping is the immutable outcome of one match run.
type Mapping struct {
	Columns  map[Field]int
	Matched  []Field
	Inferred []Field
	Missing  []Field
}

// Column returns the column index resolved for f.
func (m Mapping) Column(f Field) (int, bool) {
	idx, ok := m.Columns[f]
	return idx, ok
}

// Confidence is the share of fields resolved by a direct vocabulary hit.
// Inference-backed and missing fields both count against it.
func (m Mapping) Confidence() float64 {
	total := len(m.Matched) + len(m.Inferred) + len(m.Missing)
	if total == 0 {
		return 0
	}
	return float64(len(m.Matched)) / float64(total)
}

// HasIdentity reports whether any identity column was resolved.
func (m Mapping) HasIdentity() bool {
	_, name := m.Columns[FieldEmployeeName]
	_, id := m.Columns[FieldEmployeeID]
	return name || id
}

var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize lowercases a header and collapses non-alphanumeric runs to a
// single space.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Match resolves headers against vocab in a single pass. The first header to
// hit a synonym wins the field, and a header satisfies at most one field.
// After vocabulary matching, positional inference runs for the mandatory
// identity and date fields only; anything still unresolved is reported in
// Missing.
func Match(headers []string, vocab Vocabulary) Mapping {
	norm := make([]string, len(headers))
	for i, h := range headers {
		norm[i] = Normalize(h)
	}

	columns := make(map[Field]int)
	claimed := make(map[int]bool)
	var matched []Field

	for _, fs := range vocab {
		for col, header := range norm {
			if claimed[col] || header == "" {
				continue
			}
			if headerHits(header, fs.Synonyms) {
				columns[fs.Field] = col
				claimed[col] = true
				matched = append(matched, fs.Field)
				break
			}
		}
	}

	var inferred []Field

	// Identity inference: a generic identity-ish token first, then the first
	// unclaimed column outright.
	if _, hasName := columns[FieldEmployeeName]; !hasName {
		if _, hasID := columns[FieldEmployeeID]; !hasID {
			col := findToken(norm, claimed, "name", "employee", "id", "staff", "worker")
			if col < 0 {
				col = firstUnclaimed(norm, claimed)
			}
			if col >= 0 {
				columns[FieldEmployeeName] = col
				claimed[col] = true
				inferred = append(inferred, FieldEmployeeName)
			}
		}
	}

	// Date inference: a date-ish token, or a header whose text itself parses
	// as a date (month grids label columns with the date).
	if _, ok := columns[FieldDate]; !ok {
		col := findToken(norm, claimed, "date", "day")
		if col < 0 {
			for i, h := range headers {
				if claimed[i] {
					continue
				}
				if _, isDate := timeparse.ParseHeaderDate(h); isDate {
					col = i
					break
				}
			}
		}
		if col >= 0 {
			columns[FieldDate] = col
			claimed[col] = true
			inferred = append(inferred, FieldDate)
		}
	}

	var missing []Field
	for _, fs := range vocab {
		if _, ok := columns[fs.Field]; !ok {
			missing = append(missing, fs.Field)
		}
	}

	return Mapping{Columns: columns, Matched: matched, Inferred: inferred, Missing: missing}
}

// headerHits reports a match when the header contains a synonym or a synonym
// contains the header, covering both abbreviation and over-qualification.
func headerHits(header string, synonyms []string) bool {
	for _, syn := range synonyms {
		if strings.Contains(header, syn) || strings.Contains(syn, header) {
			return true
		}
	}
	return false
}

func findToken(norm []string, claimed map[int]bool, tokens ...string) int {
	for col, header := range norm {
		if claimed[col] || header == "" {
			continue
		}
		for _, tok := range tokens {
			if strings.Contains(header, tok) {
				return col
			}
		}
	}
	return -1
}

func firstUnclaimed(norm []string, claimed map[int]bool) int {
	for col, header := range norm {
		if !claimed[col] && header != "" {
			return col
		}
	}
	return -1
}
